// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for missing or malformed values.
// It is called by Load() after all layers are merged.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateRanking(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateAPI()
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required (DUCKDB_PATH)")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database threads must be >= 0, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateRanking() error {
	if !c.Ranking.Enabled {
		return nil
	}
	if c.Ranking.URL == "" {
		return fmt.Errorf("ranking url is required when ranking is enabled (RANKING_URL)")
	}
	u, err := url.Parse(c.Ranking.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("ranking url %q is not a valid http(s) URL", c.Ranking.URL)
	}
	if c.Ranking.Timeout <= 0 {
		return fmt.Errorf("ranking timeout must be positive, got %s", c.Ranking.Timeout)
	}
	if c.Ranking.TopK <= 0 {
		return fmt.Errorf("ranking top_k must be positive, got %d", c.Ranking.TopK)
	}
	if c.Ranking.BreakerFailureRatio <= 0 || c.Ranking.BreakerFailureRatio > 1 {
		return fmt.Errorf("ranking breaker_failure_ratio must be in (0, 1], got %g", c.Ranking.BreakerFailureRatio)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive, got %s", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	mode := strings.ToLower(c.Security.AuthMode)
	switch mode {
	case "jwt":
		// Minimum 32 characters mitigates brute forcing of the HS256 secret.
		if len(c.Security.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters when auth_mode is jwt")
		}
	case "none":
		if strings.EqualFold(c.Server.Environment, "production") {
			return fmt.Errorf("auth_mode none is not allowed in production")
		}
	default:
		return fmt.Errorf("auth_mode must be jwt or none, got %q", c.Security.AuthMode)
	}

	if !c.Security.RateLimitDisabled && c.Security.RateLimitReqs <= 0 {
		return fmt.Errorf("rate_limit_reqs must be positive when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize <= 0 {
		return fmt.Errorf("api default_page_size must be positive, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api max_page_size (%d) must be >= default_page_size (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	return nil
}
