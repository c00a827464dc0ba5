// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package supervisor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/collegedeck/collegedeck/internal/logging"
)

// blockService signals once it is running, then blocks until canceled.
type blockService struct {
	started chan struct{}
	once    sync.Once
}

func newBlockService() *blockService {
	return &blockService{started: make(chan struct{})}
}

func (s *blockService) Serve(ctx context.Context) error {
	s.once.Do(func() { close(s.started) })
	<-ctx.Done()
	return ctx.Err()
}

func (s *blockService) String() string { return "block-service" }

func TestTree_RunsAndStopsServices(t *testing.T) {
	tree := NewTree(logging.NewSlogLogger(), DefaultTreeConfig())

	apiSvc := newBlockService()
	storageSvc := newBlockService()
	tree.AddAPIService(apiSvc)
	tree.AddStorageService(storageSvc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	for _, svc := range []*blockService{apiSvc, storageSvc} {
		select {
		case <-svc.started:
		case <-time.After(2 * time.Second):
			t.Fatalf("%s never started", svc.String())
		}
	}

	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected terminal error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("tree did not stop after cancellation")
	}
}

func TestNewTree_ZeroConfigGetsDefaults(t *testing.T) {
	tree := NewTree(logging.NewSlogLogger(), TreeConfig{})

	if tree.config.FailureThreshold != 5.0 {
		t.Errorf("expected default threshold, got %f", tree.config.FailureThreshold)
	}
	if tree.config.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected default shutdown timeout, got %v", tree.config.ShutdownTimeout)
	}
}
