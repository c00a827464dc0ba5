// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package estimate

import "testing"

func intPtr(v int) *int { return &v }

func TestACTFromSATTotal(t *testing.T) {
	tests := []struct {
		name     string
		satTotal int
		want     int
	}{
		{"perfect score", 1600, 36},
		{"top of range", 1590, 36},
		{"mid table", 1200, 25},
		{"range upper bound", 1190, 24},
		{"range lower bound", 1160, 24},
		{"bottom of table", 610, 9},
		{"below table clamps", 400, 9},
		{"above table clamps", 2000, 36},
		{"gap between ranges interpolates", 875, 16},
		{"narrow gap near bottom", 615, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ACTFromSATTotal(tt.satTotal); got != tt.want {
				t.Errorf("ACTFromSATTotal(%d) = %d, want %d", tt.satTotal, got, tt.want)
			}
		})
	}
}

func TestSATTotalFromACT(t *testing.T) {
	tests := []struct {
		name string
		act  int
		want int
	}{
		{"perfect composite", 36, 1600},
		{"midpoint rounds to ten", 33, 1460},
		{"exact midpoint", 30, 1370},
		{"ties round to even ten", 21, 1080},
		{"bottom of table", 9, 600},
		{"below range clamps", 1, 600},
		{"above range clamps", 40, 1600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SATTotalFromACT(tt.act); got != tt.want {
				t.Errorf("SATTotalFromACT(%d) = %d, want %d", tt.act, got, tt.want)
			}
		})
	}
}

func TestSATTotalFromACT_AlwaysInBounds(t *testing.T) {
	for act := -5; act <= 45; act++ {
		got := SATTotalFromACT(act)
		if got < MinSATTotal || got > MaxSATTotal {
			t.Errorf("SATTotalFromACT(%d) = %d, outside %d..%d", act, got, MinSATTotal, MaxSATTotal)
		}
		if got%10 != 0 {
			t.Errorf("SATTotalFromACT(%d) = %d, not a multiple of 10", act, got)
		}
	}
}

func TestRoundTrip_ACTSurvives(t *testing.T) {
	// ACT -> SAT -> ACT must land back on the same composite: the
	// midpoint of each range concords back to the range it came from.
	for act := MinACT; act <= MaxACT; act++ {
		sat := SATTotalFromACT(act)
		back := ACTFromSATTotal(sat)
		if back != act {
			t.Errorf("round trip %d -> %d -> %d", act, sat, back)
		}
	}
}

func TestSATPartsFromTotal(t *testing.T) {
	tests := []struct {
		name      string
		satTotal  int
		knownERW  *int
		knownMath *int
		wantERW   int
		wantMath  int
	}{
		{"even split", 1200, nil, nil, 600, 600},
		{"odd half rounds to ten", 1010, nil, nil, 500, 510},
		{"maximum total", 1600, nil, nil, 800, 800},
		{"minimum total", 400, nil, nil, 200, 200},
		{"known erw takes remainder", 1300, intPtr(650), nil, 650, 650},
		{"known math takes remainder", 1100, nil, intPtr(700), 400, 700},
		{"remainder clamps high", 1600, intPtr(700), nil, 700, 800},
		{"remainder clamps low", 450, nil, intPtr(300), 200, 300},
		{"both known pass through", 1250, intPtr(600), intPtr(650), 600, 650},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			erw, math := SATPartsFromTotal(tt.satTotal, tt.knownERW, tt.knownMath)
			if erw != tt.wantERW || math != tt.wantMath {
				t.Errorf("SATPartsFromTotal(%d) = (%d, %d), want (%d, %d)",
					tt.satTotal, erw, math, tt.wantERW, tt.wantMath)
			}
		})
	}
}
