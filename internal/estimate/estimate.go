// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

// Package estimate converts between ACT composite and SAT total scores
// using the 2018 ACT-SAT concordance tables, and splits SAT totals into
// section scores. Estimates are approximate; the concordance maps each
// ACT composite to an inclusive SAT range and conversions use range
// midpoints rounded to the nearest 10.
package estimate

import (
	"math"

	"github.com/collegedeck/collegedeck/internal/metrics"
)

// ACT composite and SAT score bounds.
const (
	MinACT      = 9
	MaxACT      = 36
	MinSATTotal = 400
	MaxSATTotal = 1600
	minSATPart  = 200
	maxSATPart  = 800
)

// satRange is an inclusive SAT total range.
type satRange struct {
	lo, hi int
}

// actToSATRange maps an ACT composite to its concorded SAT total range
// (2018 concordance).
var actToSATRange = map[int]satRange{
	36: {1590, 1600},
	35: {1540, 1580},
	34: {1490, 1530},
	33: {1450, 1480},
	32: {1420, 1440},
	31: {1390, 1410},
	30: {1360, 1380},
	29: {1330, 1350},
	28: {1300, 1320},
	27: {1260, 1290},
	26: {1230, 1250},
	25: {1200, 1220},
	24: {1160, 1190},
	23: {1130, 1150},
	22: {1100, 1120},
	21: {1060, 1090},
	20: {1030, 1050},
	19: {990, 1020},
	18: {960, 980},
	17: {920, 950},
	16: {880, 910},
	15: {830, 870},
	14: {780, 820},
	13: {730, 770},
	12: {690, 720},
	11: {650, 680},
	10: {620, 640},
	9:  {590, 610},
}

// ACTFromSATTotal estimates an ACT composite from an SAT total.
// Totals at or below 610 clamp to 9, at or above 1590 clamp to 36.
// Totals falling in a gap between concordance ranges interpolate
// linearly.
func ACTFromSATTotal(satTotal int) int {
	metrics.RecordEstimate("sat_to_act")

	if satTotal <= 610 {
		return MinACT
	}
	if satTotal >= 1590 {
		return MaxACT
	}

	// Highest ACT whose range contains the total wins.
	for act := MaxACT; act >= MinACT; act-- {
		r := actToSATRange[act]
		if r.lo <= satTotal && satTotal <= r.hi {
			return act
		}
	}

	// The total fell in a gap between ranges; interpolate between the
	// 9 and 36 anchors.
	interpolated := roundHalfEven(9 + float64(satTotal-610)*(27.0/float64(1590-610)))
	return clamp(interpolated, MinACT, MaxACT)
}

// SATTotalFromACT estimates an SAT total from an ACT composite, using
// the midpoint of the concorded range rounded to the nearest 10. The
// composite clamps to 9..36 first, so the result is always within
// 400..1600.
func SATTotalFromACT(act int) int {
	metrics.RecordEstimate("act_to_sat")

	act = clamp(act, MinACT, MaxACT)
	r := actToSATRange[act]
	return roundToNearestTen(r.lo + r.hi)
}

// SATPartsFromTotal splits an SAT total into ERW and Math section
// scores. A known section pins its value and the other section takes
// the remainder clamped to 200..800; with neither known the total
// splits evenly. Clamping means the parts may not sum to the total at
// the extremes.
func SATPartsFromTotal(satTotal int, knownERW, knownMath *int) (erw, math int) {
	if knownERW != nil && knownMath != nil {
		return *knownERW, *knownMath
	}

	if knownERW != nil {
		return *knownERW, clamp(satTotal-*knownERW, minSATPart, maxSATPart)
	}
	if knownMath != nil {
		return clamp(satTotal-*knownMath, minSATPart, maxSATPart), *knownMath
	}

	erw = roundToNearestTen(satTotal)
	math = satTotal - erw
	return clamp(erw, minSATPart, maxSATPart), clamp(math, minSATPart, maxSATPart)
}

// roundToNearestTen halves sum and rounds to the nearest multiple of
// 10, ties to even.
func roundToNearestTen(sum int) int {
	return int(math.RoundToEven(float64(sum)/20)) * 10
}

func roundHalfEven(v float64) int {
	return int(math.RoundToEven(v))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
