// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package ranking

import (
	"math"
	"sort"

	"github.com/collegedeck/collegedeck/internal/metrics"
)

// normalize turns raw provider entries into a clean, deterministically
// ordered id list:
//
//   - entries missing unitid or score are dropped (malformed)
//   - non-positive ids, NaN/Inf scores, and scores outside [0, 1] are
//     dropped (out_of_range)
//   - duplicate ids keep the highest-scored occurrence (duplicate)
//   - survivors sort by score descending, ties by unitid ascending
func normalize(entries []scoredEntry) []int64 {
	var malformed, outOfRange, duplicate int

	best := make(map[int64]float64, len(entries))
	for _, e := range entries {
		if e.UnitID == nil || e.Score == nil {
			malformed++
			continue
		}
		id, score := *e.UnitID, *e.Score
		if id <= 0 || math.IsNaN(score) || math.IsInf(score, 0) || score < 0 || score > 1 {
			outOfRange++
			continue
		}
		if prev, seen := best[id]; seen {
			duplicate++
			if score <= prev {
				continue
			}
		}
		best[id] = score
	}

	metrics.RecordRankingDropped("malformed", malformed)
	metrics.RecordRankingDropped("out_of_range", outOfRange)
	metrics.RecordRankingDropped("duplicate", duplicate)

	if len(best) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(best))
	for id := range best {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		si, sj := best[ids[i]], best[ids[j]]
		if si != sj {
			return si > sj
		}
		return ids[i] < ids[j]
	})

	return ids
}
