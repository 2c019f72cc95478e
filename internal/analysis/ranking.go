package analysis

import (
	"sort"

	"github.com/google/uuid"
)

type RankEntry[T any] struct {
	ID    uuid.UUID
	Item  T
	Score float64
}

type Ranked[T any] struct {
	Position int
	RankEntry[T]
}

// Rank sorts by score descending and numbers positions from 1. Ties keep input order.
func Rank[T any](entries []RankEntry[T]) []Ranked[T] {
	sorted := make([]RankEntry[T], len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	out := make([]Ranked[T], 0, len(sorted))
	for i, e := range sorted {
		out = append(out, Ranked[T]{Position: i + 1, RankEntry: e})
	}
	return out
}

type ObservationCount struct {
	ID    uuid.UUID
	Count int
}

// RetestCandidates returns ids observed fewer than twice, in input order.
func RetestCandidates(counts []ObservationCount) []uuid.UUID {
	var out []uuid.UUID
	for _, c := range counts {
		if c.Count < 2 {
			out = append(out, c.ID)
		}
	}
	return out
}
