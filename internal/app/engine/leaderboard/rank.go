package leaderboard

import "sort"

// Direction orders a ranked list.
type Direction int

const (
	Desc Direction = iota
	Asc
)

// RankSpec describes one list: which key to sort by, the sample-size floor an
// item must reach to appear, the sort direction, and how many to keep.
type RankSpec[T any] struct {
	// Key returns the sort key. ok == false excludes the item.
	Key       func(T) (float64, bool)
	Count     func(T) int
	MinCount  int
	Direction Direction
	Limit     int
}

// Rank filters, thresholds, sorts, and slices items per spec.
//
// The sort is stable, so equal keys keep their input order. The input slice
// is not modified.
func Rank[T any](items []T, spec RankSpec[T]) []T {
	type keyed struct {
		item T
		key  float64
	}

	kept := make([]keyed, 0, len(items))
	for _, it := range items {
		if spec.Count != nil && spec.Count(it) < spec.MinCount {
			continue
		}
		k, ok := spec.Key(it)
		if !ok {
			continue
		}
		kept = append(kept, keyed{item: it, key: k})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if spec.Direction == Asc {
			return kept[i].key < kept[j].key
		}
		return kept[i].key > kept[j].key
	})

	if spec.Limit > 0 && len(kept) > spec.Limit {
		kept = kept[:spec.Limit]
	}

	out := make([]T, len(kept))
	for i, k := range kept {
		out[i] = k.item
	}
	return out
}
