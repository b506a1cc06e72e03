package internal

import (
	"iter"
)

// IterSeq2Grid yields every pair (a, b) with 0 <= a, b < limit,
// varying b fastest.
func IterSeq2Grid(limit int64) iter.Seq2[int64, int64] {
	return func(yield func(int64, int64) bool) {
		for a := range limit {
			for b := range limit {
				if !yield(a, b) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}
