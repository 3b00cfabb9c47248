package seeding

import (
	"github.com/racketclub/tourney/internal/tourney"
)

// Canonical single-elimination seed order per bracket size. Position k of
// the table holds the seed number placed at bracket slot k, arranged so
// seeds 1 and 2 land in opposite halves and cannot meet before the final.
var seedOrder = map[int][]int{
	4:  {1, 4, 2, 3},
	8:  {1, 8, 4, 5, 3, 6, 2, 7},
	16: {1, 16, 8, 9, 5, 12, 4, 13, 3, 14, 6, 11, 7, 10, 2, 15},
}

// BracketSize picks the smallest supported bracket (4, 8 or 16) that holds
// the given number of qualifiers, capped at the tournament's configured
// knockout size.
func BracketSize(qualifiers, maxSize int) int {
	size := 16
	switch {
	case qualifiers <= 4:
		size = 4
	case qualifiers <= 8:
		size = 8
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	return size
}

// Arrange places the ranked qualifier list into bracket order. The result
// always has exactly size entries; positions whose seed number exceeds the
// qualifier count are nil and become byes or TBD opponents downstream.
func Arrange(qualifiers []tourney.Slot, size int) []*tourney.Slot {
	order, ok := seedOrder[size]
	if !ok {
		order = seedOrder[BracketSize(size, 16)]
	}
	arranged := make([]*tourney.Slot, len(order))
	for pos, seed := range order {
		if seed-1 < len(qualifiers) {
			q := qualifiers[seed-1]
			arranged[pos] = &q
		}
	}
	return arranged
}
