package schedule

import (
	"fmt"

	"github.com/racketclub/tourney/internal/tourney"
)

// DefaultGroupSize is used when the organizer did not configure one.
const DefaultGroupSize = 4

// Group is one pool of players drawn from the roster.
type Group struct {
	Label   string
	GroupID string
	Players []tourney.Slot
}

// GroupLabel returns the letter label for the k-th group (0-indexed):
// A, B, ... Z, then G27, G28 and so on.
func GroupLabel(k int) string {
	if k < 26 {
		return string(rune('A' + k))
	}
	return fmt.Sprintf("G%d", k+1)
}

// SplitGroups partitions the roster into consecutive chunks of groupSize.
// The last group may be smaller. There is no shuffling: grouping follows
// input order, so callers control seeding by pre-sorting the roster.
func SplitGroups(category string, players []tourney.Slot, groupSize int) []Group {
	if groupSize < 1 {
		groupSize = 1
	}
	var groups []Group
	for start := 0; start < len(players); start += groupSize {
		end := start + groupSize
		if end > len(players) {
			end = len(players)
		}
		label := GroupLabel(len(groups))
		groups = append(groups, Group{
			Label:   label,
			GroupID: fmt.Sprintf("%s-%s", category, label),
			Players: players[start:end],
		})
	}
	return groups
}

// GroupFixtures builds the full round-robin fixture list for one category:
// every unordered pair within each group plays exactly once, n(n-1)/2
// matches per group of n. Each fixture starts with a single empty game.
func GroupFixtures(category string, players []tourney.Slot, groupSize int) []tourney.CreateMatch {
	var fixtures []tourney.CreateMatch
	for _, g := range SplitGroups(category, players, groupSize) {
		for i := 0; i < len(g.Players); i++ {
			for j := i + 1; j < len(g.Players); j++ {
				groupID := g.GroupID
				fixtures = append(fixtures, tourney.CreateMatch{
					Category: category,
					Round:    tourney.RoundGroup,
					GroupID:  &groupID,
					Player1:  g.Players[i],
					Player2:  g.Players[j],
					Status:   tourney.MatchScheduled,
					Games:    []tourney.ScoreGame{{Number: 1}},
				})
			}
		}
	}
	return fixtures
}
