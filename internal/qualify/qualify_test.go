package qualify_test

import (
	"fmt"
	"testing"

	"github.com/racketclub/tourney/internal/qualify"
	"github.com/racketclub/tourney/internal/tourney"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const category = "mens_singles"

func groupMatch(groupID, winnerID, loserID string) *tourney.Match {
	gid := groupID
	wid := winnerID
	return &tourney.Match{
		ID:       fmt.Sprintf("m-%s-%s-%s", groupID, winnerID, loserID),
		Category: category,
		Round:    tourney.RoundGroup,
		GroupID:  &gid,
		Player1:  tourney.Slot{ID: winnerID, Name: "Player " + winnerID},
		Player2:  tourney.Slot{ID: loserID, Name: "Player " + loserID},
		Status:   tourney.MatchCompleted,
		WinnerID: &wid,
	}
}

func player(id string, seeded bool) tourney.Player {
	return tourney.Player{
		ID:         id,
		Name:       "Player " + id,
		Categories: []string{category},
		Seeded:     seeded,
	}
}

func TestSelect(t *testing.T) {
	t.Run("group winners come first in group order", func(t *testing.T) {
		// Group A: a1 beats a2 and a3, a2 beats a3.
		// Group B: b1 beats b2 and b3, b2 beats b3.
		matches := []*tourney.Match{
			groupMatch(category+"-A", "a1", "a2"),
			groupMatch(category+"-A", "a1", "a3"),
			groupMatch(category+"-A", "a2", "a3"),
			groupMatch(category+"-B", "b1", "b2"),
			groupMatch(category+"-B", "b1", "b3"),
			groupMatch(category+"-B", "b2", "b3"),
		}

		selected := qualify.Select(nil, matches, category, 4)
		require.Len(t, selected, 4)
		assert.Equal(t, "a1", selected[0].ID)
		assert.Equal(t, "b1", selected[1].ID)

		// Runners-up are pooled across groups and ranked together. Both
		// a2 and b2 hold 1 win and 1 loss, so the name tiebreak orders them.
		assert.Equal(t, "a2", selected[2].ID)
		assert.Equal(t, "b2", selected[3].ID)
	})

	t.Run("truncates to the knockout size", func(t *testing.T) {
		matches := []*tourney.Match{
			groupMatch(category+"-A", "a1", "a2"),
			groupMatch(category+"-B", "b1", "b2"),
		}
		selected := qualify.Select(nil, matches, category, 2)
		require.Len(t, selected, 2)
		assert.Equal(t, "a1", selected[0].ID)
		assert.Equal(t, "b1", selected[1].ID)
	})

	t.Run("falls back to the roster before group play", func(t *testing.T) {
		roster := []tourney.Player{
			player("p3", false),
			player("p1", true),
			player("p2", false),
		}
		selected := qualify.Select(roster, nil, category, 8)
		require.Len(t, selected, 3)

		// Seeded players outrank unseeded ones, then names decide.
		assert.Equal(t, "p1", selected[0].ID)
		assert.Equal(t, "p2", selected[1].ID)
		assert.Equal(t, "p3", selected[2].ID)
	})

	t.Run("roster tier tops up a short ranked list", func(t *testing.T) {
		matches := []*tourney.Match{
			groupMatch(category+"-A", "a1", "a2"),
		}
		roster := []tourney.Player{
			player("a1", false),
			player("a2", false),
			player("late", false),
		}
		selected := qualify.Select(roster, matches, category, 8)
		require.Len(t, selected, 3)
		assert.Equal(t, "a1", selected[0].ID)
		assert.Equal(t, "a2", selected[1].ID)
		assert.Equal(t, "late", selected[2].ID)
	})

	t.Run("never selects the same player twice", func(t *testing.T) {
		matches := []*tourney.Match{
			groupMatch(category+"-A", "a1", "a2"),
		}
		roster := []tourney.Player{
			player("a1", true),
			player("a2", false),
		}
		selected := qualify.Select(roster, matches, category, 8)
		seen := make(map[string]bool)
		for _, s := range selected {
			assert.False(t, seen[s.ID], "player %s selected twice", s.ID)
			seen[s.ID] = true
		}
		assert.Len(t, selected, 2)
	})

	t.Run("ignores other categories", func(t *testing.T) {
		other := &tourney.Match{
			ID:       "other",
			Category: "womens_singles",
			Round:    tourney.RoundGroup,
			GroupID:  strPtr("womens_singles-A"),
			Player1:  tourney.Slot{ID: "w1", Name: "W1"},
			Player2:  tourney.Slot{ID: "w2", Name: "W2"},
			Status:   tourney.MatchCompleted,
			WinnerID: strPtr("w1"),
		}
		selected := qualify.Select(nil, []*tourney.Match{other}, category, 8)
		assert.Empty(t, selected)
	})
}

func strPtr(s string) *string { return &s }
