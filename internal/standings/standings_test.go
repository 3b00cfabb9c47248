package standings_test

import (
	"testing"

	"github.com/racketclub/tourney/internal/standings"
	"github.com/racketclub/tourney/internal/tourney"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedMatch(groupID, winnerID string, p1, p2 tourney.Slot) *tourney.Match {
	gid := groupID
	wid := winnerID
	return &tourney.Match{
		ID:       p1.ID + "-" + p2.ID,
		Category: "open",
		Round:    tourney.RoundGroup,
		GroupID:  &gid,
		Player1:  p1,
		Player2:  p2,
		Status:   tourney.MatchCompleted,
		WinnerID: &wid,
	}
}

func TestCalculate(t *testing.T) {
	anna := tourney.Slot{ID: "p1", Name: "Anna"}
	bernt := tourney.Slot{ID: "p2", Name: "Bernt"}
	cecilia := tourney.Slot{ID: "p3", Name: "Cecilia"}

	t.Run("empty input yields an empty table", func(t *testing.T) {
		assert.Empty(t, standings.Calculate(nil, "open-A"))
	})

	t.Run("ignores other groups and unfinished matches", func(t *testing.T) {
		gid := "open-A"
		scheduled := &tourney.Match{Round: tourney.RoundGroup, GroupID: &gid,
			Player1: anna, Player2: bernt, Status: tourney.MatchScheduled}
		otherGroup := completedMatch("open-B", "p3", cecilia, anna)

		table := standings.Calculate([]*tourney.Match{scheduled, otherGroup}, "open-A")
		assert.Empty(t, table)
	})

	t.Run("points follow two for a win, one for a loss", func(t *testing.T) {
		matches := []*tourney.Match{
			completedMatch("open-A", "p1", anna, bernt),
			completedMatch("open-A", "p1", anna, cecilia),
			completedMatch("open-A", "p2", bernt, cecilia),
		}
		table := standings.Calculate(matches, "open-A")
		require.Len(t, table, 3)

		assert.Equal(t, "Anna", table[0].Name)
		assert.Equal(t, 2, table[0].Wins)
		assert.Equal(t, 0, table[0].Losses)
		assert.Equal(t, 4, table[0].Points)

		assert.Equal(t, "Bernt", table[1].Name)
		assert.Equal(t, 3, table[1].Points, "one win and one loss")

		assert.Equal(t, "Cecilia", table[2].Name)
		assert.Equal(t, 2, table[2].Points, "two losses still score")

		for _, row := range table {
			assert.Equal(t, row.Wins+row.Losses, row.Played)
			assert.Equal(t, 2*row.Wins+row.Losses, row.Points)
		}
	})

	t.Run("is deterministic across repeated calls", func(t *testing.T) {
		matches := []*tourney.Match{
			completedMatch("open-A", "p1", anna, bernt),
			completedMatch("open-A", "p3", cecilia, anna),
			completedMatch("open-A", "p2", bernt, cecilia),
		}
		first := standings.Calculate(matches, "open-A")
		for i := 0; i < 20; i++ {
			assert.Equal(t, first, standings.Calculate(matches, "open-A"))
		}
	})

	t.Run("name breaks full ties", func(t *testing.T) {
		// One win each, one loss each: points, wins and losses all tie.
		matches := []*tourney.Match{
			completedMatch("open-A", "p2", anna, bernt),
			completedMatch("open-A", "p1", anna, bernt),
		}
		table := standings.Calculate(matches, "open-A")
		require.Len(t, table, 2)
		assert.Equal(t, "Anna", table[0].Name)
		assert.Equal(t, "Bernt", table[1].Name)
	})
}

func TestLess(t *testing.T) {
	base := tourney.Standing{PlayerID: "x", Name: "X", Points: 4, Wins: 2, Losses: 0}

	t.Run("points first", func(t *testing.T) {
		lower := base
		lower.Points = 3
		assert.True(t, standings.Less(base, lower))
		assert.False(t, standings.Less(lower, base))
	})

	t.Run("wins then losses", func(t *testing.T) {
		fewerWins := tourney.Standing{Points: 4, Wins: 1, Losses: 0, Name: "Y"}
		assert.True(t, standings.Less(base, fewerWins))

		moreLosses := tourney.Standing{Points: 4, Wins: 2, Losses: 1, Name: "Y"}
		assert.True(t, standings.Less(base, moreLosses))
	})
}
