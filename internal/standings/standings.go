package standings

import (
	"sort"

	"github.com/racketclub/tourney/internal/tourney"
)

// Points awarded per result. Playing earns a point even in defeat, so the
// table rewards showing up; an unplayed fixture earns nothing.
const (
	WinPoints  = 2
	LossPoints = 1
)

// Calculate builds the ranked table for one group from completed matches.
// It filters the input to matches with the given group id and completed
// status, so callers can pass everything they have for a category. The
// result is deterministic for a given input and empty when no group match
// has finished yet.
func Calculate(matches []*tourney.Match, groupID string) []tourney.Standing {
	rows := make(map[string]*tourney.Standing)

	for _, m := range matches {
		if m.GroupID == nil || *m.GroupID != groupID || m.Status != tourney.MatchCompleted {
			continue
		}
		if m.WinnerID == nil {
			continue
		}
		winner, loser := m.Player1, m.Player2
		if *m.WinnerID == m.Player2.ID {
			winner, loser = m.Player2, m.Player1
		}

		w := row(rows, winner)
		w.Played++
		w.Wins++
		w.Points += WinPoints

		l := row(rows, loser)
		l.Played++
		l.Losses++
		l.Points += LossPoints
	}

	table := make([]tourney.Standing, 0, len(rows))
	for _, r := range rows {
		table = append(table, *r)
	}
	sort.Slice(table, func(i, j int) bool {
		return Less(table[i], table[j])
	})
	return table
}

func row(rows map[string]*tourney.Standing, p tourney.Slot) *tourney.Standing {
	if r, ok := rows[p.ID]; ok {
		return r
	}
	r := &tourney.Standing{PlayerID: p.ID, Name: p.Name}
	rows[p.ID] = r
	return r
}

// Less is the ranking comparator shared with qualifier selection:
// points descending, wins descending, losses ascending, then name
// ascending. Player id breaks exact ties so the order never depends on
// map iteration.
func Less(a, b tourney.Standing) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.Wins != b.Wins {
		return a.Wins > b.Wins
	}
	if a.Losses != b.Losses {
		return a.Losses < b.Losses
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.PlayerID < b.PlayerID
}
