package qualify

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/racketclub/tourney/internal/standings"
	"github.com/racketclub/tourney/internal/tourney"
)

// Select picks the knockout entrants for one category, best first, at most
// knockoutSize of them. Entrants are drawn in three tiers:
//
//  1. every group winner, in group order;
//  2. the remaining ranked players of all groups, pooled and re-sorted
//     under the standings comparator;
//  3. any roster player in the category not selected yet, seeded players
//     first, then by name.
//
// The roster tier makes the selection usable before a single group match
// has finished; as results come in, tiers 1 and 2 take over.
func Select(roster []tourney.Player, matches []*tourney.Match, category string, knockoutSize int) []tourney.Slot {
	var ranked []tourney.Slot
	var pool []tourney.Standing

	for _, groupID := range groupIDs(matches, category) {
		table := standings.Calculate(matches, groupID)
		if len(table) == 0 {
			continue
		}
		winner := table[0]
		ranked = append(ranked, tourney.Slot{ID: winner.PlayerID, Name: winner.Name})
		pool = append(pool, table[1:]...)
	}

	sort.Slice(pool, func(i, j int) bool {
		return standings.Less(pool[i], pool[j])
	})
	for _, row := range pool {
		ranked = append(ranked, tourney.Slot{ID: row.PlayerID, Name: row.Name})
	}

	ranked = append(ranked, rosterFallback(roster, category)...)

	selected := dedupe(ranked)
	if len(selected) > knockoutSize {
		selected = selected[:knockoutSize]
	}
	log.Debug("Selected qualifiers", "category", category, "count", len(selected))
	return selected
}

// groupIDs returns the distinct group ids present among the category's
// group-round matches, sorted so group A's winner always precedes group B's.
func groupIDs(matches []*tourney.Match, category string) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, m := range matches {
		if m.Category != category || m.Round != tourney.RoundGroup || m.GroupID == nil {
			continue
		}
		if !seen[*m.GroupID] {
			seen[*m.GroupID] = true
			ids = append(ids, *m.GroupID)
		}
	}
	sort.Strings(ids)
	return ids
}

// rosterFallback orders the category's roster seeded-first then by name, so
// seeded players outrank unseeded ones whenever group play has produced too
// few ranked entrants.
func rosterFallback(roster []tourney.Player, category string) []tourney.Slot {
	var players []tourney.Player
	for _, p := range roster {
		if p.InCategory(category) {
			players = append(players, p)
		}
	}
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Seeded != players[j].Seeded {
			return players[i].Seeded
		}
		return players[i].Name < players[j].Name
	})
	slots := make([]tourney.Slot, 0, len(players))
	for _, p := range players {
		slots = append(slots, tourney.Slot{ID: p.ID, Name: p.Name})
	}
	return slots
}

func dedupe(slots []tourney.Slot) []tourney.Slot {
	seen := make(map[string]bool)
	out := slots[:0:0]
	for _, s := range slots {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out
}
