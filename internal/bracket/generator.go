package bracket

import (
	"github.com/racketclub/tourney/internal/tourney"
)

// RoundPlan is the set of matches to create for one knockout round.
type RoundPlan struct {
	Round   tourney.Round
	Matches []tourney.CreateMatch
}

// Plan lays out every knockout round for a seeded bracket. The first round
// pairs consecutive bracket slots; empty slots become TBD opponents rather
// than failing. Later rounds are created as all-TBD placeholders — their
// participants arrive through winner advancement, not at generation time.
//
// The plan carries no match ids: the caller creates the matches round by
// round and then links round r match i into round r+1 match i/2.
func Plan(category string, seeded []*tourney.Slot) []RoundPlan {
	rounds := tourney.KnockoutRounds(len(seeded))

	plans := make([]RoundPlan, 0, len(rounds))
	count := len(seeded) / 2
	for i, round := range rounds {
		plan := RoundPlan{Round: round}
		for j := 0; j < count; j++ {
			cm := tourney.CreateMatch{
				Category: category,
				Round:    round,
				Player1:  tbdSlot(),
				Player2:  tbdSlot(),
				Status:   tourney.MatchScheduled,
				Games:    []tourney.ScoreGame{{Number: 1}},
			}
			if i == 0 {
				cm.Player1 = slotOrTBD(seeded, 2*j)
				cm.Player2 = slotOrTBD(seeded, 2*j+1)
			}
			plan.Matches = append(plan.Matches, cm)
		}
		plans = append(plans, plan)
		count = count / 2
		if count < 1 {
			count = 1
		}
	}
	return plans
}

// LinkIndex gives the position in the next round that the match at index i
// feeds into. Winners of sibling matches 2k and 2k+1 meet in match k.
func LinkIndex(i int) int {
	return i / 2
}

func tbdSlot() tourney.Slot {
	return tourney.Slot{ID: tourney.TBD, Name: tourney.TBD}
}

func slotOrTBD(seeded []*tourney.Slot, i int) tourney.Slot {
	if i < len(seeded) && seeded[i] != nil {
		return *seeded[i]
	}
	return tbdSlot()
}
