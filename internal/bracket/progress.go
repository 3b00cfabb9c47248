package bracket

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/racketclub/tourney/internal/store"
	"github.com/racketclub/tourney/internal/tourney"
)

// Store defines the database operations winner advancement needs.
type Store interface {
	GetMatch(tournamentID, matchID string) (*tourney.Match, error)
	UpdateMatch(tournamentID, matchID string, upd store.MatchUpdate) error
}

// ErrSlotConflict means both slots of the next match are already occupied
// by other players. That only happens when something upstream advanced the
// wrong winner; it is surfaced instead of silently skipping the write so an
// organizer can intervene.
var ErrSlotConflict = errors.New("both slots of the next match are taken by other players")

// Advance propagates the winner of a completed match into the next-round
// match it is linked to. The write is idempotent: a slot that already holds
// the winner is left alone, so re-running a completion is safe. Sibling
// matches feeding the same target fill slot 1 first, then slot 2.
func Advance(st Store, tournamentID string, completed *tourney.Match) error {
	if completed.NextMatchID == nil || completed.WinnerID == nil {
		return nil
	}
	winner := tourney.Slot{ID: *completed.WinnerID}
	switch completed.SlotFor(winner.ID) {
	case tourney.SideP1:
		winner.Name = completed.Player1.Name
	case tourney.SideP2:
		winner.Name = completed.Player2.Name
	default:
		return fmt.Errorf("winner %s is not a participant of match %s", winner.ID, completed.ID)
	}

	next, err := st.GetMatch(tournamentID, *completed.NextMatchID)
	if err != nil {
		return fmt.Errorf("loading next match %s: %w", *completed.NextMatchID, err)
	}

	var upd store.MatchUpdate
	switch {
	case next.Player1.Open() || next.Player1.ID == winner.ID:
		upd.Player1 = &winner
	case next.Player2.Open() || next.Player2.ID == winner.ID:
		upd.Player2 = &winner
	default:
		log.Warn("Next match has no free slot for winner",
			"match", completed.ID, "next", next.ID, "winner", winner.ID)
		return ErrSlotConflict
	}

	if err := st.UpdateMatch(tournamentID, next.ID, upd); err != nil {
		return fmt.Errorf("writing winner into match %s: %w", next.ID, err)
	}
	log.Info("Advanced winner", "winner", winner.Name, "from", completed.ID, "to", next.ID)
	return nil
}
