package scoring

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/racketclub/tourney/internal/tourney"
)

// maxHistory bounds the undo stack. Older point entries fall off the end
// and can no longer be undone.
const maxHistory = 5

var (
	// ErrMatchCompleted is returned for any score mutation after a match
	// has been sealed.
	ErrMatchCompleted = errors.New("match is already completed")
	// ErrNegativeScore rejects a correction that would push a score below
	// zero. Nothing is changed and no store write should follow.
	ErrNegativeScore = errors.New("score cannot go below zero")
	// ErrInvalidDelta rejects point updates other than +1 or -1.
	ErrInvalidDelta = errors.New("point delta must be +1 or -1")
	// ErrInvalidSide rejects point updates that name neither slot.
	ErrInvalidSide = errors.New("side must be p1 or p2")
	// ErrUnknownWinner is returned when a commit names a player that is
	// not in the match.
	ErrUnknownWinner = errors.New("winner is not a participant of this match")
)

// pointEvent records one applied point delta so it can be undone in place.
type pointEvent struct {
	gameIndex int
	side      tourney.Side
	delta     int
}

// Engine drives the live scoring of a single match. It mutates the match
// in memory and leaves persisting the result to the caller. The undo
// history lives in the engine, so it is scoped to one scoring session.
type Engine struct {
	rules   tourney.ScoringRules
	history []pointEvent
}

// NewEngine creates a scoring engine for the given rules.
func NewEngine(rules tourney.ScoringRules) *Engine {
	return &Engine{rules: rules}
}

// activeGameIndex finds the game points are applied to: the first unsealed
// game, or the last game when every game is sealed.
func activeGameIndex(m *tourney.Match) int {
	for i, g := range m.Games {
		if g.Winner == tourney.SideNone {
			return i
		}
	}
	return len(m.Games) - 1
}

// ApplyPoint applies a +1 or -1 point delta for one side to the active
// game. Only +1 can finish a game; -1 is strictly a score correction and
// never triggers win evaluation. When a game win clinches the match the
// match moves to pending completion and waits for an explicit Commit;
// otherwise a fresh game is appended and play continues.
func (e *Engine) ApplyPoint(m *tourney.Match, side tourney.Side, delta int) error {
	if m.Status == tourney.MatchCompleted || m.Status == tourney.MatchWalkover {
		return ErrMatchCompleted
	}
	if delta != 1 && delta != -1 {
		return ErrInvalidDelta
	}
	if side != tourney.SideP1 && side != tourney.SideP2 {
		return ErrInvalidSide
	}
	if len(m.Games) == 0 {
		m.Games = append(m.Games, tourney.ScoreGame{Number: 1})
	}

	idx := activeGameIndex(m)
	game := &m.Games[idx]

	score := &game.P1Score
	if side == tourney.SideP2 {
		score = &game.P2Score
	}
	if *score+delta < 0 {
		return ErrNegativeScore
	}
	*score += delta

	e.push(pointEvent{gameIndex: idx, side: side, delta: delta})

	if m.Status == tourney.MatchScheduled {
		m.Status = tourney.MatchLive
	}
	if delta < 0 || game.Winner != tourney.SideNone {
		return nil
	}

	winner := GameWinner(game.P1Score, game.P2Score, e.rules)
	if winner == tourney.SideNone {
		return nil
	}
	game.Winner = winner
	log.Debug("Game sealed", "match", m.ID, "game", game.Number, "winner", winner)

	if clinched := MatchWinner(m, e.rules); clinched != tourney.SideNone {
		winnerID := m.Player1.ID
		if clinched == tourney.SideP2 {
			winnerID = m.Player2.ID
		}
		// Clinched, but not sealed: the score-keeper still has to confirm
		// the result before the match is completed.
		m.Status = tourney.MatchPendingCompletion
		m.PendingWinnerID = &winnerID
		return nil
	}

	m.Games = append(m.Games, tourney.ScoreGame{Number: len(m.Games) + 1})
	return nil
}

// Undo reverts the most recent point delta at its recorded game and side
// and pops it from the history. It reports whether anything was undone.
// A sealed game stays sealed and a pending match winner stays pending;
// undo only moves the raw score back.
func (e *Engine) Undo(m *tourney.Match) bool {
	if len(e.history) == 0 {
		return false
	}
	ev := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]

	if ev.gameIndex < 0 || ev.gameIndex >= len(m.Games) {
		return false
	}
	game := &m.Games[ev.gameIndex]
	score := &game.P1Score
	if ev.side == tourney.SideP2 {
		score = &game.P2Score
	}
	*score -= ev.delta
	if *score < 0 {
		*score = 0
	}
	return true
}

// HistoryLen reports how many point entries can currently be undone.
func (e *Engine) HistoryLen() int {
	return len(e.history)
}

// Commit seals the match with the confirmed winner. This is the second
// half of the two-phase completion: callers confirm the pending winner (or
// override it) and only then does the match become terminal. Callers are
// responsible for advancing the winner into the linked next match.
func (e *Engine) Commit(m *tourney.Match, winnerID string) error {
	if m.Status == tourney.MatchCompleted {
		return ErrMatchCompleted
	}
	if m.SlotFor(winnerID) == tourney.SideNone {
		return ErrUnknownWinner
	}
	m.Status = tourney.MatchCompleted
	m.WinnerID = &winnerID
	m.PendingWinnerID = nil
	e.history = nil
	return nil
}

func (e *Engine) push(ev pointEvent) {
	e.history = append(e.history, ev)
	if len(e.history) > maxHistory {
		e.history = e.history[len(e.history)-maxHistory:]
	}
}
