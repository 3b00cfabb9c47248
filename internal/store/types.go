package store

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/racketclub/tourney/internal/tourney"
)

// DeleteBatchSize caps how many ids a single delete statement may carry,
// mirroring the batch limit of the document stores this interface fronts.
const DeleteBatchSize = 500

var (
	// ErrNotFound is returned for point reads of missing documents.
	ErrNotFound = errors.New("requested record not found")
	// ErrNextMatchImmutable is returned when an update tries to repoint a
	// match's next-match link after it has been set.
	ErrNextMatchImmutable = errors.New("next match link cannot be changed once set")
)

// store handles all database operations for tournaments.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// MatchFilter narrows ListMatches. Zero values match everything.
type MatchFilter struct {
	Category string
	Round    tourney.Round
	GroupID  string
}

// MatchUpdate is a partial update of a match document. Nil fields are left
// untouched; Games replaces the whole game list when non-nil.
type MatchUpdate struct {
	Player1            *tourney.Slot
	Player2            *tourney.Slot
	Status             *tourney.MatchStatus
	Games              []tourney.ScoreGame
	WinnerID           *string
	PendingWinnerID    *string
	ClearPendingWinner bool
	// NextMatchID is write-once: updating an already linked match to a
	// different target fails with ErrNextMatchImmutable.
	NextMatchID *string
}
