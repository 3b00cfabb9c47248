package fixtures

import (
	"sync"

	"github.com/racketclub/tourney/internal/metrics"
	"github.com/racketclub/tourney/internal/pubsub"
	"github.com/racketclub/tourney/internal/scoring"
)

// Service runs the organizer-facing operations: drawing the group stage,
// building the knockout bracket and driving live match scoring. It owns no
// state beyond per-tournament locks and per-match scoring sessions; all
// documents live in the store.
type Service struct {
	store   Store
	pubsub  pubsub.PubSubClient
	metrics metrics.Metrics

	// Generation and completion are serialized per tournament, not
	// globally: two organizers racing on the same tournament are queued,
	// independent tournaments are not.
	mu    sync.Mutex
	locks map[string]*sync.Mutex

	// engines holds the live scoring session (undo history) per match.
	engines map[string]*scoring.Engine
}

// CategorySkip names a category that generation passed over and why.
type CategorySkip struct {
	Category string
	Reason   string
}

// GenerationResult reports what a generation run created. When a store
// write fails partway through, the result still reflects everything
// created before the failure; there is no rollback, and regenerating is
// the recovery path.
type GenerationResult struct {
	Created int
	Skipped []CategorySkip
}
