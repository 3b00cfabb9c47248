package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub. Viewers
// subscribed to a tournament receive these as store changes happen.
type EventType string

const (
	EventFixturesGenerated EventType = "fixtures-generated"
	EventBracketGenerated  EventType = "bracket-generated"
	EventMatchUpdated      EventType = "match-updated"
	EventMatchCompleted    EventType = "match-completed"
)

// MatchEvent is the payload published for match-level events.
type MatchEvent struct {
	TournamentID string `msgpack:"tournament_id"`
	MatchID      string `msgpack:"match_id"`
	Category     string `msgpack:"category"`
	Round        string `msgpack:"round"`
	WinnerID     string `msgpack:"winner_id,omitempty"`
}

// GenerationEvent is the payload published when fixtures or brackets are
// (re)generated for a tournament.
type GenerationEvent struct {
	TournamentID string   `msgpack:"tournament_id"`
	Created      int      `msgpack:"created"`
	Skipped      []string `msgpack:"skipped,omitempty"`
}
