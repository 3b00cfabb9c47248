package store

import "github.com/racketclub/tourney/internal/tourney"

// TournamentStore is the persistence boundary of the core. It models a
// per-tournament document store with point reads, point writes, simple
// equality filters and batched deletes; anything richer (transactions,
// subscriptions) deliberately stays outside.
type TournamentStore interface {
	UpsertTournament(t *tourney.Tournament) error
	GetTournament(id string) (*tourney.Tournament, error)
	UpdateTournamentStatus(id string, status tourney.TournamentStatus) error

	UpsertPlayers(tournamentID string, players []tourney.Player) error
	// DeletePlayer removes a player and clears any partner link pointing
	// back at them, keeping partner references symmetric.
	DeletePlayer(tournamentID, playerID string) error
	// GetRoster returns the players of a tournament in registration order,
	// optionally filtered to one category. Registration order is what the
	// group draw follows.
	GetRoster(tournamentID, category string) ([]tourney.Player, error)

	// CreateMatch persists a new match and returns the assigned id.
	CreateMatch(tournamentID string, cm tourney.CreateMatch) (string, error)
	CreateMatches(tournamentID string, cms []tourney.CreateMatch) ([]string, error)
	GetMatch(tournamentID, matchID string) (*tourney.Match, error)
	ListMatches(tournamentID string, filter MatchFilter) ([]*tourney.Match, error)
	UpdateMatch(tournamentID, matchID string, upd MatchUpdate) error
	// DeleteMatches removes the given matches, issuing one statement per
	// batch of at most 500 ids.
	DeleteMatches(tournamentID string, ids []string) error
}
