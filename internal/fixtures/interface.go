package fixtures

import (
	"github.com/racketclub/tourney/internal/store"
	"github.com/racketclub/tourney/internal/tourney"
)

// Store defines the database operations required by the fixtures service.
type Store interface {
	GetTournament(id string) (*tourney.Tournament, error)
	UpdateTournamentStatus(id string, status tourney.TournamentStatus) error
	GetRoster(tournamentID, category string) ([]tourney.Player, error)
	CreateMatches(tournamentID string, cms []tourney.CreateMatch) ([]string, error)
	GetMatch(tournamentID, matchID string) (*tourney.Match, error)
	ListMatches(tournamentID string, filter store.MatchFilter) ([]*tourney.Match, error)
	UpdateMatch(tournamentID, matchID string, upd store.MatchUpdate) error
	DeleteMatches(tournamentID string, ids []string) error
}
