package store

import (
	"fmt"
	"sync"

	"github.com/racketclub/tourney/internal/tourney"
)

// MockStore is a mock implementation of the TournamentStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu      sync.Mutex
	counter int

	// Spies for method calls
	UpsertTournamentFunc       func(t *tourney.Tournament) error
	GetTournamentFunc          func(id string) (*tourney.Tournament, error)
	UpdateTournamentStatusFunc func(id string, status tourney.TournamentStatus) error
	UpsertPlayersFunc          func(tournamentID string, players []tourney.Player) error
	DeletePlayerFunc           func(tournamentID, playerID string) error
	GetRosterFunc              func(tournamentID, category string) ([]tourney.Player, error)
	CreateMatchFunc            func(tournamentID string, cm tourney.CreateMatch) (string, error)
	CreateMatchesFunc          func(tournamentID string, cms []tourney.CreateMatch) ([]string, error)
	GetMatchFunc               func(tournamentID, matchID string) (*tourney.Match, error)
	ListMatchesFunc            func(tournamentID string, filter MatchFilter) ([]*tourney.Match, error)
	UpdateMatchFunc            func(tournamentID, matchID string, upd MatchUpdate) error
	DeleteMatchesFunc          func(tournamentID string, ids []string) error

	// Call records
	UpdateTournamentStatusCalls []struct {
		ID     string
		Status tourney.TournamentStatus
	}
	CreateMatchesCalls [][]tourney.CreateMatch
	UpdateMatchCalls   []UpdateMatchCall
	DeleteMatchesCalls [][]string
}

// UpdateMatchCall holds the arguments for a call to UpdateMatch.
type UpdateMatchCall struct {
	TournamentID string
	MatchID      string
	Update       MatchUpdate
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertTournament(t *tourney.Tournament) error {
	if m.UpsertTournamentFunc != nil {
		return m.UpsertTournamentFunc(t)
	}
	return nil
}

func (m *MockStore) GetTournament(id string) (*tourney.Tournament, error) {
	if m.GetTournamentFunc != nil {
		return m.GetTournamentFunc(id)
	}
	return nil, ErrNotFound
}

func (m *MockStore) UpdateTournamentStatus(id string, status tourney.TournamentStatus) error {
	m.mu.Lock()
	m.UpdateTournamentStatusCalls = append(m.UpdateTournamentStatusCalls, struct {
		ID     string
		Status tourney.TournamentStatus
	}{ID: id, Status: status})
	m.mu.Unlock()
	if m.UpdateTournamentStatusFunc != nil {
		return m.UpdateTournamentStatusFunc(id, status)
	}
	return nil
}

func (m *MockStore) UpsertPlayers(tournamentID string, players []tourney.Player) error {
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(tournamentID, players)
	}
	return nil
}

func (m *MockStore) DeletePlayer(tournamentID, playerID string) error {
	if m.DeletePlayerFunc != nil {
		return m.DeletePlayerFunc(tournamentID, playerID)
	}
	return nil
}

func (m *MockStore) GetRoster(tournamentID, category string) ([]tourney.Player, error) {
	if m.GetRosterFunc != nil {
		return m.GetRosterFunc(tournamentID, category)
	}
	return nil, nil
}

func (m *MockStore) CreateMatch(tournamentID string, cm tourney.CreateMatch) (string, error) {
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(tournamentID, cm)
	}
	ids, err := m.CreateMatches(tournamentID, []tourney.CreateMatch{cm})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

func (m *MockStore) CreateMatches(tournamentID string, cms []tourney.CreateMatch) ([]string, error) {
	m.mu.Lock()
	m.CreateMatchesCalls = append(m.CreateMatchesCalls, cms)
	m.mu.Unlock()
	if m.CreateMatchesFunc != nil {
		return m.CreateMatchesFunc(tournamentID, cms)
	}
	m.mu.Lock()
	ids := make([]string, len(cms))
	for i := range cms {
		m.counter++
		ids[i] = fmt.Sprintf("match-%d", m.counter)
	}
	m.mu.Unlock()
	return ids, nil
}

func (m *MockStore) GetMatch(tournamentID, matchID string) (*tourney.Match, error) {
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(tournamentID, matchID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListMatches(tournamentID string, filter MatchFilter) ([]*tourney.Match, error) {
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc(tournamentID, filter)
	}
	return nil, nil
}

func (m *MockStore) UpdateMatch(tournamentID, matchID string, upd MatchUpdate) error {
	m.mu.Lock()
	m.UpdateMatchCalls = append(m.UpdateMatchCalls, UpdateMatchCall{
		TournamentID: tournamentID,
		MatchID:      matchID,
		Update:       upd,
	})
	m.mu.Unlock()
	if m.UpdateMatchFunc != nil {
		return m.UpdateMatchFunc(tournamentID, matchID, upd)
	}
	return nil
}

func (m *MockStore) DeleteMatches(tournamentID string, ids []string) error {
	m.mu.Lock()
	m.DeleteMatchesCalls = append(m.DeleteMatchesCalls, ids)
	m.mu.Unlock()
	if m.DeleteMatchesFunc != nil {
		return m.DeleteMatchesFunc(tournamentID, ids)
	}
	return nil
}
