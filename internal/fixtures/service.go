package fixtures

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/racketclub/tourney/internal/bracket"
	"github.com/racketclub/tourney/internal/metrics"
	"github.com/racketclub/tourney/internal/pubsub"
	"github.com/racketclub/tourney/internal/qualify"
	"github.com/racketclub/tourney/internal/schedule"
	"github.com/racketclub/tourney/internal/scoring"
	"github.com/racketclub/tourney/internal/seeding"
	"github.com/racketclub/tourney/internal/store"
	"github.com/racketclub/tourney/internal/tourney"
)

// ErrNoMatchesCreated means generation produced nothing for any category.
// Individual category skips are reported in the result, not as errors; the
// operation only fails when the whole tournament came up empty.
var ErrNoMatchesCreated = errors.New("no matches were created for any category")

// New creates a new fixtures Service.
func New(st Store, ps pubsub.PubSubClient, m metrics.Metrics) *Service {
	return &Service{
		store:   st,
		pubsub:  ps,
		metrics: m,
		locks:   make(map[string]*sync.Mutex),
		engines: make(map[string]*scoring.Engine),
	}
}

// GenerateGroupFixtures draws the group stage for every category of the
// tournament: the roster is split into groups in registration order and a
// full round-robin is created per group. Existing group fixtures for a
// category are deleted first, so re-running regenerates from scratch. On
// success the tournament moves to the group stage.
func (s *Service) GenerateGroupFixtures(t *tourney.Tournament, groupSize int) (*GenerationResult, error) {
	unlock := s.lock(t.ID)
	defer unlock()

	if groupSize <= 0 {
		groupSize = schedule.DefaultGroupSize
	}
	start := time.Now()
	result := &GenerationResult{}

	for _, category := range t.Categories {
		roster, err := s.store.GetRoster(t.ID, category)
		if err != nil {
			return result, fmt.Errorf("loading roster for %s: %w", category, err)
		}
		if len(roster) < 2 {
			s.skip(result, category, fmt.Sprintf("only %d players registered", len(roster)))
			continue
		}

		if err := s.deleteExisting(t.ID, category, true); err != nil {
			return result, fmt.Errorf("clearing old fixtures for %s: %w", category, err)
		}

		slots := make([]tourney.Slot, 0, len(roster))
		for _, p := range roster {
			slots = append(slots, tourney.Slot{ID: p.ID, Name: p.Name})
		}
		cms := schedule.GroupFixtures(category, slots, groupSize)
		ids, err := s.store.CreateMatches(t.ID, cms)
		result.Created += len(ids)
		if err != nil {
			return result, fmt.Errorf("creating fixtures for %s: %w", category, err)
		}
		log.Info("Generated group fixtures", "tournament", t.ID, "category", category, "matches", len(ids))
	}

	if result.Created == 0 {
		return result, ErrNoMatchesCreated
	}

	s.advanceStatus(t, tourney.TournamentGroupStage)
	s.metrics.AddGroupFixtures(result.Created)
	s.metrics.ObserveGenerationDuration(time.Since(start).Seconds())
	s.publishGeneration(pubsub.EventFixturesGenerated, t.ID, result)
	return result, nil
}

// GenerateKnockoutBracket selects qualifiers per category, seeds them into
// the smallest bracket that fits, creates every round and links each match
// to the one its winner feeds into. Rounds are created in playing order
// because a match can only be linked once its target exists; generation is
// therefore sequential within a category, while categories are independent.
func (s *Service) GenerateKnockoutBracket(t *tourney.Tournament) (*GenerationResult, error) {
	unlock := s.lock(t.ID)
	defer unlock()

	start := time.Now()
	result := &GenerationResult{}

	for _, category := range t.Categories {
		created, err := s.generateCategoryBracket(t, category, result)
		result.Created += created
		if err != nil {
			return result, err
		}
	}

	if result.Created == 0 {
		return result, ErrNoMatchesCreated
	}

	s.advanceStatus(t, tourney.TournamentKnockout)
	s.metrics.AddBracketMatches(result.Created)
	s.metrics.ObserveGenerationDuration(time.Since(start).Seconds())
	s.publishGeneration(pubsub.EventBracketGenerated, t.ID, result)
	return result, nil
}

func (s *Service) generateCategoryBracket(t *tourney.Tournament, category string, result *GenerationResult) (int, error) {
	roster, err := s.store.GetRoster(t.ID, category)
	if err != nil {
		return 0, fmt.Errorf("loading roster for %s: %w", category, err)
	}
	matches, err := s.store.ListMatches(t.ID, store.MatchFilter{Category: category})
	if err != nil {
		return 0, fmt.Errorf("loading matches for %s: %w", category, err)
	}

	qualifiers := qualify.Select(roster, matches, category, t.KnockoutSize)
	if len(qualifiers) < 2 {
		s.skip(result, category, fmt.Sprintf("only %d qualifiers", len(qualifiers)))
		return 0, nil
	}

	if err := s.deleteExisting(t.ID, category, false); err != nil {
		return 0, fmt.Errorf("clearing old bracket for %s: %w", category, err)
	}

	size := seeding.BracketSize(len(qualifiers), t.KnockoutSize)
	seeded := seeding.Arrange(qualifiers, size)
	plans := bracket.Plan(category, seeded)

	created := 0
	roundIDs := make([][]string, 0, len(plans))
	for _, plan := range plans {
		ids, err := s.store.CreateMatches(t.ID, plan.Matches)
		created += len(ids)
		if err != nil {
			return created, fmt.Errorf("creating %s round for %s: %w", plan.Round, category, err)
		}
		roundIDs = append(roundIDs, ids)
	}

	// Link pass: every match feeds the winner into round r+1 match i/2.
	for r := 0; r+1 < len(roundIDs); r++ {
		for i, id := range roundIDs[r] {
			next := roundIDs[r+1][bracket.LinkIndex(i)]
			if err := s.store.UpdateMatch(t.ID, id, store.MatchUpdate{NextMatchID: &next}); err != nil {
				return created, fmt.Errorf("linking match %s: %w", id, err)
			}
		}
	}

	log.Info("Generated knockout bracket", "tournament", t.ID, "category", category,
		"size", size, "qualifiers", len(qualifiers), "matches", created)
	return created, nil
}

// ScorePoint applies a single +1/-1 point to a live match and persists the
// outcome. Invalid updates are rejected before any store write.
func (s *Service) ScorePoint(tournamentID, matchID string, side tourney.Side, delta int) (*tourney.Match, error) {
	unlock := s.lock(tournamentID)
	defer unlock()

	m, engine, err := s.session(tournamentID, matchID)
	if err != nil {
		return nil, err
	}
	if err := engine.ApplyPoint(m, side, delta); err != nil {
		return nil, err
	}
	if err := s.persistScore(tournamentID, m); err != nil {
		return nil, err
	}
	s.metrics.IncPointsScored()
	s.publishMatch(pubsub.EventMatchUpdated, tournamentID, m)
	return m, nil
}

// UndoPoint reverts the most recent point of the match's scoring session.
// It reports false when there is nothing to undo.
func (s *Service) UndoPoint(tournamentID, matchID string) (bool, error) {
	unlock := s.lock(tournamentID)
	defer unlock()

	m, engine, err := s.session(tournamentID, matchID)
	if err != nil {
		return false, err
	}
	if !engine.Undo(m) {
		return false, nil
	}
	if err := s.persistScore(tournamentID, m); err != nil {
		return true, err
	}
	s.publishMatch(pubsub.EventMatchUpdated, tournamentID, m)
	return true, nil
}

// CompleteMatch seals a match with the confirmed winner and advances the
// winner into the linked next-round match. This is the explicit second
// phase after the engine marked the match pending; nothing completes a
// match without this call.
func (s *Service) CompleteMatch(tournamentID, matchID, winnerID string) error {
	unlock := s.lock(tournamentID)
	defer unlock()

	m, engine, err := s.session(tournamentID, matchID)
	if err != nil {
		return err
	}
	if err := engine.Commit(m, winnerID); err != nil {
		return err
	}

	status := m.Status
	upd := store.MatchUpdate{
		Status:             &status,
		Games:              m.Games,
		WinnerID:           m.WinnerID,
		ClearPendingWinner: true,
	}
	if err := s.store.UpdateMatch(tournamentID, matchID, upd); err != nil {
		return fmt.Errorf("sealing match %s: %w", matchID, err)
	}
	s.mu.Lock()
	delete(s.engines, matchID)
	s.mu.Unlock()

	if err := bracket.Advance(s.store, tournamentID, m); err != nil {
		if errors.Is(err, bracket.ErrSlotConflict) {
			s.metrics.IncSlotConflicts()
		}
		return err
	}

	s.publishMatch(pubsub.EventMatchCompleted, tournamentID, m)
	return nil
}

// session loads the match and the scoring engine tied to it, creating the
// engine from the tournament's rules on first use.
func (s *Service) session(tournamentID, matchID string) (*tourney.Match, *scoring.Engine, error) {
	m, err := s.store.GetMatch(tournamentID, matchID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading match %s: %w", matchID, err)
	}
	s.mu.Lock()
	engine, ok := s.engines[matchID]
	s.mu.Unlock()
	if !ok {
		t, err := s.store.GetTournament(tournamentID)
		if err != nil {
			return nil, nil, fmt.Errorf("loading tournament %s: %w", tournamentID, err)
		}
		engine = scoring.NewEngine(t.Rules)
		s.mu.Lock()
		s.engines[matchID] = engine
		s.mu.Unlock()
	}
	return m, engine, nil
}

func (s *Service) persistScore(tournamentID string, m *tourney.Match) error {
	status := m.Status
	upd := store.MatchUpdate{
		Status:          &status,
		Games:           m.Games,
		PendingWinnerID: m.PendingWinnerID,
	}
	if m.PendingWinnerID == nil {
		upd.ClearPendingWinner = true
	}
	if err := s.store.UpdateMatch(tournamentID, m.ID, upd); err != nil {
		return fmt.Errorf("persisting score for match %s: %w", m.ID, err)
	}
	return nil
}

// deleteExisting clears a category's fixtures before regeneration: group
// fixtures when group is true, every knockout round otherwise.
func (s *Service) deleteExisting(tournamentID, category string, group bool) error {
	matches, err := s.store.ListMatches(tournamentID, store.MatchFilter{Category: category})
	if err != nil {
		return err
	}
	var ids []string
	for _, m := range matches {
		if (m.Round == tourney.RoundGroup) == group {
			ids = append(ids, m.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	log.Info("Deleting existing matches before regeneration",
		"tournament", tournamentID, "category", category, "count", len(ids))
	return s.store.DeleteMatches(tournamentID, ids)
}

func (s *Service) advanceStatus(t *tourney.Tournament, to tourney.TournamentStatus) {
	if !t.Status.CanTransition(to) {
		return
	}
	if err := s.store.UpdateTournamentStatus(t.ID, to); err != nil {
		log.Error("Failed to update tournament status", "tournament", t.ID, "status", to, "error", err)
		return
	}
	t.Status = to
}

func (s *Service) skip(result *GenerationResult, category, reason string) {
	log.Warn("Skipping category", "category", category, "reason", reason)
	result.Skipped = append(result.Skipped, CategorySkip{Category: category, Reason: reason})
	s.metrics.IncCategorySkipped()
}

func (s *Service) publishGeneration(event pubsub.EventType, tournamentID string, result *GenerationResult) {
	skipped := make([]string, 0, len(result.Skipped))
	for _, sk := range result.Skipped {
		skipped = append(skipped, sk.Category)
	}
	if err := s.pubsub.SendMessage(event, pubsub.GenerationEvent{
		TournamentID: tournamentID,
		Created:      result.Created,
		Skipped:      skipped,
	}); err != nil {
		log.Error("Failed to publish generation event", "event", event, "error", err)
	}
}

func (s *Service) publishMatch(event pubsub.EventType, tournamentID string, m *tourney.Match) {
	payload := pubsub.MatchEvent{
		TournamentID: tournamentID,
		MatchID:      m.ID,
		Category:     m.Category,
		Round:        string(m.Round),
	}
	if m.WinnerID != nil {
		payload.WinnerID = *m.WinnerID
	}
	if err := s.pubsub.SendMessage(event, payload); err != nil {
		log.Error("Failed to publish match event", "event", event, "error", err)
	}
}

// lock serializes operations per tournament and returns the unlock func.
func (s *Service) lock(tournamentID string) func() {
	s.mu.Lock()
	l, ok := s.locks[tournamentID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[tournamentID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}
