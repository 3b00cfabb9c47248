package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/racketclub/tourney/internal/tourney"
)

// New creates a new TournamentStore backed by the given database.
func New(db *sql.DB) TournamentStore {
	return &store{db: db}
}

func (s *store) UpsertTournament(t *tourney.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = tourney.TournamentDraft
	}
	categoriesJSON, err := json.Marshal(t.Categories)
	if err != nil {
		return err
	}
	rulesJSON, err := json.Marshal(t.Rules)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO tournaments (id, name, slug, categories_json, rules_json, group_count, knockout_size, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			slug = excluded.slug,
			categories_json = excluded.categories_json,
			rules_json = excluded.rules_json,
			group_count = excluded.group_count,
			knockout_size = excluded.knockout_size;
	`, t.ID, t.Name, t.Slug, categoriesJSON, rulesJSON, t.GroupCount, t.KnockoutSize, t.Status)
	return err
}

func (s *store) GetTournament(id string) (*tourney.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t tourney.Tournament
	var categoriesJSON, rulesJSON string
	err := s.db.QueryRow(`
		SELECT id, name, slug, categories_json, rules_json, group_count, knockout_size, status
		FROM tournaments WHERE id = ?
	`, id).Scan(&t.ID, &t.Name, &t.Slug, &categoriesJSON, &rulesJSON, &t.GroupCount, &t.KnockoutSize, &t.Status)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(categoriesJSON), &t.Categories); err != nil {
		return nil, fmt.Errorf("decoding categories for tournament %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(rulesJSON), &t.Rules); err != nil {
		return nil, fmt.Errorf("decoding rules for tournament %s: %w", id, err)
	}
	return &t, nil
}

// UpdateTournamentStatus is a partial update: only the status field moves.
func (s *store) UpdateTournamentStatus(id string, status tourney.TournamentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE tournaments SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *store) UpsertPlayers(tournamentID string, players []tourney.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO players (tournament_id, id, name, gender, categories_json, partner_id, seeded, group_label)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(tournament_id, id) DO UPDATE SET
			name = excluded.name,
			gender = excluded.gender,
			categories_json = excluded.categories_json,
			partner_id = excluded.partner_id,
			seeded = excluded.seeded,
			group_label = excluded.group_label;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i := range players {
		p := &players[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		categoriesJSON, err := json.Marshal(p.Categories)
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := stmt.Exec(tournamentID, p.ID, p.Name, p.Gender, categoriesJSON, p.PartnerID, p.Seeded, p.Group); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *store) DeletePlayer(tournamentID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	// The partner link is symmetric, so deleting one side must clear the
	// reference on the other.
	if _, err := tx.Exec(`
		UPDATE players SET partner_id = NULL
		WHERE tournament_id = ? AND partner_id = ?
	`, tournamentID, playerID); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`
		DELETE FROM players WHERE tournament_id = ? AND id = ?
	`, tournamentID, playerID); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *store) GetRoster(tournamentID, category string) ([]tourney.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// rowid preserves insertion order, which is the registration order the
	// group draw follows.
	rows, err := s.db.Query(`
		SELECT id, name, gender, categories_json, partner_id, seeded, group_label
		FROM players WHERE tournament_id = ? ORDER BY rowid
	`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []tourney.Player
	for rows.Next() {
		var p tourney.Player
		var categoriesJSON string
		if err := rows.Scan(&p.ID, &p.Name, &p.Gender, &categoriesJSON, &p.PartnerID, &p.Seeded, &p.Group); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(categoriesJSON), &p.Categories); err != nil {
			return nil, fmt.Errorf("decoding categories for player %s: %w", p.ID, err)
		}
		if category == "" || p.InCategory(category) {
			roster = append(roster, p)
		}
	}
	return roster, rows.Err()
}

func (s *store) CreateMatch(tournamentID string, cm tourney.CreateMatch) (string, error) {
	ids, err := s.CreateMatches(tournamentID, []tourney.CreateMatch{cm})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

func (s *store) CreateMatches(tournamentID string, cms []tourney.CreateMatch) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO matches (id, tournament_id, category, round, group_id, p1_id, p1_name, p2_id, p2_name, status, games_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	defer stmt.Close()

	ids := make([]string, 0, len(cms))
	for _, cm := range cms {
		id := uuid.NewString()
		status := cm.Status
		if status == "" {
			status = tourney.MatchScheduled
		}
		gamesJSON, err := json.Marshal(cm.Games)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if _, err := stmt.Exec(id, tournamentID, cm.Category, cm.Round, cm.GroupID,
			cm.Player1.ID, cm.Player1.Name, cm.Player2.ID, cm.Player2.Name, status, gamesJSON); err != nil {
			tx.Rollback()
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *store) GetMatch(tournamentID, matchID string) (*tourney.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getMatch(tournamentID, matchID)
}

func (s *store) getMatch(tournamentID, matchID string) (*tourney.Match, error) {
	row := s.db.QueryRow(`
		SELECT id, category, round, group_id, p1_id, p1_name, p2_id, p2_name, status, games_json, winner_id, pending_winner_id, next_match_id
		FROM matches WHERE tournament_id = ? AND id = ?
	`, tournamentID, matchID)
	m, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return m, err
}

func (s *store) ListMatches(tournamentID string, filter MatchFilter) ([]*tourney.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, category, round, group_id, p1_id, p1_name, p2_id, p2_name, status, games_json, winner_id, pending_winner_id, next_match_id
		FROM matches WHERE tournament_id = ?`
	args := []any{tournamentID}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Round != "" {
		query += " AND round = ?"
		args = append(args, filter.Round)
	}
	if filter.GroupID != "" {
		query += " AND group_id = ?"
		args = append(args, filter.GroupID)
	}
	query += " ORDER BY rowid"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*tourney.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *store) UpdateMatch(tournamentID, matchID string, upd MatchUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.getMatch(tournamentID, matchID)
	if err != nil {
		return err
	}

	var sets []string
	var args []any
	if upd.Player1 != nil {
		sets = append(sets, "p1_id = ?", "p1_name = ?")
		args = append(args, upd.Player1.ID, upd.Player1.Name)
	}
	if upd.Player2 != nil {
		sets = append(sets, "p2_id = ?", "p2_name = ?")
		args = append(args, upd.Player2.ID, upd.Player2.Name)
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *upd.Status)
	}
	if upd.Games != nil {
		gamesJSON, err := json.Marshal(upd.Games)
		if err != nil {
			return err
		}
		sets = append(sets, "games_json = ?")
		args = append(args, string(gamesJSON))
	}
	if upd.WinnerID != nil {
		sets = append(sets, "winner_id = ?")
		args = append(args, *upd.WinnerID)
	}
	if upd.PendingWinnerID != nil {
		sets = append(sets, "pending_winner_id = ?")
		args = append(args, *upd.PendingWinnerID)
	} else if upd.ClearPendingWinner {
		sets = append(sets, "pending_winner_id = NULL")
	}
	if upd.NextMatchID != nil {
		if current.NextMatchID != nil && *current.NextMatchID != *upd.NextMatchID {
			return ErrNextMatchImmutable
		}
		sets = append(sets, "next_match_id = ?")
		args = append(args, *upd.NextMatchID)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, tournamentID, matchID)
	_, err = s.db.Exec(
		"UPDATE matches SET "+strings.Join(sets, ", ")+" WHERE tournament_id = ? AND id = ?",
		args...,
	)
	return err
}

func (s *store) DeleteMatches(tournamentID string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for start := 0; start < len(ids); start += DeleteBatchSize {
		end := start + DeleteBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		placeholders := strings.Repeat("?,", len(batch))
		placeholders = placeholders[:len(placeholders)-1]
		args := make([]any, 0, len(batch)+1)
		args = append(args, tournamentID)
		for _, id := range batch {
			args = append(args, id)
		}
		if _, err := s.db.Exec(
			"DELETE FROM matches WHERE tournament_id = ? AND id IN ("+placeholders+")",
			args...,
		); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(r rowScanner) (*tourney.Match, error) {
	var m tourney.Match
	var gamesJSON string
	err := r.Scan(&m.ID, &m.Category, &m.Round, &m.GroupID,
		&m.Player1.ID, &m.Player1.Name, &m.Player2.ID, &m.Player2.Name,
		&m.Status, &gamesJSON, &m.WinnerID, &m.PendingWinnerID, &m.NextMatchID)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(gamesJSON), &m.Games); err != nil {
		return nil, fmt.Errorf("decoding games for match %s: %w", m.ID, err)
	}
	return &m, nil
}
