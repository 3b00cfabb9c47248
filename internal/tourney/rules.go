package tourney

import "fmt"

// ScoringRules is the tournament-level scoring configuration. It is fixed at
// tournament creation and shared by every match.
type ScoringRules struct {
	BestOf        int  `json:"best_of"`
	PointsPerGame int  `json:"points_per_game"`
	DeuceEnabled  bool `json:"deuce_enabled"`
	// DeuceAt is informational only: the score at which deuce begins.
	DeuceAt int `json:"deuce_at"`
	ClearBy int `json:"clear_by"`
	// MaxPoints is the hard cap: once a player reaches it the game ends
	// regardless of margin.
	MaxPoints int `json:"max_points"`
}

// DefaultRules returns the classic 21-point table tennis configuration.
func DefaultRules() ScoringRules {
	return ScoringRules{
		BestOf:        3,
		PointsPerGame: 21,
		DeuceEnabled:  true,
		DeuceAt:       20,
		ClearBy:       2,
		MaxPoints:     30,
	}
}

// GamesToWin returns how many games a player must take to win the match.
func (r ScoringRules) GamesToWin() int {
	return r.BestOf/2 + 1
}

// Validate checks the rule values against their allowed domains.
func (r ScoringRules) Validate() error {
	switch r.BestOf {
	case 1, 3:
	default:
		return fmt.Errorf("best_of must be 1 or 3, got %d", r.BestOf)
	}
	switch r.PointsPerGame {
	case 11, 15, 21:
	default:
		return fmt.Errorf("points_per_game must be 11, 15 or 21, got %d", r.PointsPerGame)
	}
	if r.ClearBy < 1 {
		return fmt.Errorf("clear_by must be at least 1, got %d", r.ClearBy)
	}
	if r.MaxPoints < r.PointsPerGame {
		return fmt.Errorf("max_points %d must not be below points_per_game %d", r.MaxPoints, r.PointsPerGame)
	}
	return nil
}

// Validate checks the tournament configuration.
func (t Tournament) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("tournament name is required")
	}
	if t.GroupCount < 1 {
		return fmt.Errorf("group_count must be at least 1, got %d", t.GroupCount)
	}
	switch t.KnockoutSize {
	case 4, 8, 16:
	default:
		return fmt.Errorf("knockout_size must be 4, 8 or 16, got %d", t.KnockoutSize)
	}
	return t.Rules.Validate()
}
