package scoring

import "github.com/racketclub/tourney/internal/tourney"

// GameWinner evaluates the win condition for a single game at the given
// scores. It returns SideNone while the game is still running.
//
// Without deuce the first player to reach the game target wins outright,
// margin ignored. With deuce the game runs on until the leader is clear by
// the configured margin, except that reaching the hard cap ends the game
// immediately no matter the margin.
func GameWinner(p1, p2 int, rules tourney.ScoringRules) tourney.Side {
	high, low, leader := p1, p2, tourney.SideP1
	if p2 > p1 {
		high, low, leader = p2, p1, tourney.SideP2
	}

	if !rules.DeuceEnabled {
		if high >= rules.PointsPerGame && high > low {
			return leader
		}
		return tourney.SideNone
	}

	if high >= rules.MaxPoints && high > low {
		return leader
	}
	if high >= rules.PointsPerGame && high-low >= rules.ClearBy {
		return leader
	}
	return tourney.SideNone
}

// GameWins counts sealed games per side across the whole match.
func GameWins(m *tourney.Match) (p1, p2 int) {
	for _, g := range m.Games {
		switch g.Winner {
		case tourney.SideP1:
			p1++
		case tourney.SideP2:
			p2++
		}
	}
	return p1, p2
}

// MatchWinner returns the side that has clinched the match, or SideNone if
// neither player has enough games yet.
func MatchWinner(m *tourney.Match, rules tourney.ScoringRules) tourney.Side {
	p1, p2 := GameWins(m)
	needed := rules.GamesToWin()
	switch {
	case p1 >= needed:
		return tourney.SideP1
	case p2 >= needed:
		return tourney.SideP2
	}
	return tourney.SideNone
}
