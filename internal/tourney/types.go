package tourney

// TBD is the sentinel used for a match slot whose participant is not yet
// known (pre-seeding placeholders and unfilled bracket slots).
const TBD = "TBD"

// Round identifies the stage a match belongs to.
type Round string

const (
	RoundGroup Round = "group"
	RoundR16   Round = "R16"
	RoundQF    Round = "QF"
	RoundSF    Round = "SF"
	RoundF     Round = "F"
	RoundThird Round = "3rd"
)

// KnockoutRounds returns the rounds played for a bracket of the given size,
// in playing order. Size is one of 4, 8 or 16.
func KnockoutRounds(size int) []Round {
	switch {
	case size >= 16:
		return []Round{RoundR16, RoundQF, RoundSF, RoundF}
	case size >= 8:
		return []Round{RoundQF, RoundSF, RoundF}
	default:
		return []Round{RoundSF, RoundF}
	}
}

// MatchStatus defines the lifecycle state of a match.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchLive      MatchStatus = "live"
	// MatchPendingCompletion means a player has clinched the match but the
	// score-keeper has not confirmed the result yet. The match is not sealed
	// until an explicit commit.
	MatchPendingCompletion MatchStatus = "pending_completion"
	MatchCompleted         MatchStatus = "completed"
	MatchWalkover          MatchStatus = "walkover"
)

// TournamentStatus defines the lifecycle state of a tournament.
// Transitions only move forward and are never rolled back automatically.
type TournamentStatus string

const (
	TournamentDraft      TournamentStatus = "draft"
	TournamentGroupStage TournamentStatus = "group_stage"
	TournamentKnockout   TournamentStatus = "knockout"
	TournamentCompleted  TournamentStatus = "completed"
)

var statusOrder = map[TournamentStatus]int{
	TournamentDraft:      0,
	TournamentGroupStage: 1,
	TournamentKnockout:   2,
	TournamentCompleted:  3,
}

// CanTransition reports whether a tournament may move from its current
// status to the target status.
func (s TournamentStatus) CanTransition(to TournamentStatus) bool {
	from, ok := statusOrder[s]
	target, ok2 := statusOrder[to]
	return ok && ok2 && target > from
}

// Side identifies which slot of a match a score or win belongs to.
type Side string

const (
	SideNone Side = ""
	SideP1   Side = "p1"
	SideP2   Side = "p2"
)

// Slot is a participant reference inside a match: the player id plus the
// display name shown on scoreboards. The id may be TBD for placeholders.
type Slot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Open reports whether the slot has no real participant yet.
func (s Slot) Open() bool {
	return s.ID == "" || s.ID == TBD
}

// Player is a tournament entrant.
type Player struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Gender     string   `json:"gender,omitempty"`
	Categories []string `json:"categories"`
	// PartnerID links doubles partners. The link is symmetric: both sides
	// point at each other or both are nil.
	PartnerID *string `json:"partner_id,omitempty"`
	Seeded    bool    `json:"seeded"`
	Group     *string `json:"group,omitempty"`
}

// InCategory reports whether the player is registered for the category.
func (p Player) InCategory(category string) bool {
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Tournament holds the configuration the organizer created the event with.
type Tournament struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	Categories   []string         `json:"categories"`
	Rules        ScoringRules     `json:"rules"`
	GroupCount   int              `json:"group_count"`
	KnockoutSize int              `json:"knockout_size"`
	Status       TournamentStatus `json:"status"`
}

// ScoreGame is a single game inside a match. Games are append-only and
// sealed in order: at most one game has no winner and it is always the last.
type ScoreGame struct {
	Number  int  `json:"number"`
	P1Score int  `json:"p1_score"`
	P2Score int  `json:"p2_score"`
	Winner  Side `json:"winner,omitempty"`
}

// Match is a single fixture, either a group-stage pairing or a knockout tie.
type Match struct {
	ID       string      `json:"id"`
	Category string      `json:"category"`
	Round    Round       `json:"round"`
	// GroupID is set exactly when Round is group, e.g. "mens_singles-A".
	GroupID         *string     `json:"group_id,omitempty"`
	Player1         Slot        `json:"player1"`
	Player2         Slot        `json:"player2"`
	Status          MatchStatus `json:"status"`
	Games           []ScoreGame `json:"games"`
	WinnerID        *string     `json:"winner_id,omitempty"`
	PendingWinnerID *string     `json:"pending_winner_id,omitempty"`
	// NextMatchID points at the knockout match this winner feeds into.
	// Once set it never changes.
	NextMatchID *string `json:"next_match_id,omitempty"`
}

// SlotFor returns which side of the match the given player id occupies.
func (m *Match) SlotFor(playerID string) Side {
	switch playerID {
	case m.Player1.ID:
		return SideP1
	case m.Player2.ID:
		return SideP2
	}
	return SideNone
}

// CreateMatch is the write intent produced by the generators. The store
// assigns the id on creation.
type CreateMatch struct {
	Category string      `json:"category"`
	Round    Round       `json:"round"`
	GroupID  *string     `json:"group_id,omitempty"`
	Player1  Slot        `json:"player1"`
	Player2  Slot        `json:"player2"`
	Status   MatchStatus `json:"status"`
	Games    []ScoreGame `json:"games"`
}

// Standing is one row of a group table. It is derived from completed group
// matches on demand and never persisted.
type Standing struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Played   int    `json:"played"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Points   int    `json:"points"`
}
