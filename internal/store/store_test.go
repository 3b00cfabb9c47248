package store_test

import (
	"fmt"
	"testing"

	"github.com/racketclub/tourney/internal/database"
	"github.com/racketclub/tourney/internal/store"
	"github.com/racketclub/tourney/internal/tourney"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (store.TournamentStore, func()) {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	return store.New(db), teardown
}

func seedTournament(t *testing.T, st store.TournamentStore) *tourney.Tournament {
	t.Helper()
	tt := &tourney.Tournament{
		Name:         "Spring Open",
		Slug:         "spring-open",
		Categories:   []string{"mens_singles"},
		Rules:        tourney.DefaultRules(),
		GroupCount:   2,
		KnockoutSize: 8,
	}
	require.NoError(t, st.UpsertTournament(tt))
	require.NotEmpty(t, tt.ID)
	return tt
}

func TestTournamentRoundTrip(t *testing.T) {
	st, teardown := setupTestStore(t)
	defer teardown()

	created := seedTournament(t, st)

	got, err := st.GetTournament(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring Open", got.Name)
	assert.Equal(t, []string{"mens_singles"}, got.Categories)
	assert.Equal(t, tourney.DefaultRules(), got.Rules)
	assert.Equal(t, tourney.TournamentDraft, got.Status)

	created.Name = "Spring Open 2026"
	require.NoError(t, st.UpsertTournament(created))
	got, err = st.GetTournament(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring Open 2026", got.Name)

	_, err = st.GetTournament("missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateTournamentStatus(t *testing.T) {
	st, teardown := setupTestStore(t)
	defer teardown()

	tt := seedTournament(t, st)
	require.NoError(t, st.UpdateTournamentStatus(tt.ID, tourney.TournamentGroupStage))

	got, err := st.GetTournament(tt.ID)
	require.NoError(t, err)
	assert.Equal(t, tourney.TournamentGroupStage, got.Status)

	assert.ErrorIs(t, st.UpdateTournamentStatus("missing", tourney.TournamentKnockout), store.ErrNotFound)
}

func TestRoster(t *testing.T) {
	st, teardown := setupTestStore(t)
	defer teardown()
	tt := seedTournament(t, st)

	players := []tourney.Player{
		{Name: "Zara", Categories: []string{"mens_singles"}},
		{Name: "Anna", Categories: []string{"mens_singles"}, Seeded: true},
		{Name: "Mika", Categories: []string{"womens_singles"}},
	}
	require.NoError(t, st.UpsertPlayers(tt.ID, players))

	t.Run("keeps registration order", func(t *testing.T) {
		roster, err := st.GetRoster(tt.ID, "")
		require.NoError(t, err)
		require.Len(t, roster, 3)
		assert.Equal(t, "Zara", roster[0].Name)
		assert.Equal(t, "Anna", roster[1].Name)
		assert.Equal(t, "Mika", roster[2].Name)
	})

	t.Run("filters by category", func(t *testing.T) {
		roster, err := st.GetRoster(tt.ID, "mens_singles")
		require.NoError(t, err)
		require.Len(t, roster, 2)
		assert.Equal(t, "Zara", roster[0].Name)
		assert.True(t, roster[1].Seeded)
	})

	t.Run("upsert does not change order", func(t *testing.T) {
		players[0].Seeded = true
		require.NoError(t, st.UpsertPlayers(tt.ID, players[:1]))

		roster, err := st.GetRoster(tt.ID, "")
		require.NoError(t, err)
		require.Len(t, roster, 3)
		assert.Equal(t, "Zara", roster[0].Name)
		assert.True(t, roster[0].Seeded)
	})
}

func TestDeletePlayerClearsPartner(t *testing.T) {
	st, teardown := setupTestStore(t)
	defer teardown()
	tt := seedTournament(t, st)

	a := tourney.Player{ID: "a", Name: "Anna", Categories: []string{"mens_singles"}}
	b := tourney.Player{ID: "b", Name: "Bernt", Categories: []string{"mens_singles"}}
	a.PartnerID = &b.ID
	b.PartnerID = &a.ID
	require.NoError(t, st.UpsertPlayers(tt.ID, []tourney.Player{a, b}))

	require.NoError(t, st.DeletePlayer(tt.ID, "a"))

	roster, err := st.GetRoster(tt.ID, "")
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "b", roster[0].ID)
	assert.Nil(t, roster[0].PartnerID, "surviving partner no longer points at the deleted player")
}

func groupIntent(category, group string, n int) tourney.CreateMatch {
	gid := category + "-" + group
	return tourney.CreateMatch{
		Category: category,
		Round:    tourney.RoundGroup,
		GroupID:  &gid,
		Player1:  tourney.Slot{ID: fmt.Sprintf("p%d", 2*n), Name: "Left"},
		Player2:  tourney.Slot{ID: fmt.Sprintf("p%d", 2*n+1), Name: "Right"},
		Status:   tourney.MatchScheduled,
		Games:    []tourney.ScoreGame{{Number: 1}},
	}
}

func TestMatches(t *testing.T) {
	st, teardown := setupTestStore(t)
	defer teardown()
	tt := seedTournament(t, st)

	ids, err := st.CreateMatches(tt.ID, []tourney.CreateMatch{
		groupIntent("mens_singles", "A", 0),
		groupIntent("mens_singles", "B", 1),
		groupIntent("womens_singles", "A", 2),
	})
	require.NoError(t, err)
	require.Len(t, ids, 3)

	t.Run("get returns the stored match", func(t *testing.T) {
		m, err := st.GetMatch(tt.ID, ids[0])
		require.NoError(t, err)
		assert.Equal(t, "mens_singles", m.Category)
		assert.Equal(t, tourney.RoundGroup, m.Round)
		require.NotNil(t, m.GroupID)
		assert.Equal(t, "mens_singles-A", *m.GroupID)
		require.Len(t, m.Games, 1)
		assert.Equal(t, 1, m.Games[0].Number)

		_, err = st.GetMatch(tt.ID, "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("list filters combine", func(t *testing.T) {
		all, err := st.ListMatches(tt.ID, store.MatchFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		mens, err := st.ListMatches(tt.ID, store.MatchFilter{Category: "mens_singles"})
		require.NoError(t, err)
		assert.Len(t, mens, 2)

		groupA, err := st.ListMatches(tt.ID, store.MatchFilter{GroupID: "mens_singles-A"})
		require.NoError(t, err)
		require.Len(t, groupA, 1)
		assert.Equal(t, ids[0], groupA[0].ID)
	})

	t.Run("list preserves creation order", func(t *testing.T) {
		all, err := st.ListMatches(tt.ID, store.MatchFilter{})
		require.NoError(t, err)
		for i, m := range all {
			assert.Equal(t, ids[i], m.ID)
		}
	})
}

func TestUpdateMatch(t *testing.T) {
	st, teardown := setupTestStore(t)
	defer teardown()
	tt := seedTournament(t, st)

	ids, err := st.CreateMatches(tt.ID, []tourney.CreateMatch{
		groupIntent("mens_singles", "A", 0),
		groupIntent("mens_singles", "A", 1),
	})
	require.NoError(t, err)

	t.Run("partial update touches only the named fields", func(t *testing.T) {
		live := tourney.MatchLive
		games := []tourney.ScoreGame{{Number: 1, P1Score: 5, P2Score: 3}}
		require.NoError(t, st.UpdateMatch(tt.ID, ids[0], store.MatchUpdate{
			Status: &live,
			Games:  games,
		}))

		m, err := st.GetMatch(tt.ID, ids[0])
		require.NoError(t, err)
		assert.Equal(t, tourney.MatchLive, m.Status)
		assert.Equal(t, games, m.Games)
		assert.Equal(t, "p0", m.Player1.ID, "players untouched")
	})

	t.Run("pending winner set and cleared", func(t *testing.T) {
		pending := "p0"
		require.NoError(t, st.UpdateMatch(tt.ID, ids[0], store.MatchUpdate{PendingWinnerID: &pending}))
		m, err := st.GetMatch(tt.ID, ids[0])
		require.NoError(t, err)
		require.NotNil(t, m.PendingWinnerID)
		assert.Equal(t, "p0", *m.PendingWinnerID)

		require.NoError(t, st.UpdateMatch(tt.ID, ids[0], store.MatchUpdate{ClearPendingWinner: true}))
		m, err = st.GetMatch(tt.ID, ids[0])
		require.NoError(t, err)
		assert.Nil(t, m.PendingWinnerID)
	})

	t.Run("next match link is write-once", func(t *testing.T) {
		next := ids[1]
		require.NoError(t, st.UpdateMatch(tt.ID, ids[0], store.MatchUpdate{NextMatchID: &next}))

		// Re-writing the same value stays allowed for idempotent retries.
		require.NoError(t, st.UpdateMatch(tt.ID, ids[0], store.MatchUpdate{NextMatchID: &next}))

		other := "somewhere-else"
		err := st.UpdateMatch(tt.ID, ids[0], store.MatchUpdate{NextMatchID: &other})
		assert.ErrorIs(t, err, store.ErrNextMatchImmutable)

		m, err := st.GetMatch(tt.ID, ids[0])
		require.NoError(t, err)
		require.NotNil(t, m.NextMatchID)
		assert.Equal(t, ids[1], *m.NextMatchID)
	})

	t.Run("unknown match", func(t *testing.T) {
		live := tourney.MatchLive
		err := st.UpdateMatch(tt.ID, "missing", store.MatchUpdate{Status: &live})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestDeleteMatches(t *testing.T) {
	st, teardown := setupTestStore(t)
	defer teardown()
	tt := seedTournament(t, st)

	// More ids than one delete batch holds, so the chunking path runs.
	count := store.DeleteBatchSize + 50
	cms := make([]tourney.CreateMatch, 0, count)
	for i := 0; i < count; i++ {
		cms = append(cms, groupIntent("mens_singles", "A", i))
	}
	ids, err := st.CreateMatches(tt.ID, cms)
	require.NoError(t, err)
	require.Len(t, ids, count)

	require.NoError(t, st.DeleteMatches(tt.ID, ids))

	left, err := st.ListMatches(tt.ID, store.MatchFilter{})
	require.NoError(t, err)
	assert.Empty(t, left)

	assert.NoError(t, st.DeleteMatches(tt.ID, nil), "deleting nothing is a no-op")
}
