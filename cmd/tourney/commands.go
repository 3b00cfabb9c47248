package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/racketclub/tourney/internal/config"
	"github.com/racketclub/tourney/internal/database"
	"github.com/racketclub/tourney/internal/fixtures"
	"github.com/racketclub/tourney/internal/metrics"
	"github.com/racketclub/tourney/internal/pubsub"
	"github.com/racketclub/tourney/internal/standings"
	"github.com/racketclub/tourney/internal/store"
	"github.com/racketclub/tourney/internal/tourney"
)

var (
	groupSize int
	minusOne  bool
)

func init() {
	generateGroupsCmd.Flags().IntVar(&groupSize, "size", 0, "players per group (default from config)")
	pointCmd.Flags().BoolVar(&minusOne, "minus", false, "subtract a point instead of adding one")

	rootCmd.AddCommand(generateGroupsCmd)
	rootCmd.AddCommand(generateBracketCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(pointCmd)
	rootCmd.AddCommand(completeCmd)
}

var generateGroupsCmd = &cobra.Command{
	Use:   "generate-groups <tournament-id>",
	Short: "Draw the group stage for every category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, teardown := wire()
		defer teardown()

		t, err := st.GetTournament(args[0])
		if err != nil {
			return err
		}
		size := groupSize
		if size == 0 {
			size = loadedCfg.GroupSize
		}
		result, err := svc.GenerateGroupFixtures(t, size)
		printResult(result)
		return err
	},
}

var generateBracketCmd = &cobra.Command{
	Use:   "generate-bracket <tournament-id>",
	Short: "Select qualifiers and generate the knockout bracket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, teardown := wire()
		defer teardown()

		t, err := st.GetTournament(args[0])
		if err != nil {
			return err
		}
		result, err := svc.GenerateKnockoutBracket(t)
		printResult(result)
		return err
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings <tournament-id> <group-id>",
	Short: "Print the current table of one group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, teardown := wire()
		defer teardown()

		matches, err := st.ListMatches(args[0], store.MatchFilter{GroupID: args[1]})
		if err != nil {
			return err
		}
		table := standings.Calculate(matches, args[1])
		if len(table) == 0 {
			fmt.Println("No completed matches yet.")
			return nil
		}
		fmt.Printf("%-24s %3s %3s %3s %4s\n", "Player", "P", "W", "L", "Pts")
		for _, row := range table {
			fmt.Printf("%-24s %3d %3d %3d %4d\n", row.Name, row.Played, row.Wins, row.Losses, row.Points)
		}
		return nil
	},
}

var pointCmd = &cobra.Command{
	Use:   "point <tournament-id> <match-id> <p1|p2>",
	Short: "Score a point (or correct one with --minus)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, teardown := wire()
		defer teardown()

		delta := 1
		if minusOne {
			delta = -1
		}
		m, err := svc.ScorePoint(args[0], args[1], tourney.Side(args[2]), delta)
		if err != nil {
			return err
		}
		for _, g := range m.Games {
			fmt.Printf("Game %d: %d-%d\n", g.Number, g.P1Score, g.P2Score)
		}
		if m.PendingWinnerID != nil {
			fmt.Printf("Match point confirmed for %s, run 'complete' to seal the result.\n", *m.PendingWinnerID)
		}
		return nil
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <tournament-id> <match-id> <winner-id>",
	Short: "Confirm and seal a finished match",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, teardown := wire()
		defer teardown()
		return svc.CompleteMatch(args[0], args[1], args[2])
	},
}

var loadedCfg config.Config

// wire builds the service stack against the configured database.
func wire() (*fixtures.Service, store.TournamentStore, func()) {
	log.SetFormatter(log.TextFormatter)
	cfg := config.Load()
	loadedCfg = cfg

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	st := store.New(db)

	var ps pubsub.PubSubClient
	if cfg.ProjectID != "" {
		ps = pubsub.New(cfg.ProjectID)
	} else {
		ps = pubsub.NewMock("")
	}

	svc := fixtures.New(st, ps, metrics.NewService())
	return svc, st, dbTeardown
}

func printResult(result *fixtures.GenerationResult) {
	if result == nil {
		return
	}
	fmt.Printf("Created %d matches.\n", result.Created)
	for _, skip := range result.Skipped {
		fmt.Printf("Skipped %s: %s\n", skip.Category, skip.Reason)
	}
}
