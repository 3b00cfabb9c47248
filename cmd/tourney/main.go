package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tourney",
	Short: "Organizer actions for knockout/round-robin tournaments",
	Long: `A command-line interface for running a tournament: drawing the group
stage, generating the knockout bracket, checking standings and scoring
live matches against the local tournament store.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
