package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Maintain login sessions",
}

var sessionsCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete revoked sessions and sessions expired for over a week",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repos, closeDB, err := openRepositories(ctx)
		if err != nil {
			return err
		}
		defer closeDB()

		removed, err := repos.Session.CleanExpiredSessions(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d session(s)\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsCleanCmd)
}
