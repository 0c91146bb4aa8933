package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List runs parked on clarification questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := buildLogger(cmd)
		engine := buildEngine(cmd, logger)

		ids, err := engine.PendingRuns(cmd.Context())
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("No pending runs.")
			return nil
		}
		for _, id := range ids {
			run, err := engine.PendingRun(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("%s  %q  %d question(s)\n", id, run.Input, len(run.Questions))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
}
