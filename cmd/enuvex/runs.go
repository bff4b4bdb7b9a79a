// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dfcamara/enuvex/internal/ledger"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded export and upload runs",
	Long: `Runs prints the history ledger, newest first. Each export and upload
records one row with its totals and output path.`,
	RunE: runRuns,
}

func runRuns(cmd *cobra.Command, args []string) error {
	store, err := ledger.Open(ledgerConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "no runs recorded")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-7s  %-16s  %8s  %8s  %8s  %s\n",
		"ID", "KIND", "STARTED", "GROUPS", "PEOPLE", "FAILED", "OUTPUT")
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-36s  %-7s  %-16s  %8d  %8d  %8d  %s\n",
			r.ID, r.Kind, r.Started.Format("2006-01-02 15:04"),
			r.Groups, r.People, r.Failures, r.Output)
	}
	return nil
}

func init() {
	runsCmd.Flags().Int("limit", 20, "maximum number of runs to show")

	rootCmd.AddCommand(runsCmd)
}
