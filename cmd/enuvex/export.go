// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dfcamara/enuvex/internal/enuvens"
	"github.com/dfcamara/enuvex/internal/export"
	"github.com/dfcamara/enuvex/internal/ledger"
	"github.com/dfcamara/enuvex/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all group members to a spreadsheet",
	Long: `Export lists every group, resolves each group's member ids, fetches
every person once (cached across groups), and writes one xlsx file with a
header row, per-group sections, and rows sorted by name. Failed groups and
people degrade the output and are counted in the summary; only a failing
groups listing aborts the run.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	apiCfg := apiConfig(cmd)
	fetchCfg := fetchConfig(cmd)

	exportCfg := exportConfigFromFlags(cmd)

	client, err := enuvens.New(apiCfg, fetchCfg)
	if err != nil {
		return err
	}

	sink, err := export.NewXLSXSink(exportCfg.OutputFile)
	if err != nil {
		return err
	}

	pipeline := export.NewPipeline(client, fetchCfg, exportCfg, os.Stdout)
	summary, err := pipeline.Run(context.Background(), sink)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", exportCfg.OutputFile)

	recordRun(cmd, ledger.Run{
		Kind:     "export",
		Started:  summary.Started,
		Finished: summary.Finished,
		Groups:   summary.Groups,
		People:   summary.People,
		Failures: summary.GroupFailures + summary.PersonFailures,
		Output:   exportCfg.OutputFile,
	})

	if summary.HasFailures() {
		fmt.Fprintf(os.Stderr, "warning: %d group(s) and %d person(s) failed; their rows are absent\n",
			summary.GroupFailures, summary.PersonFailures)
	}
	return nil
}

func exportConfigFromFlags(cmd *cobra.Command) (cfg types.ExportConfig) {
	cfg.OutputFile = viper.GetString("export.output_file")
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputFile = v
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = fmt.Sprintf("DADOS_ENUVENS_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	}

	cfg.GroupID, _ = cmd.Flags().GetInt("group")
	if cfg.GroupID == 0 {
		cfg.GroupID = viper.GetInt("export.group_id")
	}

	noDedupe, _ := cmd.Flags().GetBool("no-dedupe")
	cfg.Dedupe = !noDedupe
	return cfg
}

// recordRun appends the run to the history ledger. Ledger trouble is a
// warning, never a run failure.
func recordRun(cmd *cobra.Command, run ledger.Run) {
	store, err := ledger.Open(ledgerConfig(cmd))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: run ledger unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(context.Background(), run); err != nil {
		fmt.Fprintf(os.Stderr, "warning: run not recorded: %v\n", err)
	}
}

func init() {
	exportCmd.Flags().String("output", "", "output xlsx file (default: timestamped name)")
	exportCmd.Flags().Int("group", 0, "restrict the export to a single group id")
	exportCmd.Flags().Int("concurrency", 0, "in-flight request ceiling (default 50)")
	exportCmd.Flags().Duration("pacing", 0, "delay between request chunks (default 200ms)")
	exportCmd.Flags().Bool("no-dedupe", false, "emit a row in every group a person belongs to")

	rootCmd.AddCommand(exportCmd)
}
