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
	"github.com/dfcamara/enuvex/internal/ledger"
	"github.com/dfcamara/enuvex/internal/upload"
	"github.com/dfcamara/enuvex/pkg/types"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Create person records from a spreadsheet",
	Long: `Upload reads the first sheet of an xlsx file and creates one person
per row through the API, paced at one request per second by default. Rows
missing a first name, last name, or document id are skipped and counted as
failures. A YAML run log is written next to the input file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpload,
}

func runUpload(cmd *cobra.Command, args []string) error {
	apiCfg := apiConfig(cmd)
	fetchCfg := fetchConfig(cmd)

	cfg := types.UploadConfig{
		InputFile:           viper.GetString("upload.input_file"),
		PostRate:            viper.GetFloat64("upload.post_rate"),
		DefaultGroupID:      viper.GetInt("upload.default_group_id"),
		DefaultEmploymentID: viper.GetInt("upload.default_employment_id"),
	}
	if len(args) > 0 {
		cfg.InputFile = args[0]
	}
	if cfg.InputFile == "" {
		return fmt.Errorf("input file required: pass a path or set upload.input_file")
	}
	if v, _ := cmd.Flags().GetFloat64("rate"); v > 0 {
		cfg.PostRate = v
	}
	if v, _ := cmd.Flags().GetInt("default-group"); v != 0 {
		cfg.DefaultGroupID = v
	}
	if v, _ := cmd.Flags().GetInt("default-employment"); v != 0 {
		cfg.DefaultEmploymentID = v
	}

	client, err := enuvens.New(apiCfg, fetchCfg)
	if err != nil {
		return err
	}

	started := time.Now()
	summary, err := upload.Run(context.Background(), client, cfg, os.Stdout)
	if err != nil {
		return err
	}

	recordRun(cmd, ledger.Run{
		Kind:     "upload",
		Started:  started,
		Finished: time.Now(),
		People:   summary.Total,
		Failures: summary.Failed,
		Output:   cfg.InputFile,
	})

	if summary.Failed > 0 {
		return fmt.Errorf("%d row(s) failed", summary.Failed)
	}
	return nil
}

func init() {
	uploadCmd.Flags().Float64("rate", 0, "creation requests per second (default 1)")
	uploadCmd.Flags().Int("default-group", 0, "group id assigned when a row names none")
	uploadCmd.Flags().Int("default-employment", 0, "employment id assigned when a row names none")

	rootCmd.AddCommand(uploadCmd)
}
