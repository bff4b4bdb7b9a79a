// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the enuvex CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dfcamara/enuvex/internal/secrets"
	"github.com/dfcamara/enuvex/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the enuvex CLI.
var rootCmd = &cobra.Command{
	Use:   "enuvex",
	Short: "Batch export and upload of congregation membership records",
	Long: `enuvex talks to the eNuvens congregation-management API. The export
command lists every group, resolves its members, fetches each person once
with bounded concurrency, and writes a grouped, name-sorted spreadsheet.
The upload command does the inverse: it reads a member spreadsheet and
creates one person record per row.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./enuvex.yaml or ~/.config/enuvex/config.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "API root for the people and group endpoints")
	rootCmd.PersistentFlags().String("groups-url", "", "groups listing endpoint")
	rootCmd.PersistentFlags().String("token", "", "bearer token (default: .secrets/enuvens-token)")
	rootCmd.PersistentFlags().String("ledger", "", "run-history database file (default enuvex.db)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("enuvex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "enuvex"))
		}
	}

	viper.SetEnvPrefix("ENUVEX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// apiConfig assembles the API settings from flags, config file, env, and
// the secrets directory, in that order of precedence.
func apiConfig(cmd *cobra.Command) types.APIConfig {
	cfg := types.APIConfig{
		BaseURL:   viper.GetString("api.base_url"),
		GroupsURL: viper.GetString("api.groups_url"),
		Token:     viper.GetString("api.token"),
	}
	cfg.Timeout = viper.GetDuration("api.timeout")
	cfg.UserAgent = viper.GetString("api.user_agent")
	if cfg.UserAgent == "" {
		cfg.UserAgent = "enuvex/" + version
	}

	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("groups-url"); v != "" {
		cfg.GroupsURL = v
	}
	if v, _ := cmd.Flags().GetString("token"); v != "" {
		cfg.Token = v
	}
	if cfg.Token == "" {
		cfg.Token = loadedSecrets["enuvens-token"]
	}
	return cfg
}

// fetchConfig reads the fan-out settings, falling back to the defaults the
// remote API tolerates well.
func fetchConfig(cmd *cobra.Command) types.FetchConfig {
	cfg := types.FetchConfig{
		Concurrency:    viper.GetInt("fetch.concurrency"),
		PacingDelay:    viper.GetDuration("fetch.pacing_delay"),
		MaxAttempts:    viper.GetInt("fetch.max_attempts"),
		RetryBaseDelay: viper.GetDuration("fetch.retry_base_delay"),
	}
	if v, _ := cmd.Flags().GetInt("concurrency"); v > 0 {
		cfg.Concurrency = v
	}
	if v, _ := cmd.Flags().GetDuration("pacing"); v > 0 {
		cfg.PacingDelay = v
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 50
	}
	if cfg.PacingDelay <= 0 {
		cfg.PacingDelay = 200 * time.Millisecond
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	return cfg
}

func ledgerConfig(cmd *cobra.Command) types.LedgerConfig {
	cfg := types.LedgerConfig{Path: viper.GetString("ledger.path")}
	if v, _ := cmd.Flags().GetString("ledger"); v != "" {
		cfg.Path = v
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
