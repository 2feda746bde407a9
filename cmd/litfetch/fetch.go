// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litfetch/internal/catalog"
	"github.com/pdiddy/litfetch/internal/creds"
	"github.com/pdiddy/litfetch/internal/fetch"
	"github.com/pdiddy/litfetch/internal/httputil"
	"github.com/pdiddy/litfetch/internal/quota"
	"github.com/pdiddy/litfetch/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download full texts for every catalogued DOI",
	Long: `Fetch enumerates the per-BioProject descriptors under --input, routes
each DOI to its publisher API, and downloads the full-text PDF plus an
extracted plain-text copy. The Wiley token is read from the ` + creds.EnvWileyToken + `
environment variable; without it, Wiley targets are skipped rather than
failing the run.

The exit code is non-zero only for configuration problems (bad api-keys
file, unreadable input directory). Per-target failures are reported and
the run continues.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("input", "", "directory of per-BioProject descriptor JSON files")
	fetchCmd.Flags().String("apikeys", "", "path to the api-keys JSON file")
	fetchCmd.Flags().String("email", "", "contact email sent with API requests per the publishers' terms")
	fetchCmd.Flags().String("output", "", "output root for PDF and text files (default <input>/files)")
	fetchCmd.Flags().Int("ceiling", 0, "per-source daily request ceiling (default 450)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	fetchCmd.Flags().Duration("retry-backoff", 0, "delay before the single transient retry (default 2s)")
	fetchCmd.Flags().Float64("rps", 0, "outgoing requests per second (default 1)")
	fetchCmd.Flags().String("quota-state", "", "day-keyed quota counter file (default <output>/.quota.yaml, \"off\" disables)")

	for _, f := range []string{"input", "apikeys", "email"} {
		cobra.CheckErr(fetchCmd.MarkFlagRequired(f))
	}

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	apikeys, _ := cmd.Flags().GetString("apikeys")
	email, _ := cmd.Flags().GetString("email")
	output, _ := cmd.Flags().GetString("output")
	ceiling, _ := cmd.Flags().GetInt("ceiling")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	backoff, _ := cmd.Flags().GetDuration("retry-backoff")
	rps, _ := cmd.Flags().GetFloat64("rps")
	quotaState, _ := cmd.Flags().GetString("quota-state")

	store, err := creds.Load(apikeys)
	if err != nil {
		return err
	}

	targets, err := catalog.Enumerate(input)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no fetch targets found")
		return nil
	}
	if err := store.Validate(catalog.Sources(targets)); err != nil {
		return err
	}

	if output == "" {
		output = filepath.Join(input, "files")
	}
	if err := os.MkdirAll(output, 0o755); err != nil {
		return &types.ConfigError{Path: output, Msg: "creating output root", Err: err}
	}

	switch quotaState {
	case "":
		quotaState = filepath.Join(output, ".quota.yaml")
	case "off":
		quotaState = ""
	}

	limiter, err := quota.New(types.QuotaConfig{
		Ceiling:           ceiling,
		RequestsPerSecond: rps,
		StateFile:         quotaState,
	})
	if err != nil {
		return err
	}

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: httputil.UserAgent(email),
		},
		OutputDir:    output,
		RetryBackoff: backoff,
	}
	client := httputil.NewClient(cfg.HTTPConfig)

	engine := fetch.New(client, store, limiter, cfg)
	results, _ := engine.Run(cmd.Context(), targets, cmd.OutOrStdout())

	reportPath := filepath.Join(output, fetch.ReportName)
	if err := fetch.WriteReport(reportPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return nil
}
