// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the litfetch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the litfetch CLI.
var rootCmd = &cobra.Command{
	Use:   "litfetch",
	Short: "Fetch scholarly full texts from publisher APIs by DOI",
	Long: `litfetch retrieves full-text PDFs for DOIs catalogued per BioProject,
using the Springer-Nature, Wiley, and Elsevier text-mining APIs. Each
downloaded PDF is converted to plain text and both artifacts are written
under the output root. Per-source request ceilings hold for the whole
run, and already-fetched targets are skipped, so re-running is safe.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./litfetch.yaml or ~/.config/litfetch/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("litfetch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "litfetch"))
		}
	}

	viper.SetEnvPrefix("LITFETCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
