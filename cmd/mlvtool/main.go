// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mlvtool CLI. It resolves the
// project configuration and output locations, then hands plain values to
// the conversion pipeline; the pipeline itself never searches for
// configuration.
package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mlvtool/internal/conf"
	"github.com/pdiddy/mlvtool/internal/ledger"
)

// version is set at build time via ldflags.
var version = "dev"

// ledgerFile is the default conversion ledger location under the
// repository root.
var ledgerFile = filepath.Join(".mlvtool", "ledger.db")

// rootCmd is the base command for the mlvtool CLI.
var rootCmd = &cobra.Command{
	Use:   "mlvtool",
	Short: "Promote Jupyter notebooks into reusable Python pipeline steps",
	Long: `mlvtool converts parameterized Jupyter notebooks into standalone Python
scripts exposing a single typed entry-point function. The first code cell
may declare the function's parameters through a ":param <type> <name>:"
docstring; the remaining code cells become the function body.

Project-wide behaviour (ignored cell patterns, default script directory)
comes from a .mlvtool.yaml file at the repository root.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("working-directory", "w", ".", "directory the conf search starts from")
	rootCmd.PersistentFlags().String("ledger", "", "conversion ledger database (default: <repo>/.mlvtool/ledger.db)")
}

func initConfig() {
	viper.BindPFlag("working_directory", rootCmd.PersistentFlags().Lookup("working-directory"))
	viper.BindPFlag("ledger", rootCmd.PersistentFlags().Lookup("ledger"))

	viper.SetEnvPrefix("MLVTOOL")
	viper.AutomaticEnv()
}

// resolveProject runs conf discovery from the configured working
// directory. A nil project means no conf file exists.
func resolveProject() (*conf.Project, error) {
	return conf.Resolve(viper.GetString("working_directory"))
}

// openLedger opens the conversion ledger for project, honoring the
// --ledger override. Without a project or an override there is no ledger
// and openLedger returns nil.
func openLedger(project *conf.Project) (*ledger.Ledger, error) {
	path := viper.GetString("ledger")
	if path == "" {
		if project == nil {
			return nil, nil
		}
		path = filepath.Join(project.Root, ledgerFile)
	}
	return ledger.Open(path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
