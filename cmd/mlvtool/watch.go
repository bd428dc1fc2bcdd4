// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mlvtool/internal/conf"
	"github.com/pdiddy/mlvtool/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Reconvert notebooks whenever they change on disk",
	Long: `Watch monitors a notebook directory (default ".") and reconverts any
.ipynb file that is created or modified. Output paths and the filter
policy come from the project conf; unchanged notebooks are skipped via
the conversion ledger. Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	project, err := resolveProject()
	if err != nil {
		return err
	}
	if project == nil {
		return fmt.Errorf("watch needs a %s conf with path.script_dir to derive output paths", conf.FileName)
	}

	policy := project.Conf.FilterPolicy()

	led, err := openLedger(project)
	if err != nil {
		return err
	}
	if led != nil {
		defer led.Close()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watch.Watch(ctx, dir, project.ScriptDir(), policy, led, os.Stdout)
}
