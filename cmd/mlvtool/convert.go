// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mlvtool/internal/conf"
	"github.com/pdiddy/mlvtool/internal/convert"
	"github.com/pdiddy/mlvtool/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [notebooks...]",
	Short: "Convert notebooks into importable Python scripts",
	Long: `Convert turns each notebook into a Python script wrapping the notebook's
code cells in a single entry-point function named mlvtool_<notebook stem>.

With --output, exactly one notebook is converted to the given path.
Otherwise output paths derive from the conf's path.script_dir and the
notebook names, and conversions are recorded in the ledger so unchanged
notebooks are skipped on later runs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output script path (single notebook only)")
	convertCmd.Flags().BoolP("force", "f", false, "overwrite existing output and reconvert unchanged notebooks")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	project, err := resolveProject()
	if err != nil {
		return err
	}

	// No conf means no configured patterns: the built-in auto-display
	// heuristic applies.
	var policy types.FilterPolicy
	if project != nil {
		policy = project.Conf.FilterPolicy()
	}

	if output != "" {
		if len(args) != 1 {
			return fmt.Errorf("--output requires exactly one notebook, got %d", len(args))
		}
		outPath, err := convert.ConvertFile(convert.Options{
			NotebookPath: args[0],
			OutputPath:   output,
			Policy:       policy,
			Force:        force,
		})
		if err != nil {
			return err
		}
		fmt.Printf("converted: %s -> %s\n", args[0], outPath)
		return nil
	}

	if project == nil {
		return fmt.Errorf("no output path: pass --output or add a %s conf with path.script_dir", conf.FileName)
	}

	led, err := openLedger(project)
	if err != nil {
		return err
	}
	if led != nil {
		defer led.Close()
	}

	result := convert.ConvertBatch(args, project.ScriptDir(), policy, led, force, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d notebook(s) failed conversion", result.Failed)
	}
	return nil
}
