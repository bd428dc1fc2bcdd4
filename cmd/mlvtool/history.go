// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversions",
	Long: `History prints the conversion ledger: every notebook converted through
the conf-driven flow, its generated script, entry function, and when it
was last converted.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	project, err := resolveProject()
	if err != nil {
		return err
	}

	led, err := openLedger(project)
	if err != nil {
		return err
	}
	if led == nil {
		return fmt.Errorf("no conversion ledger: run inside a configured project or pass --ledger")
	}
	defer led.Close()

	entries, err := led.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no conversions recorded")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %s -> %s (%s)\n",
			e.ConvertedAt.Format(time.RFC3339), e.Notebook, e.Script, e.EntryName)
	}
	return nil
}
