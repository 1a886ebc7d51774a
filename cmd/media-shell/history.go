// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pdiddy/media-shell/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or export recorded conversions",
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the most recent conversions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(context.Background(), limit)
		if err != nil {
			return err
		}
		renderHistory(cmd.OutOrStdout(), entries)
		return nil
	},
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every recorded conversion as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")

		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		var w io.Writer = cmd.OutOrStdout()
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			defer f.Close()
			w = f
		}
		if err := store.ExportYAML(context.Background(), w); err != nil {
			return err
		}
		if outPath != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", outPath)
		}
		return nil
	},
}

func openHistory() (*history.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg.History)
}

// renderHistory prints entries as a table, newest first.
func renderHistory(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"When", "Operation", "Source", "Status", "Result"})
	for _, e := range entries {
		result := e.Output
		if e.Status == history.StatusFailed {
			result = e.Error
		}
		t.AppendRow(table.Row{
			e.CreatedAt.Local().Format(time.DateTime),
			e.Operation,
			e.Source,
			string(e.Status),
			result,
		})
	}
	t.Render()
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "maximum number of entries to show")
	historyExportCmd.Flags().String("out", "", "write the export to this file instead of stdout")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
