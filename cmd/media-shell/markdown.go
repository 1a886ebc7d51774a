// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var markdownCmd = &cobra.Command{
	Use:   "markdown <file.md>...",
	Short: "Convert Markdown files to plain text",
	Long: `Markdown strips headers, emphasis, links, images, code, rules, quotes,
and list markers from each file and writes the text to a sibling file with
the .md or .markdown extension replaced by .txt. Existing .txt files are
overwritten. Files with any other extension are rejected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		failed := 0
		for _, path := range args {
			dst, err := a.svc.ConvertMarkdown(context.Background(), path)
			if err != nil {
				printFailure(cmd.ErrOrStderr(), "failed:    %v", err)
				failed++
				continue
			}
			printResult(cmd.OutOrStdout(), "converted: %s -> %s", path, dst)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d file(s) failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(markdownCmd)
}
