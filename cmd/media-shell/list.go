// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/media-shell/internal/listing"
)

var listCmd = &cobra.Command{
	Use:   "list <dir>",
	Short: "List the readable files in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := listing.List(args[0])
		if err != nil {
			return err
		}
		if out != "" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
