// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/media-shell/pkg/types"
)

var overlayCmd = &cobra.Command{
	Use:   "overlay <base> <overlay>",
	Short: "Composite an overlay image onto a base image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		option, _ := cmd.Flags().GetString("option")
		req := types.ConversionRequest{
			Operation:  types.OpOverlay,
			SourcePath: args[0],
			Overlay: types.OverlayRequest{
				Path:   types.String(args[1]),
				Option: types.String(option),
			},
		}

		a, err := newConverterApp()
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.svc.Convert(context.Background(), req)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), "%s", out)
		return nil
	},
}

func init() {
	overlayCmd.Flags().String("option", "center", "overlay placement passed to the converter, e.g. center or tile")

	rootCmd.AddCommand(overlayCmd)
}
