// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/media-shell/internal/convert"
)

var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Run the conversions listed in a YAML manifest",
	Long: `Batch reads a manifest of the form

  conversions:
    - operation: square700
      source: photos/a.png
      webp: true
    - operation: video-convert
      source: clip.mov
      video: {aspect_ratio: "16:9", resolution: 720p, compression: medium}

and runs each entry in order. Relative paths are resolved against the
manifest's directory. A failing entry does not stop the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reqs, err := convert.LoadManifest(args[0])
		if err != nil {
			return err
		}
		for _, r := range reqs {
			warnUnknownOperation(cmd.ErrOrStderr(), r.Operation)
		}

		a, err := newConverterApp()
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.svc.ConvertBatch(context.Background(), reqs, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return batchError(result)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
