// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/media-shell/pkg/types"
)

var videoCmd = &cobra.Command{
	Use:   "video <path>",
	Short: "Run a video conversion",
	Long: `Video hands a video file to the converter together with the target
aspect ratio, resolution, and compression level. All three are required.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		aspect, _ := f.GetString("aspect-ratio")
		resolution, _ := f.GetString("resolution")
		compression, _ := f.GetString("compression")

		req := types.ConversionRequest{
			Operation:  types.OpVideoConvert,
			SourcePath: args[0],
			Video: types.VideoRequest{
				AspectRatio: types.String(aspect),
				Resolution:  types.String(resolution),
				Compression: types.String(compression),
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
	videoCmd.Flags().String("aspect-ratio", "", "target aspect ratio, e.g. 16:9")
	videoCmd.Flags().String("resolution", "", "target resolution, e.g. 1080p")
	videoCmd.Flags().String("compression", "", "compression level, e.g. low, medium, high")
	_ = videoCmd.MarkFlagRequired("aspect-ratio")
	_ = videoCmd.MarkFlagRequired("resolution")
	_ = videoCmd.MarkFlagRequired("compression")

	rootCmd.AddCommand(videoCmd)
}
