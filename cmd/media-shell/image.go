// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/media-shell/internal/convert"
	"github.com/pdiddy/media-shell/pkg/types"
)

var imageCmd = &cobra.Command{
	Use:   "image <path> <operation>",
	Short: "Run an image conversion",
	Long: `Image hands one image to the converter. Operations: resize (--width),
resize-height (--height), aspect-ratio (--aspect-ratio), square700, square300.
Any of them can add --webp. Unknown operations are passed through with
--width and --aspect-ratio when given.

With --folder, the only argument is the operation and every .jpg, .jpeg and
.png file in the folder is converted.`,
	Args: func(cmd *cobra.Command, args []string) error {
		folder, _ := cmd.Flags().GetString("folder")
		if folder != "" {
			return cobra.ExactArgs(1)(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runImage,
}

func runImage(cmd *cobra.Command, args []string) error {
	folder, _ := cmd.Flags().GetString("folder")

	var req types.ConversionRequest
	if folder != "" {
		req.Operation = types.Operation(args[0])
	} else {
		req.SourcePath = args[0]
		req.Operation = types.Operation(args[1])
	}
	imageFlags(cmd, &req)
	warnUnknownOperation(cmd.ErrOrStderr(), req.Operation)

	a, err := newConverterApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if folder == "" {
		out, err := a.svc.Convert(ctx, req)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), "%s", out)
		return nil
	}

	reqs, err := convert.FolderRequests(folder, req)
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		return fmt.Errorf("no images found in %s", folder)
	}
	result, err := a.svc.ConvertBatch(ctx, reqs, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return batchError(result)
}

// imageFlags copies the optional image flags into req. Only flags the user
// actually set are copied, so absent fields stay nil.
func imageFlags(cmd *cobra.Command, req *types.ConversionRequest) {
	f := cmd.Flags()
	if f.Changed("width") {
		v, _ := f.GetString("width")
		req.TargetWidth = &v
	}
	if f.Changed("height") {
		v, _ := f.GetString("height")
		req.TargetHeight = &v
	}
	if f.Changed("aspect-ratio") {
		v, _ := f.GetString("aspect-ratio")
		req.AspectRatio = &v
	}
	if f.Changed("webp") {
		v, _ := f.GetBool("webp")
		req.ToWebp = &v
	}
}

func init() {
	imageCmd.Flags().String("width", "", "target width for resize")
	imageCmd.Flags().String("height", "", "target height for resize-height")
	imageCmd.Flags().String("aspect-ratio", "", "aspect ratio for aspect-ratio, e.g. 16:9")
	imageCmd.Flags().Bool("webp", false, "write WebP output")
	imageCmd.Flags().String("folder", "", "convert every image in this folder")

	rootCmd.AddCommand(imageCmd)
}
