// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dispatch builds the argument sequence the external converter
// expects for each conversion operation.
//
// Every sequence starts with a mode flag (--image or --video) and the source
// path. Image sequences continue with the operation tag and its
// operation-specific arguments; optional arguments that were not supplied are
// left out rather than passed as empty strings. Overlay and video sequences
// have a fixed shape.
package dispatch

import (
	"go.uber.org/zap"

	"github.com/pdiddy/media-shell/internal/logging"
	"github.com/pdiddy/media-shell/pkg/types"
)

const (
	// FlagImage selects the image side of the converter.
	FlagImage = "--image"
	// FlagVideo selects the video side of the converter.
	FlagVideo = "--video"
	// FlagWebp asks the converter to write WebP output.
	FlagWebp = "--webp"
)

// Dispatcher turns conversion requests into argument sequences. It holds no
// state besides its logger and never fails.
type Dispatcher struct {
	log *zap.Logger
}

// New creates a Dispatcher. A nil logger disables omission traces.
func New(log *zap.Logger) *Dispatcher {
	return &Dispatcher{log: logging.OrNop(log).Named("dispatch")}
}

// Build returns the argument sequence for req, routing overlay and video
// requests to their fixed-shape builders.
func (d *Dispatcher) Build(req types.ConversionRequest) []string {
	switch req.Operation {
	case types.OpOverlay:
		return d.Overlay(req.SourcePath, types.Deref(req.Overlay.Path), types.Deref(req.Overlay.Option))
	case types.OpVideoConvert:
		v := req.Video
		return d.Video(req.SourcePath, types.Deref(v.AspectRatio), types.Deref(v.Resolution), types.Deref(v.Compression))
	default:
		return d.Image(req)
	}
}

// Image builds the sequence for the image operations: resize, resize-height,
// aspect-ratio, square700, square300 and the legacy fallback.
func (d *Dispatcher) Image(req types.ConversionRequest) []string {
	args := []string{FlagImage, req.SourcePath, string(req.Operation)}
	log := d.log.With(zap.String("operation", string(req.Operation)), zap.String("source", req.SourcePath))

	switch req.Operation {
	case types.OpResize:
		args = d.appendOptional(log, args, "width", req.TargetWidth)
		args = d.appendWebp(log, args, req.ToWebp)
	case types.OpResizeHeight:
		if req.TargetHeight == nil {
			log.Warn("target height not supplied, converter will use its default")
		}
		args = d.appendOptional(log, args, "height", req.TargetHeight)
		args = d.appendWebp(log, args, req.ToWebp)
	case types.OpAspectRatio:
		args = d.appendOptional(log, args, "aspect_ratio", req.AspectRatio)
		args = d.appendWebp(log, args, req.ToWebp)
	case types.OpSquare700, types.OpSquare300:
		args = d.appendWebp(log, args, req.ToWebp)
	default:
		log.Debug("operation has no dedicated rule, using fallback")
		args = d.appendOptional(log, args, "width", req.TargetWidth)
		args = d.appendOptional(log, args, "aspect_ratio", req.AspectRatio)
	}

	log.Debug("built image arguments", zap.Strings("args", args))
	return args
}

// Overlay builds the fixed sequence for compositing overlayPath onto base.
func (d *Dispatcher) Overlay(base, overlayPath, option string) []string {
	args := []string{FlagImage, base, string(types.OpOverlay), overlayPath, option}
	d.log.Debug("built overlay arguments", zap.Strings("args", args))
	return args
}

// Video builds the fixed sequence for a video conversion. All four values are
// positional and always present.
func (d *Dispatcher) Video(path, aspectRatio, resolution, compression string) []string {
	args := []string{FlagVideo, path, aspectRatio, resolution, compression}
	d.log.Debug("built video arguments", zap.Strings("args", args))
	return args
}

func (d *Dispatcher) appendOptional(log *zap.Logger, args []string, field string, v *string) []string {
	if v == nil {
		log.Debug("optional field omitted", zap.String("field", field))
		return args
	}
	return append(args, *v)
}

func (d *Dispatcher) appendWebp(log *zap.Logger, args []string, webp *bool) []string {
	if webp == nil || !*webp {
		log.Debug("webp output not requested")
		return args
	}
	return append(args, FlagWebp)
}
