// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Operation is the conversion mode selected by the caller.
type Operation string

const (
	OpResize       Operation = "resize"
	OpResizeHeight Operation = "resize-height"
	OpAspectRatio  Operation = "aspect-ratio"
	OpSquare700    Operation = "square700"
	OpSquare300    Operation = "square300"
	OpOverlay      Operation = "overlay"
	OpVideoConvert Operation = "video-convert"
)

// KnownOperations lists every operation tag with a dedicated dispatch rule.
// Anything else takes the fallback branch.
var KnownOperations = []Operation{
	OpResize,
	OpResizeHeight,
	OpAspectRatio,
	OpSquare700,
	OpSquare300,
	OpOverlay,
	OpVideoConvert,
}

// IsKnown reports whether op has a dedicated dispatch rule.
func (op Operation) IsKnown() bool {
	for _, k := range KnownOperations {
		if op == k {
			return true
		}
	}
	return false
}

// OverlayRequest holds the overlay-only fields of a ConversionRequest.
type OverlayRequest struct {
	// Path is the image composited on top of the source.
	Path *string `json:"path,omitempty" yaml:"path,omitempty"`

	// Option selects how the overlay is placed (e.g. "center", "tile").
	Option *string `json:"option,omitempty" yaml:"option,omitempty"`
}

// VideoRequest holds the video-only fields of a ConversionRequest.
type VideoRequest struct {
	AspectRatio *string `json:"aspect_ratio,omitempty" yaml:"aspect_ratio,omitempty"`
	Resolution  *string `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	Compression *string `json:"compression,omitempty" yaml:"compression,omitempty"`
}

// ConversionRequest describes one conversion handed to the external converter.
// Optional fields are nil when absent; the operation decides which of them are
// consulted and the rest are ignored.
type ConversionRequest struct {
	Operation  Operation `json:"operation" yaml:"operation"`
	SourcePath string    `json:"source" yaml:"source"`

	TargetWidth  *string `json:"width,omitempty" yaml:"width,omitempty"`
	TargetHeight *string `json:"height,omitempty" yaml:"height,omitempty"`
	AspectRatio  *string `json:"aspect_ratio,omitempty" yaml:"aspect_ratio,omitempty"`
	ToWebp       *bool   `json:"webp,omitempty" yaml:"webp,omitempty"`

	Overlay OverlayRequest `json:"overlay,omitempty" yaml:"overlay,omitempty"`
	Video   VideoRequest   `json:"video,omitempty" yaml:"video,omitempty"`
}

// Validate checks the fields the external converter cannot do without.
// Unknown operation tags are not an error; they are dispatched best-effort.
func (r ConversionRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.SourcePath, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("invalid %s request: %w", r.Operation, err)
	}

	switch r.Operation {
	case OpOverlay:
		o := r.Overlay
		if err := validation.ValidateStruct(&o,
			validation.Field(&o.Path, validation.Required),
			validation.Field(&o.Option, validation.Required),
		); err != nil {
			return fmt.Errorf("invalid overlay request: %w", err)
		}
	case OpVideoConvert:
		v := r.Video
		if err := validation.ValidateStruct(&v,
			validation.Field(&v.AspectRatio, validation.Required),
			validation.Field(&v.Resolution, validation.Required),
			validation.Field(&v.Compression, validation.Required),
		); err != nil {
			return fmt.Errorf("invalid video request: %w", err)
		}
	}
	return nil
}

// String returns a pointer to s, for filling optional request fields.
func String(s string) *string { return &s }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Deref returns the value behind p, or "" when p is nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
