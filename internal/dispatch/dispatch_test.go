// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/media-shell/pkg/types"
)

func TestImage(t *testing.T) {
	tests := []struct {
		name string
		req  types.ConversionRequest
		want []string
	}{
		{
			name: "resize with width and webp",
			req: types.ConversionRequest{
				Operation:   types.OpResize,
				SourcePath:  "a.png",
				TargetWidth: types.String("1600"),
				ToWebp:      types.Bool(true),
			},
			want: []string{"--image", "a.png", "resize", "1600", "--webp"},
		},
		{
			name: "resize without width",
			req:  types.ConversionRequest{Operation: types.OpResize, SourcePath: "a.png"},
			want: []string{"--image", "a.png", "resize"},
		},
		{
			name: "resize ignores aspect ratio and height",
			req: types.ConversionRequest{
				Operation:    types.OpResize,
				SourcePath:   "a.png",
				TargetWidth:  types.String("800"),
				TargetHeight: types.String("600"),
				AspectRatio:  types.String("4:3"),
			},
			want: []string{"--image", "a.png", "resize", "800"},
		},
		{
			name: "resize with webp false",
			req: types.ConversionRequest{
				Operation:  types.OpResize,
				SourcePath: "a.png",
				ToWebp:     types.Bool(false),
			},
			want: []string{"--image", "a.png", "resize"},
		},
		{
			name: "resize-height with height",
			req: types.ConversionRequest{
				Operation:    types.OpResizeHeight,
				SourcePath:   "a.png",
				TargetHeight: types.String("900"),
				TargetWidth:  types.String("100"),
			},
			want: []string{"--image", "a.png", "resize-height", "900"},
		},
		{
			name: "resize-height without height keeps webp",
			req: types.ConversionRequest{
				Operation:  types.OpResizeHeight,
				SourcePath: "a.png",
				ToWebp:     types.Bool(true),
			},
			want: []string{"--image", "a.png", "resize-height", "--webp"},
		},
		{
			name: "aspect-ratio with ratio",
			req: types.ConversionRequest{
				Operation:   types.OpAspectRatio,
				SourcePath:  "a.png",
				AspectRatio: types.String("16:9"),
				TargetWidth: types.String("100"),
				ToWebp:      types.Bool(true),
			},
			want: []string{"--image", "a.png", "aspect-ratio", "16:9", "--webp"},
		},
		{
			name: "aspect-ratio without ratio",
			req:  types.ConversionRequest{Operation: types.OpAspectRatio, SourcePath: "a.png"},
			want: []string{"--image", "a.png", "aspect-ratio"},
		},
		{
			name: "square700 ignores dimensions",
			req: types.ConversionRequest{
				Operation:    types.OpSquare700,
				SourcePath:   "a.png",
				TargetWidth:  types.String("100"),
				TargetHeight: types.String("100"),
				AspectRatio:  types.String("1:1"),
				ToWebp:       types.Bool(true),
			},
			want: []string{"--image", "a.png", "square700", "--webp"},
		},
		{
			name: "square300 plain",
			req:  types.ConversionRequest{Operation: types.OpSquare300, SourcePath: "a.png"},
			want: []string{"--image", "a.png", "square300"},
		},
		{
			name: "fallback appends width then aspect ratio",
			req: types.ConversionRequest{
				Operation:   "width1600",
				SourcePath:  "a.png",
				TargetWidth: types.String("1600"),
				AspectRatio: types.String("3:2"),
				ToWebp:      types.Bool(true),
			},
			want: []string{"--image", "a.png", "width1600", "1600", "3:2"},
		},
		{
			name: "fallback with only aspect ratio",
			req: types.ConversionRequest{
				Operation:   "",
				SourcePath:  "a.png",
				AspectRatio: types.String("3:2"),
			},
			want: []string{"--image", "a.png", "", "3:2"},
		},
		{
			name: "supplied empty width is kept",
			req: types.ConversionRequest{
				Operation:   types.OpResize,
				SourcePath:  "a.png",
				TargetWidth: types.String(""),
			},
			want: []string{"--image", "a.png", "resize", ""},
		},
	}

	d := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Image(tt.req))
			assert.Equal(t, tt.want, d.Build(tt.req))
		})
	}
}

func TestOverlayFixedShape(t *testing.T) {
	d := New(nil)

	got := d.Overlay("base.png", "top.png", "tile")
	assert.Equal(t, []string{"--image", "base.png", "overlay", "top.png", "tile"}, got)

	got = d.Build(types.ConversionRequest{Operation: types.OpOverlay, SourcePath: "base.png"})
	assert.Equal(t, []string{"--image", "base.png", "overlay", "", ""}, got)
}

func TestVideoFixedShape(t *testing.T) {
	d := New(nil)

	got := d.Build(types.ConversionRequest{
		Operation:  types.OpVideoConvert,
		SourcePath: "clip.mov",
		Video: types.VideoRequest{
			AspectRatio: types.String("16:9"),
			Resolution:  types.String("720p"),
			Compression: types.String("high"),
		},
		ToWebp: types.Bool(true),
	})
	assert.Equal(t, []string{"--video", "clip.mov", "16:9", "720p", "high"}, got)

	got = d.Build(types.ConversionRequest{Operation: types.OpVideoConvert, SourcePath: "clip.mov"})
	assert.Len(t, got, 5)
	assert.Equal(t, "--video", got[0])
}

func TestResizeHeightOmissionIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d := New(zap.New(core))

	got := d.Image(types.ConversionRequest{Operation: types.OpResizeHeight, SourcePath: "a.png"})
	assert.Equal(t, []string{"--image", "a.png", "resize-height"}, got)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "target height not supplied")
	assert.Equal(t, "a.png", warnings[0].ContextMap()["source"])
}

func TestResizeHeightWithHeightDoesNotWarn(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d := New(zap.New(core))

	d.Image(types.ConversionRequest{
		Operation:    types.OpResizeHeight,
		SourcePath:   "a.png",
		TargetHeight: types.String("400"),
	})
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}
