// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/media-shell/pkg/types"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		op     types.Operation
		want   types.Operation
		wantOK bool
	}{
		{op: "sqaure700", want: types.OpSquare700, wantOK: true},
		{op: "RESIZE", want: types.OpResize, wantOK: true},
		{op: "resize-hieght", want: types.OpResizeHeight, wantOK: true},
		{op: "overlay", wantOK: false},
		{op: "grayscale", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			got, ok := Suggest(tt.op)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
