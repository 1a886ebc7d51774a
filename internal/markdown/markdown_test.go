// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "header bold and link",
			input: "# Title\n\nSome **bold** and [a link](http://x) text.\n",
			want:  "Title\n\nSome bold and a link text.",
		},
		{
			name:  "all list marker styles",
			input: "- item one\n* item two\n1. item three\n",
			want:  "item one\nitem two\nitem three",
		},
		{
			name:  "fenced block removed verbatim",
			input: "Before\n\n```\n**not bold**\n[link](x)\n# not a header\n```\n\nAfter\n",
			want:  "Before\n\nAfter",
		},
		{
			name:  "horizontal rule line deleted",
			input: "Intro\n\n---\n\nOutro",
			want:  "Intro\n\nOutro",
		},
		{
			name:  "rule between adjacent lines",
			input: "one\n---\ntwo",
			want:  "one\ntwo",
		},
		{
			name:  "image removed, link kept",
			input: "![logo](logo.png)\nRead the [guide](guide.md).",
			want:  "Read the guide.",
		},
		{
			name:  "blockquote and inline code",
			input: "> Run `make` first.\n> Then relax.",
			want:  "Run  first.\nThen relax.",
		},
		{
			name:  "windows line endings",
			input: "## Notes\r\n\r\n- first\r\n- second\r\n",
			want:  "Notes\n\nfirst\nsecond",
		},
		{
			name:  "blank runs collapse",
			input: "a\n\n\n\n\nb",
			want:  "a\n\nb",
		},
		{
			name:  "emphasis inside list item",
			input: "- **Bold** item with _note_\n",
			want:  "Bold item with note",
		},
		{
			name:  "inline spans around a double-backtick run",
			input: "use `a` or ``b`` then `c`\n",
			want:  "use  or ``b`` then",
		},
		{
			name:  "empty document",
			input: "\n\n",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotentOnPlainText(t *testing.T) {
	plain := []string{
		"Plain text line.\n\nAnother paragraph with snake_case_names and 3.14.",
		"Single line",
		"Line one\nLine two\n\nParagraph two, with a comma; and a (parenthetical).",
	}
	for _, text := range plain {
		once := Normalize(text)
		assert.Equal(t, strings.TrimSpace(text), once)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	input := "# Title\n\n- **one**\n- [two](x)\n\n---\n\n> three\n"
	once := Normalize(input)
	assert.Equal(t, once, Normalize(once))
}

func TestDefaultPipelineOrder(t *testing.T) {
	assert.Equal(t, []string{
		"normalize-newlines",
		"unwrap-headers",
		"strip-inline-code",
		"strip-fenced-code",
		"unwrap-links",
		"remove-images",
		"strip-emphasis",
		"remove-horizontal-rules",
		"strip-blockquotes",
		"strip-list-markers",
		"collapse-blank-runs",
		"trim",
	}, DefaultPipeline().Names())
}

func TestPipelineRunAppliesInOrder(t *testing.T) {
	p := Pipeline{
		{Name: "a", Apply: func(s string) string { return s + "a" }},
		{Name: "b", Apply: func(s string) string { return s + "b" }},
	}
	assert.Equal(t, "xab", p.Run("x"))
	assert.Equal(t, "x", Pipeline{}.Run("x"))
}

func TestTextPath(t *testing.T) {
	tests := []struct {
		src     string
		want    string
		wantErr bool
	}{
		{src: "notes.md", want: "notes.txt"},
		{src: "notes.markdown", want: "notes.txt"},
		{src: "NOTES.MD", want: "NOTES.txt"},
		{src: filepath.Join("dir.md", "notes.md"), want: filepath.Join("dir.md", "notes.txt")},
		{src: "notes.md.bak", wantErr: true},
		{src: "notes", wantErr: true},
		{src: "notes.txt", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := TextPath(tt.src)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedExtension)
				assert.Contains(t, err.Error(), tt.src)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(src, []byte("# Notes\n\n* one\n* two\n"), 0o644))

	// An existing output is overwritten.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("stale"), 0o644))

	dst, text, err := ConvertFile(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes.txt"), dst)
	assert.Equal(t, "Notes\n\none\ntwo", text)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, text, string(data))
}

func TestConvertFileReadError(t *testing.T) {
	src := filepath.Join(t.TempDir(), "missing.md")

	_, _, err := ConvertFile(src)
	require.ErrorIs(t, err, ErrRead)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, ErrWrite)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to read markdown file"))
}

func TestConvertFileWriteError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.markdown")
	require.NoError(t, os.WriteFile(src, []byte("text"), 0o644))
	// A directory in place of the output file makes the write fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "notes.txt"), 0o755))

	_, _, err := ConvertFile(src)
	require.ErrorIs(t, err, ErrWrite)
	assert.NotErrorIs(t, err, ErrRead)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to write text file"))
}

func TestConvertFileRejectsOtherExtensions(t *testing.T) {
	src := filepath.Join(t.TempDir(), "notes.rst")
	require.NoError(t, os.WriteFile(src, []byte("text"), 0o644))

	_, _, err := ConvertFile(src)
	require.ErrorIs(t, err, ErrUnsupportedExtension)
	assert.NoFileExists(t, src+".txt")
}
