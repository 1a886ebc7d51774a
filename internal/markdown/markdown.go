// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown reduces Markdown documents to readable plain text.
//
// The conversion is a fixed, ordered list of textual rewrites rather than a
// Markdown parser. Order matters: header unwrapping and the other
// line-anchored rules must see the original line structure, code spans are
// removed before emphasis stripping could rewrite their content, and blank
// runs are collapsed only after rule and marker removal.
package markdown

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Pipeline is an ordered sequence of rules. Each rule sees the output of the
// previous one.
type Pipeline []Rule

// Run applies every rule in order.
func (p Pipeline) Run(text string) string {
	for _, r := range p {
		text = r.Apply(text)
	}
	return text
}

// Names returns the rule names in execution order.
func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for i, r := range p {
		names[i] = r.Name
	}
	return names
}

// DefaultPipeline returns the standard Markdown-to-text rule sequence.
func DefaultPipeline() Pipeline {
	return Pipeline{
		{Name: "normalize-newlines", Apply: NormalizeNewlines},
		{Name: "unwrap-headers", Apply: UnwrapHeaders},
		{Name: "strip-inline-code", Apply: StripInlineCode},
		{Name: "strip-fenced-code", Apply: StripFencedCode},
		{Name: "unwrap-links", Apply: UnwrapLinks},
		{Name: "remove-images", Apply: RemoveImages},
		{Name: "strip-emphasis", Apply: StripEmphasis},
		{Name: "remove-horizontal-rules", Apply: RemoveHorizontalRules},
		{Name: "strip-blockquotes", Apply: StripBlockquotes},
		{Name: "strip-list-markers", Apply: StripListMarkers},
		{Name: "collapse-blank-runs", Apply: CollapseBlankRuns},
		{Name: "trim", Apply: Trim},
	}
}

// Normalize converts Markdown text to plain text with the default pipeline.
func Normalize(text string) string {
	return DefaultPipeline().Run(text)
}

var (
	// ErrRead is returned when the Markdown source cannot be read.
	ErrRead = errors.New("failed to read markdown file")

	// ErrWrite is returned when the plain-text output cannot be written.
	ErrWrite = errors.New("failed to write text file")

	// ErrUnsupportedExtension is returned for sources that do not end in
	// .md or .markdown.
	ErrUnsupportedExtension = errors.New("markdown source must end in .md or .markdown")
)

var markdownExts = []string{".md", ".markdown"}

// TextPath returns the output path for a Markdown source: the .md or
// .markdown suffix (any case) is replaced with .txt. Other paths are
// rejected with ErrUnsupportedExtension.
func TextPath(src string) (string, error) {
	ext := filepath.Ext(src)
	for _, e := range markdownExts {
		if strings.EqualFold(ext, e) {
			return strings.TrimSuffix(src, ext) + ".txt", nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedExtension, src)
}

// ConvertFile reads the Markdown file at src, normalizes it, and writes the
// result next to it (see TextPath), overwriting any existing file. It
// returns the output path and the normalized text.
func ConvertFile(src string) (string, string, error) {
	dst, err := TextPath(src)
	if err != nil {
		return "", "", err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return "", "", fmt.Errorf("%w %s: %w", ErrRead, src, err)
	}

	text := Normalize(string(data))

	if err := os.WriteFile(dst, []byte(text), 0o644); err != nil {
		return "", "", fmt.Errorf("%w %s: %w", ErrWrite, dst, err)
	}
	return dst, text, nil
}
