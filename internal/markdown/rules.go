// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// Rule is one named text rewrite in the normalizer pipeline.
type Rule struct {
	Name  string
	Apply func(string) string
}

var (
	reHeader     = regexp.MustCompile(`(?m)^#{1,6} (.+)$`)
	reFencedCode = regexp.MustCompile("(?s)```.*?```")
	reImage      = regexp.MustCompile(`!\[[^\]\n]*\]\([^)\n]*\)`)
	reBoldStar   = regexp.MustCompile(`\*\*([^*\s](?:[^*\n]*[^*\s])?)\*\*`)
	reItalicStar = regexp.MustCompile(`\*([^*\s](?:[^*\n]*[^*\s])?)\*`)
	reBoldUnder  = regexp.MustCompile(`__([^_\s](?:[^_\n]*[^_\s])?)__`)
	reBlockquote = regexp.MustCompile(`(?m)^> `)
	reBullet     = regexp.MustCompile(`(?m)^[ \t]*[-*+] `)
	reOrdered    = regexp.MustCompile(`(?m)^[ \t]*\d+\. `)
	reBlankRun   = regexp.MustCompile(`\n{3,}`)

	// Backticks that belong to a longer run, such as a fence, never delimit
	// an inline span.
	reInlineCode = regexp2.MustCompile("(?<!`)`[^`\n]+`(?!`)", regexp2.None)

	// A link is not matched when it is the tail of an image.
	reLink = regexp2.MustCompile(`(?<!!)\[([^\]\n]*)\]\([^)\n]*\)`, regexp2.None)

	// Single underscores only count as emphasis at word edges, so the
	// underscores inside snake_case survive.
	reItalicUnder = regexp2.MustCompile(`(?<![\p{L}\p{N}_])_(?=[^_\s])([^_\n]*?[^_\s])_(?![\p{L}\p{N}_])`, regexp2.None)

	// The back-reference keeps mixed runs such as "-*-" from matching.
	reRule = regexp2.MustCompile(`^[ \t]*([-*_])\1{2,}[ \t]*(?:\n|$)`, regexp2.Multiline)
)

// replace2 applies a regexp2 substitution. Replace only fails on match
// timeouts, which are not configured, so the input is returned unchanged in
// that case.
func replace2(re *regexp2.Regexp, text, repl string) string {
	out, err := re.Replace(text, repl, -1, -1)
	if err != nil {
		return text
	}
	return out
}

// NormalizeNewlines rewrites CRLF line endings to LF so the line-anchored
// rules see every line boundary.
func NormalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// UnwrapHeaders replaces "# Title" through "###### Title" lines with the
// title text.
func UnwrapHeaders(text string) string {
	return reHeader.ReplaceAllString(text, "$1")
}

// StripInlineCode removes single-backtick spans. Backticks that belong to a
// longer run, such as a code fence, are left for StripFencedCode.
func StripInlineCode(text string) string {
	return replace2(reInlineCode, text, "")
}

// StripFencedCode removes triple-backtick blocks together with their content.
func StripFencedCode(text string) string {
	return reFencedCode.ReplaceAllString(text, "")
}

// UnwrapLinks replaces [label](target) with label. Image spans are left for
// RemoveImages.
func UnwrapLinks(text string) string {
	return replace2(reLink, text, "$1")
}

// RemoveImages drops ![alt](target) spans entirely.
func RemoveImages(text string) string {
	return reImage.ReplaceAllString(text, "")
}

// StripEmphasis removes **, *, __ and word-edge _ emphasis delimiters and
// keeps the emphasized text. Delimiters must hug their content, so list
// bullets and horizontal rules are not touched.
func StripEmphasis(text string) string {
	text = reBoldStar.ReplaceAllString(text, "$1")
	text = reItalicStar.ReplaceAllString(text, "$1")
	text = reBoldUnder.ReplaceAllString(text, "$1")
	return replace2(reItalicUnder, text, "$1")
}

// RemoveHorizontalRules deletes lines made only of three or more "-", "*" or
// "_" characters, including the line break.
func RemoveHorizontalRules(text string) string {
	return replace2(reRule, text, "")
}

// StripBlockquotes removes a leading "> " from each line.
func StripBlockquotes(text string) string {
	return reBlockquote.ReplaceAllString(text, "")
}

// StripListMarkers removes "- ", "* ", "+ " and "1. " style markers at the
// start of a line, along with their indentation.
func StripListMarkers(text string) string {
	text = reBullet.ReplaceAllString(text, "")
	return reOrdered.ReplaceAllString(text, "")
}

// CollapseBlankRuns reduces three or more consecutive newlines to two.
func CollapseBlankRuns(text string) string {
	return reBlankRun.ReplaceAllString(text, "\n\n")
}

// Trim removes leading and trailing whitespace from the document.
func Trim(text string) string {
	return strings.TrimSpace(text)
}
