// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pdiddy/media-shell/pkg/types"
)

// maxSuggestDistance bounds how far a typo may be from a known tag.
const maxSuggestDistance = 3

// Suggest returns the known operation closest to op by edit distance, for
// "did you mean" hints on unrecognized tags. It reports false when op is
// already known or nothing is close enough.
func Suggest(op types.Operation) (types.Operation, bool) {
	if op.IsKnown() {
		return "", false
	}
	needle := strings.ToLower(string(op))

	var (
		best     types.Operation
		bestDist = maxSuggestDistance + 1
	)
	for _, k := range types.KnownOperations {
		d := fuzzy.LevenshteinDistance(needle, string(k))
		if d < bestDist {
			best, bestDist = k, d
		}
	}
	if bestDist > maxSuggestDistance {
		return "", false
	}
	return best, true
}
