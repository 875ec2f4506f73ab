package domain

import "errors"

var (
	ErrProductLookupFailed = errors.New("failed to look up or create product")
)

// MatchThreshold is the maximum Levenshtein distance between an incoming
// label and a previously seen label at the same shop for both to resolve to
// the same product. OCR noise on short labels is typically 1-2 character
// substitutions or drops.
const MatchThreshold = 2
