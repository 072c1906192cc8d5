package usecase

import (
	"regexp"
	"strings"
)

// Compiled patterns for query normalization
var (
	controlCharsPattern = regexp.MustCompile(`[\x00-\x1f]`)
	punctuationPattern  = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	multiSpacePattern   = regexp.MustCompile(`\s+`)
)

// Maximum query length forwarded to the catalog API
const maxQueryLength = 100

// SearchNormalizer cleans free-text search queries before they are sent to
// the catalog API and builds the case-insensitive keys used to deduplicate
// recent searches.
type SearchNormalizer struct{}

// NewSearchNormalizer creates a new search normalizer
func NewSearchNormalizer() *SearchNormalizer {
	return &SearchNormalizer{}
}

// Normalize trims and collapses whitespace, strips control characters, and
// caps the query length at a word boundary. Returns "" for blank input.
func (n *SearchNormalizer) Normalize(query string) string {
	cleaned := controlCharsPattern.ReplaceAllString(query, " ")
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) > maxQueryLength {
		cleaned = cleaned[:maxQueryLength]
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > maxQueryLength/2 {
			cleaned = cleaned[:lastSpace]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}

// DedupKey maps queries that differ only in case, punctuation, or spacing to
// the same key.
func (n *SearchNormalizer) DedupKey(query string) string {
	key := strings.ToLower(query)
	key = punctuationPattern.ReplaceAllString(key, " ")
	key = multiSpacePattern.ReplaceAllString(key, " ")
	return strings.TrimSpace(key)
}
