package keyword

import (
	"regexp"
	"sort"
	"strings"
)

const (
	// DefaultMaxKeywords caps the extraction output.
	DefaultMaxKeywords = 10
	// DefaultMinLength is the shortest token kept (tokens of length <=3 are noise).
	DefaultMinLength = 4
)

// stopWords are common English function words excluded from extraction.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "a": {}, "an": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {},
	"with": {}, "by": {}, "about": {}, "as": {},
	"is": {}, "was": {}, "were": {}, "be": {}, "been": {}, "are": {},
	"this": {}, "that": {}, "it": {},
}

var (
	nonWord = regexp.MustCompile(`\W+`)
	numeric = regexp.MustCompile(`^\d+$`)
)

// Extractor reduces a free-text narrative to a bounded, frequency-ranked list
// of salient terms. It is stateless; a single instance is safe for concurrent
// use.
type Extractor struct {
	maxKeywords int
	minLength   int
}

// NewExtractor creates an extractor. Non-positive arguments fall back to the
// defaults.
func NewExtractor(maxKeywords, minLength int) *Extractor {
	if maxKeywords <= 0 {
		maxKeywords = DefaultMaxKeywords
	}
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	return &Extractor{maxKeywords: maxKeywords, minLength: minLength}
}

// Extract returns up to maxKeywords unique lowercase terms ordered by
// descending frequency, ties broken by first occurrence. Empty or unusable
// input yields an empty result rather than an error so that callers can feed
// it partially-typed text.
func (e *Extractor) Extract(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	// Replace non-printable characters with spaces before tokenizing.
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return ' '
		}
		return r
	}, text)
	clean = strings.ToLower(clean)

	counts := make(map[string]int)
	var order []string
	for _, token := range nonWord.Split(clean, -1) {
		if len(token) < e.minLength {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		if numeric.MatchString(token) {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	// Stable sort keeps first-seen order for equal frequencies.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > e.maxKeywords {
		order = order[:e.maxKeywords]
	}
	return order
}
