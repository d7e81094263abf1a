package source

import "strings"

// cryptoTerms are the well-known terms used to tag articles whose
// provider does not supply its own tags.
var cryptoTerms = []string{"bitcoin", "ethereum", "blockchain", "crypto", "defi", "nft", "token"}

// matchCryptoTags returns the crypto terms present in text, deduplicated,
// in the fixed term order.
func matchCryptoTags(text string) []string {
	lower := strings.ToLower(text)

	var matches []string
	for _, term := range cryptoTerms {
		if strings.Contains(lower, term) {
			matches = append(matches, term)
		}
	}
	return matches
}
