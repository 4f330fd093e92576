package extract

import (
	"strings"
	"unicode/utf8"
)

// maxPartyWords caps how far back the cleaner walks from "v."
const maxPartyWords = 6

// Words after which the party name starts
var partyBoundaryWords = map[string]bool{
	"in": true, "see": true, "but": true, "compare": true, "accord": true,
	"held": true, "ruled": true, "found": true, "stated": true, "noted": true,
	"concluded": true,
}

// Leading signals and articles stripped from a party name
var partyLeadingWords = map[string]bool{
	"The": true, "A": true, "An": true, "See": true, "In": true, "But": true,
	"Cf.": true, "Also": true, "also": true, "that": true,
}

var knownAbbreviations = map[string]bool{
	"Mr.": true, "Mrs.": true, "Ms.": true, "Dr.": true, "Jr.": true, "Sr.": true,
	"Inc.": true, "Corp.": true, "Co.": true, "Ltd.": true, "LLC.": true, "v.": true,
	"U.S.": true, "S.": true, "N.": true, "E.": true, "W.": true,
}

// cleanPartyName trims sentence text that a greedy party capture swallowed.
// It walks back from the end of the capture to the last sentence boundary,
// boundary word, or word cap, then drops leading signal words. When nothing
// is left the trimmed capture is returned.
func cleanPartyName(name string) string {
	name = strings.TrimSpace(name)
	words := strings.Fields(name)
	if len(words) == 0 {
		return name
	}

	start := 0
	for i := len(words) - 1; i >= 0; i-- {
		word := words[i]
		lower := strings.TrimRight(strings.ToLower(word), ".,;:")

		if i < len(words)-1 && strings.HasSuffix(word, ".") && !isAbbreviation(word) {
			start = i + 1
			break
		}
		if partyBoundaryWords[lower] {
			start = i + 1
			break
		}
		if len(words)-i > maxPartyWords {
			start = i + 1
			break
		}
	}

	result := words[start:]
	for len(result) > 0 && partyLeadingWords[result[0]] {
		result = result[1:]
	}
	if len(result) == 0 {
		return name
	}
	return strings.Join(result, " ")
}

func isAbbreviation(word string) bool {
	return knownAbbreviations[word] ||
		(utf8.RuneCountInString(word) <= 4 && strings.HasSuffix(word, "."))
}
