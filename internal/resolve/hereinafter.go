package resolve

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/bluecite/internal/model"
)

const (
	longTitleRunes    = 60
	genericTitleRunes = 40
	aliasWords        = 3
)

var genericTitleOpeners = []string{
	"The ", "A ", "An ", "On ", "In ", "Notes on",
	"Introduction to", "Analysis of", "Study of",
}

var aliasStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "on": true, "in": true,
	"of": true, "to": true, "for": true, "and": true,
}

// hereinafterReason explains why a first occurrence should carry a
// [hereinafter] alias, or returns "" when it should not
func hereinafterReason(c model.Citation) string {
	if n := utf8.RuneCountInString(c.Title); n > longTitleRunes {
		return fmt.Sprintf("Long title (%d chars) - consider adding [hereinafter]", n)
	}

	if strings.Contains(c.Author, " & ") || strings.Count(c.Author, ",") >= 2 {
		return "Multiple authors - consider adding [hereinafter]"
	}

	if c.Type == model.TypeLawReview || c.Type == model.TypeBook {
		if utf8.RuneCountInString(c.Title) > genericTitleRunes {
			for _, opener := range genericTitleOpeners {
				if strings.HasPrefix(c.Title, opener) {
					return "Generic title pattern - consider adding [hereinafter]"
				}
			}
		}
	}

	return ""
}

// hereinafterName builds a short alias from the first distinctive title
// words, falling back to the leading title words, the author's surname, and
// finally "Source"
func hereinafterName(c model.Citation) string {
	if words := strings.Fields(c.Title); len(words) > 0 {
		var distinctive []string
		for _, word := range words {
			clean := strings.Trim(word, `,:;."'`)
			if aliasStopWords[strings.ToLower(clean)] || utf8.RuneCountInString(clean) <= 2 {
				continue
			}
			distinctive = append(distinctive, clean)
			if len(distinctive) == aliasWords {
				break
			}
		}
		if len(distinctive) > 0 {
			return strings.Join(distinctive, " ")
		}

		if len(words) > aliasWords {
			words = words[:aliasWords]
		}
		return strings.Join(words, " ")
	}

	if name := surname(c.Author); name != "" {
		return name
	}

	return "Source"
}
