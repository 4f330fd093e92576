package resolve

import (
	"strings"

	"github.com/ppiankov/bluecite/internal/model"
)

// Key derives the deduplication key that identifies the authority a
// citation refers to. Two citations name the same authority iff their keys
// are equal. It returns "" when the type has no natural identity or the
// identifying fields are missing; such citations are never short-formed.
func Key(c model.Citation) string {
	switch c.Type {
	case model.TypeCase:
		first, second := party(c, 0), party(c, 1)
		if first == "" && second == "" {
			return ""
		}
		return "case:" + first + ":" + second

	case model.TypeStatute:
		if c.Section == "" {
			return ""
		}
		// State codes carry no title number; the code name disambiguates
		title := c.TitleNumber
		if title == "" {
			title = c.Code
		}
		return "statute:" + title + ":" + c.Section

	case model.TypeRegulation:
		if c.Section == "" {
			return ""
		}
		return "reg:" + c.TitleNumber + ":" + c.Section

	case model.TypeLawReview:
		if c.Author == "" && c.Title == "" {
			return ""
		}
		return "article:" + c.Author + ":" + c.Title

	case model.TypeBook:
		if c.Author == "" && c.Title == "" {
			return ""
		}
		return "book:" + c.Author + ":" + c.Title

	case model.TypeNewspaper, model.TypeWebsite, model.TypeLegislative,
		model.TypeTreaty, model.TypeConstitution, model.TypeOther:
		return ""
	}

	return ""
}

func party(c model.Citation, i int) string {
	if i < len(c.Parties) {
		return strings.TrimSpace(c.Parties[i])
	}
	return ""
}

// surname is the last word of an author string
func surname(author string) string {
	words := strings.Fields(author)
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}
