// Package format renders citations as Bluebook display strings.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ppiankov/bluecite/internal/catalog"
	"github.com/ppiankov/bluecite/internal/model"
	"golang.org/x/net/html"
)

// Style selects between law review and court document typography
type Style int

const (
	// LawReview italicizes case names and closes every citation with a period
	LawReview Style = iota
	// Brief leaves case names in roman type
	Brief
)

// Formatter renders citations from their structured fields. It never looks
// anything up; missing fields fall back to the citation's raw text.
type Formatter struct {
	style Style
}

// NewFormatter creates a formatter for the given style
func NewFormatter(style Style) *Formatter {
	return &Formatter{style: style}
}

// StyleFor maps the law-review flag from configuration to a Style
func StyleFor(lawReview bool) Style {
	if lawReview {
		return LawReview
	}
	return Brief
}

// Format renders a citation in full form
func (f *Formatter) Format(c model.Citation) string {
	switch c.Type {
	case model.TypeCase:
		return f.formatCase(c)
	case model.TypeStatute:
		return f.formatStatute(c)
	case model.TypeRegulation:
		return f.formatRegulation(c)
	case model.TypeLawReview:
		return f.formatLawReview(c)
	case model.TypeBook:
		return f.formatBook(c)
	case model.TypeWebsite:
		return f.formatWebsite(c)
	case model.TypeNewspaper, model.TypeLegislative, model.TypeTreaty,
		model.TypeConstitution, model.TypeOther:
		return c.RawText
	}
	return c.RawText
}

// Render produces the display string for a citation given the resolver's
// decision about it
func (f *Formatter) Render(c model.Citation, s model.Suggestion) string {
	switch s.ShortFormType {
	case model.ShortFormFull, "":
		out := f.Format(c)
		if s.AddHereinafter != "" {
			out = withHereinafter(out, s.AddHereinafter)
		}
		return out
	case model.ShortFormID, model.ShortFormSupra, model.ShortFormHereinafter, model.ShortFormShortCase:
		return s.SuggestedForm
	}
	return s.SuggestedForm
}

// withHereinafter inserts "[hereinafter X]" before the closing period
func withHereinafter(formatted, alias string) string {
	designation := " [hereinafter " + alias + "]"
	if strings.HasSuffix(formatted, ".") {
		return strings.TrimSuffix(formatted, ".") + designation + "."
	}
	return formatted + designation
}

func (f *Formatter) formatCase(c model.Citation) string {
	if len(c.Parties) < 2 {
		return c.RawText
	}

	name := catalog.AbbreviatePartyName(c.Parties[0]) + " v. " + catalog.AbbreviatePartyName(c.Parties[1])

	var reporterCite string
	if c.Volume != "" && c.Reporter != "" && c.Page != "" {
		reporterCite = fmt.Sprintf("%s %s %s", c.Volume, catalog.ReporterAbbreviation(c.Reporter), c.Page)
		if c.Pincite != "" {
			reporterCite += ", " + c.Pincite
		}
	}

	paren := ""
	if cy := courtYear(c.Court, c.Year); cy != "" {
		paren = " (" + cy + ")"
	}

	switch {
	case f.style == LawReview && reporterCite != "":
		return fmt.Sprintf("*%s*, %s%s.", name, reporterCite, paren)
	case reporterCite != "":
		return fmt.Sprintf("%s, %s%s", name, reporterCite, paren)
	case f.style == LawReview:
		return "*" + name + "*"
	default:
		return name
	}
}

// courtYear builds the parenthetical contents. The court is omitted for the
// Supreme Court or any court whose abbreviation is empty.
func courtYear(court string, year int) string {
	if year == 0 {
		return ""
	}
	if court == "" {
		return strconv.Itoa(year)
	}

	abbrev := catalog.CourtAbbreviation(court)
	if abbrev == "" || strings.Contains(court, "U.S.") {
		return strconv.Itoa(year)
	}
	return fmt.Sprintf("%s %d", abbrev, year)
}

func (f *Formatter) formatStatute(c model.Citation) string {
	if c.Section == "" {
		return c.RawText
	}

	var base string
	switch {
	case c.TitleNumber != "":
		code := c.Code
		if code == "" {
			code = "U.S.C."
		}
		base = fmt.Sprintf("%s %s § %s", c.TitleNumber, code, c.Section)
	case c.Code != "":
		base = fmt.Sprintf("%s § %s", catalog.AbbreviateCode(c.Code), c.Section)
	default:
		return c.RawText
	}

	if c.Subsection != "" {
		base += "(" + c.Subsection + ")"
	}
	return withYear(base, c.Year)
}

func (f *Formatter) formatRegulation(c model.Citation) string {
	if c.TitleNumber == "" || c.Section == "" {
		return c.RawText
	}
	return withYear(fmt.Sprintf("%s C.F.R. § %s", c.TitleNumber, c.Section), c.Year)
}

func withYear(base string, year int) string {
	if year != 0 {
		return fmt.Sprintf("%s (%d).", base, year)
	}
	return base + "."
}

func (f *Formatter) formatLawReview(c model.Citation) string {
	var parts []string
	if c.Author != "" {
		parts = append(parts, cleanHTML(c.Author))
	}
	if c.Title != "" {
		parts = append(parts, "*"+cleanHTML(c.Title)+"*")
	}
	if c.Volume != "" && c.Journal != "" && c.Page != "" {
		volumeCite := fmt.Sprintf("%s %s %s", c.Volume, catalog.JournalAbbreviation(c.Journal), c.Page)
		if c.Pincite != "" {
			volumeCite += ", " + c.Pincite
		}
		parts = append(parts, volumeCite)
	}

	if len(parts) == 0 {
		return c.RawText
	}

	out := strings.Join(parts, ", ")
	if c.Year != 0 {
		out += fmt.Sprintf(" (%d)", c.Year)
	}
	return out + "."
}

func (f *Formatter) formatBook(c model.Citation) string {
	var parts []string
	if c.Author != "" {
		parts = append(parts, cleanHTML(c.Author)+",")
	}
	if c.Title != "" {
		// Small caps in print
		parts = append(parts, strings.ToUpper(cleanHTML(c.Title)))
	}

	var paren []string
	if c.Edition != "" {
		paren = append(paren, c.Edition+" ed.")
	}
	if c.Year != 0 {
		paren = append(paren, strconv.Itoa(c.Year))
	}
	if len(paren) > 0 {
		parts = append(parts, "("+strings.Join(paren, " ")+")")
	}

	if len(parts) == 0 {
		return c.RawText
	}
	return strings.Join(parts, " ") + "."
}

func (f *Formatter) formatWebsite(c model.Citation) string {
	var parts []string
	if c.Author != "" {
		parts = append(parts, cleanHTML(c.Author))
	}
	if c.Title != "" {
		parts = append(parts, "*"+cleanHTML(c.Title)+"*")
	}
	if c.URL != "" {
		parts = append(parts, c.URL)
	}

	if len(parts) == 0 {
		return c.RawText
	}

	out := strings.Join(parts, ", ")
	if c.AccessDate != "" {
		out += " (last visited " + c.AccessDate + ")"
	}
	return out + "."
}

// cleanHTML keeps the text content of a fragment, dropping tags and
// decoding entities
func cleanHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
