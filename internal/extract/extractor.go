package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/ppiankov/bluecite/internal/catalog"
	"github.com/ppiankov/bluecite/internal/model"
)

// captures gives named access to the optional groups of one match.
// An absent group reads as "".
type captures struct {
	text string
	re   *regexp.Regexp
	loc  []int
}

func (c captures) get(name string) string {
	i := c.re.SubexpIndex(name)
	if i < 0 || 2*i+1 >= len(c.loc) || c.loc[2*i] < 0 {
		return ""
	}
	return c.text[c.loc[2*i]:c.loc[2*i+1]]
}

// getInt parses a numeric group; unparseable or absent groups read as 0
func (c captures) getInt(name string) int {
	n, err := strconv.Atoi(c.get(name))
	if err != nil {
		return 0
	}
	return n
}

// matcher finds one family of citations. guard, when set, rejects a match
// whose trailing text it matches.
type matcher struct {
	name  string
	re    *regexp.Regexp
	guard *regexp.Regexp
	build func(c captures) model.Citation
}

// Extractor turns document text into an ordered sequence of citations
type Extractor struct {
	matchers []matcher
	newID    func() string
}

// NewExtractor creates an extractor with the Bluebook matchers in priority
// order. Earlier matchers win contested text.
func NewExtractor() *Extractor {
	return &Extractor{
		matchers: []matcher{
			{name: "case_complete", re: catalog.CaseComplete, build: buildCompleteCase},
			{name: "case_incomplete", re: catalog.CaseIncomplete, guard: catalog.CaseIncompleteGuard, build: buildIncompleteCase},
			{name: "statute_usc", re: catalog.StatuteUSC, build: buildFederalStatute},
			{name: "statute_state", re: catalog.StatuteState, build: buildStateStatute},
			{name: "regulation_cfr", re: catalog.RegulationCFR, build: buildRegulation},
			{name: "law_review", re: catalog.LawReview, build: buildLawReview},
			{name: "book", re: catalog.Book, build: buildBook},
			{name: "id", re: catalog.ID, build: buildID},
			{name: "supra", re: catalog.Supra, build: buildSupra},
			{name: "url", re: catalog.URL, build: buildURL},
		},
		newID: uuid.NewString,
	}
}

// Extract returns every citation in text sorted by start offset, with
// footnote numbers assigned. It never fails; text without citations yields
// an empty result.
func (e *Extractor) Extract(text string) []model.Citation {
	registry := NewSpanRegistry()
	var citations []model.Citation

	for _, m := range e.matchers {
		for _, loc := range m.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := loc[0], loc[1]
			if start == end {
				continue
			}
			if m.guard != nil && m.guard.MatchString(text[end:]) {
				continue
			}
			if !registry.Claim(start, end) {
				continue
			}

			citation := m.build(captures{text: text, re: m.re, loc: loc})
			citation.ID = e.newID()
			citation.RawText = text[start:end]
			citation.PositionStart = start
			citation.PositionEnd = end
			citations = append(citations, citation)
		}
	}

	sort.SliceStable(citations, func(i, j int) bool {
		return citations[i].PositionStart < citations[j].PositionStart
	})

	assignFootnotes(citations, findFootnoteMarkers(text, registry))
	attachHereinafters(citations, text)

	return citations
}

// attachHereinafters records a "[hereinafter X]" written directly after a
// citation on that citation
func attachHereinafters(citations []model.Citation, text string) {
	if len(citations) == 0 {
		return
	}

	for _, loc := range catalog.Hereinafter.FindAllStringSubmatchIndex(text, -1) {
		idx := sort.Search(len(citations), func(i int) bool {
			return citations[i].PositionEnd > loc[0]
		}) - 1
		if idx < 0 {
			continue
		}

		between := text[citations[idx].PositionEnd:loc[0]]
		if strings.Trim(between, " \t\n,;") != "" {
			continue
		}
		citations[idx].Hereinafter = strings.TrimSpace(text[loc[2]:loc[3]])
	}
}

func buildCompleteCase(c captures) model.Citation {
	citation := model.Citation{
		Type:     model.TypeCase,
		Status:   model.StatusComplete,
		Parties:  []string{cleanPartyName(c.get("plaintiff")), cleanPartyName(c.get("defendant"))},
		Volume:   c.get("volume"),
		Reporter: strings.TrimSpace(c.get("reporter")),
		Page:     c.get("page"),
		Pincite:  c.get("pincite"),
	}

	// Year is the first four digits; whatever remains names the court
	courtYear := c.get("court_year")
	if year := catalog.Year.FindString(courtYear); year != "" {
		citation.Year, _ = strconv.Atoi(year)
		citation.Court = strings.TrimSpace(strings.ReplaceAll(courtYear, year, ""))
	}

	return citation
}

func buildIncompleteCase(c captures) model.Citation {
	return model.Citation{
		Type:    model.TypeCase,
		Status:  model.StatusIncomplete,
		Parties: []string{cleanPartyName(c.get("plaintiff")), cleanPartyName(c.get("defendant"))},
	}
}

func buildFederalStatute(c captures) model.Citation {
	return model.Citation{
		Type:        model.TypeStatute,
		Status:      model.StatusComplete,
		TitleNumber: c.get("title"),
		Code:        "U.S.C.",
		Section:     c.get("section"),
		Subsection:  c.get("subsection"),
		Year:        c.getInt("year"),
	}
}

func buildStateStatute(c captures) model.Citation {
	return model.Citation{
		Type:    model.TypeStatute,
		Status:  model.StatusNeedsVerification,
		Code:    strings.TrimSpace(c.get("code")),
		Section: c.get("section"),
	}
}

func buildRegulation(c captures) model.Citation {
	return model.Citation{
		Type:        model.TypeRegulation,
		Status:      model.StatusComplete,
		TitleNumber: c.get("title"),
		Code:        "C.F.R.",
		Section:     c.get("section"),
		Year:        c.getInt("year"),
	}
}

func buildLawReview(c captures) model.Citation {
	return model.Citation{
		Type:    model.TypeLawReview,
		Status:  model.StatusComplete,
		Author:  strings.TrimSpace(c.get("author")),
		Title:   strings.TrimSpace(c.get("title")),
		Volume:  c.get("volume"),
		Journal: strings.TrimSpace(c.get("journal")),
		Page:    c.get("page"),
		Pincite: c.get("pincite"),
		Year:    c.getInt("year"),
	}
}

func buildBook(c captures) model.Citation {
	return model.Citation{
		Type:    model.TypeBook,
		Status:  model.StatusComplete,
		Author:  strings.TrimSpace(c.get("author")),
		Title:   strings.TrimSpace(c.get("title")),
		Edition: c.get("edition"),
		Year:    c.getInt("year"),
	}
}

func buildID(c captures) model.Citation {
	return model.Citation{
		Type:          model.TypeOther,
		Status:        model.StatusComplete,
		IsShortForm:   true,
		ShortFormType: model.ShortFormID,
		Pincite:       c.get("pincite"),
	}
}

func buildSupra(c captures) model.Citation {
	return model.Citation{
		Type:           model.TypeOther,
		Status:         model.StatusComplete,
		IsShortForm:    true,
		ShortFormType:  model.ShortFormSupra,
		Author:         strings.TrimSpace(c.get("author")),
		ReferencedNote: c.getInt("note"),
		Pincite:        c.get("pincite"),
	}
}

func buildURL(c captures) model.Citation {
	return model.Citation{
		Type:   model.TypeWebsite,
		Status: model.StatusIncomplete,
		URL:    c.text[c.loc[0]:c.loc[1]],
	}
}
