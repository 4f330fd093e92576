package enrich

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/bluecite/internal/model"
)

// SearchKind selects the free-text search strategy
type SearchKind string

const (
	SearchCase    SearchKind = "case"
	SearchArticle SearchKind = "article"
	SearchStatute SearchKind = "statute"
)

// Strategy names recorded by SmartComplete
const (
	StrategyStructured     = "structured_lookup"
	StrategyURLMetadata    = "url_metadata"
	StrategyCaseText       = "case_text_search"
	StrategyStatuteText    = "statute_text_search"
	StrategyArticleText    = "article_text_search"
	StrategyFallbackSearch = "fallback_case_search"
)

const minSearchRunes = 3

var (
	versusSplit     = regexp.MustCompile(`\s+v\.?\s+`)
	yearInText      = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	corporateSuffix = regexp.MustCompile(`\b(?:Inc|Corp|Co|Ltd)\.`)
	uscInText       = regexp.MustCompile(`(?i)(\d+)\s*U\.?S\.?C\.?\s*§?\s*(\d+[a-z]?)`)
	cfrInText       = regexp.MustCompile(`(?i)(\d+)\s*C\.?F\.?R\.?\s*§?\s*(\d+(?:\.\d+)?)`)
	statuteHint     = regexp.MustCompile(`(?i)\b(?:U\.?S\.?C|C\.?F\.?R|Code)|§`)
)

// looksLikeCase reports whether free text names two parties
func looksLikeCase(text string) bool {
	return strings.Contains(text, " v. ") || strings.Contains(text, " v ")
}

// SearchByText searches one source with free-form text: a case name, an
// article title or a statute reference
func (s *Service) SearchByText(ctx context.Context, text string, kind SearchKind) Result {
	text = strings.TrimSpace(text)
	if len([]rune(text)) < minSearchRunes {
		return Result{Suggestions: []Record{}}
	}

	switch kind {
	case SearchCase:
		return s.cached("search-case", text, func() Result {
			return s.searchCaseByText(ctx, text)
		})
	case SearchArticle:
		return s.cached("search-article", text, func() Result {
			params := url.Values{}
			params.Set("query", text)
			params.Set("rows", strconv.Itoa(2*maxSuggestions))
			params.Set("filter", "type:journal-article")
			params.Set("select", crossRefFields)
			return s.searchCrossRef(ctx, params, true)
		})
	case SearchStatute:
		return ParseStatuteText(text)
	}
	return Result{Suggestions: []Record{}}
}

// searchCaseByText tries each query variant in turn and stops at the first
// that returns anything
func (s *Service) searchCaseByText(ctx context.Context, text string) Result {
	result := Result{Suggestions: []Record{}, Source: SourceCourtListener}
	seen := make(map[string]bool)

	for _, query := range CaseQueries(text) {
		params := url.Values{}
		params.Set("q", query)
		records, err := s.searchCourtListener(ctx, params)
		if err != nil {
			result.Error = err.Error()
			return result
		}

		for _, r := range records {
			id := r.URL + "\x00" + r.CaseName
			if !seen[id] {
				seen[id] = true
				result.Suggestions = append(result.Suggestions, r)
			}
		}
		if len(result.Suggestions) > 0 {
			break
		}
	}

	result.found()
	return result
}

// CaseQueries derives search variants from free text: the text itself,
// the quoted parties, a normalized "A v. B", the year moved to the end,
// and the text without corporate suffixes. Duplicates are dropped.
func CaseQueries(text string) []string {
	queries := []string{text}

	if looksLikeCase(text) {
		if parts := versusSplit.Split(text, 2); len(parts) == 2 {
			queries = append(queries,
				`"`+parts[0]+`" "`+parts[1]+`"`,
				parts[0]+" v. "+parts[1])
		}
	}

	if year := yearInText.FindString(text); year != "" {
		without := strings.TrimSpace(strings.ReplaceAll(text, year, ""))
		queries = append(queries, without+" "+year)
	}

	if clean := corporateSuffix.ReplaceAllString(text, ""); clean != text {
		queries = append(queries, strings.TrimSpace(clean))
	}

	seen := make(map[string]bool, len(queries))
	out := queries[:0]
	for _, q := range queries {
		if !seen[q] {
			seen[q] = true
			out = append(out, q)
		}
	}
	return out
}

// ParseStatuteText recognizes "42 U.S.C. § 1983" or "29 CFR 1604.11" in
// free text and returns links for it. No request is made.
func ParseStatuteText(text string) Result {
	if m := uscInText.FindStringSubmatch(text); m != nil {
		result := Result{Suggestions: []Record{statuteRecord(m[1], m[2], "U.S.C.")}, Source: SourceCornell}
		result.found()
		return result
	}

	if m := cfrInText.FindStringSubmatch(text); m != nil {
		result := Result{Suggestions: []Record{regulationRecord(m[1], m[2])}, Source: SourceECFR}
		result.found()
		return result
	}

	return Result{Suggestions: []Record{}, Source: SourceCornell}
}

// SmartComplete tries every strategy that fits what the citation carries:
// a structured lookup, page metadata for URLs, then free-text searches of
// the raw text as a case, a statute and an article, and a last generic case
// search. The first hit wins; InferredType is set when a text search
// decided the type.
func (s *Service) SmartComplete(ctx context.Context, c model.Citation) Result {
	var tried []string
	finish := func(r Result, inferred model.CitationType) Result {
		r.StrategiesTried = tried
		if inferred != "" {
			r.InferredType = inferred
		}
		return r
	}

	if c.Type != model.TypeOther {
		tried = append(tried, StrategyStructured)
		if r := s.Lookup(ctx, c); r.Found {
			return finish(r, "")
		}
	}

	if c.URL != "" {
		tried = append(tried, StrategyURLMetadata)
		if r := s.LookupWebsite(ctx, c); r.Found {
			return finish(r, "")
		}
	}

	raw := strings.TrimSpace(c.RawText)
	if raw != "" {
		if looksLikeCase(raw) {
			tried = append(tried, StrategyCaseText)
			if r := s.SearchByText(ctx, raw, SearchCase); r.Found {
				return finish(r, model.TypeCase)
			}
		}

		if statuteHint.MatchString(raw) {
			tried = append(tried, StrategyStatuteText)
			if r := s.SearchByText(ctx, raw, SearchStatute); r.Found {
				inferred := model.TypeStatute
				if r.Source == SourceECFR {
					inferred = model.TypeRegulation
				}
				return finish(r, inferred)
			}
		}

		tried = append(tried, StrategyArticleText)
		if r := s.SearchByText(ctx, raw, SearchArticle); r.Found {
			return finish(r, model.TypeLawReview)
		}

		tried = append(tried, StrategyFallbackSearch)
		if r := s.SearchByText(ctx, raw, SearchCase); r.Found {
			return finish(r, "")
		}
	}

	return finish(Result{Suggestions: []Record{}}, "")
}
