package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ppiankov/bluecite/internal/model"
)

const (
	// A citation starting this many bytes after a sentence still sources it
	citationReach = 30
	// Shorter sentences are never reported
	minClaimRunes = 20
)

var (
	sentenceBoundary = regexp.MustCompile(`[.!?](\s+)[A-Z]`)
	quotation        = regexp.MustCompile(`"([^"]{15,})"`)
	caseNameTerm     = regexp.MustCompile(`([A-Z][a-zA-Z]+)\s+v\.\s+([A-Z][a-zA-Z]+)`)
	searchWord       = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)
)

var legalConcepts = []string{
	"due process", "equal protection", "free speech", "establishment clause",
	"commerce clause", "supremacy clause", "strict scrutiny", "rational basis",
	"standing", "mootness", "ripeness", "sovereign immunity", "qualified immunity",
	"probable cause", "reasonable suspicion", "exigent circumstances",
}

var searchStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true, "was": true, "were": true,
	"it": true, "that": true, "this": true, "as": true, "of": true, "to": true, "in": true,
	"for": true, "on": true, "with": true, "by": true, "from": true, "at": true, "and": true,
	"or": true, "but": true, "not": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true, "might": true,
	"must": true, "shall": true, "can": true, "need": true, "there": true, "here": true,
}

// claimRule classifies a sentence when any of its patterns match
type claimRule struct {
	claimType  model.ClaimType
	confidence float64
	patterns   []*regexp.Regexp
}

// ClaimDetector finds sentences that assert something a reader would
// expect a citation for, but have none nearby
type ClaimDetector struct {
	rules []claimRule
	newID func() string
}

// NewClaimDetector creates a detector with the built-in rules, checked in
// order: legal, statistical, factual. Quotations are checked before all.
func NewClaimDetector() *ClaimDetector {
	return &ClaimDetector{
		rules: []claimRule{
			{
				claimType:  model.ClaimTypeLegal,
				confidence: 0.85,
				patterns: compileAll("(?i)",
					`(?:The|A)\s+(?:Supreme )?[Cc]ourt\s+(?:has\s+)?(?:held|ruled|found|determined|concluded|stated)`,
					`(?:Under|According to|Pursuant to)\s+(?:the\s+)?(?:\w+\s+)?(?:law|statute|regulation|rule|doctrine)`,
					`(?:The|A)\s+(?:\w+\s+)?(?:test|standard|doctrine|rule|principle)\s+(?:requires|provides|states|holds)`,
					`(?:Congress|The legislature)\s+(?:has\s+)?(?:enacted|passed|established|created)`,
					`(?:The Constitution|The \w+ Amendment)\s+(?:provides|guarantees|requires|prohibits)`,
					`(?:Courts|Judges|The judiciary)\s+(?:have|has)\s+(?:consistently|uniformly|generally)`,
					`[Ii]t is (?:well[- ])?(?:established|settled)\s+(?:law\s+)?that`,
				),
			},
			{
				claimType:  model.ClaimTypeStatistical,
				confidence: 0.90,
				patterns: compileAll("",
					`\d+(?:\.\d+)?%`,
					`\d+(?:,\d{3})*(?:\.\d+)?\s+(?:people|individuals|cases|incidents|dollars)`,
					`(?:approximately|about|nearly|over|under|more than|less than)\s+\d+`,
					`(?:majority|minority|plurality)\s+of`,
					`(?:[Ss]tudies|[Rr]esearch|[Dd]ata|[Ee]vidence)\s+(?:show|indicate|suggest|demonstrate)`,
				),
			},
			{
				claimType:  model.ClaimTypeFactual,
				confidence: 0.70,
				patterns: compileAll("(?i)",
					`[Ii]t is (?:a\s+)?(?:well[- ])?(?:known|established|documented)\s+(?:fact\s+)?that`,
					`[Aa]s a matter of fact`,
					`[Hh]istorically`,
					`[Tt]raditionally`,
					`[Gg]enerally(?:,)?\s+(?:speaking)?`,
					`[Ii]t is (?:commonly|widely|generally)\s+(?:accepted|believed|understood)`,
				),
			},
		},
		newID: uuid.NewString,
	}
}

func compileAll(flags string, exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = regexp.MustCompile(flags + expr)
	}
	return out
}

// Detect reports unsourced claims in text, given the citations already
// extracted from it
func (d *ClaimDetector) Detect(text string, citations []model.Citation) []model.UnsourcedClaim {
	var claims []model.UnsourcedClaim
	for _, s := range splitSentences(text) {
		if hasNearbyCitation(s.start, s.end, citations) {
			continue
		}
		if claim, ok := d.classify(s); ok {
			claims = append(claims, claim)
		}
	}
	return claims
}

type sentence struct {
	start, end int
	text       string
}

// splitSentences breaks text after terminal punctuation followed by
// whitespace and a capital letter, keeping byte offsets
func splitSentences(text string) []sentence {
	var out []sentence
	last := 0
	for _, loc := range sentenceBoundary.FindAllStringSubmatchIndex(text, -1) {
		end := loc[0] + 1
		out = append(out, sentence{start: last, end: end, text: text[last:end]})
		last = loc[3]
	}
	if last < len(text) {
		out = append(out, sentence{start: last, end: len(text), text: text[last:]})
	}
	return out
}

func hasNearbyCitation(start, end int, citations []model.Citation) bool {
	for _, c := range citations {
		if start <= c.PositionStart && c.PositionStart <= end {
			return true
		}
		if gap := c.PositionStart - end; gap >= 0 && gap <= citationReach {
			return true
		}
	}
	return false
}

func (d *ClaimDetector) classify(s sentence) (model.UnsourcedClaim, bool) {
	trimmed := strings.TrimSpace(s.text)
	if utf8.RuneCountInString(trimmed) < minClaimRunes {
		return model.UnsourcedClaim{}, false
	}

	claim := model.UnsourcedClaim{
		ID:            d.newID(),
		Text:          trimmed,
		PositionStart: s.start,
		PositionEnd:   s.end,
	}

	if m := quotation.FindStringSubmatch(s.text); m != nil {
		claim.ClaimType = model.ClaimTypeQuotation
		claim.Confidence = 0.95
		claim.SuggestedSearchTerms = quoteTerms(m[1])
		return claim, true
	}

	for _, rule := range d.rules {
		for _, re := range rule.patterns {
			if !re.MatchString(s.text) {
				continue
			}
			claim.ClaimType = rule.claimType
			claim.Confidence = rule.confidence
			if rule.claimType == model.ClaimTypeLegal {
				claim.SuggestedSearchTerms = legalTerms(s.text)
			} else {
				claim.SuggestedSearchTerms = generalTerms(s.text)
			}
			return claim, true
		}
	}

	return model.UnsourcedClaim{}, false
}

// quoteTerms searches for a quotation by its opening words
func quoteTerms(quote string) []string {
	words := strings.Fields(quote)
	if len(words) > 6 {
		words = words[:6]
	}
	return []string{strings.Join(words, " ")}
}

func legalTerms(s string) []string {
	var terms []string
	for _, m := range caseNameTerm.FindAllStringSubmatch(s, -1) {
		terms = append(terms, m[1]+" v. "+m[2])
	}

	lower := strings.ToLower(s)
	for _, concept := range legalConcepts {
		if strings.Contains(lower, concept) {
			terms = append(terms, concept)
		}
	}

	if len(terms) == 0 {
		terms = generalTerms(s)
		if len(terms) > 3 {
			terms = terms[:3]
		}
	}
	return terms
}

// generalTerms returns up to five distinct content words
func generalTerms(s string) []string {
	var terms []string
	seen := make(map[string]bool)
	for _, w := range searchWord.FindAllString(strings.ToLower(s), -1) {
		if searchStopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		terms = append(terms, w)
		if len(terms) == 5 {
			break
		}
	}
	return terms
}
