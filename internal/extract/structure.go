package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/bluecite/internal/model"
)

// lawReviewFootnoteThreshold is the bracketed marker count above which a
// document reads as a law review article
const lawReviewFootnoteThreshold = 10

var (
	bracketMarkerRe = regexp.MustCompile(`\[\d+\]`)

	footnotePresenceRes = []*regexp.Regexp{
		bracketMarkerRe,
		regexp.MustCompile(`(?m)(?:^|\s)\d{1,3}\s+[A-Z]`),
		regexp.MustCompile(`(?m)(?:^|\s)\d{1,3}\.`),
	}

	sectionHeadingRes = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^(?:I{1,3}|IV|V|VI{0,3}|IX|X)\.`),
		regexp.MustCompile(`(?m)^\d+\.`),
		regexp.MustCompile(`(?m)^[A-Z]\.`),
		regexp.MustCompile(`(?m)^Section\s+\d+`),
	}
)

// AnalyzeStructure reports coarse document layout: footnote presence,
// citation style, section headings and word count
func AnalyzeStructure(text string) model.DocumentStructure {
	structure := model.DocumentStructure{
		CitationStyle:      model.CitationStyleInline,
		EstimatedWordCount: len(strings.Fields(text)),
	}

	for _, re := range footnotePresenceRes {
		if re.MatchString(text) {
			structure.HasFootnotes = true
			break
		}
	}

	switch count := len(bracketMarkerRe.FindAllStringIndex(text, -1)); {
	case count > lawReviewFootnoteThreshold:
		structure.CitationStyle = model.CitationStyleLawReview
	case count > 0:
		structure.CitationStyle = model.CitationStyleFootnotes
	}

	for _, re := range sectionHeadingRes {
		if n := len(re.FindAllStringIndex(text, -1)); n > structure.SectionCount {
			structure.SectionCount = n
		}
	}

	return structure
}
