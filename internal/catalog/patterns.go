// Package catalog holds the immutable Bluebook extraction patterns and
// abbreviation tables shared by every document pass.
package catalog

import "regexp"

// partyName matches a capitalized party name of at most six words
func partyName(group string) string {
	return `(?P<` + group + `>[A-Z][a-zA-Z.'\-]+(?:\s+[A-Za-z.'\-]+){0,5})`
}

// yearParenthetical captures a trailing "(2000)" or "(Supp. V 2000)" year
const yearParenthetical = `(?:\s+\((?:[^()]*?\s)?(?P<year>\d{4})\))?`

// Extraction patterns. Compiled once and safe for concurrent use.
var (
	// Party v. Party, Volume Reporter Page, Pincite (Court Year)
	CaseComplete = regexp.MustCompile(
		partyName("plaintiff") + `\s+v\.\s+` +
			partyName("defendant") + `,\s*` +
			`(?P<volume>\d+)\s+(?P<reporter>[A-Z][a-zA-Z.\s\d]+?)\s+(?P<page>\d+)` +
			`(?:,\s*(?P<pincite>\d+(?:-\d+)?))?\s*` +
			`\((?P<court_year>[^)]+)\)`)

	// Bare Party v. Party with no reporter
	CaseIncomplete = regexp.MustCompile(partyName("plaintiff") + `\s+v\.\s+` + partyName("defendant"))

	// CaseIncompleteGuard rejects a bare case match when a reporter follows it
	CaseIncompleteGuard = regexp.MustCompile(`^\s*,\s*\d+\s+[A-Z]`)

	// Title U.S.C. § Section(Subsection) (Year)
	StatuteUSC = regexp.MustCompile(
		`(?P<title>\d+)\s+U\.?S\.?C\.?\s*§+\s*(?P<section>\d+[a-z]?)(?:\((?P<subsection>[^)]+)\))?` +
			yearParenthetical)

	// Cal. Penal Code § 187, Tex. Rev. Stat. Ann. § 1.02. The code keeps a
	// leading state abbreviation so codes of different states stay distinct.
	StatuteState = regexp.MustCompile(
		`(?P<code>(?:[A-Z][a-z]+\.\s+)?[A-Z][a-z]+\.?\s+(?:Rev\.?\s+)?(?:Code|Stat)\.?\s*(?:Ann\.?)?\s*)` +
			`§+\s*(?P<section>\d+(?:[-.]\d+)*)`)

	// Title C.F.R. § Section (Year)
	RegulationCFR = regexp.MustCompile(
		`(?P<title>\d+)\s+C\.?F\.?R\.?\s*§+\s*(?P<section>\d+(?:\.\d+)?)` + yearParenthetical)

	// Author, Title, Volume Journal Page, Pincite (Year)
	LawReview = regexp.MustCompile(
		`(?P<author>[A-Z][a-zA-Z.\s]+),\s+` +
			`(?P<title>[^,]+),\s+` +
			`(?P<volume>\d+)\s+(?P<journal>[A-Z][a-zA-Z.\s&]+(?:L\.|Law|J\.|Journal|Rev\.|Review)[a-zA-Z.\s]*)\s+` +
			`(?P<page>\d+)(?:,\s*(?P<pincite>\d+(?:-\d+)?))?\s*` +
			`\((?P<year>\d{4})\)`)

	// Author, Title (Edition ed. Year)
	Book = regexp.MustCompile(
		`(?P<author>[A-Z][a-zA-Z.\s]+),\s+` +
			`(?P<title>[A-Z][^(]+)\s*` +
			`\((?:(?P<edition>\d+(?:st|nd|rd|th))\s+ed\.\s+)?(?P<year>\d{4})\)`)

	// Id. at Pincite
	ID = regexp.MustCompile(`\bId\.(?:\s+at\s+(?P<pincite>\d+(?:-\d+)?))?`)

	// Author, supra note N, at Pincite
	Supra = regexp.MustCompile(
		`(?P<author>[A-Za-z]+),?\s+supra\s+note\s+(?P<note>\d+)(?:,\s+at\s+(?P<pincite>\d+(?:-\d+)?))?`)

	// [hereinafter Alias]
	Hereinafter = regexp.MustCompile(`\[hereinafter\s+(?P<alias>[^\]]+)\]`)

	URL = regexp.MustCompile(`https?://[^\s<>"'\)]+(?:\([^\s<>"'\)]*\))?[^\s<>"'\).,;:]*`)

	// FootnoteMarker finds a number of up to three digits at the start of
	// the text or after whitespace
	FootnoteMarker = regexp.MustCompile(`(?:^|\s)(?P<number>\d{1,3})`)

	// FootnoteMarkerGuard must match the text after a marker candidate
	FootnoteMarkerGuard = regexp.MustCompile(`^(?:\s+[A-Z]|\s*$)`)

	// Year is the first four-digit run inside a court parenthetical
	Year = regexp.MustCompile(`\d{4}`)
)
