package extract

import (
	"sort"
	"strconv"

	"github.com/ppiankov/bluecite/internal/catalog"
	"github.com/ppiankov/bluecite/internal/model"
)

// footnoteMarker is a footnote number and the offset where its marker starts
type footnoteMarker struct {
	number   int
	position int
}

// findFootnoteMarkers scans text once for footnote markers, in text order.
// Candidates inside a claimed citation span (the "347" of "347 U.S. 483")
// are skipped. Accepted numbers follow the note sequence: the next number is
// always taken, and a forward jump is taken only when the candidate after it
// continues from there, so a stray number in prose cannot swallow the notes
// that follow it.
func findFootnoteMarkers(text string, claimed *SpanRegistry) []footnoteMarker {
	var candidates []footnoteMarker
	for _, loc := range catalog.FootnoteMarker.FindAllStringSubmatchIndex(text, -1) {
		numStart, numEnd := loc[2], loc[3]
		if !catalog.FootnoteMarkerGuard.MatchString(text[numEnd:]) {
			continue
		}
		if claimed != nil && claimed.Contains(numStart) {
			continue
		}

		n, err := strconv.Atoi(text[numStart:numEnd])
		if err != nil || n == 0 {
			continue
		}
		candidates = append(candidates, footnoteMarker{number: n, position: loc[0]})
	}

	var markers []footnoteMarker
	last := 0
	for i, c := range candidates {
		switch {
		case c.number == last+1:
		case c.number > last+1 && i+1 < len(candidates) && candidates[i+1].number == c.number+1:
		default:
			continue
		}
		markers = append(markers, c)
		last = c.number
	}

	return markers
}

// assignFootnotes gives each citation the number of the last marker at or
// before its start, or 0 when no marker precedes it
func assignFootnotes(citations []model.Citation, markers []footnoteMarker) {
	for i := range citations {
		idx := sort.Search(len(markers), func(j int) bool {
			return markers[j].position > citations[i].PositionStart
		})
		if idx > 0 {
			citations[i].FootnoteNumber = markers[idx-1].number
		} else {
			citations[i].FootnoteNumber = 0
		}
	}
}
