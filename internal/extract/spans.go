package extract

// span is a half-open [start, end) byte interval
type span struct {
	start, end int
}

// SpanRegistry tracks the text intervals already claimed by an accepted
// citation. Patterns claim in priority order, so the first claim wins.
type SpanRegistry struct {
	spans []span
}

// NewSpanRegistry creates an empty registry
func NewSpanRegistry() *SpanRegistry {
	return &SpanRegistry{}
}

// Overlaps reports whether [start, end) intersects any claimed span
func (r *SpanRegistry) Overlaps(start, end int) bool {
	for _, s := range r.spans {
		if !(end <= s.start || start >= s.end) {
			return true
		}
	}
	return false
}

// Claim records [start, end) unless it overlaps an existing claim.
// Returns false and leaves the registry untouched on overlap.
func (r *SpanRegistry) Claim(start, end int) bool {
	if r.Overlaps(start, end) {
		return false
	}
	r.spans = append(r.spans, span{start: start, end: end})
	return true
}

// Contains reports whether pos falls inside a claimed span
func (r *SpanRegistry) Contains(pos int) bool {
	for _, s := range r.spans {
		if pos >= s.start && pos < s.end {
			return true
		}
	}
	return false
}
