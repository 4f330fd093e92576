// Package resolve decides which Bluebook short form each repeated citation
// should take.
package resolve

import (
	"fmt"

	"github.com/ppiankov/bluecite/internal/catalog"
	"github.com/ppiankov/bluecite/internal/model"
)

// nonDistinctiveParties never serve as a short case name when the other
// party is available
var nonDistinctiveParties = map[string]bool{
	"United States": true,
	"State":         true,
	"People":        true,
	"Commonwealth":  true,
}

// Resolution is the outcome of one resolver pass over a document
type Resolution struct {
	Suggestions []model.Suggestion      // One per citation, in input order
	Contexts    []model.CitationContext // One per distinct authority, by first occurrence
}

// resolver owns the state of a single pass. It is created per call and
// never shared between documents.
type resolver struct {
	seen      map[string]*model.CitationContext
	seenOrder []string

	// footnote number -> keys cited in that footnote, in order
	footnoteHistory map[int][]string
	// footnote number -> citations emitted so far in that footnote
	footnoteCount map[int]int

	lastKey      string
	lastFootnote int
}

// Resolve walks citations in ascending position order, as produced by the
// extractor, and returns a short-form decision for each. Citations must
// already be enriched; Resolve never fails.
func Resolve(citations []model.Citation) Resolution {
	r := &resolver{
		seen:            make(map[string]*model.CitationContext),
		footnoteHistory: make(map[int][]string),
		footnoteCount:   make(map[int]int),
	}

	suggestions := make([]model.Suggestion, 0, len(citations))
	for _, c := range citations {
		suggestions = append(suggestions, r.next(c))
	}

	contexts := make([]model.CitationContext, 0, len(r.seenOrder))
	for _, key := range r.seenOrder {
		contexts = append(contexts, *r.seen[key])
	}

	return Resolution{Suggestions: suggestions, Contexts: contexts}
}

// next decides the form of one citation and advances the pass state
func (r *resolver) next(c model.Citation) model.Suggestion {
	fn := c.FootnoteNumber
	position := r.footnoteCount[fn]
	r.footnoteCount[fn] = position + 1
	firstInFootnote := position == 0

	s := model.Suggestion{
		CitationID:         c.ID,
		CurrentForm:        c.RawText,
		FootnoteNumber:     fn,
		PositionInFootnote: position,
	}

	// A literal short form passes through and breaks the Id. chain
	if c.IsShortForm {
		s.SuggestedForm = c.RawText
		s.ShortFormType = c.ShortFormType
		r.lastKey = ""
		r.lastFootnote = fn
		return s
	}

	key := Key(c)
	if ctx, ok := r.seen[key]; key != "" && ok {
		r.repeat(&s, c, ctx, key, firstInFootnote)
	} else {
		r.first(&s, c, key)
	}

	if fn > 0 && key != "" {
		r.footnoteHistory[fn] = append(r.footnoteHistory[fn], key)
	}
	r.lastKey = key
	r.lastFootnote = fn

	return s
}

// first records a first occurrence, minting a hereinafter alias if useful
func (r *resolver) first(s *model.Suggestion, c model.Citation, key string) {
	s.SuggestedForm = c.PreferredForm()
	s.ShortFormType = model.ShortFormFull

	if key == "" {
		return
	}

	ctx := &model.CitationContext{
		CitationID:              c.ID,
		Key:                     key,
		FirstOccurrenceFootnote: c.FootnoteNumber,
		FullCitation:            c.PreferredForm(),
		LastUsedFootnote:        c.FootnoteNumber,
		TimesCited:              1,
	}

	if c.Hereinafter != "" {
		ctx.HereinafterName = c.Hereinafter
	} else if reason := hereinafterReason(c); reason != "" {
		ctx.HereinafterName = hereinafterName(c)
		s.AddHereinafter = ctx.HereinafterName
		s.Explanation = reason
	}

	r.seen[key] = ctx
	r.seenOrder = append(r.seenOrder, key)
}

// repeat decides between Id., supra and a short case name for an authority
// already cited in full
func (r *resolver) repeat(s *model.Suggestion, c model.Citation, ctx *model.CitationContext, key string, firstInFootnote bool) {
	fn := c.FootnoteNumber

	withinFootnoteID := fn == r.lastFootnote && r.lastKey == key && fn > 0
	crossFootnoteID := fn != r.lastFootnote && firstInFootnote && r.soleCiteOfPreviousFootnote(key, fn)

	switch {
	case withinFootnoteID || crossFootnoteID:
		s.SuggestedForm = "Id."
		if c.Pincite != "" {
			s.SuggestedForm = fmt.Sprintf("Id. at %s.", c.Pincite)
		}
		s.ShortFormType = model.ShortFormID
		if withinFootnoteID {
			s.Explanation = "Same source as immediately preceding citation in this footnote"
		} else {
			s.Explanation = "Same source as the only citation in the previous footnote"
		}

	case c.Type != model.TypeCase:
		s.SuggestedForm = supraForm(c, ctx)
		s.ShortFormType = model.ShortFormSupra
		s.Explanation = fmt.Sprintf("Previously cited in note %d", ctx.FirstOccurrenceFootnote)

	default:
		s.SuggestedForm = shortCaseForm(c, ctx)
		s.ShortFormType = model.ShortFormShortCase
		s.Explanation = "Short form for previously cited case"
	}

	ctx.LastUsedFootnote = fn
	ctx.TimesCited++

	if !firstInFootnote && r.lastKey != key {
		s.CanUseStringCite = true
	}
}

// soleCiteOfPreviousFootnote reports whether footnote fn-1 cited exactly one
// authority and it was key
func (r *resolver) soleCiteOfPreviousFootnote(key string, fn int) bool {
	if fn <= 0 {
		return false
	}
	prev := r.footnoteHistory[fn-1]
	return len(prev) == 1 && prev[0] == key
}

// supraForm renders "<prefix>, supra note N[, at P]."
func supraForm(c model.Citation, ctx *model.CitationContext) string {
	prefix := ctx.HereinafterName
	if prefix == "" {
		prefix = surname(c.Author)
	}

	base := fmt.Sprintf("supra note %d", ctx.FirstOccurrenceFootnote)
	if prefix != "" {
		base = prefix + ", " + base
	}

	if c.Pincite != "" {
		return fmt.Sprintf("%s, at %s.", base, c.Pincite)
	}
	return base + "."
}

// shortCaseForm renders "*Name*, V Reporter at P." or "*Name*, supra note N."
func shortCaseForm(c model.Citation, ctx *model.CitationContext) string {
	if len(c.Parties) == 0 {
		return fmt.Sprintf("supra note %d.", ctx.FirstOccurrenceFootnote)
	}

	name := party(c, 0)
	if second := party(c, 1); second != "" && (nonDistinctiveParties[name] || name == "") {
		name = second
	}
	name = catalog.AbbreviatePartyName(name)

	if c.Volume != "" && c.Reporter != "" {
		base := fmt.Sprintf("*%s*, %s %s", name, c.Volume, c.Reporter)
		if c.Pincite != "" {
			return fmt.Sprintf("%s at %s.", base, c.Pincite)
		}
		if c.Page != "" {
			return fmt.Sprintf("%s at %s.", base, c.Page)
		}
	}

	return fmt.Sprintf("*%s*, supra note %d.", name, ctx.FirstOccurrenceFootnote)
}
