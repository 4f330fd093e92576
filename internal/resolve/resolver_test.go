package resolve

import (
	"fmt"
	"testing"

	"github.com/ppiankov/bluecite/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func caseCite(id string, fn int, plaintiff, defendant, volume, reporter, page string) model.Citation {
	return model.Citation{
		ID:             id,
		Type:           model.TypeCase,
		Status:         model.StatusComplete,
		RawText:        fmt.Sprintf("%s v. %s, %s %s %s.", plaintiff, defendant, volume, reporter, page),
		FootnoteNumber: fn,
		Parties:        []string{plaintiff, defendant},
		Volume:         volume,
		Reporter:       reporter,
		Page:           page,
	}
}

func roe(id string, fn int) model.Citation {
	c := caseCite(id, fn, "Roe", "Wade", "410", "U.S.", "113")
	c.Year = 1973
	return c
}

func smith(id string, fn int) model.Citation {
	return caseCite(id, fn, "Smith", "Jones", "123", "F.3d", "456")
}

func TestResolve_CrossFootnoteID(t *testing.T) {
	res := Resolve([]model.Citation{roe("a1", 1), roe("a2", 2)})
	require.Len(t, res.Suggestions, 2)

	assert.Equal(t, model.ShortFormFull, res.Suggestions[0].ShortFormType)
	assert.Equal(t, model.ShortFormID, res.Suggestions[1].ShortFormType)
	assert.Equal(t, "Id.", res.Suggestions[1].SuggestedForm)
	assert.Equal(t, "Same source as the only citation in the previous footnote", res.Suggestions[1].Explanation)
}

func TestResolve_PreviousFootnoteWithTwoSourcesBlocksID(t *testing.T) {
	res := Resolve([]model.Citation{roe("a1", 1), smith("b1", 1), roe("a2", 2)})
	require.Len(t, res.Suggestions, 3)

	s := res.Suggestions[2]
	assert.NotEqual(t, model.ShortFormID, s.ShortFormType)
	assert.Equal(t, model.ShortFormShortCase, s.ShortFormType)
	assert.Equal(t, "*Roe*, 410 U.S. at 113.", s.SuggestedForm)
}

func TestResolve_StateCodesAreDistinct(t *testing.T) {
	california := model.Citation{ID: "c1", Type: model.TypeStatute, Code: "Cal. Penal Code", Section: "187", FootnoteNumber: 1}
	texas := model.Citation{ID: "t1", Type: model.TypeStatute, Code: "Tex. Penal Code", Section: "187", FootnoteNumber: 2}

	res := Resolve([]model.Citation{california, texas})
	require.Len(t, res.Suggestions, 2)
	assert.Equal(t, model.ShortFormFull, res.Suggestions[1].ShortFormType)
	assert.Len(t, res.Contexts, 2)
}

func TestResolve_WithinFootnoteID(t *testing.T) {
	second := roe("a2", 3)
	second.Pincite = "115"

	res := Resolve([]model.Citation{roe("a1", 3), second})
	require.Len(t, res.Suggestions, 2)

	s := res.Suggestions[1]
	assert.Equal(t, model.ShortFormID, s.ShortFormType)
	assert.Equal(t, "Id. at 115.", s.SuggestedForm)
	assert.Equal(t, 1, s.PositionInFootnote)
	assert.Equal(t, "Same source as immediately preceding citation in this footnote", s.Explanation)
}

func TestResolve_NoIDOutsideFootnotes(t *testing.T) {
	res := Resolve([]model.Citation{roe("a1", 0), roe("a2", 0)})
	assert.Equal(t, model.ShortFormShortCase, res.Suggestions[1].ShortFormType)
}

func TestResolve_LiteralShortFormPassesThroughAndBreaksChain(t *testing.T) {
	id := model.Citation{
		ID:             "id1",
		Type:           model.TypeOther,
		Status:         model.StatusComplete,
		RawText:        "Id. at 115.",
		FootnoteNumber: 1,
		IsShortForm:    true,
		ShortFormType:  model.ShortFormID,
		Pincite:        "115",
	}

	res := Resolve([]model.Citation{roe("a1", 1), id, roe("a2", 1)})
	require.Len(t, res.Suggestions, 3)

	pass := res.Suggestions[1]
	assert.Equal(t, "Id. at 115.", pass.SuggestedForm)
	assert.Equal(t, model.ShortFormID, pass.ShortFormType)
	assert.Equal(t, "Id. at 115.", pass.CurrentForm)

	// The literal Id. reset the last key, so Roe is no longer the
	// immediately preceding citation
	after := res.Suggestions[2]
	assert.Equal(t, model.ShortFormShortCase, after.ShortFormType)
	assert.Equal(t, "*Roe*, 410 U.S. at 113.", after.SuggestedForm)
	assert.True(t, after.CanUseStringCite)
}

func TestResolve_ShortCaseAfterEmptyFootnotes(t *testing.T) {
	brown := func(id string, fn int) model.Citation {
		c := caseCite(id, fn, "Brown", "Board of Educ.", "347", "U.S.", "483")
		c.RawText = "Brown v. Board of Educ., 347 U.S. 483 (1954)."
		c.Year = 1954
		return c
	}

	res := Resolve([]model.Citation{brown("b1", 1), brown("b5", 5)})
	require.Len(t, res.Suggestions, 2)

	assert.Equal(t, "Brown v. Board of Educ., 347 U.S. 483 (1954).", res.Suggestions[0].SuggestedForm)
	assert.Equal(t, model.ShortFormShortCase, res.Suggestions[1].ShortFormType)
	assert.Equal(t, "*Brown*, 347 U.S. at 483.", res.Suggestions[1].SuggestedForm)
}

func TestResolve_NonDistinctivePartyUsesOpponent(t *testing.T) {
	first := caseCite("u1", 1, "United States", "Nixon", "418", "U.S.", "683")
	other := smith("s1", 2)
	again := caseCite("u2", 3, "United States", "Nixon", "418", "U.S.", "683")
	again.Pincite = "705"

	res := Resolve([]model.Citation{first, other, again})
	assert.Equal(t, "*Nixon*, 418 U.S. at 705.", res.Suggestions[2].SuggestedForm)
}

func TestResolve_ShortCaseWithoutReporterFallsBackToSupra(t *testing.T) {
	a := model.Citation{ID: "m1", Type: model.TypeCase, FootnoteNumber: 1, Parties: []string{"Marbury", "Madison"}}
	b := smith("s1", 2)
	c := model.Citation{ID: "m2", Type: model.TypeCase, FootnoteNumber: 3, Parties: []string{"Marbury", "Madison"}}

	res := Resolve([]model.Citation{a, b, c})
	assert.Equal(t, "*Marbury*, supra note 1.", res.Suggestions[2].SuggestedForm)
}

func TestResolve_SupraUsesHereinafterAlias(t *testing.T) {
	article := model.Citation{
		ID:             "art1",
		Type:           model.TypeLawReview,
		RawText:        "Jane Smith, Regulatory Takings and the Administrative State in Comparative Perspective, 100 Harv. L. Rev. 1 (1990).",
		FootnoteNumber: 1,
		Author:         "Jane Smith",
		Title:          "Regulatory Takings and the Administrative State in Comparative Perspective",
		Volume:         "100",
		Journal:        "Harv. L. Rev.",
		Page:           "1",
		Year:           1990,
	}
	later := article
	later.ID = "art2"
	later.FootnoteNumber = 4
	later.Pincite = "12"

	res := Resolve([]model.Citation{article, smith("s1", 2), smith("s2", 3), later})
	require.Len(t, res.Suggestions, 4)

	first := res.Suggestions[0]
	assert.Equal(t, model.ShortFormFull, first.ShortFormType)
	assert.Equal(t, "Regulatory Takings Administrative", first.AddHereinafter)
	assert.Contains(t, first.Explanation, "Long title")

	s := res.Suggestions[3]
	assert.Equal(t, model.ShortFormSupra, s.ShortFormType)
	assert.Equal(t, "Regulatory Takings Administrative, supra note 1, at 12.", s.SuggestedForm)
	assert.Equal(t, "Previously cited in note 1", s.Explanation)

	require.Len(t, res.Contexts, 2)
	assert.Equal(t, "Regulatory Takings Administrative", res.Contexts[0].HereinafterName)
	assert.Equal(t, 2, res.Contexts[0].TimesCited)
	assert.Equal(t, 4, res.Contexts[0].LastUsedFootnote)
}

func TestResolve_TextHereinafterIsReused(t *testing.T) {
	book := model.Citation{
		ID:             "bk1",
		Type:           model.TypeBook,
		FootnoteNumber: 1,
		Author:         "Laurence Tribe",
		Title:          "American Constitutional Law",
		Hereinafter:    "Tribe Treatise",
	}
	again := book
	again.ID = "bk2"
	again.FootnoteNumber = 3

	res := Resolve([]model.Citation{book, smith("s1", 2), again})
	assert.Empty(t, res.Suggestions[0].AddHereinafter)
	assert.Equal(t, "Tribe Treatise, supra note 1.", res.Suggestions[2].SuggestedForm)
}

func TestResolve_SupraUsesAuthorSurname(t *testing.T) {
	book := model.Citation{ID: "bk1", Type: model.TypeBook, FootnoteNumber: 2, Author: "Laurence H. Tribe", Title: "American Constitutional Law"}
	again := book
	again.ID = "bk2"
	again.FootnoteNumber = 7

	res := Resolve([]model.Citation{book, smith("s1", 3), again})
	assert.Equal(t, "Tribe, supra note 2.", res.Suggestions[2].SuggestedForm)
}

func TestResolve_CitationsWithoutKeyAreAlwaysFull(t *testing.T) {
	site := model.Citation{ID: "w1", Type: model.TypeWebsite, RawText: "https://example.com", URL: "https://example.com", FootnoteNumber: 1}
	site2 := site
	site2.ID = "w2"
	site2.FootnoteNumber = 2
	bare := model.Citation{ID: "c1", Type: model.TypeCase, RawText: "v.", FootnoteNumber: 2}

	res := Resolve([]model.Citation{site, site2, bare, bare})
	for _, s := range res.Suggestions {
		assert.Equal(t, model.ShortFormFull, s.ShortFormType)
	}
	assert.Empty(t, res.Contexts)
}

func TestResolve_StringCite(t *testing.T) {
	res := Resolve([]model.Citation{roe("a1", 1), smith("b1", 1), roe("a2", 1)})

	s := res.Suggestions[2]
	assert.Equal(t, model.ShortFormShortCase, s.ShortFormType)
	assert.True(t, s.CanUseStringCite)
	assert.Equal(t, 2, s.PositionInFootnote)
}

func TestResolve_PreferredFormUsesCorrection(t *testing.T) {
	c := roe("a1", 1)
	c.SuggestedCorrection = "*Roe v. Wade*, 410 U.S. 113 (1973)."

	res := Resolve([]model.Citation{c})
	assert.Equal(t, c.SuggestedCorrection, res.Suggestions[0].SuggestedForm)
	assert.Equal(t, c.SuggestedCorrection, res.Contexts[0].FullCitation)
}

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		c    model.Citation
		want string
	}{
		{"case", model.Citation{Type: model.TypeCase, Parties: []string{"Roe", "Wade"}}, "case:Roe:Wade"},
		{"case single party", model.Citation{Type: model.TypeCase, Parties: []string{"In re Gault"}}, "case:In re Gault:"},
		{"case without parties", model.Citation{Type: model.TypeCase}, ""},
		{"federal statute", model.Citation{Type: model.TypeStatute, TitleNumber: "42", Section: "1983"}, "statute:42:1983"},
		{"state statute", model.Citation{Type: model.TypeStatute, Code: "Cal. Penal Code", Section: "187"}, "statute:Cal. Penal Code:187"},
		{"statute without section", model.Citation{Type: model.TypeStatute, TitleNumber: "42"}, ""},
		{"regulation", model.Citation{Type: model.TypeRegulation, TitleNumber: "29", Section: "1604.11"}, "reg:29:1604.11"},
		{"article", model.Citation{Type: model.TypeLawReview, Author: "Smith", Title: "Torts"}, "article:Smith:Torts"},
		{"book", model.Citation{Type: model.TypeBook, Author: "Tribe", Title: "Law"}, "book:Tribe:Law"},
		{"empty book", model.Citation{Type: model.TypeBook}, ""},
		{"website", model.Citation{Type: model.TypeWebsite, URL: "https://example.com"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.c))
		})
	}
}

func TestHereinafterReason(t *testing.T) {
	assert.Contains(t, hereinafterReason(model.Citation{Type: model.TypeBook, Author: "Smith & Jones", Title: "Torts"}), "Multiple authors")
	assert.Contains(t, hereinafterReason(model.Citation{Type: model.TypeBook, Author: "Smith, Jones, and Doe", Title: "Torts"}), "Multiple authors")
	assert.Contains(t, hereinafterReason(model.Citation{
		Type:  model.TypeBook,
		Title: "The Constitutional Law of the United States Today",
	}), "Generic title")
	assert.Empty(t, hereinafterReason(model.Citation{
		Type:  model.TypeStatute,
		Title: "The Constitutional Law of the United States Today",
	}))
	assert.Empty(t, hereinafterReason(model.Citation{Type: model.TypeBook, Author: "Tribe", Title: "American Constitutional Law"}))
}

func TestHereinafterName(t *testing.T) {
	assert.Equal(t, "Law Torts Modern", hereinafterName(model.Citation{Title: "The Law of Torts in the Modern American State"}))
	assert.Equal(t, "On It At", hereinafterName(model.Citation{Title: "On It At"}))
	assert.Equal(t, "Public", hereinafterName(model.Citation{Author: "Jane Q. Public"}))
	assert.Equal(t, "Source", hereinafterName(model.Citation{}))
}
