package format

import (
	"testing"

	"github.com/ppiankov/bluecite/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFormat_Case(t *testing.T) {
	lr := NewFormatter(LawReview)
	brief := NewFormatter(Brief)

	brown := model.Citation{
		Type:     model.TypeCase,
		Parties:  []string{"Brown", "Board of Education"},
		Volume:   "347",
		Reporter: "U.S.",
		Page:     "483",
		Year:     1954,
	}
	assert.Equal(t, "*Brown v. Bd. of Educ.*, 347 U.S. 483 (1954).", lr.Format(brown))

	smith := model.Citation{
		Type:     model.TypeCase,
		Parties:  []string{"Smith", "Jones"},
		Volume:   "123",
		Reporter: "F.3d",
		Page:     "456",
		Pincite:  "460",
		Court:    "Ninth Circuit",
		Year:     1999,
	}
	assert.Equal(t, "*Smith v. Jones*, 123 F.3d 456, 460 (9th Cir. 1999).", lr.Format(smith))
	assert.Equal(t, "Smith v. Jones, 123 F.3d 456, 460 (9th Cir. 1999)", brief.Format(smith))

	assert.Equal(t, "*Smith v. Jones*, 123 F.3d 456, 460 (2000).", lr.Format(model.Citation{
		Type: model.TypeCase, Parties: smith.Parties, Volume: "123", Reporter: "F.3d",
		Page: "456", Pincite: "460", Court: "U.S.", Year: 2000,
	}))

	smith.Year = 0
	assert.Equal(t, "*Smith v. Jones*, 123 F.3d 456, 460.", lr.Format(smith))

	bare := model.Citation{Type: model.TypeCase, Parties: []string{"Marbury", "Madison"}, RawText: "Marbury v. Madison"}
	assert.Equal(t, "*Marbury v. Madison*", lr.Format(bare))
	assert.Equal(t, "Marbury v. Madison", brief.Format(bare))

	single := model.Citation{Type: model.TypeCase, Parties: []string{"In re Gault"}, RawText: "In re Gault, 387 U.S. 1"}
	assert.Equal(t, "In re Gault, 387 U.S. 1", lr.Format(single))
}

func TestFormat_StatutesAndRegulations(t *testing.T) {
	f := NewFormatter(LawReview)

	assert.Equal(t, "42 U.S.C. § 1983 (2000).", f.Format(model.Citation{
		Type: model.TypeStatute, TitleNumber: "42", Code: "U.S.C.", Section: "1983", Year: 2000,
	}))
	assert.Equal(t, "15 U.S.C. § 78j(b).", f.Format(model.Citation{
		Type: model.TypeStatute, TitleNumber: "15", Section: "78j", Subsection: "b",
	}))
	assert.Equal(t, "Fla. Stat. § 768.81.", f.Format(model.Citation{
		Type: model.TypeStatute, Code: "Florida Stat.", Section: "768.81",
	}))
	assert.Equal(t, "raw", f.Format(model.Citation{Type: model.TypeStatute, TitleNumber: "42", RawText: "raw"}))

	assert.Equal(t, "29 C.F.R. § 1604.11 (2020).", f.Format(model.Citation{
		Type: model.TypeRegulation, TitleNumber: "29", Section: "1604.11", Year: 2020,
	}))
	assert.Equal(t, "raw", f.Format(model.Citation{Type: model.TypeRegulation, Section: "1", RawText: "raw"}))
}

func TestFormat_LawReview(t *testing.T) {
	f := NewFormatter(LawReview)

	article := model.Citation{
		Type:    model.TypeLawReview,
		Author:  "Jane Smith",
		Title:   "<i>Takings</i> &amp; Things",
		Volume:  "100",
		Journal: "Harvard Law Review",
		Page:    "1",
		Pincite: "5",
		Year:    1990,
	}
	assert.Equal(t, "Jane Smith, *Takings & Things*, 100 Harv. L. Rev. 1, 5 (1990).", f.Format(article))

	assert.Equal(t, "Jane Smith.", f.Format(model.Citation{Type: model.TypeLawReview, Author: "Jane Smith"}))
	assert.Equal(t, "raw", f.Format(model.Citation{Type: model.TypeLawReview, RawText: "raw", Year: 1990}))
}

func TestFormat_Book(t *testing.T) {
	f := NewFormatter(LawReview)

	book := model.Citation{
		Type:    model.TypeBook,
		Author:  "Laurence H. Tribe",
		Title:   "American Constitutional Law",
		Edition: "2nd",
		Year:    1988,
	}
	assert.Equal(t, "Laurence H. Tribe, AMERICAN CONSTITUTIONAL LAW (2nd ed. 1988).", f.Format(book))
	assert.Equal(t, "raw", f.Format(model.Citation{Type: model.TypeBook, RawText: "raw"}))
}

func TestFormat_WebsiteAndOther(t *testing.T) {
	f := NewFormatter(LawReview)

	site := model.Citation{
		Type:       model.TypeWebsite,
		Title:      "Home",
		URL:        "https://x.test",
		AccessDate: "Jan. 1, 2024",
	}
	assert.Equal(t, "*Home*, https://x.test (last visited Jan. 1, 2024).", f.Format(site))
	assert.Equal(t, "https://x.test.", f.Format(model.Citation{Type: model.TypeWebsite, URL: "https://x.test"}))

	other := model.Citation{Type: model.TypeOther, RawText: "Id. at 4."}
	assert.Equal(t, "Id. at 4.", f.Format(other))
	assert.Equal(t, "U.S. Const. art. I.", f.Format(model.Citation{Type: model.TypeConstitution, RawText: "U.S. Const. art. I."}))
}

func TestRender(t *testing.T) {
	f := NewFormatter(LawReview)

	article := model.Citation{
		Type:    model.TypeLawReview,
		Author:  "Jane Smith",
		Title:   "Takings",
		Volume:  "100",
		Journal: "Harv. L. Rev.",
		Page:    "1",
		Year:    1990,
	}

	full := model.Suggestion{ShortFormType: model.ShortFormFull, AddHereinafter: "Smith Takings"}
	assert.Equal(t, "Jane Smith, *Takings*, 100 Harv. L. Rev. 1 (1990) [hereinafter Smith Takings].", f.Render(article, full))

	id := model.Suggestion{ShortFormType: model.ShortFormID, SuggestedForm: "Id. at 3."}
	assert.Equal(t, "Id. at 3.", f.Render(article, id))

	supra := model.Suggestion{ShortFormType: model.ShortFormSupra, SuggestedForm: "Smith, supra note 1."}
	assert.Equal(t, "Smith, supra note 1.", f.Render(article, supra))
}

func TestCleanHTML(t *testing.T) {
	assert.Equal(t, "plain", cleanHTML("  plain "))
	assert.Equal(t, "A & B", cleanHTML("<b>A</b> &amp; B"))
	assert.Equal(t, "", cleanHTML(""))
}

func TestStyleFor(t *testing.T) {
	assert.Equal(t, LawReview, StyleFor(true))
	assert.Equal(t, Brief, StyleFor(false))
}
