package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/bluecite/internal/model"
)

func TestClaimDetector_Classification(t *testing.T) {
	d := NewClaimDetector()
	d.newID = func() string { return "claim" }

	text := "The Supreme Court has held that due process requires notice. " +
		"Over 40% of cases settle before trial. " +
		"Historically, juries were drawn from property owners. " +
		"Short one here."

	claims := d.Detect(text, nil)
	require.Len(t, claims, 3)

	assert.Equal(t, model.ClaimTypeLegal, claims[0].ClaimType)
	assert.InDelta(t, 0.85, claims[0].Confidence, 1e-9)
	assert.Equal(t, []string{"due process"}, claims[0].SuggestedSearchTerms)
	assert.Equal(t, "The Supreme Court has held that due process requires notice.", claims[0].Text)

	assert.Equal(t, model.ClaimTypeStatistical, claims[1].ClaimType)
	assert.InDelta(t, 0.90, claims[1].Confidence, 1e-9)
	assert.Equal(t, []string{"over", "cases", "settle", "before", "trial"}, claims[1].SuggestedSearchTerms)

	assert.Equal(t, model.ClaimTypeFactual, claims[2].ClaimType)
	assert.InDelta(t, 0.70, claims[2].Confidence, 1e-9)

	for _, c := range claims {
		assert.Equal(t, "claim", c.ID)
		assert.Equal(t, c.Text, strings.TrimSpace(text[c.PositionStart:c.PositionEnd]))
	}
}

func TestClaimDetector_QuotationWins(t *testing.T) {
	d := NewClaimDetector()

	text := `The court held that "the right to privacy is fundamental to liberty" in its opinion.`
	claims := d.Detect(text, nil)
	require.Len(t, claims, 1)

	assert.Equal(t, model.ClaimTypeQuotation, claims[0].ClaimType)
	assert.InDelta(t, 0.95, claims[0].Confidence, 1e-9)
	assert.Equal(t, []string{"the right to privacy is fundamental"}, claims[0].SuggestedSearchTerms)
	assert.NotEmpty(t, claims[0].ID)
}

func TestClaimDetector_NearbyCitations(t *testing.T) {
	d := NewClaimDetector()
	sentence := "It is well established that agencies deserve deference."

	// Citation immediately after the sentence sources it
	text := sentence + " See Chevron v. NRDC."
	near := model.Citation{PositionStart: len(sentence) + 5, PositionEnd: len(text) - 1}
	assert.Empty(t, d.Detect(text, []model.Citation{near}))

	// Citation inside the sentence sources it
	inside := model.Citation{PositionStart: 10, PositionEnd: 20}
	assert.Empty(t, d.Detect(sentence, []model.Citation{inside}))

	// Citation too far away does not
	far := sentence + " Filler text follows here and keeps going for a while now." + " Chevron v. NRDC."
	farCite := model.Citation{PositionStart: strings.Index(far, "Chevron"), PositionEnd: len(far) - 1}
	claims := d.Detect(far, []model.Citation{farCite})
	require.Len(t, claims, 1)
	assert.Equal(t, model.ClaimTypeLegal, claims[0].ClaimType)
}

func TestClaimDetector_NothingToReport(t *testing.T) {
	d := NewClaimDetector()
	assert.Empty(t, d.Detect("", nil))
	assert.Empty(t, d.Detect("The parties filed briefs on Tuesday afternoon.", nil))
}

func TestSplitSentences(t *testing.T) {
	text := "First sentence here. Second one!  Third?"
	got := splitSentences(text)
	require.Len(t, got, 3)

	assert.Equal(t, "First sentence here.", got[0].text)
	assert.Equal(t, "Second one!", got[1].text)
	assert.Equal(t, "Third?", got[2].text)
	for _, s := range got {
		assert.Equal(t, s.text, text[s.start:s.end])
	}

	// No split before lowercase
	assert.Len(t, splitSentences("See e.g. the rule. it continues"), 1)
}

func TestSearchTerms(t *testing.T) {
	assert.Equal(t, []string{"Marbury v. Madison"}, legalTerms("In Marbury v. Madison the rule provides review."))
	assert.Equal(t, []string{"court", "ruled", "plaintiff"}, legalTerms("The court ruled for the plaintiff over objections."))
	assert.Equal(t, []string{"courts", "routinely"}, generalTerms("Courts routinely courts"))
	assert.Equal(t, []string{"one two three four five six"}, quoteTerms("one two three four five six seven"))
}
