package model

// CitationType classifies the kind of authority a citation refers to
type CitationType string

const (
	TypeCase         CitationType = "case"
	TypeStatute      CitationType = "statute"
	TypeRegulation   CitationType = "regulation"
	TypeLawReview    CitationType = "law_review"
	TypeBook         CitationType = "book"
	TypeNewspaper    CitationType = "newspaper"
	TypeWebsite      CitationType = "website"
	TypeLegislative  CitationType = "legislative"
	TypeTreaty       CitationType = "treaty"
	TypeConstitution CitationType = "constitution"
	TypeOther        CitationType = "other"
)

// CitationTypes lists every citation type in declaration order
var CitationTypes = []CitationType{
	TypeCase, TypeStatute, TypeRegulation, TypeLawReview, TypeBook, TypeNewspaper,
	TypeWebsite, TypeLegislative, TypeTreaty, TypeConstitution, TypeOther,
}

// Valid reports whether t is one of the declared citation types
func (t CitationType) Valid() bool {
	for _, known := range CitationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// CitationStatus describes how complete a citation's structured fields are
type CitationStatus string

const (
	StatusComplete          CitationStatus = "complete"
	StatusIncomplete        CitationStatus = "incomplete"
	StatusMalformed         CitationStatus = "malformed"
	StatusNeedsVerification CitationStatus = "needs_verification"
)

// ShortFormType names a short-form designation, either found literally in the
// text or suggested by the resolver
type ShortFormType string

const (
	ShortFormFull        ShortFormType = "full"
	ShortFormID          ShortFormType = "id"
	ShortFormSupra       ShortFormType = "supra"
	ShortFormHereinafter ShortFormType = "hereinafter"
	ShortFormShortCase   ShortFormType = "short_case"
)

// Citation is one recognized reference in a document.
//
// Optional string fields are unset when empty. Year is unset when zero.
// FootnoteNumber is zero when the citation is not inside any footnote.
type Citation struct {
	ID             string         `json:"id" yaml:"id"`
	Type           CitationType   `json:"type" yaml:"type"`
	Status         CitationStatus `json:"status" yaml:"status"`
	RawText        string         `json:"raw_text" yaml:"raw_text"`
	PositionStart  int            `json:"position_start" yaml:"position_start"`
	PositionEnd    int            `json:"position_end" yaml:"position_end"`
	FootnoteNumber int            `json:"footnote_number" yaml:"footnote_number"`

	// Case components
	Parties           []string `json:"parties,omitempty" yaml:"parties,omitempty"`
	Volume            string   `json:"volume,omitempty" yaml:"volume,omitempty"`
	Reporter          string   `json:"reporter,omitempty" yaml:"reporter,omitempty"`
	Page              string   `json:"page,omitempty" yaml:"page,omitempty"`
	Pincite           string   `json:"pincite,omitempty" yaml:"pincite,omitempty"`
	Court             string   `json:"court,omitempty" yaml:"court,omitempty"`
	Year              int      `json:"year,omitempty" yaml:"year,omitempty"`
	ParallelCitations []string `json:"parallel_citations,omitempty" yaml:"parallel_citations,omitempty"`

	// Article and book components
	Author    string `json:"author,omitempty" yaml:"author,omitempty"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Journal   string `json:"journal,omitempty" yaml:"journal,omitempty"`
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Edition   string `json:"edition,omitempty" yaml:"edition,omitempty"`

	// Statute and regulation components
	TitleNumber string `json:"title_number,omitempty" yaml:"title_number,omitempty"`
	Code        string `json:"code,omitempty" yaml:"code,omitempty"`
	Section     string `json:"section,omitempty" yaml:"section,omitempty"`
	Subsection  string `json:"subsection,omitempty" yaml:"subsection,omitempty"`

	// Website components
	URL        string `json:"url,omitempty" yaml:"url,omitempty"`
	AccessDate string `json:"access_date,omitempty" yaml:"access_date,omitempty"`

	// Literal short forms and designations found in the text
	IsShortForm    bool          `json:"is_short_form" yaml:"is_short_form"`
	ShortFormType  ShortFormType `json:"short_form_type,omitempty" yaml:"short_form_type,omitempty"`
	ReferencedNote int           `json:"referenced_note,omitempty" yaml:"referenced_note,omitempty"` // N in "supra note N"
	Hereinafter    string        `json:"hereinafter,omitempty" yaml:"hereinafter,omitempty"`

	// Completion metadata, owned by the enrichment collaborator
	SuggestedCorrection string  `json:"suggested_correction,omitempty" yaml:"suggested_correction,omitempty"`
	ConfidenceScore     float64 `json:"confidence_score" yaml:"confidence_score"`
	LookupSource        string  `json:"lookup_source,omitempty" yaml:"lookup_source,omitempty"`
}

// PreferredForm is the formatted correction when one exists, else the raw text
func (c Citation) PreferredForm() string {
	if c.SuggestedCorrection != "" {
		return c.SuggestedCorrection
	}
	return c.RawText
}

// CitationContext tracks how one distinct authority is used across a document
type CitationContext struct {
	CitationID              string `json:"citation_id" yaml:"citation_id"`
	Key                     string `json:"key" yaml:"key"`
	FirstOccurrenceFootnote int    `json:"first_occurrence_footnote" yaml:"first_occurrence_footnote"`
	FullCitation            string `json:"full_citation" yaml:"full_citation"`
	HereinafterName         string `json:"hereinafter_name,omitempty" yaml:"hereinafter_name,omitempty"`
	LastUsedFootnote        int    `json:"last_used_footnote" yaml:"last_used_footnote"`
	TimesCited              int    `json:"times_cited" yaml:"times_cited"`
}

// Suggestion is the resolver's short-form decision for one citation
type Suggestion struct {
	CitationID         string        `json:"citation_id" yaml:"citation_id"`
	CurrentForm        string        `json:"current_form" yaml:"current_form"`
	SuggestedForm      string        `json:"suggested_form" yaml:"suggested_form"`
	ShortFormType      ShortFormType `json:"short_form_type" yaml:"short_form_type"`
	Explanation        string        `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	FootnoteNumber     int           `json:"footnote_number" yaml:"footnote_number"`
	PositionInFootnote int           `json:"position_in_footnote" yaml:"position_in_footnote"`
	CanUseStringCite   bool          `json:"can_use_string_cite" yaml:"can_use_string_cite"`
	AddHereinafter     string        `json:"add_hereinafter,omitempty" yaml:"add_hereinafter,omitempty"`
	Display            string        `json:"display" yaml:"display"` // the citation as rendered for this decision
}
