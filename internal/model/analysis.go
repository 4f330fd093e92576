package model

import "time"

// Analysis is the complete result of one document pass
type Analysis struct {
	DocumentID     string            `json:"document_id" yaml:"document_id"`
	Filename       string            `json:"filename" yaml:"filename"`
	AnalyzedAt     time.Time         `json:"analyzed_at" yaml:"analyzed_at"`
	Structure      DocumentStructure `json:"structure" yaml:"structure"`
	TotalFootnotes int               `json:"total_footnotes" yaml:"total_footnotes"`

	Citations       []Citation        `json:"citations" yaml:"citations"`
	Contexts        []CitationContext `json:"citation_contexts" yaml:"citation_contexts"`
	Suggestions     []Suggestion      `json:"short_form_suggestions" yaml:"short_form_suggestions"`
	UnsourcedClaims []UnsourcedClaim  `json:"unsourced_claims" yaml:"unsourced_claims"`

	Stats   Stats   `json:"stats" yaml:"stats"`
	Summary Summary `json:"summary" yaml:"summary"`
}

// DocumentStructure describes coarse layout features of a document
type DocumentStructure struct {
	HasFootnotes       bool   `json:"has_footnotes" yaml:"has_footnotes"`
	CitationStyle      string `json:"citation_style" yaml:"citation_style"`
	SectionCount       int    `json:"section_count" yaml:"section_count"`
	EstimatedWordCount int    `json:"estimated_word_count" yaml:"estimated_word_count"`
}

// Citation styles reported by structure analysis
const (
	CitationStyleLawReview = "law_review"
	CitationStyleFootnotes = "footnotes"
	CitationStyleInline    = "inline"
)

// Stats counts citations by completion status
type Stats struct {
	TotalCitations    int `json:"total_citations" yaml:"total_citations"`
	Complete          int `json:"complete" yaml:"complete"`
	Incomplete        int `json:"incomplete" yaml:"incomplete"`
	NeedsVerification int `json:"needs_verification" yaml:"needs_verification"`
	UnsourcedClaims   int `json:"unsourced_claims" yaml:"unsourced_claims"`
}

// Summary describes citation usage patterns across a document
type Summary struct {
	TotalCitations int                   `json:"total_citations" yaml:"total_citations"`
	ByType         map[CitationType]int  `json:"by_type" yaml:"by_type"`
	ShortFormUsage map[ShortFormType]int `json:"short_form_usage" yaml:"short_form_usage"`
	MostCited      []KeyCount            `json:"most_cited" yaml:"most_cited"`
	Signals        []Signal              `json:"signals" yaml:"signals"`
}

// KeyCount pairs a deduplication key with the number of times it was cited
type KeyCount struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// Signal is a diagnostic observation about the document's citations
type Signal struct {
	Type        SignalType             `json:"type" yaml:"type"`
	Severity    SignalSeverity         `json:"severity" yaml:"severity"`
	Description string                 `json:"description" yaml:"description"`
	Data        map[string]interface{} `json:"data,omitempty" yaml:"data,omitempty"`
}

// SignalType classifies a diagnostic signal
type SignalType string

const (
	SignalUnderuseShortForms  SignalType = "underuse_short_forms" // Repeated authorities cited in full
	SignalIncompleteCitations SignalType = "incomplete_citations" // Citations missing structured fields
	SignalUnsourcedClaims     SignalType = "unsourced_claims"     // Statements without supporting authority
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)
