package model

// ClaimType categorizes a statement that needs supporting authority
type ClaimType string

const (
	ClaimTypeFactual     ClaimType = "factual"     // Assertions of general fact
	ClaimTypeLegal       ClaimType = "legal"       // Statements of legal rules and holdings
	ClaimTypeStatistical ClaimType = "statistical" // Numbers, percentages, study results
	ClaimTypeQuotation   ClaimType = "quotation"   // Quoted language
)

// UnsourcedClaim is a sentence that reads like it needs a citation but has none nearby
type UnsourcedClaim struct {
	ID                   string    `json:"id" yaml:"id"`
	Text                 string    `json:"text" yaml:"text"`
	PositionStart        int       `json:"position_start" yaml:"position_start"`
	PositionEnd          int       `json:"position_end" yaml:"position_end"`
	ClaimType            ClaimType `json:"claim_type" yaml:"claim_type"`
	Confidence           float64   `json:"confidence" yaml:"confidence"`
	SuggestedSearchTerms []string  `json:"suggested_search_terms,omitempty" yaml:"suggested_search_terms,omitempty"`
}
