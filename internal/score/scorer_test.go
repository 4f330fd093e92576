package score

import (
	"testing"

	"github.com/ppiankov/bluecite/internal/model"
)

func brown(status model.CitationStatus) model.Citation {
	return model.Citation{
		Type:    model.TypeCase,
		Status:  status,
		Parties: []string{"Brown", "Board of Education"},
	}
}

func TestScorer_Stats(t *testing.T) {
	scorer := NewScorer()

	citations := []model.Citation{
		brown(model.StatusComplete),
		brown(model.StatusIncomplete),
		brown(model.StatusNeedsVerification),
		brown(model.StatusNeedsVerification),
		{Type: model.TypeOther, Status: model.StatusMalformed},
	}
	claims := []model.UnsourcedClaim{{ClaimType: model.ClaimTypeLegal}}

	stats := scorer.Stats(citations, claims)

	if stats.TotalCitations != 5 {
		t.Errorf("Expected 5 citations, got %d", stats.TotalCitations)
	}
	if stats.Complete != 1 || stats.Incomplete != 1 || stats.NeedsVerification != 2 {
		t.Errorf("Unexpected status counts: %+v", stats)
	}
	if stats.UnsourcedClaims != 1 {
		t.Errorf("Expected 1 unsourced claim, got %d", stats.UnsourcedClaims)
	}
}

func TestScorer_Summarize_Counts(t *testing.T) {
	scorer := NewScorer()

	citations := []model.Citation{
		brown(model.StatusComplete),
		{Type: model.TypeOther, Status: model.StatusComplete, IsShortForm: true, ShortFormType: model.ShortFormID},
		brown(model.StatusComplete),
		{Type: model.TypeStatute, Status: model.StatusComplete, TitleNumber: "42", Section: "1983"},
		{Type: model.TypeOther, Status: model.StatusComplete, IsShortForm: true, ShortFormType: model.ShortFormSupra},
		{Type: model.TypeStatute, Status: model.StatusComplete, TitleNumber: "42", Section: "1983"},
		brown(model.StatusComplete),
	}

	summary := scorer.Summarize(citations, nil)

	if summary.TotalCitations != 7 {
		t.Errorf("Expected 7 citations, got %d", summary.TotalCitations)
	}
	if summary.ByType[model.TypeCase] != 3 || summary.ByType[model.TypeStatute] != 2 || summary.ByType[model.TypeOther] != 2 {
		t.Errorf("Unexpected type counts: %v", summary.ByType)
	}

	usage := summary.ShortFormUsage
	if usage[model.ShortFormFull] != 5 || usage[model.ShortFormID] != 1 || usage[model.ShortFormSupra] != 1 || usage[model.ShortFormShortCase] != 0 {
		t.Errorf("Unexpected short form usage: %v", usage)
	}

	if len(summary.MostCited) != 2 {
		t.Fatalf("Expected 2 most cited keys, got %v", summary.MostCited)
	}
	if summary.MostCited[0].Key != "case:Brown:Board of Education" || summary.MostCited[0].Count != 3 {
		t.Errorf("Unexpected top key: %+v", summary.MostCited[0])
	}
	if summary.MostCited[1].Key != "statute:42:1983" || summary.MostCited[1].Count != 2 {
		t.Errorf("Unexpected second key: %+v", summary.MostCited[1])
	}

	// 5 of 7 full is under 80%, and everything is complete
	if len(summary.Signals) != 0 {
		t.Errorf("Expected no signals, got %+v", summary.Signals)
	}
}

func TestScorer_Summarize_MostCitedLimit(t *testing.T) {
	scorer := NewScorer()

	var citations []model.Citation
	for _, section := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		for i := 0; i < 2; i++ {
			citations = append(citations, model.Citation{
				Type: model.TypeStatute, Status: model.StatusComplete, TitleNumber: "42", Section: section,
			})
		}
	}
	citations = append(citations, model.Citation{Type: model.TypeStatute, Status: model.StatusComplete, TitleNumber: "1", Section: "1"})

	summary := scorer.Summarize(citations, nil)

	if len(summary.MostCited) != 5 {
		t.Fatalf("Expected 5 most cited keys, got %d", len(summary.MostCited))
	}
	if summary.MostCited[0].Key != "statute:42:1" {
		t.Errorf("Expected ties broken by key, got %s first", summary.MostCited[0].Key)
	}
	for _, kc := range summary.MostCited {
		if kc.Count < 2 {
			t.Errorf("Single citations must not be listed: %+v", kc)
		}
	}
}

func TestScorer_Summarize_Signals(t *testing.T) {
	scorer := NewScorer()

	citations := []model.Citation{
		brown(model.StatusIncomplete),
		brown(model.StatusNeedsVerification),
		brown(model.StatusComplete),
	}
	claims := make([]model.UnsourcedClaim, 6)
	for i := range claims {
		claims[i] = model.UnsourcedClaim{ClaimType: model.ClaimTypeFactual}
	}

	summary := scorer.Summarize(citations, claims)

	signals := make(map[model.SignalType]model.Signal)
	for _, s := range summary.Signals {
		signals[s.Type] = s
	}

	if _, ok := signals[model.SignalUnderuseShortForms]; !ok {
		t.Error("Expected underuse_short_forms when every citation is in full form")
	}

	incomplete, ok := signals[model.SignalIncompleteCitations]
	if !ok {
		t.Fatal("Expected incomplete_citations signal")
	}
	if incomplete.Severity != model.SeverityWarning {
		t.Errorf("Expected warning severity, got %s", incomplete.Severity)
	}
	if incomplete.Data["incomplete"] != 1 || incomplete.Data["needs_verification"] != 1 {
		t.Errorf("Unexpected signal data: %v", incomplete.Data)
	}

	unsourced, ok := signals[model.SignalUnsourcedClaims]
	if !ok {
		t.Fatal("Expected unsourced_claims signal")
	}
	if unsourced.Severity != model.SeverityCritical {
		t.Errorf("Expected critical severity for 6 claims, got %s", unsourced.Severity)
	}
}

func TestScorer_Summarize_Empty(t *testing.T) {
	summary := NewScorer().Summarize(nil, nil)

	if summary.TotalCitations != 0 || len(summary.Signals) != 0 || len(summary.MostCited) != 0 {
		t.Errorf("Expected an empty summary, got %+v", summary)
	}
	if summary.ByType == nil || summary.ShortFormUsage == nil {
		t.Error("Expected initialized maps")
	}
}
