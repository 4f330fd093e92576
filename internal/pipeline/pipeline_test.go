package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ppiankov/bluecite/internal/model"
)

func offlineConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Lookup.Enabled = false
	cfg.Cache.Enabled = false
	return cfg
}

const footnotedText = "1 Roe v. Wade, 410 U.S. 113 (1973).\n" +
	"2 Id. at 115.\n" +
	"3 Roe v. Wade, 410 U.S. 113, 120 (1973)."

func TestAnalyze_Footnotes(t *testing.T) {
	p := NewPipeline(offlineConfig(), nil)

	analysis, err := p.Analyze(context.Background(), NewDocument("roe.txt", footnotedText))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if analysis.Filename != "roe.txt" || analysis.DocumentID == "" {
		t.Errorf("Unexpected document identity: %q %q", analysis.Filename, analysis.DocumentID)
	}
	if len(analysis.Citations) != 3 {
		t.Fatalf("Expected 3 citations, got %d", len(analysis.Citations))
	}
	if analysis.TotalFootnotes != 3 {
		t.Errorf("Expected 3 footnotes, got %d", analysis.TotalFootnotes)
	}
	if len(analysis.Suggestions) != 3 {
		t.Errorf("Expected one suggestion per citation, got %d", len(analysis.Suggestions))
	}
	if len(analysis.Contexts) != 1 {
		t.Errorf("Expected one distinct authority, got %d", len(analysis.Contexts))
	}

	first := analysis.Citations[0]
	if first.SuggestedCorrection == "" {
		t.Error("Expected a formatted correction on every citation")
	}
	if analysis.Suggestions[0].ShortFormType != model.ShortFormFull {
		t.Errorf("Expected full form first, got %s", analysis.Suggestions[0].ShortFormType)
	}

	if analysis.Stats.TotalCitations != 3 || analysis.Summary.TotalCitations != 3 {
		t.Errorf("Unexpected totals: %+v", analysis.Stats)
	}
	if analysis.Summary.ShortFormUsage[model.ShortFormID] != 1 {
		t.Errorf("Expected one literal Id., got %v", analysis.Summary.ShortFormUsage)
	}
}

func TestAnalyze_DisplayFollowsDecision(t *testing.T) {
	text := "1 Jane Smith, Regulatory Takings and the Administrative State in Comparative Perspective, 100 Harv. L. Rev. 1 (1990).\n" +
		"2 Jane Smith, Regulatory Takings and the Administrative State in Comparative Perspective, 100 Harv. L. Rev. 1, 5 (1990)."

	analysis, err := NewPipeline(offlineConfig(), nil).Analyze(context.Background(), NewDocument("article.txt", text))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(analysis.Suggestions) != 2 {
		t.Fatalf("Expected 2 suggestions, got %d", len(analysis.Suggestions))
	}

	first := analysis.Suggestions[0]
	if first.AddHereinafter == "" {
		t.Fatalf("Expected a hereinafter alias on the first occurrence, got %+v", first)
	}
	want := "[hereinafter " + first.AddHereinafter + "]"
	if !strings.Contains(first.Display, want) {
		t.Errorf("Expected %q in display, got %q", want, first.Display)
	}
	if strings.Contains(analysis.Citations[0].SuggestedCorrection, "hereinafter") {
		t.Errorf("Expected the canonical correction without the alias, got %q", analysis.Citations[0].SuggestedCorrection)
	}

	second := analysis.Suggestions[1]
	if second.ShortFormType != model.ShortFormID {
		t.Errorf("Expected Id. for the repeat, got %s", second.ShortFormType)
	}
	if !strings.HasPrefix(second.Display, "Id.") {
		t.Errorf("Expected Id. display, got %q", second.Display)
	}
}

func TestAnalyze_StatuteEndToEnd(t *testing.T) {
	p := NewPipeline(offlineConfig(), nil)

	analysis, err := p.Analyze(context.Background(), NewDocument("statute.txt", "42 U.S.C. § 1983 (2000)."))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(analysis.Citations) != 1 {
		t.Fatalf("Expected 1 citation, got %d", len(analysis.Citations))
	}

	c := analysis.Citations[0]
	if c.Type != model.TypeStatute || c.Status != model.StatusComplete {
		t.Errorf("Unexpected citation: %+v", c)
	}
	if c.TitleNumber != "42" || c.Code != "U.S.C." || c.Section != "1983" || c.Year != 2000 {
		t.Errorf("Unexpected statute fields: %+v", c)
	}
	if analysis.TotalFootnotes != 0 {
		t.Errorf("Expected no footnotes, got %d", analysis.TotalFootnotes)
	}
}

func TestAnalyze_ClaimDetectionToggle(t *testing.T) {
	text := "Over 40% of cases settle before trial."

	cfg := offlineConfig()
	analysis, err := NewPipeline(cfg, nil).Analyze(context.Background(), NewDocument("a.txt", text))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(analysis.UnsourcedClaims) != 1 || analysis.Stats.UnsourcedClaims != 1 {
		t.Errorf("Expected 1 unsourced claim, got %d", len(analysis.UnsourcedClaims))
	}

	cfg.Extract.DetectClaims = false
	analysis, err = NewPipeline(cfg, nil).Analyze(context.Background(), NewDocument("a.txt", text))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(analysis.UnsourcedClaims) != 0 {
		t.Errorf("Expected claim detection disabled, got %d claims", len(analysis.UnsourcedClaims))
	}
	if analysis.UnsourcedClaims == nil {
		t.Error("Expected an empty, non-nil claim list")
	}
}

func TestAnalyze_CompletesBeforeResolving(t *testing.T) {
	var searches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/" {
			http.NotFound(w, r)
			return
		}
		searches.Add(1)
		if got := r.URL.Query().Get("case_name"); got != "Marbury v. Madison" {
			t.Errorf("Unexpected case name query: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{{
				"caseName":     "Marbury v. Madison",
				"citation":     []string{"5 U.S. 137"},
				"dateFiled":    "1803-02-24",
				"absolute_url": "/opinion/84759/marbury-v-madison/",
			}},
		})
	}))
	defer server.Close()

	cfg := offlineConfig()
	cfg.Lookup.Enabled = true
	cfg.Lookup.RespectRobots = false
	cfg.Lookup.CourtListenerURL = server.URL
	cfg.RateLimiting.RequestsPerSecond = 0
	cfg.Concurrency.LookupWorkers = 2

	p := NewPipeline(cfg, nil)
	if p.Service() == nil || p.Completer() == nil {
		t.Fatal("Expected lookups to be wired when enabled")
	}

	analysis, err := p.Analyze(context.Background(),
		NewDocument("marbury.txt", "In Marbury v. Madison, the Court asserted judicial review."))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(analysis.Citations) != 1 {
		t.Fatalf("Expected 1 citation, got %d", len(analysis.Citations))
	}

	c := analysis.Citations[0]
	if c.Volume != "5" || c.Reporter != "U.S." || c.Page != "137" || c.Year != 1803 {
		t.Errorf("Expected completed reporter fields, got %+v", c)
	}
	if c.Status != model.StatusComplete {
		t.Errorf("Expected complete status, got %s", c.Status)
	}
	if c.LookupSource != "CourtListener" {
		t.Errorf("Unexpected lookup source: %q", c.LookupSource)
	}
	if !strings.Contains(c.SuggestedCorrection, "5 U.S. 137") {
		t.Errorf("Expected formatting after completion, got %q", c.SuggestedCorrection)
	}
	if searches.Load() != 1 {
		t.Errorf("Expected 1 search, got %d", searches.Load())
	}
	if analysis.Stats.Complete != 1 {
		t.Errorf("Expected stats computed after completion, got %+v", analysis.Stats)
	}
}

func TestAnalyze_CanceledDuringCompletion(t *testing.T) {
	cfg := offlineConfig()
	cfg.Lookup.Enabled = true
	cfg.Lookup.CourtListenerURL = "http://127.0.0.1:1"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPipeline(cfg, nil).Analyze(ctx, NewDocument("x.txt", "In Marbury v. Madison, the Court asserted judicial review."))
	if err == nil {
		t.Fatal("Expected an error for a canceled context")
	}
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memo.html")
	content := `<html><head><title>Memo</title><script>var x = "410 U.S. 113";</script></head>
<body><p>1 Roe v. Wade, 410 U.S. 113 (1973).</p><p>2 Id. at 115.</p></body></html>`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	analysis, err := NewPipeline(offlineConfig(), nil).AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if analysis.Filename != "memo.html" {
		t.Errorf("Unexpected filename: %q", analysis.Filename)
	}
	if len(analysis.Citations) != 2 {
		t.Errorf("Expected 2 citations from visible text only, got %d", len(analysis.Citations))
	}

	if _, err := NewPipeline(offlineConfig(), nil).AnalyzeFile(context.Background(), filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
