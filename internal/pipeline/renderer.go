package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/bluecite/internal/model"
)

// Report formats
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

// Renderer writes analyses as reports
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// ParseFormat normalizes a report format name
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown report format %q (want json, yaml or markdown)", s)
}

// Extension is the file extension for a report format
func Extension(format string) string {
	switch format {
	case FormatYAML:
		return ".yaml"
	case FormatMarkdown:
		return ".md"
	}
	return ".json"
}

// Render writes the analysis to w in the given format
func (r *Renderer) Render(w io.Writer, analysis *model.Analysis, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(analysis); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(analysis); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return enc.Close()
	case FormatMarkdown:
		_, err := io.WriteString(w, r.markdown(analysis))
		return err
	}
	return fmt.Errorf("unknown report format %q", format)
}

// WriteFile renders the analysis into path, or to stdout when path is "" or "-"
func (r *Renderer) WriteFile(analysis *model.Analysis, format, path string) (err error) {
	if path == "" || path == "-" {
		return r.Render(os.Stdout, analysis, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close report: %w", closeErr)
		}
	}()

	return r.Render(f, analysis, format)
}

// RenderJSON writes a JSON report to path
func (r *Renderer) RenderJSON(analysis *model.Analysis, path string) error {
	return r.WriteFile(analysis, FormatJSON, path)
}

// RenderYAML writes a YAML report to path
func (r *Renderer) RenderYAML(analysis *model.Analysis, path string) error {
	return r.WriteFile(analysis, FormatYAML, path)
}

// RenderMarkdown writes a Markdown report to path
func (r *Renderer) RenderMarkdown(analysis *model.Analysis, path string) error {
	return r.WriteFile(analysis, FormatMarkdown, path)
}

func (r *Renderer) markdown(a *model.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Citation Report: %s\n\n", a.Filename)
	fmt.Fprintf(&b, "Analyzed %s. ", a.AnalyzedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "Style: %s, %d words, %d footnotes.\n\n",
		a.Structure.CitationStyle, a.Structure.EstimatedWordCount, a.TotalFootnotes)

	b.WriteString("## Overview\n\n")
	b.WriteString("| Citations | Complete | Incomplete | Needs verification | Unsourced claims |\n")
	b.WriteString("|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n\n",
		a.Stats.TotalCitations, a.Stats.Complete, a.Stats.Incomplete,
		a.Stats.NeedsVerification, a.Stats.UnsourcedClaims)

	if len(a.Summary.Signals) > 0 {
		b.WriteString("## Signals\n\n")
		for _, s := range a.Summary.Signals {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", s.Type, s.Severity, s.Description)
		}
		b.WriteString("\n")
	}

	if len(a.Summary.ByType) > 0 {
		b.WriteString("## Citation Types\n\n")
		for _, t := range model.CitationTypes {
			if n := a.Summary.ByType[t]; n > 0 {
				fmt.Fprintf(&b, "- %s: %d\n", t, n)
			}
		}
		b.WriteString("\n")
	}

	if len(a.Summary.MostCited) > 0 {
		b.WriteString("## Most Cited\n\n")
		for _, kc := range a.Summary.MostCited {
			fmt.Fprintf(&b, "- `%s` (%d)\n", kc.Key, kc.Count)
		}
		b.WriteString("\n")
	}

	if len(a.Citations) > 0 {
		b.WriteString("## Citations\n\n")
		b.WriteString("| # | Note | Type | Status | Citation | Suggested form |\n")
		b.WriteString("|---|---|---|---|---|---|\n")

		suggestions := make(map[string]model.Suggestion, len(a.Suggestions))
		for _, s := range a.Suggestions {
			suggestions[s.CitationID] = s
		}

		for i, c := range a.Citations {
			note := "-"
			if c.FootnoteNumber > 0 {
				note = fmt.Sprintf("%d", c.FootnoteNumber)
			}
			s := suggestions[c.ID]
			suggested := s.Display
			if suggested == "" {
				suggested = s.SuggestedForm
			}
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
				i+1, note, c.Type, c.Status,
				cell(c.PreferredForm()), cell(suggested))
		}
		b.WriteString("\n")
	}

	if len(a.UnsourcedClaims) > 0 {
		b.WriteString("## Unsourced Claims\n\n")
		for _, claim := range a.UnsourcedClaims {
			fmt.Fprintf(&b, "- _%s_ (%.2f): %s\n", claim.ClaimType, claim.Confidence, claim.Text)
			if len(claim.SuggestedSearchTerms) > 0 {
				fmt.Fprintf(&b, "  - search: %s\n", strings.Join(claim.SuggestedSearchTerms, ", "))
			}
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("_Generated by bluecite. Suggestions follow Bluebook short-form rules and should be reviewed before use._\n")
	}

	return b.String()
}

// cell escapes a value for a Markdown table
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

// RenderSummary prints a short human summary of the analysis
func (r *Renderer) RenderSummary(w io.Writer, a *model.Analysis) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	_, _ = fmt.Fprintf(w, "  %s\n", a.Filename)
	_, _ = fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "  Citations:          %d\n", a.Stats.TotalCitations)
	_, _ = fmt.Fprintf(w, "  Complete:           %d\n", a.Stats.Complete)
	_, _ = fmt.Fprintf(w, "  Incomplete:         %d\n", a.Stats.Incomplete)
	_, _ = fmt.Fprintf(w, "  Needs verification: %d\n", a.Stats.NeedsVerification)
	_, _ = fmt.Fprintf(w, "  Unsourced claims:   %d\n", a.Stats.UnsourcedClaims)
	_, _ = fmt.Fprintf(w, "  Footnotes:          %d\n", a.TotalFootnotes)

	usage := make([]string, 0, len(a.Summary.ShortFormUsage))
	for form, n := range a.Summary.ShortFormUsage {
		usage = append(usage, fmt.Sprintf("%s=%d", form, n))
	}
	sort.Strings(usage)
	if len(usage) > 0 {
		_, _ = fmt.Fprintf(w, "  Short forms:        %s\n", strings.Join(usage, " "))
	}

	if len(a.Summary.Signals) > 0 {
		_, _ = fmt.Fprintln(w)
		for _, s := range a.Summary.Signals {
			_, _ = fmt.Fprintf(w, "  [%s] %s\n", s.Severity, s.Description)
		}
	}
	_, _ = fmt.Fprintln(w)
}
