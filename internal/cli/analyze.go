package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/bluecite/internal/model"
	"github.com/ppiankov/bluecite/internal/pipeline"
)

var (
	outFormat     string
	outPath       string
	timeout       time.Duration
	lookupEnabled bool
	noCache       bool
	noClaims      bool
	noFooter      bool
	plainStyle    bool
	llmProvider   string
	llmModel      string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|url>",
	Short: "Analyze the citations in one document",
	Long: `Analyze reads a plain text or HTML document and:
- Extracts case, statute, regulation, article, book and web citations
- Assigns each citation to its footnote
- Suggests the Bluebook form for every occurrence (full, Id., supra, short case)
- Flags statements that may need a citation
- Optionally completes incomplete citations from public databases

Example:
  bluecite analyze brief.txt
  bluecite analyze note.html --format markdown --output note.md
  bluecite analyze brief.txt --lookup --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&outFormat, "format", "f", "", "report format: json, yaml, markdown (default from config)")
	analyzeCmd.Flags().StringVarP(&outPath, "output", "o", "", "report path (default: stdout)")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	addAnalysisFlags(analyzeCmd)
}

// addAnalysisFlags registers the flags shared by analyze and batch
func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&lookupEnabled, "lookup", false, "complete incomplete citations from CourtListener, CrossRef, Open Library and eCFR")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the lookup cache")
	cmd.Flags().BoolVar(&noClaims, "no-claims", false, "skip unsourced claim detection")
	cmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	cmd.Flags().BoolVar(&plainStyle, "plain", false, "format citations in court-document style instead of law review style")
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider for fields no database found (openai, anthropic, ollama)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

// applyAnalysisFlags overrides the configuration with flags set on cmd
func applyAnalysisFlags(cmd *cobra.Command, cfg *model.Config) error {
	flags := cmd.Flags()
	if flags.Changed("lookup") {
		cfg.Lookup.Enabled = lookupEnabled
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noClaims {
		cfg.Extract.DetectClaims = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if plainStyle {
		cfg.Format.LawReviewStyle = false
	}
	if flags.Changed("llm-provider") {
		cfg.LLM.Provider = llmProvider
		applyLLMEnv(&cfg.LLM)
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Output.Format = outFormat
	}

	format, err := pipeline.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	cfg.Output.Format = format

	if cfg.LLM.Provider != "" && !cfg.Lookup.Enabled {
		fmt.Fprintf(os.Stderr, "Warning: --llm-provider has no effect without --lookup\n")
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	source := args[0]

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if err := applyAnalysisFlags(cmd, cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", source)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Lookups: %v\n", cfg.Lookup.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg, logger)

	analysis, err := p.AnalyzeFile(ctx, source)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d citations in %d footnotes\n", len(analysis.Citations), analysis.TotalFootnotes)
		fmt.Fprintf(os.Stderr, "✓ Suggested %d short forms\n", countShortForms(analysis))
		fmt.Fprintf(os.Stderr, "✓ Found %d unsourced claims\n", len(analysis.UnsourcedClaims))
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if err := renderer.WriteFile(analysis, cfg.Output.Format, outPath); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if outPath != "" {
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s: %s\n", cfg.Output.Format, outPath)
		}
		renderer.RenderSummary(os.Stderr, analysis)
	}

	return nil
}

// countShortForms counts suggestions that replace a full citation
func countShortForms(analysis *model.Analysis) int {
	n := 0
	for _, s := range analysis.Suggestions {
		if s.ShortFormType != model.ShortFormFull {
			n++
		}
	}
	return n
}
