package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/bluecite/internal/enrich"
	"github.com/ppiankov/bluecite/internal/model"
	"github.com/ppiankov/bluecite/internal/pipeline"
)

var (
	lookupParties string
	lookupCite    string
	lookupTimeout time.Duration
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup [text]",
	Short: "Complete a citation from public databases",
	Long: `Lookup completes a partial citation. Give free text (a case name,
an article title, a statute, a URL) or structured parts with --parties
and --cite. Every search strategy tried is reported.

Example:
  bluecite lookup "Brown v. Board of Education"
  bluecite lookup --cite "410 U.S. 113"
  bluecite lookup --parties "Marbury v. Madison"
  bluecite lookup "42 USC 1983"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().StringVar(&lookupParties, "parties", "", `case name, e.g. "Roe v. Wade"`)
	lookupCmd.Flags().StringVar(&lookupCite, "cite", "", `reporter citation, e.g. "410 U.S. 113"`)
	lookupCmd.Flags().DurationVar(&lookupTimeout, "timeout", time.Minute, "lookup timeout")
	lookupCmd.Flags().BoolVar(&plainStyle, "plain", false, "court-document style instead of law review style")
}

// lookupOutput is what the lookup command prints
type lookupOutput struct {
	Citation        model.Citation  `json:"citation"`
	Formatted       string          `json:"formatted"`
	Found           bool            `json:"found"`
	Source          string          `json:"source,omitempty"`
	StrategiesTried []string        `json:"strategies_tried,omitempty"`
	Suggestions     []enrich.Record `json:"suggestions"`
	Error           string          `json:"error,omitempty"`
}

func runLookup(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && lookupParties == "" && lookupCite == "" {
		return fmt.Errorf("give text to look up, or --parties / --cite")
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	cfg.Lookup.Enabled = true
	if plainStyle {
		cfg.Format.LawReviewStyle = false
	}
	// Only database results are reported here
	cfg.LLM.Provider = ""

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	p := pipeline.NewPipeline(cfg, logger)

	var (
		cit    model.Citation
		result enrich.Result
	)
	if len(args) == 1 {
		cit, result = p.Completer().CompleteText(ctx, args[0])
	} else {
		cit, err = structuredCitation(lookupParties, lookupCite)
		if err != nil {
			return err
		}
		result = p.Service().SmartComplete(ctx, cit)
		if result.Found && result.Data != nil {
			cit = enrich.Apply(cit, result)
		}
	}

	out := lookupOutput{
		Citation:        cit,
		Formatted:       p.FormatCitation(cit),
		Found:           result.Found,
		Source:          result.Source,
		StrategiesTried: result.StrategiesTried,
		Suggestions:     result.Suggestions,
		Error:           result.Error,
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if !result.Found {
		return fmt.Errorf("%w: tried %s", enrich.ErrNotFound, strings.Join(result.StrategiesTried, ", "))
	}
	return nil
}

var (
	versusSplit  = regexp.MustCompile(`\s+v\.?\s+`)
	reporterCite = regexp.MustCompile(`^(\d+)\s+(.+?)\s+(\d+)$`)
)

// structuredCitation builds a case citation from --parties and --cite
func structuredCitation(parties, cite string) (model.Citation, error) {
	c := model.Citation{
		Type:   model.TypeCase,
		Status: model.StatusIncomplete,
	}

	if parties = strings.TrimSpace(parties); parties != "" {
		names := versusSplit.Split(parties, 2)
		for _, name := range names {
			if name = strings.TrimSpace(name); name != "" {
				c.Parties = append(c.Parties, name)
			}
		}
		c.RawText = parties
	}

	if cite = strings.TrimSpace(cite); cite != "" {
		m := reporterCite.FindStringSubmatch(cite)
		if m == nil {
			return model.Citation{}, fmt.Errorf("cannot parse citation %q (want volume reporter page)", cite)
		}
		c.Volume, c.Reporter, c.Page = m[1], strings.TrimSpace(m[2]), m[3]
		if c.RawText == "" {
			c.RawText = cite
		} else {
			c.RawText += ", " + cite
		}
	}

	c.PositionEnd = len(c.RawText)
	return c, nil
}
