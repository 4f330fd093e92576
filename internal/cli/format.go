package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/bluecite/internal/format"
	"github.com/ppiankov/bluecite/internal/model"
)

// formatCmd represents the format command
var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Format citations given as JSON",
	Long: `Format renders citations in Bluebook form. Input is a JSON citation
object or an array of them, read from the file argument or stdin.

Example:
  echo '{"type":"case","parties":["Roe","Wade"],"volume":"410","reporter":"U.S.","page":"113","year":1973}' | bluecite format
  bluecite format citations.json --plain`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)
	formatCmd.Flags().BoolVar(&plainStyle, "plain", false, "court-document style instead of law review style")
}

func runFormat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if plainStyle {
		cfg.Format.LawReviewStyle = false
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open citations: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read citations: %w", err)
	}

	citations, err := decodeCitations(data)
	if err != nil {
		return err
	}

	formatter := format.NewFormatter(format.StyleFor(cfg.Format.LawReviewStyle))
	out := cmd.OutOrStdout()
	for _, c := range citations {
		if _, err := fmt.Fprintln(out, formatter.Format(c)); err != nil {
			return err
		}
	}
	return nil
}

// decodeCitations accepts a single citation object or an array of them
func decodeCitations(data []byte) ([]model.Citation, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("no citation given")
	}

	var citations []model.Citation
	if data[0] == '[' {
		if err := json.Unmarshal(data, &citations); err != nil {
			return nil, fmt.Errorf("decode citations: %w", err)
		}
	} else {
		var c model.Citation
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("decode citation: %w", err)
		}
		citations = append(citations, c)
	}

	for i, c := range citations {
		if !c.Type.Valid() {
			return nil, fmt.Errorf("citation %d: unknown type %q", i+1, c.Type)
		}
	}
	return citations, nil
}
