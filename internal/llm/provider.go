// Package llm asks a language model to propose missing citation fields.
// Suggestions are never trusted: callers mark anything merged from here as
// needing verification.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ppiankov/bluecite/internal/model"
)

const systemPrompt = "You complete legal citations in Bluebook style. Reply with a single JSON object and nothing else. Use null for any field you are not certain of. Never invent reporters, volumes or pages."

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// SuggestFields proposes values for the citation's missing fields
	SuggestFields(ctx context.Context, req FieldRequest) (*FieldSuggestion, error)
}

// FieldRequest contains the citation to complete
type FieldRequest struct {
	Citation model.Citation

	// Prompt overrides the default prompt when set
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// CitationFields is the JSON shape the model is asked to return
type CitationFields struct {
	Parties     []string `json:"parties,omitempty"`
	Volume      string   `json:"volume,omitempty"`
	Reporter    string   `json:"reporter,omitempty"`
	Page        string   `json:"page,omitempty"`
	Court       string   `json:"court,omitempty"`
	Year        int      `json:"year,omitempty"`
	Author      string   `json:"author,omitempty"`
	Title       string   `json:"title,omitempty"`
	Journal     string   `json:"journal,omitempty"`
	Publisher   string   `json:"publisher,omitempty"`
	Edition     string   `json:"edition,omitempty"`
	TitleNumber string   `json:"title_number,omitempty"`
	Section     string   `json:"section,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// Empty reports whether the model proposed nothing usable
func (f CitationFields) Empty() bool {
	return len(f.Parties) == 0 && f.Volume == "" && f.Reporter == "" && f.Page == "" &&
		f.Court == "" && f.Year == 0 && f.Author == "" && f.Title == "" && f.Journal == "" &&
		f.Publisher == "" && f.Edition == "" && f.TitleNumber == "" && f.Section == "" && f.URL == ""
}

// FieldSuggestion contains the model's proposal
type FieldSuggestion struct {
	Fields     CitationFields
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama or an OpenAI-compatible gateway)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// HTTPClient carries the lookup proxy settings; nil uses a default client
	HTTPClient *http.Client
}

func (c Config) timeout(fallback time.Duration) time.Duration {
	if c.Timeout > 0 {
		return time.Duration(c.Timeout) * time.Second
	}
	return fallback
}

func (c Config) maxTokens(requested int) int {
	switch {
	case requested > 0:
		return requested
	case c.MaxTokens > 0:
		return c.MaxTokens
	default:
		return 500
	}
}

// BuildPrompt describes what is known about a citation and asks for the rest
func BuildPrompt(c model.Citation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Citation type: %s\n", c.Type)
	fmt.Fprintf(&b, "Text as written: %s\n", c.RawText)

	known := knownFields(c)
	if len(known) > 0 {
		b.WriteString("Known fields:\n")
		for _, k := range known {
			fmt.Fprintf(&b, "- %s\n", k)
		}
	}

	b.WriteString(`
Return JSON with these keys where they apply: parties (array of two names for a case),
volume, reporter, page, court, year (number), author, title, journal, publisher,
edition, title_number, section, url.`)
	return b.String()
}

func knownFields(c model.Citation) []string {
	var out []string
	add := func(name, value string) {
		if value != "" {
			out = append(out, name+": "+value)
		}
	}
	if len(c.Parties) > 0 {
		add("parties", strings.Join(c.Parties, " v. "))
	}
	add("volume", c.Volume)
	add("reporter", c.Reporter)
	add("page", c.Page)
	add("court", c.Court)
	if c.Year != 0 {
		add("year", fmt.Sprint(c.Year))
	}
	add("author", c.Author)
	add("title", c.Title)
	add("journal", c.Journal)
	add("title_number", c.TitleNumber)
	add("section", c.Section)
	add("url", c.URL)
	return out
}

var (
	fencePattern   = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	numericPattern = regexp.MustCompile(`^\d+$`)
)

// ParseFields extracts the JSON object from a model reply and drops values
// that cannot be right
func ParseFields(reply string) (CitationFields, error) {
	text := strings.TrimSpace(reply)
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return CitationFields{}, fmt.Errorf("no JSON object in model reply")
	}

	var fields CitationFields
	if err := json.Unmarshal([]byte(text[start:end+1]), &fields); err != nil {
		return CitationFields{}, fmt.Errorf("decode model reply: %w", err)
	}

	return sanitize(fields), nil
}

func sanitize(f CitationFields) CitationFields {
	if f.Year != 0 && (f.Year < 1600 || f.Year > time.Now().Year()+1) {
		f.Year = 0
	}
	if f.Volume != "" && !numericPattern.MatchString(f.Volume) {
		f.Volume = ""
	}
	if f.Page != "" && !numericPattern.MatchString(f.Page) {
		f.Page = ""
	}
	if len(f.Parties) != 0 && len(f.Parties) != 2 {
		f.Parties = nil
	}
	for i := range f.Parties {
		f.Parties[i] = strings.TrimSpace(f.Parties[i])
	}
	return f
}
