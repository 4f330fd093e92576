package llm

import (
	"net/http"
	"strings"
	"testing"

	"github.com/ppiankov/bluecite/internal/model"
)

func TestParseFields(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		check func(CitationFields) bool
	}{
		{
			name:  "bare object",
			reply: `{"volume": "347", "page": "483"}`,
			check: func(f CitationFields) bool { return f.Volume == "347" && f.Page == "483" },
		},
		{
			name:  "fenced",
			reply: "```json\n{\"journal\": \"Harv. L. Rev.\"}\n```",
			check: func(f CitationFields) bool { return f.Journal == "Harv. L. Rev." },
		},
		{
			name:  "surrounding prose",
			reply: "Sure. {\"section\": \"1983\"} Hope that helps.",
			check: func(f CitationFields) bool { return f.Section == "1983" },
		},
		{
			name:  "implausible values dropped",
			reply: `{"year": 3020, "volume": "vol. 3", "page": "12a", "parties": ["Only One"]}`,
			check: func(f CitationFields) bool { return f.Empty() },
		},
		{
			name:  "nulls",
			reply: `{"volume": null, "reporter": null}`,
			check: func(f CitationFields) bool { return f.Empty() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFields(tt.reply)
			if err != nil {
				t.Fatalf("ParseFields failed: %v", err)
			}
			if !tt.check(f) {
				t.Errorf("unexpected fields %+v", f)
			}
		})
	}
}

func TestParseFields_Errors(t *testing.T) {
	for _, reply := range []string{"", "no json here", "{broken"} {
		if _, err := ParseFields(reply); err == nil {
			t.Errorf("expected error for %q", reply)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(model.Citation{
		Type:    model.TypeLawReview,
		RawText: "Smith, Takings, 100 Harv. L. Rev. 1",
		Author:  "Smith",
		Volume:  "100",
		Year:    1990,
	})

	for _, want := range []string{"Citation type: law_review", "Text as written: Smith, Takings", "author: Smith", "volume: 100", "year: 1990"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "reporter:") {
		t.Error("prompt should list only known fields")
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil || p != nil {
		t.Errorf("expected disabled provider, got %v, %v", p, err)
	}

	if _, err := NewProvider(Config{Provider: "bogus"}); err == nil {
		t.Error("expected error for unknown provider")
	}

	p, err = NewProvider(Config{Provider: "OpenAI", APIKey: "k"})
	if err != nil || p.Name() != "openai" {
		t.Errorf("expected openai provider, got %v, %v", p, err)
	}

	p, err = NewProvider(Config{Provider: "claude", APIKey: "k"})
	if err != nil || p.Name() != "anthropic" {
		t.Errorf("expected anthropic provider, got %v, %v", p, err)
	}

	p, err = NewProvider(Config{Provider: "ollama", Model: "llama3.1"})
	if err != nil || p.Name() != "ollama" {
		t.Errorf("expected ollama provider, got %v, %v", p, err)
	}
}

func TestConfigFromModel(t *testing.T) {
	client := &http.Client{}
	cfg := ConfigFromModel(model.LLMConfig{Provider: "openai", Model: "m", APIKey: "k", Timeout: 7, MaxTokens: 99}, client)
	if cfg.Provider != "openai" || cfg.Model != "m" || cfg.APIKey != "k" || cfg.Timeout != 7 || cfg.MaxTokens != 99 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.HTTPClient != client {
		t.Error("expected shared client to be carried over")
	}
}
