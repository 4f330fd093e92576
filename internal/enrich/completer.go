package enrich

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/bluecite/internal/llm"
	"github.com/ppiankov/bluecite/internal/logging"
	"github.com/ppiankov/bluecite/internal/model"
	"github.com/ppiankov/bluecite/internal/worker"
)

const (
	completeThreshold = 0.8
	foundBoost        = 0.15
	untypedConfidence = 0.5
	llmConfidenceCap  = 0.5
)

var reporterCitation = regexp.MustCompile(`^(\d+)\s+([A-Za-z][A-Za-z\d.\s]*?)\s+(\d+)\b`)

// requiredFields reports, for each field a citation of its type needs to
// be complete, whether it is present
func requiredFields(c model.Citation) []bool {
	switch c.Type {
	case model.TypeCase:
		return []bool{len(c.Parties) > 0, c.Volume != "", c.Reporter != "", c.Page != "", c.Year != 0}
	case model.TypeLawReview:
		return []bool{c.Author != "", c.Title != "", c.Volume != "", c.Journal != "", c.Page != "", c.Year != 0}
	case model.TypeStatute:
		return []bool{c.TitleNumber != "", c.Code != "", c.Section != ""}
	case model.TypeRegulation:
		return []bool{c.TitleNumber != "", c.Section != ""}
	case model.TypeBook:
		return []bool{c.Author != "", c.Title != "", c.Year != 0}
	}
	return nil
}

// Source is what the completer needs from a lookup service
type Source interface {
	SmartComplete(ctx context.Context, c model.Citation) Result
}

// Completer fills missing citation fields from lookup results and, when
// configured, from a language model
type Completer struct {
	source   Source
	provider llm.Provider
	workers  int
	logger   logging.Logger
}

// NewCompleter creates a completer. provider may be nil.
func NewCompleter(source Source, provider llm.Provider, workers int, logger logging.Logger) *Completer {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Completer{
		source:   source,
		provider: provider,
		workers:  workers,
		logger:   logger.Named("completer"),
	}
}

// Complete returns the citation with gaps filled. Complete citations are
// returned unchanged. Existing fields are never overwritten.
func (c *Completer) Complete(ctx context.Context, cit model.Citation) model.Citation {
	if cit.Status == model.StatusComplete {
		return cit
	}

	result := c.source.SmartComplete(ctx, cit)
	if result.Found && result.Data != nil {
		return Apply(cit, result)
	}

	if result.Error != "" {
		c.logger.Debug("lookup failed",
			logging.String("citation", cit.RawText),
			logging.String("error", result.Error))
	}

	if c.provider != nil {
		return c.completeWithModel(ctx, cit)
	}
	return cit
}

// CompleteText builds a citation from pasted text (a case name, a title
// or a URL) and completes it
func (c *Completer) CompleteText(ctx context.Context, text string) (model.Citation, Result) {
	text = strings.TrimSpace(text)
	cit := model.Citation{
		Type:        model.TypeOther,
		Status:      model.StatusIncomplete,
		RawText:     text,
		PositionEnd: len(text),
	}
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		cit.Type = model.TypeWebsite
		cit.URL = text
	}

	result := c.source.SmartComplete(ctx, cit)
	if result.Found && result.Data != nil {
		cit = Apply(cit, result)
	}
	return cit, result
}

// Apply merges a successful result into a citation and scores it
func Apply(cit model.Citation, result Result) model.Citation {
	if result.InferredType != "" {
		cit.Type = result.InferredType
	}

	cit = merge(cit, *result.Data)
	cit.LookupSource = result.Source
	cit.ConfidenceScore = Confidence(cit, result.Found)
	if cit.ConfidenceScore > completeThreshold {
		cit.Status = model.StatusComplete
	} else {
		cit.Status = model.StatusNeedsVerification
	}
	return cit
}

// Confidence is the share of required fields present, raised by 0.15 when
// a source matched and capped at 1. Types without required fields score 0.5.
func Confidence(cit model.Citation, found bool) float64 {
	fields := requiredFields(cit)
	if len(fields) == 0 {
		return untypedConfidence
	}

	filled := 0
	for _, present := range fields {
		if present {
			filled++
		}
	}

	score := float64(filled) / float64(len(fields))
	if found {
		score += foundBoost
	}
	if score > 1 {
		score = 1
	}
	return score
}

// merge fills empty citation fields from a record
func merge(cit model.Citation, data Record) model.Citation {
	switch cit.Type {
	case model.TypeCase:
		if len(cit.Parties) == 0 && data.CaseName != "" {
			if parts := strings.Split(data.CaseName, " v. "); len(parts) == 2 {
				cit.Parties = []string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])}
			}
		}
		var reporterCites []string
		for _, cite := range data.Citations {
			m := reporterCitation.FindStringSubmatch(strings.TrimSpace(cite))
			if m == nil {
				continue
			}
			if len(reporterCites) == 0 {
				fill(&cit.Volume, m[1])
				fill(&cit.Reporter, strings.TrimSpace(m[2]))
				fill(&cit.Page, m[3])
			}
			reporterCites = append(reporterCites, m[1]+" "+strings.TrimSpace(m[2])+" "+m[3])
		}
		// Every other reporter the source knows becomes a parallel citation
		if len(cit.ParallelCitations) == 0 {
			primary := cit.Volume + " " + cit.Reporter + " " + cit.Page
			for _, cite := range reporterCites {
				if cite != primary {
					cit.ParallelCitations = append(cit.ParallelCitations, cite)
				}
			}
		}
		if cit.Year == 0 && len(data.DateFiled) >= 4 {
			if year, err := strconv.Atoi(data.DateFiled[:4]); err == nil {
				cit.Year = year
			}
		}
		fill(&cit.Court, data.Court)

	case model.TypeLawReview:
		fill(&cit.Author, data.Author)
		fill(&cit.Title, data.Title)
		fill(&cit.Journal, data.ContainerTitle)
		fill(&cit.Volume, data.Volume)
		if first, _, _ := strings.Cut(data.Page, "-"); first != "" {
			fill(&cit.Page, first)
		}
		fillYear(&cit.Year, data.Year)

	case model.TypeBook:
		fill(&cit.Author, data.Author)
		fill(&cit.Title, data.Title)
		fill(&cit.Publisher, data.Publisher)
		fillYear(&cit.Year, data.Year)

	case model.TypeWebsite:
		fill(&cit.Author, data.Author)
		fill(&cit.Title, data.Title)
		fill(&cit.URL, data.URL)
		fill(&cit.AccessDate, data.PublishedDate)

	case model.TypeStatute, model.TypeRegulation:
		fill(&cit.TitleNumber, data.TitleNumber)
		fill(&cit.Section, data.Section)
		if cit.Type == model.TypeStatute {
			fill(&cit.Code, data.Code)
		}
	}
	return cit
}

func fill(dst *string, value string) {
	if *dst == "" && value != "" {
		*dst = value
	}
}

func fillYear(dst *int, value int) {
	if *dst == 0 && value != 0 {
		*dst = value
	}
}

// completeWithModel asks the language model for the missing fields. Any
// field it fills leaves the citation needing verification.
func (c *Completer) completeWithModel(ctx context.Context, cit model.Citation) model.Citation {
	suggestion, err := c.provider.SuggestFields(ctx, llm.FieldRequest{Citation: cit})
	if err != nil {
		c.logger.Warn("model completion failed",
			logging.String("provider", c.provider.Name()),
			logging.Err(err))
		return cit
	}
	if suggestion == nil || suggestion.Fields.Empty() {
		return cit
	}

	before := cit
	cit = mergeFields(cit, suggestion.Fields)
	if equalFields(before, cit) {
		return cit
	}

	score := Confidence(cit, false)
	if score > llmConfidenceCap {
		score = llmConfidenceCap
	}
	cit.ConfidenceScore = score
	cit.Status = model.StatusNeedsVerification
	cit.LookupSource = "llm:" + c.provider.Name()

	c.logger.Debug("model proposed fields",
		logging.String("citation", cit.RawText),
		logging.String("model", suggestion.Model),
		logging.Int("tokens", suggestion.TokensUsed))
	return cit
}

func mergeFields(cit model.Citation, f llm.CitationFields) model.Citation {
	if len(cit.Parties) < 2 && len(f.Parties) == 2 {
		cit.Parties = append([]string(nil), f.Parties...)
	}
	fill(&cit.Volume, f.Volume)
	fill(&cit.Reporter, f.Reporter)
	fill(&cit.Page, f.Page)
	fill(&cit.Court, f.Court)
	fillYear(&cit.Year, f.Year)
	fill(&cit.Author, f.Author)
	fill(&cit.Title, f.Title)
	fill(&cit.Journal, f.Journal)
	fill(&cit.Publisher, f.Publisher)
	fill(&cit.Edition, f.Edition)
	fill(&cit.TitleNumber, f.TitleNumber)
	fill(&cit.Section, f.Section)
	fill(&cit.URL, f.URL)
	return cit
}

func equalFields(a, b model.Citation) bool {
	return strings.Join(a.Parties, "\x00") == strings.Join(b.Parties, "\x00") &&
		a.Volume == b.Volume && a.Reporter == b.Reporter && a.Page == b.Page &&
		a.Court == b.Court && a.Year == b.Year && a.Author == b.Author &&
		a.Title == b.Title && a.Journal == b.Journal && a.Publisher == b.Publisher &&
		a.Edition == b.Edition && a.TitleNumber == b.TitleNumber &&
		a.Section == b.Section && a.URL == b.URL
}

// completionJob completes one citation on the worker pool
type completionJob struct {
	index     int
	citation  model.Citation
	completer *Completer
}

func (j *completionJob) Execute(ctx context.Context) worker.Result {
	return &completionResult{index: j.index, citation: j.completer.Complete(ctx, j.citation)}
}

type completionResult struct {
	index    int
	citation model.Citation
}

func (r *completionResult) GetError() error { return nil }

// CompleteAll completes citations concurrently and returns a copy with the
// results merged back by index. Citations whose job was dropped by
// cancellation are returned unchanged.
func (c *Completer) CompleteAll(ctx context.Context, citations []model.Citation, want func(model.Citation) bool) []model.Citation {
	out := make([]model.Citation, len(citations))
	copy(out, citations)

	var jobs []worker.Job
	for i, cit := range citations {
		if want == nil || want(cit) {
			jobs = append(jobs, &completionJob{index: i, citation: cit, completer: c})
		}
	}
	if len(jobs) == 0 {
		return out
	}

	c.logger.Debug("completing citations", logging.Int("count", len(jobs)), logging.Int("workers", c.workers))

	for _, r := range worker.Run(ctx, c.workers, jobs) {
		res := r.(*completionResult)
		out[res.index] = res.citation
	}
	return out
}

// NeedsCompletion selects citations that are incomplete or unverified
func NeedsCompletion(c model.Citation) bool {
	return c.Status == model.StatusIncomplete || c.Status == model.StatusNeedsVerification
}
