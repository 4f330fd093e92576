package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/bluecite/internal/cache"
	"github.com/ppiankov/bluecite/internal/enrich"
	"github.com/ppiankov/bluecite/internal/extract"
	"github.com/ppiankov/bluecite/internal/format"
	"github.com/ppiankov/bluecite/internal/llm"
	"github.com/ppiankov/bluecite/internal/logging"
	"github.com/ppiankov/bluecite/internal/model"
	"github.com/ppiankov/bluecite/internal/resolve"
	"github.com/ppiankov/bluecite/internal/score"
	"github.com/ppiankov/bluecite/internal/util"
	"github.com/ppiankov/bluecite/internal/worker"
)

// Pipeline orchestrates the complete analysis of a document
type Pipeline struct {
	extractor     *extract.Extractor
	claimDetector *extract.ClaimDetector
	formatter     *format.Formatter
	scorer        *score.Scorer
	service       *enrich.Service   // nil when lookups are disabled
	completer     *enrich.Completer // nil when lookups are disabled
	fetcher       *Fetcher
	config        *model.Config
	logger        logging.Logger
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	p := &Pipeline{
		extractor:     extract.NewExtractor(),
		claimDetector: extract.NewClaimDetector(),
		formatter:     format.NewFormatter(format.StyleFor(cfg.Format.LawReviewStyle)),
		scorer:        score.NewScorer(),
		fetcher:       NewFetcher(cfg.Lookup),
		config:        cfg,
		logger:        logger.Named("pipeline"),
	}

	if cfg.Lookup.Enabled {
		p.service, p.completer = newCompletion(cfg, logger)
	}

	return p
}

// newCompletion builds the lookup service and the completer that fans it out
func newCompletion(cfg *model.Config, logger logging.Logger) (*enrich.Service, *enrich.Completer) {
	client := util.NewHTTPClient(cfg.Lookup)

	service := enrich.NewService(cfg.Lookup,
		enrich.WithHTTPClient(client),
		enrich.WithCache(cache.New(cfg.Cache), cfg.Cache.DiskTTL),
		enrich.WithLimiter(worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)),
		enrich.WithLogger(logger),
	)

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, client))
	if err != nil {
		// The model fallback is optional; lookups still run without it
		logger.Warn("LLM provider unavailable", logging.String("provider", cfg.LLM.Provider), logging.Err(err))
		provider = nil
	}

	return service, enrich.NewCompleter(service, provider, cfg.Concurrency.LookupWorkers, logger)
}

// Service returns the lookup service, or nil when lookups are disabled
func (p *Pipeline) Service() *enrich.Service {
	return p.service
}

// Completer returns the citation completer, or nil when lookups are disabled
func (p *Pipeline) Completer() *enrich.Completer {
	return p.completer
}

// Analyze runs one isolated pass over a document: extract, complete,
// format, resolve short forms, detect unsourced claims, then summarize
func (p *Pipeline) Analyze(ctx context.Context, doc Document) (*model.Analysis, error) {
	start := time.Now()
	log := p.logger.With(logging.String("document", doc.Name))

	// 1. Extract citations
	citations := p.extractor.Extract(doc.Text)
	log.Debug("extracted citations", logging.Int("count", len(citations)))

	// 2. Complete what is missing, merged back by index before resolution
	if p.completer != nil {
		citations = p.completer.CompleteAll(ctx, citations, enrich.NeedsCompletion)
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("complete citations: %w", err)
		}
	}

	// 3. Canonical rendering of each citation
	for i := range citations {
		citations[i].SuggestedCorrection = p.formatter.Format(citations[i])
	}

	// 4. Short forms, then the display string each decision calls for
	resolution := resolve.Resolve(citations)
	for i := range resolution.Suggestions {
		resolution.Suggestions[i].Display = p.formatter.Render(citations[i], resolution.Suggestions[i])
	}

	// 5. Unsourced claims
	claims := []model.UnsourcedClaim{}
	if p.config.Extract.DetectClaims {
		claims = p.claimDetector.Detect(doc.Text, citations)
	}

	analysis := &model.Analysis{
		DocumentID:      doc.ID,
		Filename:        doc.Name,
		AnalyzedAt:      time.Now().UTC(),
		Structure:       extract.AnalyzeStructure(doc.Text),
		TotalFootnotes:  totalFootnotes(citations),
		Citations:       citations,
		Contexts:        resolution.Contexts,
		Suggestions:     resolution.Suggestions,
		UnsourcedClaims: claims,
		Stats:           p.scorer.Stats(citations, claims),
		Summary:         p.scorer.Summarize(citations, claims),
	}

	log.Info("analyzed document",
		logging.Int("citations", len(citations)),
		logging.Int("suggestions", len(resolution.Suggestions)),
		logging.Int("unsourced_claims", len(claims)),
		logging.Duration("elapsed", time.Since(start)),
	)

	return analysis, nil
}

// AnalyzeFile loads a document from disk, or from the web when path is a
// URL, and analyzes it
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.Analysis, error) {
	doc, err := p.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return p.Analyze(ctx, doc)
}

// Load reads a document argument: a file path or an http(s) URL
func (p *Pipeline) Load(ctx context.Context, path string) (Document, error) {
	if IsURL(path) {
		doc, err := p.fetcher.FetchWithRetry(ctx, path)
		if err != nil {
			return Document{}, fmt.Errorf("fetch: %w", err)
		}
		return doc, nil
	}
	return LoadFile(path)
}

// FormatCitation renders a single citation in the configured style
func (p *Pipeline) FormatCitation(c model.Citation) string {
	return p.formatter.Format(c)
}

// totalFootnotes is the highest footnote number any citation sits in
func totalFootnotes(citations []model.Citation) int {
	total := 0
	for _, c := range citations {
		if c.FootnoteNumber > total {
			total = c.FootnoteNumber
		}
	}
	return total
}
