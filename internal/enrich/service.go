// Package enrich completes citations from free legal and bibliographic
// databases: CourtListener, CrossRef, Open Library, eCFR and page metadata.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/bluecite/internal/cache"
	"github.com/ppiankov/bluecite/internal/logging"
	"github.com/ppiankov/bluecite/internal/model"
	"github.com/ppiankov/bluecite/internal/util"
	"github.com/ppiankov/bluecite/internal/worker"
)

const lookupMaxRetries = 3

// lookupSleepFunc is the sleep function used between retries (injectable for tests)
var lookupSleepFunc = time.Sleep

var (
	// ErrNotFound is returned when a source answered but had no match
	ErrNotFound = errors.New("not found")

	// ErrDisallowedByRobots is returned when robots.txt forbids fetching a page
	ErrDisallowedByRobots = errors.New("disallowed by robots.txt")
)

// Source names reported on results
const (
	SourceCourtListener = "CourtListener"
	SourceCornell       = "Cornell Law"
	SourceECFR          = "eCFR"
	SourceCrossRef      = "CrossRef"
	SourceOpenLibrary   = "Open Library"
	SourceURLMetadata   = "URL Metadata"
)

// Record is one candidate authority returned by a source. Only the fields
// the source knows are set.
type Record struct {
	// Cases
	CaseName     string   `json:"case_name,omitempty"`
	Citations    []string `json:"citation,omitempty"`
	Court        string   `json:"court,omitempty"`
	CourtID      string   `json:"court_id,omitempty"`
	DateFiled    string   `json:"date_filed,omitempty"`
	DocketNumber string   `json:"docket_number,omitempty"`
	Snippet      string   `json:"snippet,omitempty"`
	Judge        string   `json:"judge,omitempty"`

	// Articles, books and pages
	Title          string `json:"title,omitempty"`
	Author         string `json:"author,omitempty"`
	ContainerTitle string `json:"container_title,omitempty"`
	Volume         string `json:"volume,omitempty"`
	Page           string `json:"page,omitempty"`
	Year           int    `json:"year,omitempty"`
	DOI            string `json:"doi,omitempty"`
	Publisher      string `json:"publisher,omitempty"`
	ISBN           string `json:"isbn,omitempty"`
	OpenLibraryKey string `json:"openlibrary_key,omitempty"`
	SiteName       string `json:"site_name,omitempty"`
	PublishedDate  string `json:"publication_date,omitempty"`

	// Statutes and regulations
	TitleNumber string `json:"title_number,omitempty"`
	Section     string `json:"section,omitempty"`
	Code        string `json:"code,omitempty"`

	URL    string          `json:"url,omitempty"`
	AltURL string          `json:"alt_url,omitempty"`
	Raw    json.RawMessage `json:"raw,omitempty"`
}

// Result is the outcome of one lookup or search
type Result struct {
	Found           bool               `json:"found"`
	Data            *Record            `json:"data,omitempty"`
	Suggestions     []Record           `json:"suggestions"`
	Source          string             `json:"source,omitempty"`
	InferredType    model.CitationType `json:"inferred_type,omitempty"`
	StrategiesTried []string           `json:"strategies_tried,omitempty"`
	Error           string             `json:"error,omitempty"`
}

// found marks the first suggestion as the best match
func (r *Result) found() {
	if len(r.Suggestions) > 0 {
		r.Found = true
		r.Data = &r.Suggestions[0]
	}
}

// Service looks up citations. It is safe for concurrent use.
type Service struct {
	cfg        model.LookupConfig
	httpClient *http.Client
	cache      cache.Cache
	cacheTTL   time.Duration
	limiter    *worker.Limiter
	robots     *util.RobotsChecker
	logger     logging.Logger
}

// Option customizes a Service
type Option func(*Service)

// WithHTTPClient replaces the proxy-aware default client
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) { s.httpClient = client }
}

// WithCache stores lookup results; a zero ttl uses the cache's default
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithLimiter rate-limits requests per host
func WithLimiter(l *worker.Limiter) Option {
	return func(s *Service) { s.limiter = l }
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a lookup service
func NewService(cfg model.LookupConfig, opts ...Option) *Service {
	defaults := model.DefaultConfig().Lookup
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if cfg.CourtListenerURL == "" {
		cfg.CourtListenerURL = defaults.CourtListenerURL
	}
	if cfg.CrossRefURL == "" {
		cfg.CrossRefURL = defaults.CrossRefURL
	}
	if cfg.OpenLibraryURL == "" {
		cfg.OpenLibraryURL = defaults.OpenLibraryURL
	}
	if cfg.ECFRURL == "" {
		cfg.ECFRURL = defaults.ECFRURL
	}

	s := &Service{
		cfg:    cfg,
		cache:  cache.Nop{},
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.httpClient == nil {
		s.httpClient = util.NewHTTPClient(cfg)
	}
	if s.limiter == nil {
		s.limiter = worker.NewLimiter(0, 0)
	}
	if cfg.RespectRobots {
		s.robots = util.NewRobotsChecker(s.httpClient, cfg.UserAgent)
	}
	s.logger = s.logger.Named("enrich")

	return s
}

// Lookup routes a citation to the source for its type. Types without a
// source return an empty result.
func (s *Service) Lookup(ctx context.Context, c model.Citation) Result {
	switch c.Type {
	case model.TypeCase:
		return s.LookupCase(ctx, c)
	case model.TypeStatute:
		return s.LookupStatute(c)
	case model.TypeRegulation:
		return s.LookupRegulation(ctx, c)
	case model.TypeLawReview:
		return s.LookupArticle(ctx, c)
	case model.TypeBook:
		return s.LookupBook(ctx, c)
	}
	return Result{Suggestions: []Record{}}
}

// cached serves a lookup from the cache, running fn on a miss. Results
// carrying an error are not stored.
func (s *Service) cached(kind, query string, fn func() Result) Result {
	key := cache.Key(kind, query)

	var result Result
	if cache.GetJSON(s.cache, key, &result) {
		s.logger.Debug("cache hit", logging.String("kind", kind), logging.String("query", query))
		return result
	}

	result = fn()
	if result.Error == "" {
		if err := cache.SetJSON(s.cache, key, result, s.cacheTTL); err != nil {
			s.logger.Warn("cache store failed", logging.String("kind", kind), logging.Err(err))
		}
	}
	return result
}

// getJSON fetches endpoint with params and decodes a 200 response into v.
// It returns the final status code; a non-200 status is not an error.
func (s *Service) getJSON(ctx context.Context, endpoint string, params url.Values, header http.Header, v interface{}) (int, error) {
	target := endpoint
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		target = endpoint + sep + params.Encode()
	}

	status, body, err := s.fetch(ctx, target, header)
	if err != nil {
		return status, err
	}
	if status != http.StatusOK {
		return status, nil
	}

	if err := json.Unmarshal(body, v); err != nil {
		return status, fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return status, nil
}

// fetch GETs target with retries on transient failures, returning the
// status and at most MaxBodyBytes of the body
func (s *Service) fetch(ctx context.Context, target string, header http.Header) (int, []byte, error) {
	var (
		status int
		body   []byte
		err    error
	)

	for attempt := 0; attempt < lookupMaxRetries; attempt++ {
		status, body, err = s.fetchOnce(ctx, target, header)
		if !isRetryable(status, err) || ctx.Err() != nil {
			break
		}
		if attempt < lookupMaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			s.logger.Debug("retrying lookup",
				logging.String("url", target),
				logging.Int("status", status),
				logging.Duration("backoff", backoff))
			lookupSleepFunc(backoff)
		}
	}

	return status, body, err
}

func (s *Service) fetchOnce(ctx context.Context, target string, header http.Header) (int, []byte, error) {
	if err := s.limiter.Wait(ctx, target); err != nil {
		return 0, nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read body: %w", err)
	}

	return resp.StatusCode, body, nil
}

// isRetryable reports whether a response indicates a transient failure
func isRetryable(status int, err error) bool {
	if status == http.StatusTooManyRequests || (status >= 500 && status < 600) {
		return true
	}
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}
