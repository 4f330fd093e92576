package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/bluecite/internal/model"
)

// Analyzer analyzes one document on disk
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*model.Analysis, error)
}

// DocumentJob analyzes a single document
type DocumentJob struct {
	Path     string
	Analyzer Analyzer
}

// Execute executes the document job
func (j *DocumentJob) Execute(ctx context.Context) Result {
	analysis, err := j.Analyzer.AnalyzeFile(ctx, j.Path)
	if err != nil {
		return &DocumentResult{Path: j.Path, Error: err}
	}
	return &DocumentResult{Path: j.Path, Analysis: analysis}
}

// DocumentResult is the outcome of one document analysis
type DocumentResult struct {
	Path     string
	Analysis *model.Analysis
	Error    error
}

// GetError returns the error from the document result
func (r *DocumentResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes many documents concurrently. Each document gets
// its own pass; nothing is shared between them.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessPaths analyzes the documents, returning results in input order
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*DocumentResult {
	jobs := make([]Job, len(paths))
	for i, path := range paths {
		jobs[i] = &DocumentJob{Path: path, Analyzer: b.analyzer}
	}

	results := Run(ctx, b.concurrency, jobs)

	out := make([]*DocumentResult, 0, len(results))
	for _, result := range results {
		out = append(out, result.(*DocumentResult))
	}
	return out
}

// ProcessFile reads a document list and analyzes every entry
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*DocumentResult, error) {
	paths, err := ReadDocumentList(listPath)
	if err != nil {
		return nil, fmt.Errorf("read document list: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadDocumentList reads document paths or URLs, one per line. Blank lines
// and lines starting with # are skipped, duplicates are dropped and relative
// paths resolve against the list file's directory.
func ReadDocumentList(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	base := filepath.Dir(listPath)

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !isURL(line) {
			if !filepath.IsAbs(line) {
				line = filepath.Join(base, line)
			}
			line = filepath.Clean(line)
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
