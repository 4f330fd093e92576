package enrich

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ppiankov/bluecite/internal/logging"
	"github.com/ppiankov/bluecite/internal/model"
)

const openLibraryFields = "title,author_name,publisher,first_publish_year,isbn,key"

type openLibraryResponse struct {
	Docs []openLibraryDoc `json:"docs"`
}

type openLibraryDoc struct {
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	Publisher        []string `json:"publisher"`
	FirstPublishYear int      `json:"first_publish_year"`
	ISBN             []string `json:"isbn"`
	Key              string   `json:"key"`
}

func (d openLibraryDoc) record(base string) Record {
	authors := d.AuthorName
	if len(authors) > 2 {
		authors = authors[:2]
	}

	r := Record{
		Title:          d.Title,
		Author:         strings.Join(authors, ", "),
		Year:           d.FirstPublishYear,
		OpenLibraryKey: d.Key,
	}
	if len(d.Publisher) > 0 {
		r.Publisher = d.Publisher[0]
	}
	if len(d.ISBN) > 0 {
		r.ISBN = d.ISBN[0]
	}
	if d.Key != "" {
		r.URL = base + d.Key
	}
	return r
}

// LookupBook searches Open Library by author and title
func (s *Service) LookupBook(ctx context.Context, c model.Citation) Result {
	var parts []string
	if c.Author != "" {
		parts = append(parts, "author:"+c.Author)
	}
	if c.Title != "" {
		parts = append(parts, "title:"+c.Title)
	}
	if len(parts) == 0 {
		return Result{Suggestions: []Record{}, Source: SourceOpenLibrary}
	}

	query := strings.Join(parts, " ")
	return s.cached("book", query, func() Result {
		result := Result{Suggestions: []Record{}, Source: SourceOpenLibrary}

		params := url.Values{}
		params.Set("q", query)
		params.Set("limit", strconv.Itoa(maxSuggestions))
		params.Set("fields", openLibraryFields)

		base := strings.TrimSuffix(s.cfg.OpenLibraryURL, "/")
		var resp openLibraryResponse
		status, err := s.getJSON(ctx, base+"/search.json", params, nil, &resp)
		if err != nil {
			s.logger.Warn("open library search failed", logging.Err(err))
			result.Error = err.Error()
			return result
		}
		if status != http.StatusOK {
			s.logger.Debug("open library search unsuccessful", logging.Int("status", status))
			return result
		}

		for _, doc := range resp.Docs {
			result.Suggestions = append(result.Suggestions, doc.record(base))
		}
		result.found()
		return result
	})
}
