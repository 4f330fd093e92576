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

const crossRefFields = "title,author,container-title,volume,page,published,DOI,URL"

// lawJournalTerms put a container title ahead of general journals
var lawJournalTerms = []string{"law", "legal", "juris", "journal"}

type crossRefResponse struct {
	Message struct {
		Items []crossRefItem `json:"items"`
	} `json:"message"`
}

type crossRefItem struct {
	Title          []string         `json:"title"`
	Author         []crossRefAuthor `json:"author"`
	ContainerTitle []string         `json:"container-title"`
	Volume         string           `json:"volume"`
	Page           string           `json:"page"`
	Published      crossRefDate     `json:"published"`
	DOI            string           `json:"DOI"`
	URL            string           `json:"URL"`
}

type crossRefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossRefDate struct {
	DateParts [][]int `json:"date-parts"`
}

func (i crossRefItem) container() string {
	if len(i.ContainerTitle) > 0 {
		return i.ContainerTitle[0]
	}
	return ""
}

func (i crossRefItem) record() Record {
	r := Record{
		Author:         formatCrossRefAuthors(i.Author),
		ContainerTitle: i.container(),
		Volume:         i.Volume,
		Page:           i.Page,
		Year:           i.Published.year(),
		DOI:            i.DOI,
		URL:            i.URL,
	}
	if len(i.Title) > 0 {
		r.Title = i.Title[0]
	}
	return r
}

func (d crossRefDate) year() int {
	if len(d.DateParts) > 0 && len(d.DateParts[0]) > 0 {
		return d.DateParts[0][0]
	}
	return 0
}

// formatCrossRefAuthors renders up to three authors Bluebook style:
// "A", "A & B", "A, B & C", or "A et al." beyond three
func formatCrossRefAuthors(authors []crossRefAuthor) string {
	var names []string
	for i, a := range authors {
		if i == 3 {
			break
		}
		switch {
		case a.Given != "" && a.Family != "":
			names = append(names, a.Given+" "+a.Family)
		case a.Family != "":
			names = append(names, a.Family)
		}
	}

	switch {
	case len(names) == 0:
		return ""
	case len(names) == 1:
		return names[0]
	case len(names) == 2:
		return names[0] + " & " + names[1]
	case len(authors) > 3:
		return names[0] + " et al."
	default:
		return strings.Join(names[:len(names)-1], ", ") + " & " + names[len(names)-1]
	}
}

// LookupArticle searches CrossRef by author and title
func (s *Service) LookupArticle(ctx context.Context, c model.Citation) Result {
	var parts []string
	if c.Author != "" {
		parts = append(parts, c.Author)
	}
	if c.Title != "" {
		parts = append(parts, c.Title)
	}
	if len(parts) == 0 {
		return Result{Suggestions: []Record{}, Source: SourceCrossRef}
	}

	query := strings.Join(parts, " ")
	return s.cached("article", query, func() Result {
		params := url.Values{}
		params.Set("query", query)
		params.Set("rows", strconv.Itoa(maxSuggestions))
		params.Set("select", crossRefFields)
		return s.searchCrossRef(ctx, params, false)
	})
}

// searchCrossRef runs one works query. With lawFirst, items from law
// journals are ranked ahead of the rest.
func (s *Service) searchCrossRef(ctx context.Context, params url.Values, lawFirst bool) Result {
	result := Result{Suggestions: []Record{}, Source: SourceCrossRef}

	var resp crossRefResponse
	status, err := s.getJSON(ctx, s.cfg.CrossRefURL, params, nil, &resp)
	if err != nil {
		s.logger.Warn("crossref search failed", logging.Err(err))
		result.Error = err.Error()
		return result
	}
	if status != http.StatusOK {
		s.logger.Debug("crossref search unsuccessful", logging.Int("status", status))
		return result
	}

	items := resp.Message.Items
	if lawFirst {
		items = lawJournalsFirst(items)
	}
	if len(items) > maxSuggestions {
		items = items[:maxSuggestions]
	}

	for _, item := range items {
		result.Suggestions = append(result.Suggestions, item.record())
	}
	result.found()
	return result
}

func lawJournalsFirst(items []crossRefItem) []crossRefItem {
	var law, other []crossRefItem
	for _, item := range items {
		container := strings.ToLower(item.container())
		isLaw := false
		for _, term := range lawJournalTerms {
			if strings.Contains(container, term) {
				isLaw = true
				break
			}
		}
		if isLaw {
			law = append(law, item)
		} else {
			other = append(other, item)
		}
	}
	return append(law, other...)
}
