package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ppiankov/bluecite/internal/logging"
	"github.com/ppiankov/bluecite/internal/model"
)

const (
	courtListenerSite = "https://www.courtlistener.com"
	maxSuggestions    = 5
)

type courtListenerResponse struct {
	Results []courtListenerResult `json:"results"`
}

type courtListenerResult struct {
	CaseName     string   `json:"caseName"`
	Citation     []string `json:"citation"`
	Court        string   `json:"court"`
	CourtID      string   `json:"court_id"`
	DateFiled    string   `json:"dateFiled"`
	DocketNumber string   `json:"docketNumber"`
	AbsoluteURL  string   `json:"absolute_url"`
	Snippet      string   `json:"snippet"`
	Judge        string   `json:"judge"`
}

func (r courtListenerResult) record() Record {
	return Record{
		CaseName:     r.CaseName,
		Citations:    r.Citation,
		Court:        r.Court,
		CourtID:      r.CourtID,
		DateFiled:    r.DateFiled,
		DocketNumber: r.DocketNumber,
		Snippet:      r.Snippet,
		Judge:        r.Judge,
		URL:          courtListenerSite + r.AbsoluteURL,
	}
}

// LookupCase searches CourtListener by reporter citation, falling back to
// the case name when the reporter citation is incomplete
func (s *Service) LookupCase(ctx context.Context, c model.Citation) Result {
	params := url.Values{}
	var query string
	switch {
	case c.Volume != "" && c.Reporter != "" && c.Page != "":
		query = fmt.Sprintf("%s %s %s", c.Volume, c.Reporter, c.Page)
		params.Set("citation", query)
	case len(c.Parties) >= 2:
		query = fmt.Sprintf("%s v. %s", c.Parties[0], c.Parties[1])
		params.Set("case_name", query)
	default:
		return Result{Suggestions: []Record{}, Source: SourceCourtListener}
	}

	return s.cached("case", query, func() Result {
		result := Result{Suggestions: []Record{}, Source: SourceCourtListener}
		records, err := s.searchCourtListener(ctx, params)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		result.Suggestions = records
		result.found()
		return result
	})
}

// searchCourtListener runs one opinion search and returns the top results
func (s *Service) searchCourtListener(ctx context.Context, params url.Values) ([]Record, error) {
	params.Set("type", "o")
	params.Set("order_by", "score desc")

	header := http.Header{}
	if s.cfg.CourtListenerToken != "" {
		header.Set("Authorization", "Token "+s.cfg.CourtListenerToken)
	}

	var resp courtListenerResponse
	status, err := s.getJSON(ctx, strings.TrimSuffix(s.cfg.CourtListenerURL, "/")+"/search/", params, header, &resp)
	if err != nil {
		s.logger.Warn("courtlistener search failed", logging.Err(err))
		return nil, err
	}
	if status != http.StatusOK {
		s.logger.Debug("courtlistener search unsuccessful", logging.Int("status", status))
		return []Record{}, nil
	}

	results := resp.Results
	if len(results) > maxSuggestions {
		results = results[:maxSuggestions]
	}

	records := make([]Record, 0, len(results))
	for _, r := range results {
		records = append(records, r.record())
	}
	return records, nil
}
