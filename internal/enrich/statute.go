package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ppiankov/bluecite/internal/logging"
	"github.com/ppiankov/bluecite/internal/model"
)

// LookupStatute builds Cornell LII and House uscode links for a federal
// statute. No request is made.
func (s *Service) LookupStatute(c model.Citation) Result {
	result := Result{Suggestions: []Record{}, Source: SourceCornell}
	if c.TitleNumber == "" || c.Section == "" {
		return result
	}

	result.Suggestions = append(result.Suggestions, statuteRecord(c.TitleNumber, c.Section, c.Code))
	result.found()
	return result
}

func statuteRecord(title, section, code string) Record {
	if code == "" {
		code = "U.S.C."
	}
	return Record{
		TitleNumber: title,
		Section:     section,
		Code:        code,
		URL:         fmt.Sprintf("https://www.law.cornell.edu/uscode/text/%s/%s", title, section),
		AltURL:      fmt.Sprintf("https://uscode.house.gov/view.xhtml?req=granuleid:USC-prelim-title%s-section%s", title, section),
	}
}

// LookupRegulation asks the eCFR API for a C.F.R. section. When the API
// cannot answer, the result still carries eCFR and Cornell links.
func (s *Service) LookupRegulation(ctx context.Context, c model.Citation) Result {
	if c.TitleNumber == "" || c.Section == "" {
		return Result{Suggestions: []Record{}, Source: SourceECFR}
	}

	query := c.TitleNumber + " CFR " + c.Section
	return s.cached("regulation", query, func() Result {
		record := regulationRecord(c.TitleNumber, c.Section)

		endpoint := fmt.Sprintf("%s/full/%s/section-%s.json",
			strings.TrimSuffix(s.cfg.ECFRURL, "/"), c.TitleNumber, c.Section)
		status, body, err := s.fetch(ctx, endpoint, nil)
		switch {
		case err != nil:
			s.logger.Debug("ecfr lookup failed, using links", logging.Err(err))
		case status == http.StatusOK && json.Valid(body):
			record.Raw = body
		default:
			s.logger.Debug("ecfr lookup unsuccessful, using links", logging.Int("status", status))
		}

		result := Result{Suggestions: []Record{record}, Source: SourceECFR}
		result.found()
		return result
	})
}

func regulationRecord(title, section string) Record {
	return Record{
		TitleNumber: title,
		Section:     section,
		Code:        "C.F.R.",
		URL:         fmt.Sprintf("https://www.ecfr.gov/current/title-%s/section-%s", title, section),
		AltURL:      fmt.Sprintf("https://www.law.cornell.edu/cfr/text/%s/%s", title, section),
	}
}
