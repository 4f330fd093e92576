// Package score summarizes how a document uses its citations and raises
// diagnostic signals
package score

import (
	"fmt"
	"sort"

	"github.com/ppiankov/bluecite/internal/model"
	"github.com/ppiankov/bluecite/internal/resolve"
)

const (
	mostCitedLimit     = 5
	fullFormThreshold  = 0.8
	manyUnsourcedLimit = 5
)

// Scorer computes citation stats and the usage summary
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Stats counts citations by completion status
func (s *Scorer) Stats(citations []model.Citation, claims []model.UnsourcedClaim) model.Stats {
	stats := model.Stats{
		TotalCitations:  len(citations),
		UnsourcedClaims: len(claims),
	}
	for _, c := range citations {
		switch c.Status {
		case model.StatusComplete:
			stats.Complete++
		case model.StatusIncomplete:
			stats.Incomplete++
		case model.StatusNeedsVerification:
			stats.NeedsVerification++
		}
	}
	return stats
}

// Summarize describes citation usage: counts by type, literal short forms
// against full citations, the most cited authorities and any signals
func (s *Scorer) Summarize(citations []model.Citation, claims []model.UnsourcedClaim) model.Summary {
	summary := model.Summary{
		TotalCitations: len(citations),
		ByType:         make(map[model.CitationType]int),
		ShortFormUsage: map[model.ShortFormType]int{
			model.ShortFormID:        0,
			model.ShortFormSupra:     0,
			model.ShortFormShortCase: 0,
			model.ShortFormFull:      0,
		},
		MostCited: []model.KeyCount{},
		Signals:   []model.Signal{},
	}

	counts := make(map[string]int)
	for _, c := range citations {
		summary.ByType[c.Type]++

		if c.IsShortForm {
			if _, tracked := summary.ShortFormUsage[c.ShortFormType]; tracked {
				summary.ShortFormUsage[c.ShortFormType]++
			}
		} else {
			summary.ShortFormUsage[model.ShortFormFull]++
		}

		if key := resolve.Key(c); key != "" {
			counts[key]++
		}
	}

	summary.MostCited = mostCited(counts)

	if signal, ok := s.detectShortFormUnderuse(summary); ok {
		summary.Signals = append(summary.Signals, signal)
	}
	if signal, ok := s.detectIncomplete(citations); ok {
		summary.Signals = append(summary.Signals, signal)
	}
	if signal, ok := s.detectUnsourced(claims); ok {
		summary.Signals = append(summary.Signals, signal)
	}

	return summary
}

// mostCited returns up to five keys cited more than once, most cited first
// and ties broken by key
func mostCited(counts map[string]int) []model.KeyCount {
	all := make([]model.KeyCount, 0, len(counts))
	for key, count := range counts {
		all = append(all, model.KeyCount{Key: key, Count: count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Key < all[j].Key
	})

	if len(all) > mostCitedLimit {
		all = all[:mostCitedLimit]
	}

	out := []model.KeyCount{}
	for _, kc := range all {
		if kc.Count > 1 {
			out = append(out, kc)
		}
	}
	return out
}

// detectShortFormUnderuse fires when full citations exceed 80% of the total
func (s *Scorer) detectShortFormUnderuse(summary model.Summary) (model.Signal, bool) {
	full := summary.ShortFormUsage[model.ShortFormFull]
	total := summary.TotalCitations
	if float64(full) <= float64(total)*fullFormThreshold {
		return model.Signal{}, false
	}

	ratio := float64(full) / float64(total)
	return model.Signal{
		Type:        model.SignalUnderuseShortForms,
		Severity:    model.SeverityInfo,
		Description: "Many repeated citations could use short forms",
		Data: map[string]interface{}{
			"full":    full,
			"total":   total,
			"ratio":   ratio,
			"formula": "full > total * 0.8",
		},
	}, true
}

// detectIncomplete fires when any citation is missing fields or unverified
func (s *Scorer) detectIncomplete(citations []model.Citation) (model.Signal, bool) {
	incomplete, unverified := 0, 0
	for _, c := range citations {
		switch c.Status {
		case model.StatusIncomplete:
			incomplete++
		case model.StatusNeedsVerification:
			unverified++
		}
	}
	if incomplete+unverified == 0 {
		return model.Signal{}, false
	}

	severity := model.SeverityInfo
	if incomplete > 0 {
		severity = model.SeverityWarning
	}

	return model.Signal{
		Type:        model.SignalIncompleteCitations,
		Severity:    severity,
		Description: fmt.Sprintf("%d incomplete, %d needing verification", incomplete, unverified),
		Data: map[string]interface{}{
			"incomplete":         incomplete,
			"needs_verification": unverified,
			"total":              len(citations),
		},
	}, true
}

// detectUnsourced fires when claims lack supporting authority
func (s *Scorer) detectUnsourced(claims []model.UnsourcedClaim) (model.Signal, bool) {
	if len(claims) == 0 {
		return model.Signal{}, false
	}

	byType := make(map[string]int)
	for _, claim := range claims {
		byType[string(claim.ClaimType)]++
	}

	severity := model.SeverityWarning
	if len(claims) > manyUnsourcedLimit {
		severity = model.SeverityCritical
	}

	return model.Signal{
		Type:        model.SignalUnsourcedClaims,
		Severity:    severity,
		Description: fmt.Sprintf("%d statements may need a citation", len(claims)),
		Data: map[string]interface{}{
			"claims":  len(claims),
			"by_type": byType,
		},
	}, true
}
