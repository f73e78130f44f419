package emulator

import (
	"math"
	"sort"
	"strings"

	"github.com/ofitec/conciliador/pkg/format"
	"github.com/ofitec/conciliador/pkg/mapping"
	"github.com/ofitec/conciliador/pkg/reconcile"
)

// SuggestionRequest is the decoded body of a suggestions request.
type SuggestionRequest struct {
	SourceType string   `json:"source_type"`
	Days       int      `json:"days"`
	AmountTol  float64  `json:"amount_tol"`
	ID         string   `json:"id,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
	Date       string   `json:"date,omitempty"`
	Ref        string   `json:"ref,omitempty"`
	Currency   string   `json:"currency,omitempty"`
}

// Matcher scores candidate documents against a source descriptor.
type Matcher struct {
	mapper *mapping.Mapper
}

// NewMatcher creates a Matcher using the given target-kind mapping.
func NewMatcher(mapper *mapping.Mapper) *Matcher {
	return &Matcher{mapper: mapper}
}

// Suggest filters docs to the allowed target kinds within the request's
// date window and amount tolerance, and ranks survivors by score
// descending. Scoring is a blend of amount closeness, date closeness and
// an exact-reference bonus.
func (m *Matcher) Suggest(req SuggestionRequest, docs []Document) []reconcile.Candidate {
	targets := m.mapper.TargetsFor(req.SourceType)
	if len(targets) == 0 {
		return nil
	}

	days := req.Days
	if days <= 0 {
		days = 5
	}
	tol := req.AmountTol
	if tol <= 0 {
		tol = 0.01
	}

	srcDate, hasDate := format.ParseDate(req.Date)

	var candidates []reconcile.Candidate
	for _, doc := range docs {
		if !contains(targets, doc.Kind) {
			continue
		}

		score := 0.0

		if req.Amount != nil {
			relDiff := relativeDiff(*req.Amount, doc.Amount)
			if relDiff > tol {
				continue
			}
			score += 0.5 * (1 - relDiff/tol)
		}

		if hasDate {
			docDate, ok := format.ParseDate(doc.Fecha)
			if !ok {
				continue
			}
			dayDiff := math.Abs(docDate.Sub(srcDate).Hours() / 24)
			if dayDiff > float64(days) {
				continue
			}
			score += 0.3 * (1 - dayDiff/float64(days))
		}

		if req.Ref != "" && refMatches(req.Ref, doc) {
			score += 0.2
		}

		candidates = append(candidates, reconcile.Candidate{
			TargetKind: doc.Kind,
			Doc:        doc.Doc,
			Fecha:      doc.Fecha,
			Amount:     doc.Amount,
			Score:      round2(score),
		})
	}

	// Higher score first; ties broken by most recent fecha.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Fecha > candidates[j].Fecha
	})

	return candidates
}

// relativeDiff returns |a-b| relative to the larger magnitude, 0 when both
// are zero.
func relativeDiff(a, b float64) float64 {
	base := math.Max(math.Abs(a), math.Abs(b))
	if base == 0 {
		return 0
	}
	return math.Abs(a-b) / base
}

func refMatches(ref string, doc Document) bool {
	ref = strings.ToLower(ref)
	return strings.ToLower(doc.Doc) == ref || strings.ToLower(doc.Ref) == ref
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
