// Package reconcile provides the client workflow for the reconciliation
// service: fetching ranked match suggestions for a financial record and
// confirming a user-chosen link. The backend owns all authoritative state;
// this package only passes requests through and surfaces results.
package reconcile

// SourceType identifies the kind of financial record being reconciled.
type SourceType string

const (
	SourceBank     SourceType = "bank"
	SourcePurchase SourceType = "purchase"
	SourceSales    SourceType = "sales"
	SourceExpense  SourceType = "expense"
	SourceTax      SourceType = "tax"
	SourcePayroll  SourceType = "payroll"
)

// Source describes the record to find matches for. At least one of ID,
// Amount+Date, or Ref should be set for the request to be meaningful; the
// client passes the descriptor through without enforcing it and the backend
// may reject it.
type Source struct {
	Type     SourceType `json:"source_type"`
	ID       string     `json:"id,omitempty"`
	Amount   *float64   `json:"amount,omitempty"`
	Date     string     `json:"date,omitempty"` // YYYY-MM-DD
	Ref      string     `json:"ref,omitempty"`
	Currency string     `json:"currency,omitempty"`
}

// SuggestOptions is the tolerance window sent with a suggestion request.
type SuggestOptions struct {
	Days      int     `json:"days"`
	AmountTol float64 `json:"amount_tol"`
}

// DefaultSuggestOptions returns the standard tolerance window.
func DefaultSuggestOptions() SuggestOptions {
	return SuggestOptions{Days: 5, AmountTol: 0.01}
}

// Candidate is a suggested match returned by the backend. Score is an
// unbounded rank where higher means a better match; the backend's ordering
// is authoritative and candidates are never re-sorted client-side.
type Candidate struct {
	TargetKind string  `json:"target_kind"`
	Doc        string  `json:"doc"`
	Fecha      string  `json:"fecha"` // YYYY-MM-DD
	Amount     float64 `json:"amount"`
	Score      float64 `json:"score"`
}

// Confirmation is a user-confirmed link between a source record and a target
// document. Metadata carries at minimum the fecha and amount of the chosen
// candidate.
type Confirmation struct {
	SourceType SourceType     `json:"source_type"`
	SourceRef  string         `json:"source_ref"`
	TargetType string         `json:"target_type"`
	TargetRef  string         `json:"target_ref"`
	Metadata   map[string]any `json:"metadata"`
}

// Link is an already-established link as returned by the links endpoint.
type Link struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
	Ref    string  `json:"ref"`
	Fecha  string  `json:"fecha"`
}

// LinkFilter selects which links to list. Filters are mutually exclusive;
// the first non-empty one wins on the backend.
type LinkFilter struct {
	ExpenseID  string
	TaxPeriod  string
	TaxTipo    string
	SourceType SourceType
	SourceRef  string
}

// suggestionsRequest is the wire form of a suggestion request: the source
// descriptor flattened together with the tolerance window.
type suggestionsRequest struct {
	SourceType SourceType `json:"source_type"`
	Days       int        `json:"days"`
	AmountTol  float64    `json:"amount_tol"`
	ID         string     `json:"id,omitempty"`
	Amount     *float64   `json:"amount,omitempty"`
	Date       string     `json:"date,omitempty"`
	Ref        string     `json:"ref,omitempty"`
	Currency   string     `json:"currency,omitempty"`
}

// suggestionsResponse is the wire form of the suggestions endpoint response.
type suggestionsResponse struct {
	Items []Candidate `json:"items"`
}

// confirmResponse is the wire form of the confirm endpoint response.
type confirmResponse struct {
	Accepted bool `json:"accepted"`
}

// linksResponse is the wire form of the links endpoint response.
type linksResponse struct {
	Items []Link `json:"items"`
}
