package reconcile

import (
	"context"
	"errors"
	"fmt"
)

// PanelState is the lifecycle state of one reconciliation panel instance.
type PanelState string

const (
	StateIdle               PanelState = "idle"
	StateLoadingSuggestions PanelState = "loading_suggestions"
	StateSuggestionsReady   PanelState = "suggestions_ready"
	StateSuggestionsFailed  PanelState = "suggestions_failed"
	StateConfirming         PanelState = "confirming"
	StateConfirmed          PanelState = "confirmed"
)

// VisibleLimit is how many candidates a panel exposes for display. It is a
// presentation limit only; the full backend-ordered list is kept.
const VisibleLimit = 10

var (
	// ErrInvalidState is returned when an operation is not allowed in the
	// panel's current state.
	ErrInvalidState = errors.New("reconcile: operation not allowed in current state")

	// ErrConfirmInFlight is returned when a confirmation is already being
	// submitted; it is the duplicate-submission guard.
	ErrConfirmInFlight = errors.New("reconcile: confirmation already in flight")

	// ErrNoSuchCandidate is returned when the selected candidate index is
	// out of range.
	ErrNoSuchCandidate = errors.New("reconcile: no such candidate")
)

// Reconciler is the service surface the panel drives. *Client implements it.
type Reconciler interface {
	FetchSuggestions(ctx context.Context, source Source, opts SuggestOptions) ([]Candidate, error)
	Confirm(ctx context.Context, confirmation Confirmation) (bool, error)
}

// Panel is the per-record reconciliation controller: an explicit state
// machine independent of any rendering layer.
//
//	Idle -> LoadingSuggestions -> SuggestionsReady -> Confirming -> Confirmed
//	                           \-> SuggestionsFailed
//
// A failed confirmation returns to SuggestionsReady, preserving the
// candidate list with an error message attached. SuggestionsFailed and
// Confirmed are terminal until Reopen. Panels are single-goroutine by
// design, matching the user-paced interaction they model; they are not safe
// for concurrent use.
type Panel struct {
	svc    Reconciler
	source Source
	opts   SuggestOptions

	state      PanelState
	candidates []Candidate
	lastError  string
}

// NewPanel creates a panel for the given source record in the Idle state.
func NewPanel(svc Reconciler, source Source, opts SuggestOptions) *Panel {
	if opts.Days == 0 && opts.AmountTol == 0 {
		opts = DefaultSuggestOptions()
	}
	return &Panel{
		svc:    svc,
		source: source,
		opts:   opts,
		state:  StateIdle,
	}
}

// State returns the panel's current state.
func (p *Panel) State() PanelState { return p.state }

// LastError returns the most recent user-facing error message, empty when
// none. It is informational; the state carries the actual outcome.
func (p *Panel) LastError() string { return p.lastError }

// Candidates returns the full candidate list in backend order.
func (p *Panel) Candidates() []Candidate { return p.candidates }

// Visible returns the candidates to display, truncated to VisibleLimit.
func (p *Panel) Visible() []Candidate {
	if len(p.candidates) > VisibleLimit {
		return p.candidates[:VisibleLimit]
	}
	return p.candidates
}

// Open loads suggestions for the panel's source record. Allowed only from
// Idle; transitions to SuggestionsReady or SuggestionsFailed. A fetch error
// is surfaced both as the return value and as LastError.
func (p *Panel) Open(ctx context.Context) error {
	if p.state != StateIdle {
		return fmt.Errorf("%w: open from %s", ErrInvalidState, p.state)
	}

	p.state = StateLoadingSuggestions
	p.lastError = ""

	items, err := p.svc.FetchSuggestions(ctx, p.source, p.opts)
	if err != nil {
		p.state = StateSuggestionsFailed
		p.lastError = err.Error()
		return err
	}

	p.candidates = items
	p.state = StateSuggestionsReady
	return nil
}

// ConfirmCandidate submits the candidate at index as the confirmed match.
// Allowed only from SuggestionsReady; while the request is in flight the
// panel is Confirming and further confirms are rejected. On success the
// panel is Confirmed; on failure it returns to SuggestionsReady with the
// candidate list intact and the error message attached.
func (p *Panel) ConfirmCandidate(ctx context.Context, index int) error {
	switch p.state {
	case StateConfirming:
		return ErrConfirmInFlight
	case StateSuggestionsReady:
		// proceed
	default:
		return fmt.Errorf("%w: confirm from %s", ErrInvalidState, p.state)
	}

	if index < 0 || index >= len(p.candidates) {
		return ErrNoSuchCandidate
	}
	candidate := p.candidates[index]

	p.state = StateConfirming
	p.lastError = ""

	accepted, err := p.svc.Confirm(ctx, Confirmation{
		SourceType: p.source.Type,
		SourceRef:  p.sourceRef(),
		TargetType: candidate.TargetKind,
		TargetRef:  candidate.Doc,
		Metadata: map[string]any{
			"fecha":  candidate.Fecha,
			"amount": candidate.Amount,
		},
	})

	if err != nil {
		p.state = StateSuggestionsReady
		p.lastError = err.Error()
		return err
	}
	if !accepted {
		p.state = StateSuggestionsReady
		p.lastError = "el servicio rechazó la conciliación"
		return fmt.Errorf("reconcile: confirmation rejected")
	}

	p.state = StateConfirmed
	return nil
}

// Reopen resets a terminal panel (Confirmed or SuggestionsFailed) back to
// Idle so Open can be called again.
func (p *Panel) Reopen() error {
	switch p.state {
	case StateConfirmed, StateSuggestionsFailed:
		p.state = StateIdle
		p.candidates = nil
		p.lastError = ""
		return nil
	default:
		return fmt.Errorf("%w: reopen from %s", ErrInvalidState, p.state)
	}
}

// sourceRef picks the reference sent in a confirmation: the free-text ref
// when present, the record ID otherwise.
func (p *Panel) sourceRef() string {
	if p.source.Ref != "" {
		return p.source.Ref
	}
	return p.source.ID
}
