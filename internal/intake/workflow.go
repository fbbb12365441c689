package intake

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"quote-intake-service/internal/domain"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	DefaultDebounce      = 1000 * time.Millisecond
	DefaultLookupTimeout = 5 * time.Second
)

type Stage int

const (
	StageContact Stage = iota + 1
	StageLocation
	StageSubmitted
)

func (s Stage) String() string {
	switch s {
	case StageContact:
		return "contact"
	case StageLocation:
		return "location"
	case StageSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// ContactInfo is everything collected in the first stage.
type ContactInfo struct {
	Name             string
	Email            string
	Phone            string
	ShopName         string
	MachineType      string
	IssueDescription string
	PreferredDate    string
}

// Snapshot is a consistent copy of the workflow state.
type Snapshot struct {
	Stage           Stage
	Contact         ContactInfo
	Address         string
	Position        *domain.Position
	DistanceKm      *float64
	EstimatedCost   float64
	Geocoding       bool
	FetchingAddress bool
	Submitting      bool
	Confirmation    *Confirmation
	Notice          string
}

type Options struct {
	// Business is the reference location distances are measured from.
	Business domain.Position
	// InitialPosition pre-places the pin. Nil leaves the location unset.
	InitialPosition *domain.Position
	Clock           clockwork.Clock
	Debounce        time.Duration
	LookupTimeout   time.Duration
	// OnChange receives a snapshot after every applied change. It runs on
	// whichever goroutine made the change and must not call mutating
	// Workflow methods.
	OnChange func(Snapshot)
}

// Workflow drives one quote request from contact details through location
// capture to submission. Address edits are debounced into forward lookups;
// every new position is priced immediately and reverse geocoded.
type Workflow struct {
	gw       Gateway
	sub      Submitter
	clock    clockwork.Clock
	debounce time.Duration
	timeout  time.Duration
	business domain.Position
	onChange func(Snapshot)

	ctx     context.Context
	cancel  context.CancelFunc
	forward Lookup
	reverse Lookup
	wg      sync.WaitGroup

	notifyMu sync.Mutex

	mu              sync.Mutex
	stage           Stage
	contact         ContactInfo
	address         string
	pos             *domain.Position
	distance        *float64
	timer           clockwork.Timer
	timerGen        uint64
	forwardPending  bool
	reversePending  bool
	submitting      bool
	confirmation    *Confirmation
	notice          string
	closed          bool
}

func NewWorkflow(gw Gateway, sub Submitter, opts Options) *Workflow {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = DefaultLookupTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Workflow{
		gw:       gw,
		sub:      sub,
		clock:    opts.Clock,
		debounce: opts.Debounce,
		timeout:  opts.LookupTimeout,
		business: opts.Business,
		onChange: opts.OnChange,
		ctx:      ctx,
		cancel:   cancel,
		stage:    StageContact,
	}
	if p := opts.InitialPosition; p != nil && p.Valid() {
		w.setPositionLocked(*p)
	}
	return w
}

// Snapshot returns the current state.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Workflow) SetContact(c ContactInfo) {
	w.mu.Lock()
	if w.closed || w.stage == StageSubmitted {
		w.mu.Unlock()
		return
	}
	w.contact = c
	w.mu.Unlock()
	w.notify()
}

// Next validates the contact details and moves to the location stage.
func (w *Workflow) Next() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if w.stage != StageContact {
		w.mu.Unlock()
		return ErrWrongStage
	}
	if err := validateContact(w.contact); err != nil {
		w.mu.Unlock()
		return err
	}
	w.stage = StageLocation
	w.notice = ""
	w.mu.Unlock()
	w.notify()
	return nil
}

// Back returns to the contact stage. Nothing entered so far is lost.
func (w *Workflow) Back() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if w.stage != StageLocation {
		w.mu.Unlock()
		return ErrWrongStage
	}
	w.stage = StageContact
	w.mu.Unlock()
	w.notify()
	return nil
}

// EditAddress records typed address text. In the location stage a non-blank
// edit (re)starts the debounce timer for a forward lookup.
func (w *Workflow) EditAddress(text string) {
	w.mu.Lock()
	if w.closed || w.stage == StageSubmitted {
		w.mu.Unlock()
		return
	}
	w.address = text
	// The user's own text beats any lookup still in flight.
	w.forward.Cancel()
	w.forwardPending = false
	w.reverse.Cancel()
	w.reversePending = false

	if w.stage == StageLocation && strings.TrimSpace(text) != "" {
		w.armDebounceLocked(text)
	} else {
		w.stopTimerLocked()
	}
	w.mu.Unlock()
	w.notify()
}

// DropPin places the shop at pos directly, superseding any pending forward lookup.
func (w *Workflow) DropPin(pos domain.Position) error {
	if !pos.Valid() {
		return &ValidationError{Field: "location", Msg: "coordinates out of range"}
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if w.stage != StageLocation {
		w.mu.Unlock()
		return ErrWrongStage
	}
	w.stopTimerLocked()
	w.forward.Cancel()
	w.forwardPending = false
	w.setPositionLocked(pos)
	w.startReverseLocked(pos)
	w.mu.Unlock()
	w.notify()
	return nil
}

// Submit sends the quote with the current position and distance. On failure
// the workflow stays in the location stage with all data intact.
func (w *Workflow) Submit(ctx context.Context) (*Confirmation, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil, ErrClosed
	}
	if w.stage != StageLocation {
		w.mu.Unlock()
		return nil, ErrWrongStage
	}
	if w.pos == nil {
		w.mu.Unlock()
		return nil, &ValidationError{Field: "location", Msg: "missing location"}
	}
	if strings.TrimSpace(w.address) == "" {
		w.mu.Unlock()
		return nil, &ValidationError{Field: "shop_address", Msg: "required"}
	}
	if err := validateContact(w.contact); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	req := w.requestLocked()
	w.submitting = true
	w.notice = ""
	w.mu.Unlock()
	w.notify()

	conf, err := w.sub.Submit(ctx, req)
	if err == nil && conf == nil {
		err = errors.New("empty confirmation")
	}

	w.mu.Lock()
	w.submitting = false
	if err != nil {
		w.notice = "Failed to submit quote. Please try again."
		w.mu.Unlock()
		log.Warn().Err(err).Str("email", req.CustomerEmail).Msg("quote submission failed")
		w.notify()
		return nil, &SubmissionFailure{Err: err}
	}
	w.stage = StageSubmitted
	w.confirmation = conf
	w.stopTimerLocked()
	w.forward.Cancel()
	w.reverse.Cancel()
	w.forwardPending = false
	w.reversePending = false
	w.mu.Unlock()
	w.notify()
	return conf, nil
}

// Close stops the debounce timer and cancels in-flight lookups. No OnChange
// callback runs after Close returns.
func (w *Workflow) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.stopTimerLocked()
	w.mu.Unlock()

	w.forward.Cancel()
	w.reverse.Cancel()
	w.cancel()

	// Wait out a callback that is already running.
	w.notifyMu.Lock()
	w.notifyMu.Unlock()
}

// Wait blocks until the workflow is idle: no armed debounce timer and no
// lookup goroutine still running.
func (w *Workflow) Wait() {
	w.wg.Wait()
}

func (w *Workflow) armDebounceLocked(text string) {
	w.stopTimerLocked()
	gen := w.timerGen
	w.wg.Add(1)
	w.timer = w.clock.AfterFunc(w.debounce, func() { w.fireForward(text, gen) })
}

// stopTimerLocked also invalidates a timer that has fired but not yet run.
func (w *Workflow) stopTimerLocked() {
	w.timerGen++
	if w.timer == nil {
		return
	}
	if w.timer.Stop() {
		w.wg.Done()
	}
	w.timer = nil
}

func (w *Workflow) fireForward(text string, gen uint64) {
	defer w.wg.Done()

	w.mu.Lock()
	if w.closed || gen != w.timerGen {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.forwardPending = true
	ctx, tok := w.forward.Begin(w.ctx, w.timeout)
	w.mu.Unlock()
	w.notify()

	pos, ok := w.gw.Forward(ctx, text)
	w.forward.Done(tok)

	w.mu.Lock()
	current := w.forward.Valid(tok)
	if current {
		w.forwardPending = false
	}
	if ok && current && pos.Valid() && !w.closed && w.stage != StageSubmitted {
		w.setPositionLocked(pos)
		w.startReverseLocked(pos)
	}
	w.mu.Unlock()
	w.notify()
}

func (w *Workflow) startReverseLocked(pos domain.Position) {
	w.reversePending = true
	ctx, tok := w.reverse.Begin(w.ctx, w.timeout)
	w.wg.Add(1)
	go w.runReverse(ctx, tok, pos)
}

func (w *Workflow) runReverse(ctx context.Context, tok Token, pos domain.Position) {
	defer w.wg.Done()

	addr, ok := w.gw.Reverse(ctx, pos)
	w.reverse.Done(tok)

	w.mu.Lock()
	current := w.reverse.Valid(tok)
	if current {
		w.reversePending = false
	}
	// Overwrites the text without arming the debounce, so the result cannot
	// loop back into a forward lookup.
	if ok && current && !w.closed && w.stage != StageSubmitted {
		w.address = addr
	}
	w.mu.Unlock()
	w.notify()
}

func (w *Workflow) setPositionLocked(pos domain.Position) {
	p := pos
	d := domain.Distance(w.business, p)
	w.pos = &p
	w.distance = &d
}

func (w *Workflow) requestLocked() QuoteRequest {
	req := QuoteRequest{
		CustomerName:     strings.TrimSpace(w.contact.Name),
		CustomerEmail:    strings.TrimSpace(w.contact.Email),
		CustomerPhone:    strings.TrimSpace(w.contact.Phone),
		ShopName:         strings.TrimSpace(w.contact.ShopName),
		ShopAddress:      strings.TrimSpace(w.address),
		ShopLatitude:     w.pos.Lat,
		ShopLongitude:    w.pos.Lon,
		MachineType:      strings.TrimSpace(w.contact.MachineType),
		IssueDescription: strings.TrimSpace(w.contact.IssueDescription),
		PreferredDate:    strings.TrimSpace(w.contact.PreferredDate),
	}
	if w.distance != nil {
		d := *w.distance
		req.TravelDistance = &d
	}
	return req
}

func (w *Workflow) snapshotLocked() Snapshot {
	s := Snapshot{
		Stage:           w.stage,
		Contact:         w.contact,
		Address:         w.address,
		EstimatedCost:   domain.EstimateCost(w.distance),
		Geocoding:       w.timer != nil || w.forwardPending,
		FetchingAddress: w.reversePending,
		Submitting:      w.submitting,
		Notice:          w.notice,
	}
	if w.pos != nil {
		p := *w.pos
		s.Position = &p
	}
	if w.distance != nil {
		d := *w.distance
		s.DistanceKm = &d
	}
	if w.confirmation != nil {
		c := *w.confirmation
		s.Confirmation = &c
	}
	return s
}

func (w *Workflow) notify() {
	if w.onChange == nil {
		return
	}
	w.notifyMu.Lock()
	defer w.notifyMu.Unlock()

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	snap := w.snapshotLocked()
	w.mu.Unlock()

	w.onChange(snap)
}

func validateContact(c ContactInfo) error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "customer_name", Msg: "required"}
	}
	if strings.TrimSpace(c.Email) == "" {
		return &ValidationError{Field: "customer_email", Msg: "required"}
	}
	if err := domain.ValidateEmail(strings.TrimSpace(c.Email)); err != nil {
		return &ValidationError{Field: "customer_email", Msg: "invalid email address"}
	}
	if strings.TrimSpace(c.IssueDescription) == "" {
		return &ValidationError{Field: "issue_description", Msg: "required"}
	}
	if d := strings.TrimSpace(c.PreferredDate); d != "" {
		if _, err := time.Parse(domain.PreferredDateLayout, d); err != nil {
			return &ValidationError{Field: "preferred_date", Msg: "must be YYYY-MM-DD"}
		}
	}
	return nil
}
