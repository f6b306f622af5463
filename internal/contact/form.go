// Package contact implements the contact form submission lifecycle.
//
// A Form moves Idle -> Submitting on a valid submit, then to Success or
// Error when the send operation resolves. Success and Error accept a new
// submit, which moves back to Submitting. At most one submission is in
// flight per form. The send itself is performed by an injected Sender, so
// the Form never blocks and never sleeps.
package contact

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the lifecycle state of a Form.
type State int

const (
	Idle State = iota
	Submitting
	Success
	Error
)

// String returns the display name for each state
func (s State) String() string {
	names := []string{"idle", "submitting", "success", "error"}
	if int(s) >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// Terminal reports whether s is Success or Error.
func (s State) Terminal() bool { return s == Success || s == Error }

// Fixed messages shown in the terminal states.
const (
	SuccessMessage = "Message sent successfully! I'll get back to you soon."
	ErrorMessage   = "Failed to send message. Please try again later."
)

var (
	// ErrInFlight is returned when a submit arrives while one is pending.
	ErrInFlight = errors.New("contact: submission already in flight")
	// ErrClosed is returned by Begin after Close.
	ErrClosed = errors.New("contact: form closed")
)

// Submission is what a Sender delivers.
type Submission struct {
	ID          string    `json:"id"`
	Fields      Fields    `json:"fields"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Sender delivers a submission. It either succeeds or fails once; there is
// no retry.
type Sender interface {
	Send(ctx context.Context, sub Submission) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, sub Submission) error

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, sub Submission) error { return f(ctx, sub) }

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the form logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithNow overrides the timestamp source for submissions.
func WithNow(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// Form is one contact form instance.
type Form struct {
	mu      sync.Mutex
	sender  Sender
	logger  *zap.Logger
	now     func() time.Time
	state   State
	fields  Fields
	lastErr error
	invalid *ValidationError

	attempt *Attempt
	closed  bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewForm creates an Idle form that sends through sender.
func NewForm(sender Sender, opts ...Option) *Form {
	ctx, cancel := context.WithCancel(context.Background())
	f := &Form{
		sender: sender,
		logger: zap.NewNop(),
		now:    time.Now,
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Attempt is one in-flight submission.
type Attempt struct {
	sub    Submission
	sender Sender
	ctx    context.Context
}

// ID returns the submission id.
func (a *Attempt) ID() string { return a.sub.ID }

// Submission returns what will be sent.
func (a *Attempt) Submission() Submission { return a.sub }

// Send runs the injected Sender. It is meant to run off the UI goroutine;
// the result is handed back to Form.Resolve. ctx is merged with the form's
// own context, which Close cancels.
func (a *Attempt) Send(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(a.ctx, cancel)
	defer stop()

	if err := a.sender.Send(ctx, a.sub); err != nil {
		return fmt.Errorf("send %s: %w", a.sub.ID, err)
	}
	return nil
}

// State returns the current lifecycle state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Fields returns the current field values.
func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// SetFields replaces every field value. Editing never changes state.
func (f *Form) SetFields(fields Fields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = fields
}

// SetField sets one field by name. Unknown names are ignored.
func (f *Form) SetField(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch name {
	case FieldName:
		f.fields.Name = value
	case FieldEmail:
		f.fields.Email = value
	case FieldMessage:
		f.fields.Message = value
	}
}

// SubmitDisabled reports whether the submit control must be disabled. It is
// true exactly while a submission is in flight.
func (f *Form) SubmitDisabled() bool {
	return f.State() == Submitting
}

// Err returns the error of the last failed submission while in Error.
func (f *Form) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Error {
		return nil
	}
	return f.lastErr
}

// Invalid returns the validation problems of the last rejected submit, or
// nil. It is cleared by the next valid submit.
func (f *Form) Invalid() *ValidationError {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invalid
}

// Message returns the fixed user-facing text for the terminal states, or "".
func (f *Form) Message() string {
	switch f.State() {
	case Success:
		return SuccessMessage
	case Error:
		return ErrorMessage
	default:
		return ""
	}
}

// Begin handles a submit event. Invalid fields return a *ValidationError and
// leave the state untouched. A valid submit from Idle, Success or Error moves
// to Submitting and returns the attempt to send.
func (f *Form) Begin() (*Attempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrClosed
	}
	if f.state == Submitting {
		return nil, ErrInFlight
	}
	if err := f.fields.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			f.invalid = verr
		}
		f.logger.Debug("submit rejected by validation", zap.Error(err))
		return nil, err
	}

	f.invalid = nil
	f.lastErr = nil
	f.state = Submitting
	f.attempt = &Attempt{
		sub: Submission{
			ID:          uuid.NewString(),
			Fields:      f.fields,
			SubmittedAt: f.now(),
		},
		sender: f.sender,
		ctx:    f.ctx,
	}
	f.logger.Info("submission started", zap.String("id", f.attempt.sub.ID))
	return f.attempt, nil
}

// Resolve applies the outcome of an attempt. A nil err moves to Success and
// clears the fields; a non-nil err moves to Error and keeps them. Outcomes
// for an attempt that is no longer current, or that arrive after Close, are
// ignored and Resolve returns false.
func (f *Form) Resolve(id string, err error) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || f.state != Submitting || f.attempt == nil || f.attempt.sub.ID != id {
		f.logger.Debug("stale submission result ignored", zap.String("id", id))
		return false
	}
	f.attempt = nil

	if err != nil {
		f.state = Error
		f.lastErr = err
		f.logger.Warn("submission failed", zap.String("id", id), zap.Error(err))
		return true
	}
	f.state = Success
	f.fields = Fields{}
	f.logger.Info("submission sent", zap.String("id", id))
	return true
}

// Submit runs Begin, Send and Resolve synchronously. It is for callers
// without an event loop, such as the CLI.
func (f *Form) Submit(ctx context.Context) (State, error) {
	a, err := f.Begin()
	if err != nil {
		return f.State(), err
	}
	sendErr := a.Send(ctx)
	f.Resolve(a.ID(), sendErr)
	return f.State(), sendErr
}

// Close tears the form down. The in-flight attempt's context is cancelled and
// its late result is ignored.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	f.cancel()
	if f.attempt != nil {
		f.logger.Debug("form closed with submission in flight", zap.String("id", f.attempt.sub.ID))
	}
}
