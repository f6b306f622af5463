package contact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// controlledSender blocks each Send until the test releases it.
type controlledSender struct {
	started chan Submission
	results chan error
}

func newControlledSender() *controlledSender {
	return &controlledSender{
		started: make(chan Submission, 4),
		results: make(chan error, 4),
	}
}

func (s *controlledSender) Send(ctx context.Context, sub Submission) error {
	s.started <- sub
	select {
	case err := <-s.results:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

var validFields = Fields{
	Name:    "Ada Lovelace",
	Email:   "ada@example.com",
	Message: "Hello there",
}

// =============================================================================
// STATE MACHINE TESTS
// =============================================================================

func TestForm_StartsIdle(t *testing.T) {
	t.Parallel()
	f := NewForm(newControlledSender())
	assert.Equal(t, Idle, f.State())
	assert.False(t, f.SubmitDisabled())
	assert.Empty(t, f.Message())
}

func TestForm_ValidSubmitMovesToSubmitting(t *testing.T) {
	t.Parallel()
	f := NewForm(newControlledSender())
	f.SetFields(validFields)

	a, err := f.Begin()
	require.NoError(t, err)
	require.NotNil(t, a)

	assert.Equal(t, Submitting, f.State())
	assert.True(t, f.SubmitDisabled())
	assert.NotEmpty(t, a.ID())
	if diff := cmp.Diff(validFields, a.Submission().Fields); diff != "" {
		t.Errorf("submission fields mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_InvalidSubmitNoTransition(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		fields  Fields
		invalid []string
	}{
		{"all empty", Fields{}, []string{FieldName, FieldEmail, FieldMessage}},
		{"missing name", Fields{Email: "a@b.co", Message: "hi"}, []string{FieldName}},
		{"missing email", Fields{Name: "A", Message: "hi"}, []string{FieldEmail}},
		{"bad email", Fields{Name: "A", Email: "not-an-email", Message: "hi"}, []string{FieldEmail}},
		{"blank email", Fields{Name: "A", Email: "   ", Message: "hi"}, []string{FieldEmail}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewForm(newControlledSender())
			f.SetFields(tc.fields)

			a, err := f.Begin()
			assert.Nil(t, a)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			for _, field := range tc.invalid {
				assert.NotEmpty(t, verr.Hint(field), "expected hint for %s", field)
			}
			assert.Len(t, verr.Fields, len(tc.invalid))

			assert.Equal(t, Idle, f.State())
			assert.False(t, f.SubmitDisabled())
			assert.Equal(t, verr, f.Invalid())
		})
	}
}

func TestFields_WhitespaceCountsAsFilled(t *testing.T) {
	t.Parallel()
	fields := Fields{Name: " ", Email: " a@b.co ", Message: "   "}
	assert.NoError(t, fields.Validate())

	f := NewForm(newControlledSender())
	f.SetFields(fields)
	a, err := f.Begin()
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, Submitting, f.State())
}

func TestForm_SuccessClearsFields(t *testing.T) {
	t.Parallel()
	f := NewForm(newControlledSender())
	f.SetFields(validFields)

	a, err := f.Begin()
	require.NoError(t, err)
	require.True(t, f.Resolve(a.ID(), nil))

	assert.Equal(t, Success, f.State())
	assert.True(t, f.Fields().Empty())
	assert.Equal(t, SuccessMessage, f.Message())
	assert.False(t, f.SubmitDisabled())
	assert.NoError(t, f.Err())
}

func TestForm_ErrorKeepsFields(t *testing.T) {
	t.Parallel()
	f := NewForm(newControlledSender())
	f.SetFields(validFields)

	a, err := f.Begin()
	require.NoError(t, err)
	boom := errors.New("boom")
	require.True(t, f.Resolve(a.ID(), boom))

	assert.Equal(t, Error, f.State())
	assert.Equal(t, validFields, f.Fields())
	assert.Equal(t, ErrorMessage, f.Message())
	assert.ErrorIs(t, f.Err(), boom)
	assert.False(t, f.SubmitDisabled())
}

func TestForm_ResubmitFromTerminalStates(t *testing.T) {
	t.Parallel()
	f := NewForm(newControlledSender())

	f.SetFields(validFields)
	a, err := f.Begin()
	require.NoError(t, err)
	f.Resolve(a.ID(), errors.New("offline"))
	require.Equal(t, Error, f.State())

	// Error -> Submitting
	b, err := f.Begin()
	require.NoError(t, err)
	assert.Equal(t, Submitting, f.State())
	assert.True(t, f.SubmitDisabled())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Empty(t, f.Message(), "terminal message persists only until the next submit")

	f.Resolve(b.ID(), nil)
	require.Equal(t, Success, f.State())

	// Success clears the fields, so a new submit needs new values.
	_, err = f.Begin()
	require.Error(t, err)
	assert.Equal(t, Success, f.State())

	f.SetFields(validFields)
	_, err = f.Begin()
	require.NoError(t, err)
	assert.Equal(t, Submitting, f.State())
}

func TestForm_InFlightGuard(t *testing.T) {
	t.Parallel()
	f := NewForm(newControlledSender())
	f.SetFields(validFields)

	_, err := f.Begin()
	require.NoError(t, err)

	_, err = f.Begin()
	assert.ErrorIs(t, err, ErrInFlight)
	assert.Equal(t, Submitting, f.State())
}

func TestForm_StaleResolveIgnored(t *testing.T) {
	t.Parallel()
	f := NewForm(newControlledSender())
	f.SetFields(validFields)

	a, err := f.Begin()
	require.NoError(t, err)

	assert.False(t, f.Resolve("not-the-attempt", nil))
	assert.Equal(t, Submitting, f.State())

	require.True(t, f.Resolve(a.ID(), nil))
	assert.False(t, f.Resolve(a.ID(), errors.New("late")), "double resolve")
	assert.Equal(t, Success, f.State())
}

func TestForm_EditingDoesNotChangeState(t *testing.T) {
	t.Parallel()
	f := NewForm(newControlledSender())
	f.SetField(FieldName, "A")
	f.SetField(FieldEmail, "a@b.co")
	f.SetField(FieldMessage, "m")
	f.SetField("unknown", "ignored")

	assert.Equal(t, Idle, f.State())
	assert.Equal(t, Fields{Name: "A", Email: "a@b.co", Message: "m"}, f.Fields())
}

// =============================================================================
// ASYNC SEND TESTS
// =============================================================================

func TestAttempt_SendUsesInjectedSender(t *testing.T) {
	t.Parallel()
	sender := newControlledSender()
	f := NewForm(sender)
	f.SetFields(validFields)

	a, err := f.Begin()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- a.Send(context.Background()) }()

	sub := <-sender.started
	assert.Equal(t, a.ID(), sub.ID)
	assert.Equal(t, Submitting, f.State(), "state holds while send is pending")

	sender.results <- nil
	require.NoError(t, <-done)
	f.Resolve(a.ID(), nil)
	assert.Equal(t, Success, f.State())
}

func TestAttempt_SendWrapsError(t *testing.T) {
	t.Parallel()
	boom := errors.New("smtp down")
	f := NewForm(SenderFunc(func(context.Context, Submission) error { return boom }))
	f.SetFields(validFields)

	state, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Error, state)
}

func TestForm_SubmitSynchronous(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	var got Submission
	f := NewForm(SenderFunc(func(_ context.Context, sub Submission) error {
		got = sub
		return nil
	}), WithNow(func() time.Time { return now }))
	f.SetFields(validFields)

	state, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Success, state)
	assert.Equal(t, now, got.SubmittedAt)
	assert.Equal(t, validFields, got.Fields)
}

func TestForm_CloseCancelsAndIgnoresLateResult(t *testing.T) {
	t.Parallel()
	sender := newControlledSender()
	f := NewForm(sender)
	f.SetFields(validFields)

	a, err := f.Begin()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- a.Send(context.Background()) }()
	<-sender.started

	f.Close()
	f.Close()

	sendErr := <-done
	assert.ErrorIs(t, sendErr, context.Canceled)
	assert.False(t, f.Resolve(a.ID(), sendErr), "late result after close is ignored")
	assert.Equal(t, Submitting, f.State())

	_, err = f.Begin()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestState_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "submitting", Submitting.String())
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "unknown", State(42).String())
	assert.True(t, Success.Terminal())
	assert.False(t, Submitting.Terminal())
}
