package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"folio/internal/clock"
	"folio/internal/config"
	"folio/internal/contact"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var sub = contact.Submission{
	ID:          "sub-1",
	Fields:      contact.Fields{Name: "Ada", Email: "ada@example.com", Message: "hi"},
	SubmittedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
}

func TestSimulated_ResolvesAfterDelay(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	s := Simulated{Delay: DefaultSimulatedDelay, Clock: fake}

	done := make(chan error, 1)
	go func() { done <- s.Send(context.Background(), sub) }()

	require.Eventually(t, func() bool { return fake.Pending() == 1 }, time.Second, time.Millisecond)
	fake.Advance(DefaultSimulatedDelay - time.Millisecond)
	select {
	case <-done:
		t.Fatal("resolved before the delay elapsed")
	default:
	}

	fake.Advance(time.Millisecond)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("simulated send did not resolve")
	}
}

func TestSimulated_Fail(t *testing.T) {
	s := Simulated{Delay: 0, Fail: true}
	assert.ErrorIs(t, s.Send(context.Background(), sub), ErrSimulatedFailure)
}

func TestSimulated_ContextCancel(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	s := Simulated{Delay: time.Hour, Clock: fake}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Send(ctx, sub) }()
	require.Eventually(t, func() bool { return fake.Pending() == 1 }, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, 0, fake.Pending(), "cancel stops the pending timer")
}

func TestLog_RecordsSubmission(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := Log{Logger: zap.New(core)}

	require.NoError(t, l.Send(context.Background(), sub))
	entries := logs.FilterMessage("contact message").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "sub-1", entries[0].ContextMap()["id"])
	assert.Equal(t, "ada@example.com", entries[0].ContextMap()["email"])
}

func TestRateLimited(t *testing.T) {
	calls := 0
	next := contact.SenderFunc(func(context.Context, contact.Submission) error {
		calls++
		return nil
	})
	r := NewRateLimited(next, time.Hour, 2)

	assert.NoError(t, r.Send(context.Background(), sub))
	assert.NoError(t, r.Send(context.Background(), sub))
	assert.ErrorIs(t, r.Send(context.Background(), sub), ErrRateLimited)
	assert.Equal(t, 2, calls)
}

// =============================================================================
// WEBHOOK TESTS
// =============================================================================

func TestWebhook_PostsJSON(t *testing.T) {
	var got webhookPayload
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotKey = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	wh, err := NewWebhook(srv.URL, time.Second)
	require.NoError(t, err)
	require.NoError(t, wh.Send(context.Background(), sub))

	assert.Equal(t, "sub-1", got.ID)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "hi", got.Message)
	assert.Equal(t, "sub-1", gotKey)
}

func TestWebhook_Non2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	wh, err := NewWebhook(srv.URL, time.Second)
	require.NoError(t, err)
	err = wh.Send(context.Background(), sub)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNewWebhook_Validation(t *testing.T) {
	_, err := NewWebhook("", time.Second)
	assert.Error(t, err)
	_, err = NewWebhook("mailto:me@example.com", time.Second)
	assert.Error(t, err)
}

// =============================================================================
// FACTORY TESTS
// =============================================================================

func TestNew_SelectsTransport(t *testing.T) {
	cfg := config.DefaultConfig().Contact

	s, err := New(cfg, nil, nil)
	require.NoError(t, err)
	sim, ok := s.(Simulated)
	require.True(t, ok, "default is simulated, got %T", s)
	assert.Equal(t, DefaultSimulatedDelay, sim.Delay)

	cfg.Transport = "LOG"
	s, err = New(cfg, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, Log{}, s)

	cfg.Transport = "webhook"
	cfg.WebhookURL = "https://hooks.example.com/x"
	s, err = New(cfg, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &Webhook{}, s)

	cfg.Transport = "carrier-pigeon"
	_, err = New(cfg, nil, nil)
	assert.True(t, errors.Is(err, ErrUnknownTransport))
}

func TestNew_WrapsRateLimit(t *testing.T) {
	cfg := config.DefaultConfig().Contact
	cfg.RateLimit = config.RateLimitConfig{Interval: "1m", Burst: 1}

	s, err := New(cfg, zap.NewNop(), nil)
	require.NoError(t, err)
	rl, ok := s.(*RateLimited)
	require.True(t, ok)
	assert.IsType(t, Simulated{}, rl.Next)
}
