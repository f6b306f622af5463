// Package transport provides the Senders a contact form can deliver through.
package transport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"folio/internal/clock"
	"folio/internal/config"
	"folio/internal/contact"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Transport names accepted in contact.transport.
const (
	NameSimulated = "simulated"
	NameWebhook   = "webhook"
	NameLog       = "log"
)

var (
	// ErrUnknownTransport is returned by New for an unrecognised name.
	ErrUnknownTransport = errors.New("transport: unknown transport")
	// ErrSimulatedFailure is returned by a Simulated sender set to fail.
	ErrSimulatedFailure = errors.New("transport: simulated failure")
	// ErrRateLimited is returned when RateLimited refuses a submission.
	ErrRateLimited = errors.New("transport: too many submissions")
)

// DefaultSimulatedDelay matches the pause the form showed before it had a
// real backend.
const DefaultSimulatedDelay = 1500 * time.Millisecond

// Simulated resolves after a fixed delay without doing any I/O.
type Simulated struct {
	Delay time.Duration
	Fail  bool
	Clock clock.Clock
}

// Send waits Delay on the configured clock, then resolves or rejects.
func (s Simulated) Send(ctx context.Context, sub contact.Submission) error {
	c := s.Clock
	if c == nil {
		c = clock.Real()
	}
	done := make(chan struct{})
	timer := c.AfterFunc(s.Delay, func() { close(done) })

	select {
	case <-done:
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	}
	if s.Fail {
		return ErrSimulatedFailure
	}
	return nil
}

// Log records the submission and resolves.
type Log struct {
	Logger *zap.Logger
}

// Send writes the submission to the logger.
func (l Log) Send(ctx context.Context, sub contact.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("contact message",
		zap.String("id", sub.ID),
		zap.String("name", sub.Fields.Name),
		zap.String("email", sub.Fields.Email),
		zap.Int("message_len", len(sub.Fields.Message)),
		zap.Time("submitted_at", sub.SubmittedAt))
	return nil
}

// RateLimited wraps a Sender with a token bucket. A submission that finds no
// token is rejected immediately rather than queued.
type RateLimited struct {
	Next    contact.Sender
	Limiter *rate.Limiter
}

// NewRateLimited allows burst submissions and then one per interval.
func NewRateLimited(next contact.Sender, interval time.Duration, burst int) *RateLimited {
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		Next:    next,
		Limiter: rate.NewLimiter(rate.Every(interval), burst),
	}
}

// Send forwards to Next when a token is available.
func (r *RateLimited) Send(ctx context.Context, sub contact.Submission) error {
	if !r.Limiter.Allow() {
		return ErrRateLimited
	}
	return r.Next.Send(ctx, sub)
}

// New builds the sender named by cfg.Transport, wrapped in a rate limiter
// when cfg.RateLimit.Interval is set.
func New(cfg config.ContactConfig, logger *zap.Logger, c clock.Clock) (contact.Sender, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var sender contact.Sender
	switch strings.ToLower(strings.TrimSpace(cfg.Transport)) {
	case "", NameSimulated:
		sender = Simulated{
			Delay: cfg.GetSimulatedDelay(),
			Fail:  cfg.SimulateFailure,
			Clock: c,
		}
	case NameLog:
		sender = Log{Logger: logger}
	case NameWebhook:
		wh, err := NewWebhook(cfg.WebhookURL, cfg.GetTimeout())
		if err != nil {
			return nil, err
		}
		sender = wh
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, cfg.Transport)
	}

	if interval := cfg.RateLimit.GetInterval(); interval > 0 {
		sender = NewRateLimited(sender, interval, cfg.RateLimit.Burst)
	}
	logger.Debug("contact transport ready", zap.String("transport", cfg.Transport))
	return sender, nil
}
