// Package reveal staggers the appearance of page sections.
//
// Each Section owns a single one-shot timer. When the timer fires the section
// becomes visible and stays visible. Unmounting a section cancels its timer
// synchronously; a section that has been unmounted never changes state again.
// Sections do not coordinate with each other: the stagger comes only from the
// distinct delays they are configured with.
package reveal

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"folio/internal/clock"
)

var (
	// ErrNegativeDelay is returned for a section configured with delay < 0.
	ErrNegativeDelay = errors.New("reveal: delay must not be negative")
	// ErrAlreadyMounted is returned when Mount is called twice.
	ErrAlreadyMounted = errors.New("reveal: section already mounted")
	// ErrUnmounted is returned when Mount is called after Unmount.
	ErrUnmounted = errors.New("reveal: section was unmounted")
)

// Event reports that a section became visible.
type Event struct {
	ID    string
	Delay time.Duration
	At    time.Time
}

// State is a snapshot of a section.
type State struct {
	ID         string
	Delay      time.Duration
	Visible    bool
	RevealedAt time.Time
}

// Option configures a Section.
type Option func(*Section)

// WithClock overrides the time source. Defaults to clock.Real().
func WithClock(c clock.Clock) Option {
	return func(s *Section) {
		if c != nil {
			s.clock = c
		}
	}
}

// Section is the reveal state of one page region.
type Section struct {
	mu         sync.Mutex
	id         string
	delay      time.Duration
	clock      clock.Clock
	timer      clock.Timer
	notify     func(Event)
	mounted    bool
	torn       bool
	visible    bool
	revealedAt time.Time
}

// NewSection creates an unmounted, not-visible section.
func NewSection(id string, delay time.Duration, opts ...Option) (*Section, error) {
	if delay < 0 {
		return nil, fmt.Errorf("section %q: %w", id, ErrNegativeDelay)
	}
	s := &Section{
		id:    id,
		delay: delay,
		clock: clock.Real(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ID returns the section identifier.
func (s *Section) ID() string { return s.id }

// Delay returns the configured reveal delay.
func (s *Section) Delay() time.Duration { return s.delay }

// Mount arms the reveal timer. notify, if non-nil, is called exactly once
// when the section becomes visible. It is called with the section lock held,
// so it must not block or call back into the section.
//
// A zero delay still reveals asynchronously: the section is never visible
// when Mount returns.
func (s *Section) Mount(notify func(Event)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.torn {
		return fmt.Errorf("section %q: %w", s.id, ErrUnmounted)
	}
	if s.mounted {
		return fmt.Errorf("section %q: %w", s.id, ErrAlreadyMounted)
	}
	s.mounted = true
	s.notify = notify
	s.timer = s.clock.AfterFunc(s.delay, s.fire)
	return nil
}

func (s *Section) fire() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Lost the race with Unmount.
	if s.torn || s.visible {
		return
	}
	s.visible = true
	s.revealedAt = s.clock.Now()
	s.timer = nil
	if s.notify != nil {
		s.notify(Event{ID: s.id, Delay: s.delay, At: s.revealedAt})
	}
}

// Unmount cancels a pending reveal. It is safe to call more than once and on
// a section that was never mounted.
func (s *Section) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.torn = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.notify = nil
}

// Visible reports whether the section has been revealed.
func (s *Section) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Pending reports whether a reveal is armed and has not fired yet.
func (s *Section) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// State returns a snapshot of the section.
func (s *Section) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:         s.id,
		Delay:      s.delay,
		Visible:    s.visible,
		RevealedAt: s.revealedAt,
	}
}
