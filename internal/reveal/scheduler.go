package reveal

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"folio/internal/clock"

	"go.uber.org/zap"
)

// Section ids used by the portfolio page.
const (
	Hero     = "hero"
	About    = "about"
	Projects = "projects"
	Contact  = "contact"
)

// Spec names a section and its reveal delay.
type Spec struct {
	ID    string
	Delay time.Duration
}

// DefaultSpecs is the stagger used by the page: each section appears 200ms
// after the previous one.
func DefaultSpecs() []Spec {
	return []Spec{
		{ID: Hero, Delay: 0},
		{ID: About, Delay: 200 * time.Millisecond},
		{ID: Projects, Delay: 400 * time.Millisecond},
		{ID: Contact, Delay: 600 * time.Millisecond},
	}
}

// ErrDuplicateSection is returned when two specs share an id.
var ErrDuplicateSection = errors.New("reveal: duplicate section id")

// Scheduler owns the sections of one page. It only groups them; every
// section runs its own timer.
type Scheduler struct {
	mu       sync.Mutex
	sections []*Section
	byID     map[string]*Section
	events   chan Event
	started  bool
	stopped  bool
	logger   *zap.Logger
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*schedulerOptions)

type schedulerOptions struct {
	clock  clock.Clock
	logger *zap.Logger
}

// WithSchedulerClock sets the time source shared by all sections.
func WithSchedulerClock(c clock.Clock) SchedulerOption {
	return func(o *schedulerOptions) { o.clock = c }
}

// WithLogger sets the logger used for reveal tracing.
func WithLogger(l *zap.Logger) SchedulerOption {
	return func(o *schedulerOptions) { o.logger = l }
}

// NewScheduler builds one unmounted section per spec.
func NewScheduler(specs []Spec, opts ...SchedulerOption) (*Scheduler, error) {
	o := schedulerOptions{clock: clock.Real(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Scheduler{
		byID:   make(map[string]*Section, len(specs)),
		logger: o.logger,
	}
	for _, spec := range specs {
		if _, dup := s.byID[spec.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSection, spec.ID)
		}
		sec, err := NewSection(spec.ID, spec.Delay, WithClock(o.clock))
		if err != nil {
			return nil, err
		}
		s.sections = append(s.sections, sec)
		s.byID[spec.ID] = sec
	}
	return s, nil
}

// Start mounts every section and returns the channel reveal events are
// delivered on. The channel has room for one event per section, so timer
// callbacks never block. Calling Start again returns the same channel.
func (s *Scheduler) Start() (<-chan Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, ErrUnmounted
	}
	if s.started {
		return s.events, nil
	}
	s.events = make(chan Event, len(s.sections))
	events := s.events
	for _, sec := range s.sections {
		if err := sec.Mount(func(ev Event) {
			s.logger.Debug("section revealed",
				zap.String("section", ev.ID),
				zap.Duration("delay", ev.Delay))
			events <- ev
		}); err != nil {
			return nil, err
		}
	}
	s.started = true
	return events, nil
}

// Events returns the channel created by Start, or nil before Start.
func (s *Scheduler) Events() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events
}

// AllVisible reports whether every section has been revealed.
func (s *Scheduler) AllVisible() bool {
	for _, sec := range s.sections {
		if !sec.Visible() {
			return false
		}
	}
	return true
}

// Stop unmounts every section, cancelling reveals that have not fired, and
// closes the event channel. Stop is idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true

	cancelled := 0
	for _, sec := range s.sections {
		if sec.Pending() {
			cancelled++
		}
		sec.Unmount()
	}
	// Every section is torn down, so no callback can send any more.
	if s.events != nil {
		close(s.events)
	}
	if cancelled > 0 {
		s.logger.Debug("pending reveals cancelled", zap.Int("count", cancelled))
	}
}

// Section returns the section with the given id.
func (s *Scheduler) Section(id string) (*Section, bool) {
	sec, ok := s.byID[id]
	return sec, ok
}

// Visible reports whether the section id is visible. Unknown ids are never
// visible.
func (s *Scheduler) Visible(id string) bool {
	sec, ok := s.byID[id]
	return ok && sec.Visible()
}

// Sections returns snapshots in configuration order.
func (s *Scheduler) Sections() []State {
	out := make([]State, 0, len(s.sections))
	for _, sec := range s.sections {
		out = append(out, sec.State())
	}
	return out
}
