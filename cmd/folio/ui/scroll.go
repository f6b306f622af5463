package ui

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/harmonica"
)

// ScrollBehavior selects how navigation moves the page.
type ScrollBehavior int32

const (
	ScrollInstant ScrollBehavior = iota
	ScrollSmooth
)

var (
	scrollOnce     sync.Once
	scrollBehavior atomic.Int32
)

// ConfigureScroll sets the process-wide scroll behavior. Only the first call
// takes effect; it reports whether this call was the one applied.
func ConfigureScroll(b ScrollBehavior) bool {
	applied := false
	scrollOnce.Do(func() {
		scrollBehavior.Store(int32(b))
		applied = true
	})
	return applied
}

// CurrentScroll returns the configured scroll behavior.
func CurrentScroll() ScrollBehavior {
	return ScrollBehavior(scrollBehavior.Load())
}

// ScrollFPS is the frame rate of smooth scrolling.
const ScrollFPS = 60

// Scroller animates a viewport offset toward a target with a critically
// damped spring.
type Scroller struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
	active bool
}

// NewScroller returns a Scroller ticking at ScrollFPS.
func NewScroller() Scroller {
	return Scroller{spring: harmonica.NewSpring(harmonica.FPS(ScrollFPS), 8.0, 1.0)}
}

// Start begins an animation from the current offset to target.
func (s *Scroller) Start(from, to int) {
	s.pos = float64(from)
	s.target = float64(to)
	s.vel = 0
	s.active = from != to
}

// Active reports whether an animation is running.
func (s *Scroller) Active() bool { return s.active }

// Step advances one frame and returns the offset to show. The animation ends
// once the spring has settled on the target.
func (s *Scroller) Step() int {
	if !s.active {
		return int(s.target)
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if math.Abs(s.pos-s.target) < 0.5 && math.Abs(s.vel) < 0.5 {
		s.pos = s.target
		s.vel = 0
		s.active = false
	}
	return int(math.Round(s.pos))
}

// Stop ends the animation where it is.
func (s *Scroller) Stop() { s.active = false }
