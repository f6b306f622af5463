package reveal

import (
	"testing"
	"time"

	"folio/internal/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(ch <-chan Event) []Event {
	var out []Event
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestScheduler_StaggeredOrder(t *testing.T) {
	fake := clock.NewFake(epoch)
	s, err := NewScheduler(DefaultSpecs(), WithSchedulerClock(fake))
	require.NoError(t, err)

	events, err := s.Start()
	require.NoError(t, err)
	defer s.Stop()

	var order []string
	for _, step := range []time.Duration{0, 200, 200, 200} {
		fake.Advance(step * time.Millisecond)
		for _, ev := range drain(events) {
			order = append(order, ev.ID)
			assert.False(t, ev.At.Before(epoch.Add(ev.Delay)),
				"%s revealed before its delay", ev.ID)
		}
	}
	assert.Equal(t, []string{Hero, About, Projects, Contact}, order)
	for _, id := range []string{Hero, About, Projects, Contact} {
		assert.True(t, s.Visible(id))
	}
}

func TestScheduler_PartialProgress(t *testing.T) {
	fake := clock.NewFake(epoch)
	s, err := NewScheduler(DefaultSpecs(), WithSchedulerClock(fake))
	require.NoError(t, err)
	_, err = s.Start()
	require.NoError(t, err)

	fake.Advance(250 * time.Millisecond)
	assert.True(t, s.Visible(Hero))
	assert.True(t, s.Visible(About))
	assert.False(t, s.Visible(Projects))
	assert.False(t, s.Visible(Contact))

	s.Stop()
	fake.Advance(time.Hour)
	assert.False(t, s.Visible(Projects), "stop cancels pending reveals")
	assert.False(t, s.Visible(Contact))
	assert.True(t, s.Visible(Hero), "revealed sections stay visible")
}

func TestScheduler_StopClosesEvents(t *testing.T) {
	fake := clock.NewFake(epoch)
	s, err := NewScheduler(DefaultSpecs(), WithSchedulerClock(fake))
	require.NoError(t, err)
	events, err := s.Start()
	require.NoError(t, err)

	fake.Advance(0)
	s.Stop()
	s.Stop()

	got := drain(events)
	require.Len(t, got, 1)
	assert.Equal(t, Hero, got[0].ID)
	_, ok := <-events
	assert.False(t, ok)

	_, err = s.Start()
	assert.ErrorIs(t, err, ErrUnmounted)
}

func TestScheduler_StartTwiceReturnsSameChannel(t *testing.T) {
	s, err := NewScheduler(DefaultSpecs(), WithSchedulerClock(clock.NewFake(epoch)))
	require.NoError(t, err)
	a, err := s.Start()
	require.NoError(t, err)
	b, err := s.Start()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	s.Stop()
}

func TestScheduler_Validation(t *testing.T) {
	_, err := NewScheduler([]Spec{{ID: Hero}, {ID: Hero}})
	assert.ErrorIs(t, err, ErrDuplicateSection)

	_, err = NewScheduler([]Spec{{ID: Hero, Delay: -1}})
	assert.ErrorIs(t, err, ErrNegativeDelay)
}

func TestScheduler_IndependentDelays(t *testing.T) {
	// Ordering comes only from configured delays, not from spec order.
	fake := clock.NewFake(epoch)
	s, err := NewScheduler([]Spec{
		{ID: Contact, Delay: 50 * time.Millisecond},
		{ID: Hero, Delay: 100 * time.Millisecond},
	}, WithSchedulerClock(fake))
	require.NoError(t, err)
	events, err := s.Start()
	require.NoError(t, err)
	defer s.Stop()

	fake.Advance(100 * time.Millisecond)
	got := drain(events)
	require.Len(t, got, 2)
	assert.Equal(t, Contact, got[0].ID)
	assert.Equal(t, Hero, got[1].ID)

	states := s.Sections()
	assert.Equal(t, Contact, states[0].ID)
	assert.False(t, s.Visible("missing"))
	_, ok := s.Section("missing")
	assert.False(t, ok)
}

func TestScheduler_EventsAndAllVisible(t *testing.T) {
	fake := clock.NewFake(epoch)
	s, err := NewScheduler(DefaultSpecs(), WithSchedulerClock(fake))
	require.NoError(t, err)
	assert.Nil(t, s.Events())

	events, err := s.Start()
	require.NoError(t, err)
	assert.Equal(t, events, s.Events())
	assert.False(t, s.AllVisible())

	fake.Advance(600 * time.Millisecond)
	assert.True(t, s.AllVisible())
	s.Stop()
}
