package page

import (
	"context"
	"sync"
	"time"

	"folio/cmd/folio/ui"
	"folio/internal/assets"
	"folio/internal/catalog"
	"folio/internal/config"
	"folio/internal/contact"
	"folio/internal/reveal"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

// Focus determines which control receives key presses.
type Focus int

const (
	FocusPage    Focus = iota // Navigation and scrolling
	FocusName                 // Contact name input
	FocusEmail                // Contact email input
	FocusMessage              // Contact message textarea
	FocusSubmit               // Send Message button
)

// String returns the display name for each focus target
func (f Focus) String() string {
	names := []string{"page", "name", "email", "message", "submit"}
	if int(f) >= 0 && int(f) < len(names) {
		return names[f]
	}
	return "unknown"
}

// navItem is one entry of the header navigation.
type navItem struct {
	id    string
	label string
	key   string
}

var navItems = []navItem{
	{id: reveal.About, label: "About", key: "a"},
	{id: reveal.Projects, label: "Projects", key: "p"},
	{id: reveal.Contact, label: "Contact", key: "c"},
}

// =============================================================================
// MESSAGES
// =============================================================================

// revealMsg carries one section reveal from the scheduler.
type revealMsg reveal.Event

// revealClosedMsg signals that the scheduler stopped.
type revealClosedMsg struct{}

// submitResultMsg is the outcome of an in-flight contact submission.
type submitResultMsg struct {
	ID  string
	Err error
}

// catalogMsg delivers a reloaded catalog.
type catalogMsg struct {
	Catalog *catalog.Catalog
}

// imagesMsg delivers resolved images.
type imagesMsg struct {
	Profile  assets.Resolved
	Projects map[int]assets.Resolved // by project id
}

// scrollTickMsg advances a smooth scroll animation.
type scrollTickMsg time.Time

// =============================================================================
// MODEL
// =============================================================================

// Options holds everything the page needs from the outside.
type Options struct {
	Config    *config.Config
	Catalog   *catalog.Catalog
	Scheduler *reveal.Scheduler
	Sender    contact.Sender
	Resolver  *assets.Resolver // optional
	Watcher   *catalog.Watcher // optional
	Logger    *zap.Logger
	Now       func() time.Time
}

// Model is the bubbletea model of the portfolio page.
type Model struct {
	cfg    *config.Config
	styles ui.Styles
	logger *zap.Logger
	now    func() time.Time

	// Reveal Scheduler
	scheduler *reveal.Scheduler

	// Contact Submission Lifecycle
	form         *contact.Form
	nameInput    textinput.Model
	emailInput   textinput.Model
	messageInput textarea.Model
	spinner      spinner.Model
	focus        Focus

	// Project gallery
	catalog  *catalog.Catalog
	images   map[int]assets.Resolved // by project id
	resolver *assets.Resolver
	watcher  *catalog.Watcher
	cards    *ui.RenderCache

	// Hero and about panel
	profileImage  string
	renderer      *glamour.TermRenderer
	renderedAbout string
	aboutWidth    int

	// Layout and navigation
	viewport viewport.Model
	scroller ui.Scroller
	offsets  map[string]int
	active   string
	menuOpen bool
	width    int
	height   int
	ready    bool

	// Lifecycle
	ctx          context.Context
	cancel       context.CancelFunc
	shutdownOnce *sync.Once // pointer to allow Model copy without sync.Once copy
}
