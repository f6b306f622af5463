// Package page implements the interactive portfolio page: a hero banner, an
// about panel, the project gallery, the contact form and a footer, revealed
// one after another as the page mounts.
package page

import (
	"context"
	"errors"
	"sync"
	"time"

	"folio/cmd/folio/ui"
	"folio/internal/catalog"
	"folio/internal/config"
	"folio/internal/contact"
	"folio/internal/reveal"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// New builds the page model. Options.Config, Catalog, Scheduler and Sender
// are required.
func New(opts Options) (Model, error) {
	if opts.Config == nil || opts.Catalog == nil || opts.Scheduler == nil || opts.Sender == nil {
		return Model{}, errors.New("page: config, catalog, scheduler and sender are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	styles := ui.NewStyles(ui.ThemeFor(opts.Config.UI.Theme))

	name := textinput.New()
	name.Placeholder = "Your Name"
	name.CharLimit = 120
	name.Prompt = ""

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Prompt = ""

	message := textarea.New()
	message.Placeholder = "Your message here..."
	message.ShowLineNumbers = false
	message.CharLimit = 5000
	message.SetHeight(6)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		cfg:          opts.Config,
		styles:       styles,
		logger:       logger,
		now:          now,
		scheduler:    opts.Scheduler,
		form:         contact.NewForm(opts.Sender, contact.WithLogger(logger.Named("contact")), contact.WithNow(now)),
		nameInput:    name,
		emailInput:   email,
		messageInput: message,
		spinner:      sp,
		catalog:      opts.Catalog,
		resolver:     opts.Resolver,
		watcher:      opts.Watcher,
		cards:        ui.NewRenderCache(64),
		viewport:     viewport.New(0, 0),
		scroller:     ui.NewScroller(),
		offsets:      make(map[string]int),
		active:       reveal.Hero,
		ctx:          ctx,
		cancel:       cancel,
		shutdownOnce: &sync.Once{},
	}
	return m, nil
}

// Init mounts every section and starts the background listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}

	if _, err := m.scheduler.Start(); err != nil {
		m.logger.Warn("reveal scheduler did not start", zap.Error(err))
	} else {
		cmds = append(cmds, m.waitForReveal())
	}

	if m.resolver != nil {
		cmds = append(cmds, m.resolveImages(m.catalog))
	}

	if m.watcher != nil {
		if err := m.watcher.Start(m.ctx); err != nil {
			m.logger.Warn("catalog watcher did not start", zap.Error(err))
		} else {
			cmds = append(cmds, m.waitForCatalog())
		}
	}

	return tea.Batch(cmds...)
}

// Shutdown tears the page down: pending reveals are cancelled, an in-flight
// submission is abandoned and the catalog watcher stops. Safe to call more
// than once.
func (m *Model) Shutdown() {
	m.shutdownOnce.Do(func() {
		// Cancel background operations, including an in-flight send
		if m.cancel != nil {
			m.cancel()
		}
		m.scheduler.Stop()
		m.form.Close()
		if m.watcher != nil {
			m.watcher.Stop()
		}
		m.logger.Debug("page shut down")
	})
}

// performShutdown is a value-receiver wrapper for Shutdown() that can be called
// from Update().
func (m Model) performShutdown() {
	modelPtr := &m
	modelPtr.Shutdown()
}

// Form exposes the contact form lifecycle.
func (m Model) Form() *contact.Form { return m.form }

// Focus returns the control that receives key presses.
func (m Model) Focus() Focus { return m.focus }

// ActiveSection returns the section the navigation last moved to.
func (m Model) ActiveSection() string { return m.active }

// Catalog returns the catalog being rendered.
func (m Model) Catalog() *catalog.Catalog { return m.catalog }

// Config returns the page configuration.
func (m Model) Config() *config.Config { return m.cfg }

// waitForReveal listens for the next section reveal.
func (m Model) waitForReveal() tea.Cmd {
	events := m.scheduler.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return revealClosedMsg{}
		}
		return revealMsg(ev)
	}
}

// waitForCatalog listens for catalog reloads.
func (m Model) waitForCatalog() tea.Cmd {
	updates := m.watcher.Updates()
	return func() tea.Msg {
		c, ok := <-updates
		if !ok {
			return nil
		}
		return catalogMsg{Catalog: c}
	}
}

// resolveImages checks every project image off the UI goroutine.
func (m Model) resolveImages(c *catalog.Catalog) tea.Cmd {
	resolver := m.resolver
	ctx := m.ctx
	profileRef := m.cfg.Profile.Image
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		profile := resolver.Resolve(ctx, profileRef, "Profile")
		if profile.Fallback {
			profile.URL = catalog.ProfilePlaceholderURL
		}
		return imagesMsg{Profile: profile, Projects: resolver.ResolveAll(ctx, c.Projects())}
	}
}

// sendSubmission runs the contact transport off the UI goroutine.
func (m Model) sendSubmission(a *contact.Attempt) tea.Cmd {
	ctx := m.ctx
	budget := m.cfg.Contact.GetSendBudget()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, budget)
		defer cancel()
		return submitResultMsg{ID: a.ID(), Err: a.Send(ctx)}
	}
}

// scrollTick schedules the next smooth scroll frame.
func scrollTick() tea.Cmd {
	return tea.Tick(time.Second/ui.ScrollFPS, func(t time.Time) tea.Msg {
		return scrollTickMsg(t)
	})
}
