package page

import (
	"errors"

	"folio/cmd/folio/ui"
	"folio/internal/contact"
	"folio/internal/reveal"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

// Update handles one message and re-lays out the page.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	if m.ready {
		m.refresh()
	}
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Ctrl+C always quits, even from inside a text control
		if msg.Type == tea.KeyCtrlC {
			m.performShutdown()
			return m, tea.Quit
		}
		if m.focus == FocusPage {
			return m.handlePageKey(msg)
		}
		return m.handleFormKey(msg)

	case tea.MouseMsg:
		if !m.cfg.UI.MouseWheel {
			return m, nil
		}
		m.scroller.Stop()
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		// The spinner only runs while a submission is in flight
		if m.form.State() != contact.Submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case revealMsg:
		m.logger.Debug("section revealed",
			zap.String("section", msg.ID),
			zap.Duration("delay", msg.Delay))
		if m.scheduler.AllVisible() {
			return m, nil
		}
		return m, m.waitForReveal()

	case revealClosedMsg:
		return m, nil

	case submitResultMsg:
		if !m.form.Resolve(msg.ID, msg.Err) {
			return m, nil
		}
		if m.form.State() == contact.Success {
			m.resetInputs()
		}
		return m, nil

	case catalogMsg:
		var cmds []tea.Cmd
		if m.watcher != nil {
			cmds = append(cmds, m.waitForCatalog())
		}
		if msg.Catalog == nil {
			return m, tea.Batch(cmds...)
		}
		m.logger.Info("project catalog reloaded", zap.Int("projects", msg.Catalog.Len()))
		m.catalog = msg.Catalog
		m.images = nil
		if m.resolver != nil {
			cmds = append(cmds, m.resolveImages(m.catalog))
		}
		return m, tea.Batch(cmds...)

	case imagesMsg:
		m.images = msg.Projects
		if msg.Profile.URL != "" {
			m.profileImage = msg.Profile.URL
		}
		return m, nil

	case scrollTickMsg:
		if !m.scroller.Active() {
			return m, nil
		}
		m.viewport.SetYOffset(m.scroller.Step())
		if m.scroller.Active() {
			return m, scrollTick()
		}
		return m, nil
	}

	return m, nil
}

// handlePageKey handles keys while no form control has focus.
func (m Model) handlePageKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		if m.menuOpen {
			m.menuOpen = false
			return m, nil
		}
		m.performShutdown()
		return m, tea.Quit

	case key.Matches(msg, keys.Menu):
		if m.layout().Narrow() {
			m.menuOpen = !m.menuOpen
		}
		return m, nil

	case key.Matches(msg, keys.Hero):
		return m, m.navigate(reveal.Hero)
	case key.Matches(msg, keys.About):
		return m, m.navigate(reveal.About)
	case key.Matches(msg, keys.Projects):
		return m, m.navigate(reveal.Projects)
	case key.Matches(msg, keys.Contact):
		return m, m.navigate(reveal.Contact)

	case key.Matches(msg, keys.Next):
		return m, tea.Batch(m.navigate(reveal.Contact), m.setFocus(FocusName))
	case key.Matches(msg, keys.Prev):
		return m, tea.Batch(m.navigate(reveal.Contact), m.setFocus(FocusSubmit))
	case key.Matches(msg, keys.Submit):
		return m, m.submit()

	case key.Matches(msg, keys.Up):
		m.scroller.Stop()
		m.viewport.LineUp(1)
	case key.Matches(msg, keys.Down):
		m.scroller.Stop()
		m.viewport.LineDown(1)
	case key.Matches(msg, keys.PageUp):
		m.scroller.Stop()
		m.viewport.HalfViewUp()
	case key.Matches(msg, keys.PageDown):
		m.scroller.Stop()
		m.viewport.HalfViewDown()
	case key.Matches(msg, keys.Top):
		return m, m.scrollTo(0)
	case key.Matches(msg, keys.Bottom):
		return m, m.scrollTo(m.maxOffset())
	}
	return m, nil
}

// handleFormKey handles keys while a contact control has focus. Editing a
// field never changes the submission state.
func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Blur):
		return m, m.setFocus(FocusPage)
	case key.Matches(msg, keys.Next):
		return m, m.setFocus(m.nextFocus(1))
	case key.Matches(msg, keys.Prev):
		return m, m.setFocus(m.nextFocus(-1))
	case key.Matches(msg, keys.Submit):
		return m, m.submit()
	}

	var cmd tea.Cmd
	switch m.focus {
	case FocusName:
		if msg.Type == tea.KeyEnter {
			return m, m.setFocus(FocusEmail)
		}
		m.nameInput, cmd = m.nameInput.Update(msg)
		m.form.SetField(contact.FieldName, m.nameInput.Value())
	case FocusEmail:
		if msg.Type == tea.KeyEnter {
			return m, m.setFocus(FocusMessage)
		}
		m.emailInput, cmd = m.emailInput.Update(msg)
		m.form.SetField(contact.FieldEmail, m.emailInput.Value())
	case FocusMessage:
		m.messageInput, cmd = m.messageInput.Update(msg)
		m.form.SetField(contact.FieldMessage, m.messageInput.Value())
	case FocusSubmit:
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeySpace {
			return m, m.submit()
		}
	}
	return m, cmd
}

// submit is the form's submit event. Invalid fields move focus to the first
// one that needs attention; a submit while one is in flight is ignored.
func (m *Model) submit() tea.Cmd {
	attempt, err := m.form.Begin()
	if err != nil {
		var invalid *contact.ValidationError
		switch {
		case errors.As(err, &invalid):
			for _, f := range []struct {
				name  string
				focus Focus
			}{
				{contact.FieldName, FocusName},
				{contact.FieldEmail, FocusEmail},
				{contact.FieldMessage, FocusMessage},
			} {
				if invalid.Hint(f.name) != "" {
					return tea.Batch(m.navigate(reveal.Contact), m.setFocus(f.focus))
				}
			}
		case errors.Is(err, contact.ErrInFlight):
			m.logger.Debug("submit ignored while sending")
		default:
			m.logger.Debug("submit rejected", zap.Error(err))
		}
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.sendSubmission(attempt))
}

// nextFocus cycles through the contact controls.
func (m Model) nextFocus(dir int) Focus {
	const first, last = FocusName, FocusSubmit
	f := m.focus + Focus(dir)
	if f > last {
		return first
	}
	if f < first {
		return last
	}
	return f
}

// setFocus moves key focus to f.
func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	m.nameInput.Blur()
	m.emailInput.Blur()
	m.messageInput.Blur()

	switch f {
	case FocusName:
		return m.nameInput.Focus()
	case FocusEmail:
		return m.emailInput.Focus()
	case FocusMessage:
		return m.messageInput.Focus()
	}
	return nil
}

// resetInputs empties the controls after a successful send.
func (m *Model) resetInputs() {
	m.nameInput.Reset()
	m.emailInput.Reset()
	m.messageInput.Reset()
}

// navigate jumps to a section, animating when smooth scrolling is on.
func (m *Model) navigate(id string) tea.Cmd {
	m.active = id
	m.menuOpen = false
	return m.scrollTo(m.offsets[id])
}

func (m *Model) scrollTo(offset int) tea.Cmd {
	if offset > m.maxOffset() {
		offset = m.maxOffset()
	}
	if offset < 0 {
		offset = 0
	}
	if ui.CurrentScroll() != ui.ScrollSmooth {
		m.scroller.Stop()
		m.viewport.SetYOffset(offset)
		return nil
	}
	wasActive := m.scroller.Active()
	m.scroller.Start(m.viewport.YOffset, offset)
	if !m.scroller.Active() || wasActive {
		// Already there, or a running animation picks up the new target
		return nil
	}
	return scrollTick()
}

func (m Model) maxOffset() int {
	limit := m.viewport.TotalLineCount() - m.viewport.Height
	if limit < 0 {
		return 0
	}
	return limit
}

// resize lays the page out for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	layout := m.layout()

	m.viewport.Width = width
	m.viewport.Height = layout.BodyHeight()

	m.nameInput.Width = layout.InputWidth()
	m.emailInput.Width = layout.InputWidth()
	m.messageInput.SetWidth(layout.InputWidth())

	if aboutWidth := layout.InnerWidth(); aboutWidth != m.aboutWidth {
		m.aboutWidth = aboutWidth
		m.renderAboutMarkdown()
	}

	if !m.ready {
		m.ready = true
		m.logger.Debug("page ready", zap.Int("width", width), zap.Int("height", height))
	}
}

// renderAboutMarkdown renders the about markdown at the current width. Rendering
// failures fall back to the plain text.
func (m *Model) renderAboutMarkdown() {
	style := "light"
	if m.styles.Theme.IsDark {
		style = "dark"
	}
	width := m.aboutWidth
	if width < 20 {
		width = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.logger.Debug("markdown renderer unavailable", zap.Error(err))
		m.renderer = nil
		m.renderedAbout = m.cfg.Profile.About
		return
	}
	m.renderer = renderer
	out, err := renderer.Render(m.cfg.Profile.About)
	if err != nil {
		m.logger.Debug("about markdown failed to render", zap.Error(err))
		out = m.cfg.Profile.About
	}
	m.renderedAbout = out
}

// refresh re-renders the scrollable body and records where each section
// starts.
func (m *Model) refresh() {
	body, offsets := m.renderBody()
	m.offsets = offsets
	m.viewport.SetContent(body)
	if m.viewport.YOffset > m.maxOffset() {
		m.viewport.SetYOffset(m.maxOffset())
	}
}
