package page

import (
	"fmt"
	"strings"

	"folio/cmd/folio/ui"
	"folio/internal/catalog"
	"folio/internal/contact"
	"folio/internal/reveal"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// View renders the header and the scrolled page body.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	body := m.viewport.View()
	if m.menuOpen && m.layout().Narrow() {
		body = overlay(body, m.renderMenu())
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body)
}

func (m Model) layout() ui.Layout { return ui.NewLayout(m.width, m.height) }

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	brand := m.styles.Header.Render(m.cfg.Profile.Brand)

	var nav string
	if m.layout().Narrow() {
		label := "[m] Menu"
		if m.menuOpen {
			label = "[m] Close"
		}
		nav = m.styles.NavLink.Render(label)
	} else {
		links := make([]string, 0, len(navItems))
		for _, item := range navItems {
			text := fmt.Sprintf("[%s] %s", item.key, item.label)
			if item.id == m.active {
				links = append(links, m.styles.NavOn.Render(text))
			} else {
				links = append(links, m.styles.NavLink.Render(text))
			}
		}
		nav = strings.Join(links, "")
	}

	gap := m.width - lipgloss.Width(brand) - lipgloss.Width(nav)
	if gap < 1 {
		gap = 1
	}
	line := brand + strings.Repeat(" ", gap) + nav
	return lipgloss.JoinVertical(lipgloss.Left, line, m.styles.RenderDivider(m.width))
}

// renderMenu is the collapsed navigation shown on narrow terminals.
func (m Model) renderMenu() string {
	lines := make([]string, 0, len(navItems))
	for _, item := range navItems {
		text := fmt.Sprintf("[%s] %s", item.key, item.label)
		if item.id == m.active {
			lines = append(lines, m.styles.NavOn.Render(text))
		} else {
			lines = append(lines, m.styles.NavLink.Render(text))
		}
	}
	return m.styles.Card.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

// overlay draws top over the first lines of base.
func overlay(base, top string) string {
	baseLines := strings.Split(base, "\n")
	for i, line := range strings.Split(top, "\n") {
		if i >= len(baseLines) {
			baseLines = append(baseLines, line)
			continue
		}
		baseLines[i] = line
	}
	return strings.Join(baseLines, "\n")
}

// =============================================================================
// BODY
// =============================================================================

// renderBody renders every section in page order and returns the line each
// section starts on.
func (m Model) renderBody() (string, map[string]int) {
	sections := []struct {
		id     string
		render func() string
	}{
		{reveal.Hero, m.renderHero},
		{reveal.About, m.renderAbout},
		{reveal.Projects, m.renderProjects},
		{reveal.Contact, m.renderContact},
	}

	offsets := make(map[string]int, len(sections))
	parts := make([]string, 0, len(sections)+1)
	line := 0
	for _, s := range sections {
		offsets[s.id] = line
		block := m.frame(s.id, s.render())
		parts = append(parts, block)
		line += lipgloss.Height(block)
	}
	parts = append(parts, m.renderFooter())

	body := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Left, parts...))
	return body, offsets
}

// frame draws a section faded until it has been revealed. Hidden sections
// keep their full layout.
func (m Model) frame(id, content string) string {
	w := m.layout().ContentWidth()
	if !m.scheduler.Visible(id) {
		return m.styles.Hidden.Width(w).Render(ansi.Strip(content))
	}
	return m.styles.Section.Width(w).Render(content)
}

func (m Model) renderHero() string {
	p := m.cfg.Profile
	w := m.layout().InnerWidth()

	image := m.profileImage
	if image == "" {
		image = p.Image
	}
	if image == "" {
		image = catalog.ProfilePlaceholderURL
	}

	greeting := "Hi, I'm " + m.styles.Name.Render(p.Name)
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(greeting),
		"",
		p.Headline,
		"",
		m.styles.Muted.UnsetForeground().Italic(true).Render("[photo] " + image),
		"",
		m.styles.Bold.UnsetForeground().Render("[p] View My Work   [c] Get In Touch"),
	}
	return m.styles.Hero.Width(w).Render(strings.Join(lines, "\n"))
}

func (m Model) renderAbout() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("About Me"))
	b.WriteString("\n")
	about := m.renderedAbout
	if about == "" {
		about = m.cfg.Profile.About
	}
	b.WriteString(strings.Trim(about, "\n"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Subtitle.Render("Skills"))
	b.WriteString("\n")
	b.WriteString(m.styles.Badges(m.styles.Badge, m.cfg.Profile.Skills, m.layout().InnerWidth()))
	return b.String()
}

func (m Model) renderProjects() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("My Projects"))
	b.WriteString("\n")

	projects := m.catalog.Projects()
	if len(projects) == 0 {
		b.WriteString(m.styles.Muted.Render("No projects yet."))
		return b.String()
	}

	layout := m.layout()
	cols := layout.Columns()
	cardWidth := layout.CardWidth()

	var rows []string
	for i := 0; i < len(projects); i += cols {
		var row []string
		for j := i; j < i+cols && j < len(projects); j++ {
			row = append(row, m.renderCard(projects[j], cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, spaced(row)...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return b.String()
}

func spaced(cards []string) []string {
	out := make([]string, 0, len(cards)*2)
	for i, c := range cards {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, c)
	}
	return out
}

// renderCard draws one project card, memoized on everything it shows.
func (m Model) renderCard(p catalog.Project, width int) string {
	image := m.imageFor(p)
	key := ui.ComputeKey(width, m.styles.Theme.IsDark, p.Title, p.Description, p.Tags, image, p.GitHubLink, p.LiveLink)
	return m.cards.GetOrCompute(key, func() string {
		return m.drawCard(p, image, width)
	})
}

func (m Model) drawCard(p catalog.Project, image string, width int) string {
	textWidth := ui.CardTextWidth(width)

	lines := []string{
		m.styles.Subtitle.Render(p.Title),
		m.styles.Muted.Italic(true).Render("[image] " + image),
		"",
		m.styles.Body.Width(textWidth).Render(p.Description),
	}
	if len(p.Tags) > 0 {
		lines = append(lines, "", m.styles.Badges(m.styles.Tag, p.Tags, textWidth))
	}

	var links []string
	if p.HasGitHub() {
		links = append(links, m.styles.Label.Render("GitHub ")+m.styles.Link.Render(p.GitHubLink))
	}
	if p.HasLive() {
		links = append(links, m.styles.Label.Render("Live Demo ")+m.styles.Link.Render(p.LiveLink))
	}
	if len(links) > 0 {
		lines = append(lines, "")
		lines = append(lines, links...)
	}

	// Width excludes the border
	return m.styles.Card.Width(width - ui.CardBorderWidth*2).Render(strings.Join(lines, "\n"))
}

// imageFor returns the image location to show for a project. Until images are
// resolved the raw reference is shown; a missing reference shows the
// placeholder straight away.
func (m Model) imageFor(p catalog.Project) string {
	if r, ok := m.images[p.ID]; ok && r.Ref == p.Image {
		return r.URL
	}
	if p.Image == "" {
		return p.Placeholder()
	}
	return p.Image
}

func (m Model) renderContact() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Get In Touch"))
	b.WriteString("\n")
	b.WriteString(m.styles.Body.Render("Have a question or want to work together? Feel free to reach out!"))
	b.WriteString("\n\n")

	form := m.renderForm()
	find := m.renderFindMe()
	if m.layout().Columns() > 1 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, form, "    ", find))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, form, "", find))
	}
	return b.String()
}

func (m Model) renderForm() string {
	invalid := m.form.Invalid()
	w := m.layout().FormWidth()

	field := func(label string, focus Focus, name string, view string) string {
		box := m.styles.Input
		if m.focus == focus {
			box = m.styles.InputFocused
		}
		parts := []string{m.styles.Label.Render(label), box.Width(w - 2).Render(view)}
		if hint := invalid.Hint(name); hint != "" {
			parts = append(parts, m.styles.Hint.Render(hint))
		}
		return strings.Join(parts, "\n")
	}

	rows := []string{
		field("Name", FocusName, contact.FieldName, m.nameInput.View()),
		field("Email", FocusEmail, contact.FieldEmail, m.emailInput.View()),
		field("Message", FocusMessage, contact.FieldMessage, m.messageInput.View()),
		"",
		m.renderSubmit(),
	}

	switch m.form.State() {
	case contact.Success:
		rows = append(rows, "", m.styles.Success.Render(m.form.Message()))
	case contact.Error:
		rows = append(rows, "", m.styles.Error.Render(m.form.Message()))
	}
	return lipgloss.NewStyle().Width(w).Render(strings.Join(rows, "\n"))
}

func (m Model) renderSubmit() string {
	if m.form.SubmitDisabled() {
		return m.styles.ButtonDisabled.Render(m.spinner.View() + " Sending...")
	}
	if m.focus == FocusSubmit {
		return m.styles.ButtonFocused.Render("Send Message")
	}
	return m.styles.Button.Render("Send Message")
}

func (m Model) renderFindMe() string {
	p := m.cfg.Profile
	lines := []string{m.styles.Subtitle.Render("Find Me On")}
	if p.Email != "" {
		lines = append(lines, m.styles.Label.Render("Email ")+m.styles.Link.Render(p.Email))
	}
	for _, s := range p.Socials {
		lines = append(lines, m.styles.Label.Render(s.Label+" ")+m.styles.Link.Render(s.URL))
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// FOOTER
// =============================================================================

func (m Model) renderFooter() string {
	p := m.cfg.Profile
	copyright := fmt.Sprintf("© %d %s. All rights reserved.", m.now().Year(), p.Name)

	socials := make([]string, 0, len(p.Socials))
	for _, s := range p.Socials {
		socials = append(socials, s.Label)
	}

	help := make([]string, 0, len(keys.helpLine()))
	for _, k := range keys.helpLine() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}

	lines := []string{copyright}
	if len(socials) > 0 {
		lines = append(lines, strings.Join(socials, " · "))
	}
	lines = append(lines, m.styles.Muted.Render(strings.Join(help, " • ")))
	return m.styles.Footer.Width(m.layout().ContentWidth()).Render(strings.Join(lines, "\n"))
}
