package page

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the page-level bindings. Bindings that are plain letters only
// apply while no text control has focus.
type keyMap struct {
	Quit     key.Binding
	Hero     key.Binding
	About    key.Binding
	Projects key.Binding
	Contact  key.Binding
	Menu     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Submit   key.Binding
	Blur     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	Hero:     key.NewBinding(key.WithKeys("1", "h"), key.WithHelp("h", "home")),
	About:    key.NewBinding(key.WithKeys("2", "a"), key.WithHelp("a", "about")),
	Projects: key.NewBinding(key.WithKeys("3", "p"), key.WithHelp("p", "projects")),
	Contact:  key.NewBinding(key.WithKeys("4", "c"), key.WithHelp("c", "contact")),
	Menu:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
	Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
	Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send message")),
	Blur:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave form")),
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "b")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "f")),
	Top:      key.NewBinding(key.WithKeys("home", "g")),
	Bottom:   key.NewBinding(key.WithKeys("end", "G")),
}

// helpLine is the short key summary shown in the footer.
func (k keyMap) helpLine() []key.Binding {
	return []key.Binding{k.Hero, k.About, k.Projects, k.Contact, k.Next, k.Submit, k.Quit}
}
