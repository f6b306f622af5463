// Package ui layout constants for consistent spacing and breakpoints
package ui

// Layout constants for the page
const (
	// Responsive breakpoints
	NarrowWidth    = 72 // nav collapses into a menu below this
	TwoColumnWidth = 80 // inner width that fits two columns

	// Content widths
	MaxContentWidth = 100
	MaxFormWidth    = 64
	MinInputWidth   = 10
	MinTextWidth    = 10

	// Chrome
	HeaderHeight    = 2 // nav line plus divider
	SectionPaddingH = 2
	CardBorderWidth = 1
	CardPaddingH    = 2
	ColumnGap       = 1
	InputChrome     = 4 // border and padding around a text control
)

// Layout provides computed dimensions for a terminal size
type Layout struct {
	Width  int
	Height int
}

// NewLayout creates a layout for the given terminal size
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// Narrow reports whether the navigation should collapse.
func (l Layout) Narrow() bool {
	return l.Width > 0 && l.Width < NarrowWidth
}

// ContentWidth is the width of a section, capped at MaxContentWidth.
func (l Layout) ContentWidth() int {
	w := l.Width
	if w <= 0 || w > MaxContentWidth {
		w = MaxContentWidth
	}
	return w
}

// InnerWidth is the section width minus its horizontal padding.
func (l Layout) InnerWidth() int {
	return l.ContentWidth() - SectionPaddingH*2
}

// Columns returns how many cards fit side by side.
func (l Layout) Columns() int {
	if l.InnerWidth() >= TwoColumnWidth {
		return 2
	}
	return 1
}

// CardWidth returns the outer width of one project card.
func (l Layout) CardWidth() int {
	return l.InnerWidth()/l.Columns() - ColumnGap
}

// FormWidth returns the width of the contact form column.
func (l Layout) FormWidth() int {
	w := l.InnerWidth()
	if w > MaxFormWidth {
		w = MaxFormWidth
	}
	return w
}

// InputWidth returns the editable width inside a form control.
func (l Layout) InputWidth() int {
	w := l.FormWidth() - InputChrome
	if w < MinInputWidth {
		w = MinInputWidth
	}
	return w
}

// BodyHeight is the height left for the scrolled page under the header.
func (l Layout) BodyHeight() int {
	h := l.Height - HeaderHeight
	if h < 1 {
		h = 1
	}
	return h
}

// CardTextWidth returns the text width inside a card of the given outer width.
func CardTextWidth(cardWidth int) int {
	w := cardWidth - CardBorderWidth*2 - CardPaddingH*2
	if w < MinTextWidth {
		w = MinTextWidth
	}
	return w
}
