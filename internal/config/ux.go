package config

// UIConfig holds user interface configuration.
type UIConfig struct {
	// SmoothScroll animates navigation jumps instead of snapping.
	SmoothScroll bool `json:"smooth_scroll" yaml:"smooth_scroll"`

	// Theme is "light", "dark" or "auto" (detect from the terminal).
	Theme string `json:"theme" yaml:"theme"`

	// MouseWheel enables scrolling the page with the mouse wheel.
	MouseWheel bool `json:"mouse_wheel" yaml:"mouse_wheel"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		SmoothScroll: true,
		Theme:        "auto",
		MouseWheel:   true,
	}
}
