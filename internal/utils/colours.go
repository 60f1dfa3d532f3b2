package utils

// ColourScheme is the subset of the Catppuccin Mocha palette the screens use.
type ColourScheme struct {
	Mauve    string
	Red      string
	Yellow   string
	Green    string
	Blue     string
	Text     string
	Subtext0 string
	Overlay1 string
	Overlay0 string
	Surface0 string
	Base     string
}

var Colours = ColourScheme{
	Mauve:    "#cba6f7",
	Red:      "#f38ba8",
	Yellow:   "#f9e2af",
	Green:    "#a6e3a1",
	Blue:     "#89b4fa",
	Text:     "#cdd6f4",
	Subtext0: "#a6adc8",
	Overlay1: "#7f849c",
	Overlay0: "#6c7086",
	Surface0: "#313244",
	Base:     "#1e1e2e",
}
