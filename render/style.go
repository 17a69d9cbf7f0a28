package render

import "strings"

const (
	// ColorWhite is also the fallback for unknown colour names.
	ColorWhite = "ffffffff"
	// ColorClear is a fully transparent fill.
	ColorClear = "00ffffff"
)

var colorHex = map[string]string{
	"blue":   "ffff0000",
	"red":    "ff0000ff",
	"lime":   "ff00ff00",
	"yellow": "ff00ffff",
	"orange": "ff00a5ff",
	"cyan":   "ffffff00",
	"purple": "ff800080",
}

// ColorHex converts a colour name to a KML aabbggrr string.
func ColorHex(name string) string {
	if h, ok := colorHex[strings.ToLower(strings.TrimSpace(name))]; ok {
		return h
	}
	return ColorWhite
}
