package scry

import (
	"embed"
	_ "embed"
)

// Embed the placeholder artwork shown when a card has no image
//
//go:embed static/images/placeholder.svg
var PlaceholderSVG []byte

// Embed all static assets
//
//go:embed static
var StaticFS embed.FS
