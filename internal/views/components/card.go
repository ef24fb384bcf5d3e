package components

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"scry"
	"scry/internal/images"
	"scry/internal/scryfall"
)

// ManaCost renders a mana cost string as inline symbol spans
func ManaCost(cost string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(w)
		writeParts(hw, ParseManaCost(cost))
		return hw.Err()
	})
}

// OracleText renders rules text as paragraphs with reminder text
// italicised and mana symbols rendered as spans
func OracleText(text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(w)
		hw.Raw(`<div class="oracle-text">`)
		for _, line := range FormatOracleLines(text) {
			hw.Raw(`<p>`)
			writeParts(hw, line.Parts)
			hw.Raw(`</p>`)
		}
		hw.Raw(`</div>`)
		return hw.Err()
	})
}

func writeParts(hw *Writer, parts []TextPart) {
	for _, part := range parts {
		switch {
		case part.IsMana:
			hw.Rawf(`<span class="mana-symbol">%s</span>`, Escape(part.ManaSymbol))
		case part.Italic:
			hw.Rawf(`<span class="reminder">%s</span>`, Escape(part.Text))
		default:
			hw.Text(part.Text)
		}
	}
}

// Legalities renders one status label per known format
func Legalities(card *scryfall.Card) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(w)
		hw.Raw(`<div class="legalities">`)
		for _, row := range card.LegalityRows() {
			status := string(row.Status)
			label := TitleCase(strings.ReplaceAll(status, "_", " "))
			hw.Rawf(`<div class="legality legality-%s"><span class="format">%s</span> %s</div>`,
				Escape(status), Escape(TitleCase(row.Format)), Escape(label))
		}
		hw.Raw(`</div>`)
		return hw.Err()
	})
}

// TitleCase capitalizes the first letter of each space-separated word
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// PriceList renders market prices, showing N/A for absent listings
func PriceList(p scryfall.Prices) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(w)
		hw.Raw(`<div class="prices">`)
		hw.Rawf(`<span>Regular: %s</span> `, Escape(scryfall.DisplayPrice("$", p.USD)))
		hw.Rawf(`<span>Foil: %s</span>`, Escape(scryfall.DisplayPrice("$", p.USDFoil)))
		hw.Raw(`</div>`)
		return hw.Err()
	})
}

// Artwork renders downloaded art inline as a data URI, or the embedded
// placeholder when no artwork is available
func Artwork(art *images.Artwork, alt string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(w)
		hw.Raw(`<div class="card-art">`)
		if art != nil {
			hw.Rawf(`<img src="%s" alt="%s">`, art.DataURI(), Escape(alt))
		} else {
			hw.Raw(string(scry.PlaceholderSVG))
		}
		hw.Raw(`</div>`)
		return hw.Err()
	})
}
