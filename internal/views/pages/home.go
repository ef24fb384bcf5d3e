package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"scry/internal/search"
	"scry/internal/views/components"
	"scry/internal/views/layouts"
)

// Home renders the full search page for the session's current state
func Home(phase search.Phase, query string, fuzzy bool, result *search.Result) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<div class="container" data-on-load="@get('/sse/search')" data-signals-searching="false" data-signals-qrcode="''">`)
		hw.Raw(`<h1 class="app-title">Scry</h1>`)

		hw.Raw(`<form id="search-form" class="search-form" data-on-submit="@post('/search', {contentType: 'form'})">`)
		hw.Rawf(`<input type="text" name="query" value="%s" placeholder="Enter a Magic card name (e.g., 'Lightning Bolt')" autofocus>`,
			components.Escape(query))
		fuzzyChecked := ""
		if fuzzy {
			fuzzyChecked = " checked"
		}
		hw.Rawf(`<label class="fuzzy-toggle"><input type="checkbox" name="fuzzy" value="true"%s> Fuzzy</label>`, fuzzyChecked)
		hw.Raw(`<button type="submit" data-attr-disabled="$searching">Search</button>`)
		hw.Raw(`</form>`)
		if err := hw.Err(); err != nil {
			return err
		}

		if err := ResultSection(phase, query, result).Render(ctx, w); err != nil {
			return err
		}

		hw.Raw(`<div class="qr-panel" data-show="$qrcode != ''">`)
		hw.Raw(`<img data-attr-src="$qrcode" alt="QR code for this card on Scryfall">`)
		hw.Raw(`<div class="hint">Scan to open this card on Scryfall</div>`)
		hw.Raw(`</div>`)

		hw.Raw(`</div>`)
		return hw.Err()
	})

	return layouts.Base("Scry - MTG Card Search", body)
}
