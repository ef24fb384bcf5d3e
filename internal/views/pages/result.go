package pages

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"scry/internal/images"
	"scry/internal/scryfall"
	"scry/internal/search"
	"scry/internal/views/components"
)

// ResultSection renders the #search-result container for the given phase.
// SSE updates patch this element as a search progresses.
func ResultSection(phase search.Phase, query string, result *search.Result) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<div id="search-result">`)
		if err := hw.Err(); err != nil {
			return err
		}

		var inner templ.Component
		switch {
		case phase == search.PhaseSearching:
			inner = Searching(query)
		case phase == search.PhaseResult && result != nil && result.Card != nil:
			inner = CardResult(result.Card, result.Artwork)
		case phase == search.PhaseResult && result != nil:
			inner = SearchError(result.ErrorMessage, result.NotFound)
		default:
			inner = EmptyState()
		}
		if err := inner.Render(ctx, w); err != nil {
			return err
		}

		hw.Raw(`</div>`)
		return hw.Err()
	})
}

// CardResult maps each card field to its display element
func CardResult(card *scryfall.Card, art *images.Artwork) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<div class="result-panel">`)
		if err := hw.Err(); err != nil {
			return err
		}

		if err := components.Artwork(art, card.Name).Render(ctx, w); err != nil {
			return err
		}

		hw.Raw(`<div class="card-details">`)
		hw.Rawf(`<h2 class="card-name"><span>%s</span><span class="mana-cost">`, components.Escape(card.Name))
		if err := hw.Err(); err != nil {
			return err
		}
		if err := components.ManaCost(card.ManaCost).Render(ctx, w); err != nil {
			return err
		}
		hw.Raw(`</span></h2>`)
		hw.Rawf(`<p class="type-line">%s</p>`, components.Escape(card.TypeLine))

		hw.Rawf(`<p class="fact-line">Mana Value: %s</p>`,
			components.Escape(strconv.FormatFloat(card.CMC, 'f', -1, 64)))
		hw.Rawf(`<p class="fact-line">Colors: %s</p>`,
			components.Escape(strings.Join(card.ColorNames(), ", ")))
		if card.Rarity != "" {
			hw.Rawf(`<p class="fact-line">Rarity: %s</p>`, components.Escape(components.TitleCase(card.Rarity)))
		}
		if err := hw.Err(); err != nil {
			return err
		}

		if err := components.OracleText(card.OracleText).Render(ctx, w); err != nil {
			return err
		}

		if card.FlavorText != "" {
			hw.Rawf(`<p class="flavor-text reminder">%s</p>`, components.Escape(card.FlavorText))
		}
		if card.HasPowerToughness() {
			hw.Rawf(`<p class="pt-line">%s/%s</p>`, components.Escape(card.Power), components.Escape(card.Toughness))
		}
		if card.Loyalty != "" {
			hw.Rawf(`<p class="pt-line">Loyalty: %s</p>`, components.Escape(card.Loyalty))
		}
		if err := hw.Err(); err != nil {
			return err
		}

		if err := components.Legalities(card).Render(ctx, w); err != nil {
			return err
		}
		if err := components.PriceList(card.Prices).Render(ctx, w); err != nil {
			return err
		}

		hw.Rawf(`<div class="status-bar">%s &middot; %s</div>`,
			components.Escape(card.SetName), components.Escape("Illustrated by "+card.Artist))
		hw.Raw(`</div></div>`)
		return hw.Err()
	})
}

// Searching renders the loading indicator shown while a lookup is in flight
func Searching(query string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Rawf(`<div class="searching">Searching for &ldquo;%s&rdquo;&hellip;</div>`, components.Escape(query))
		return hw.Err()
	})
}

// SearchError renders a failed search. Not-found reads as an empty result
// rather than a fault; anything else invites a retry.
func SearchError(message string, notFound bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		if notFound {
			hw.Rawf(`<div class="empty-state">No results. %s</div>`, components.Escape(message))
		} else {
			hw.Rawf(`<div class="search-error">%s Please try again.</div>`, components.Escape(message))
		}
		return hw.Err()
	})
}

// EmptyState renders the idle prompt shown before any search
func EmptyState() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<div class="empty-state">Enter a card name and press Search to see card details.</div>`)
		return hw.Err()
	})
}
