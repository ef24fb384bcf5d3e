package scryfall

// Legality is a card's tournament status in a single format
type Legality string

const (
	Legal      Legality = "legal"
	NotLegal   Legality = "not_legal"
	Banned     Legality = "banned"
	Restricted Legality = "restricted"
)

// KnownFormats lists the formats shown in the UI, in display order.
// Formats returned by the API but not listed here are omitted.
var KnownFormats = []string{"standard", "pioneer", "modern", "legacy", "vintage", "commander"}

// ImageURIs holds the artwork variants for one card face
type ImageURIs struct {
	Small  string `json:"small"`
	Normal string `json:"normal"`
	Large  string `json:"large"`
}

// CardFace represents one face of a multi-faced card
type CardFace struct {
	Name      string     `json:"name"`
	ManaCost  string     `json:"mana_cost"`
	TypeLine  string     `json:"type_line"`
	ImageURIs *ImageURIs `json:"image_uris,omitempty"`
}

// Prices holds market prices keyed by currency; values may be empty
type Prices struct {
	USD     string `json:"usd"`
	USDFoil string `json:"usd_foil"`
	EUR     string `json:"eur"`
	Tix     string `json:"tix"`
}

// Card represents a single card returned by a named lookup.
// It is a read-only value: a new search replaces it wholesale.
type Card struct {
	Name        string              `json:"name"`
	ManaCost    string              `json:"mana_cost"`
	CMC         float64             `json:"cmc"`
	Colors      []string            `json:"colors"`
	TypeLine    string              `json:"type_line"`
	OracleText  string              `json:"oracle_text"`
	FlavorText  string              `json:"flavor_text"`
	Power       string              `json:"power"`
	Toughness   string              `json:"toughness"`
	Loyalty     string              `json:"loyalty"`
	Rarity      string              `json:"rarity"`
	SetName     string              `json:"set_name"`
	Artist      string              `json:"artist"`
	ScryfallURI string              `json:"scryfall_uri"`
	Prices      Prices              `json:"prices"`
	Legalities  map[string]Legality `json:"legalities"`
	ImageURIs   *ImageURIs          `json:"image_uris,omitempty"`
	CardFaces   []CardFace          `json:"card_faces,omitempty"`
}

// BestImageURL returns the preferred artwork URL for display, falling back
// to the front face for double-faced cards. Empty when the card has no art.
func (c *Card) BestImageURL() string {
	uris := c.ImageURIs
	if uris == nil && len(c.CardFaces) > 0 {
		uris = c.CardFaces[0].ImageURIs
	}
	if uris == nil {
		return ""
	}
	switch {
	case uris.Normal != "":
		return uris.Normal
	case uris.Large != "":
		return uris.Large
	case uris.Small != "":
		return uris.Small
	}
	return ""
}

// HasPowerToughness reports whether the card carries a P/T box
func (c *Card) HasPowerToughness() bool {
	return c.Power != "" && c.Toughness != ""
}

// ColorNames expands color codes into readable names.
// A card with no colors is Colorless.
func (c *Card) ColorNames() []string {
	names := map[string]string{
		"W": "White",
		"U": "Blue",
		"B": "Black",
		"R": "Red",
		"G": "Green",
	}
	if len(c.Colors) == 0 {
		return []string{"Colorless"}
	}
	out := make([]string, 0, len(c.Colors))
	for _, code := range c.Colors {
		if name, ok := names[code]; ok {
			out = append(out, name)
		} else {
			out = append(out, code)
		}
	}
	return out
}

// LegalityRow is one format's status, prepared for display
type LegalityRow struct {
	Format string
	Status Legality
}

// LegalityRows returns exactly one row per known format, in display order.
// Formats missing from the card's legalities map show as not_legal.
func (c *Card) LegalityRows() []LegalityRow {
	rows := make([]LegalityRow, 0, len(KnownFormats))
	for _, format := range KnownFormats {
		status, ok := c.Legalities[format]
		if !ok {
			status = NotLegal
		}
		rows = append(rows, LegalityRow{Format: format, Status: status})
	}
	return rows
}

// DisplayPrice formats a raw price string for the given currency symbol,
// or "N/A" when the market has no listing.
func DisplayPrice(symbol, raw string) string {
	if raw == "" {
		return "N/A"
	}
	return symbol + raw
}
