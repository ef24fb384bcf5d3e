package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"scry/internal/views/components"
)

const datastarCDN = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"

// Base wraps page content in the HTML document skeleton
func Base(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.Rawf(`<title>%s</title>`, components.Escape(title))
		hw.Raw(`<link rel="stylesheet" href="/static/css/style.css">`)
		hw.Rawf(`<script type="module" src="%s"></script>`, datastarCDN)
		hw.Raw(`</head><body>`)
		if err := hw.Err(); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		hw.Raw(`</body></html>`)
		return hw.Err()
	})
}
