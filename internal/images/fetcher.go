package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ErrUnavailable signals that artwork could not be retrieved or decoded.
// Callers treat this as non-fatal and render the placeholder instead.
var ErrUnavailable = errors.New("card artwork is unavailable")

// maxImageBytes caps how much of an image response is read (8MB)
const maxImageBytes = 8 << 20

// Artwork is a downloaded, validated card image
type Artwork struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// DataURI encodes the artwork as a base64 data URI for inline display
func (a *Artwork) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", a.MIME, base64.StdEncoding.EncodeToString(a.Data))
}

// Fetcher downloads card artwork from the image host
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
}

// NewFetcher creates an artwork fetcher
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// Fetch downloads the image at url and validates that it decodes.
// An empty url fails immediately without dispatching a request.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Artwork, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: no image URL", ErrUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: undecodable image: %v", ErrUnavailable, err)
	}

	return &Artwork{
		Data:   data,
		MIME:   http.DetectContentType(data),
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
