package images

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// testPNG encodes a small solid image for use as a fake card scan
func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 120, G: 40, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestFetch_ValidImage(t *testing.T) {
	data := testPNG(t, 488, 680)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer server.Close()

	fetcher := NewFetcher(2*time.Second, "ScryTest/0.1")
	art, err := fetcher.Fetch(context.Background(), server.URL+"/card.png")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if art.Width != 488 || art.Height != 680 {
		t.Errorf("expected 488x680, got %dx%d", art.Width, art.Height)
	}
	if art.MIME != "image/png" {
		t.Errorf("expected image/png, got %q", art.MIME)
	}
	if !bytes.Equal(art.Data, data) {
		t.Error("artwork bytes do not match the served image")
	}
}

func TestFetch_EmptyURLDispatchesNoRequest(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	fetcher := NewFetcher(time.Second, "")
	_, err := fetcher.Fetch(context.Background(), "")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for empty URL, got %v", err)
	}
	if n := requests.Load(); n != 0 {
		t.Errorf("expected no requests for empty URL, got %d", n)
	}
}

func TestFetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(time.Second, "")
	_, err := fetcher.Fetch(context.Background(), server.URL+"/missing.jpg")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for HTTP 404, got %v", err)
	}
}

func TestFetch_UndecodableBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not an image"))
	}))
	defer server.Close()

	fetcher := NewFetcher(time.Second, "")
	_, err := fetcher.Fetch(context.Background(), server.URL+"/bogus.jpg")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for undecodable bytes, got %v", err)
	}
}

func TestFetch_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	fetcher := NewFetcher(time.Second, "")
	_, err := fetcher.Fetch(context.Background(), server.URL+"/card.jpg")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for connection failure, got %v", err)
	}
}

func TestArtworkDataURI(t *testing.T) {
	data := testPNG(t, 4, 4)
	art := &Artwork{Data: data, MIME: "image/png", Width: 4, Height: 4}

	uri := art.DataURI()
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("expected data URI prefix, got %q", uri[:min(len(uri), 40)])
	}
}

func TestFetch_UserAgentHeader(t *testing.T) {
	data := testPNG(t, 4, 4)
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write(data)
	}))
	defer server.Close()

	fetcher := NewFetcher(time.Second, "ScryTest/0.1")
	if _, err := fetcher.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotAgent != "ScryTest/0.1" {
		t.Errorf("expected configured User-Agent, got %q", gotAgent)
	}
}
