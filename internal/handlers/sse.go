package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	datastar "github.com/starfederation/datastar-go/datastar"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"scry/internal/search"
	"scry/internal/views/pages"
)

// StreamSearch streams search state updates for the caller's session.
// The page patches #search-result as the session moves between phases.
func (h *Handler) StreamSearch(w http.ResponseWriter, r *http.Request) {
	sessionID := getOrCreateSession(w, r)
	sess := h.store.GetOrCreate(sessionID)

	sse := datastar.NewSSE(w, r)

	events := h.eventBus.Subscribe(sessionID)
	defer h.eventBus.Unsubscribe(sessionID, events)

	// Sync the page with the session's current state; a reconnecting tab
	// may have missed a completion
	h.renderState(sse, sess)

	// Heartbeat keeps browsers from closing an idle SSE connection
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Printf("search SSE closed for session %.8s", sessionID)
			return
		case <-heartbeat.C:
			if err := sse.Send("keepalive", []string{fmt.Sprintf(`{"time":"%s"}`, time.Now().Format(time.RFC3339))}); err != nil {
				log.Printf("keepalive failed for session %.8s: %v - closing connection", sessionID, err)
				return
			}
		case event := <-events:
			switch event.Type {
			case EventSearchStarted, EventSearchCompleted, EventSearchFailed:
				h.renderState(sse, sess)
			default:
				log.Printf("unknown event type %s on search SSE", event.Type)
			}
		}
	}
}

// renderState patches the result container and signals for the session's
// current phase
func (h *Handler) renderState(sse *datastar.ServerSentEventGenerator, sess *search.Session) {
	phase, query, result := sess.Snapshot()

	html := renderToString(pages.ResultSection(phase, query, result))
	sse.PatchElements(html, datastar.WithSelector("#search-result"))

	signals := map[string]any{
		"searching": phase == search.PhaseSearching,
		"qrcode":    "",
	}

	// A rendered card gets a QR code linking its Scryfall page
	if phase == search.PhaseResult && result != nil && result.Card != nil && result.Card.ScryfallURI != "" {
		if qr, err := generateQRCode(result.Card.ScryfallURI); err != nil {
			log.Printf("failed to generate QR code for %q: %v", result.Card.Name, err)
		} else {
			signals["qrcode"] = "data:image/png;base64," + qr
		}
	}

	if err := sse.MarshalAndPatchSignals(signals); err != nil {
		log.Printf("failed to patch search signals: %v", err)
	}
}

// renderToString renders a templ component to string
func renderToString(component templ.Component) string {
	buf := &bytes.Buffer{}
	component.Render(context.Background(), buf)
	return buf.String()
}

// generateQRCode generates a QR code for the given URL and returns it as
// base64 encoded PNG
func generateQRCode(url string) (string, error) {
	qrc, err := qrcode.NewWith(url,
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium),
		qrcode.WithEncodingMode(qrcode.EncModeByte),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	tmpFile := fmt.Sprintf("%s/scry_qr_%d.png", os.TempDir(), time.Now().UnixNano())

	w, err := standard.New(tmpFile,
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(6),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create writer: %w", err)
	}

	if err := qrc.Save(w); err != nil {
		return "", fmt.Errorf("failed to save QR code: %w", err)
	}

	data, err := os.ReadFile(tmpFile)
	if err != nil {
		return "", fmt.Errorf("failed to read QR code file: %w", err)
	}
	os.Remove(tmpFile)

	return base64.StdEncoding.EncodeToString(data), nil
}
