package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	datastar "github.com/starfederation/datastar-go/datastar"

	"scry/internal/scryfall"
	"scry/internal/search"
	"scry/internal/views/pages"
)

// Home renders the search page for the session's current state
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	sessionID := getOrCreateSession(w, r)
	sess := h.store.GetOrCreate(sessionID)

	phase, query, result := sess.Snapshot()
	component := pages.Home(phase, query, sess.Fuzzy(), result)
	if err := component.Render(r.Context(), w); err != nil {
		log.Printf("error rendering home page: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// Search dispatches a card lookup for the submitted query.
// The response patches the page into the Searching state immediately;
// the result arrives over the session's SSE stream.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	sessionID := getOrCreateSession(w, r)
	sess := h.store.GetOrCreate(sessionID)

	query := strings.TrimSpace(r.FormValue("query"))
	fuzzy := r.FormValue("fuzzy") != "" // checkbox absent means exact match

	sse := datastar.NewSSE(w, r)

	// Invalid input is handled locally; no lookup is dispatched
	if query == "" {
		result := &search.Result{ErrorMessage: "Please enter a card name."}
		html := renderToString(pages.ResultSection(search.PhaseResult, query, result))
		sse.PatchElements(html, datastar.WithSelector("#search-result"))
		sse.MarshalAndPatchSignals(map[string]any{"searching": false})
		return
	}

	seq := sess.Begin(query, fuzzy)
	h.eventBus.Publish(Event{Type: EventSearchStarted, SessionID: sessionID})

	go h.performSearch(sessionID, sess, seq, query, fuzzy)

	// Patch the submitting page directly; other tabs hear it via the bus
	html := renderToString(pages.ResultSection(search.PhaseSearching, query, nil))
	sse.PatchElements(html, datastar.WithSelector("#search-result"))
	sse.MarshalAndPatchSignals(map[string]any{"searching": true, "qrcode": ""})
}

// performSearch runs the lookup and artwork fetch off the request
// goroutine and completes the session when done. A completion whose
// sequence was superseded by a newer search is discarded.
func (h *Handler) performSearch(sessionID string, sess *search.Session, seq uint64, query string, fuzzy bool) {
	ctx, cancel := context.WithTimeout(context.Background(), h.config.Scryfall.Timeout+h.config.Images.Timeout)
	defer cancel()

	card, err := h.searcher.CardNamed(ctx, query, fuzzy)
	if err != nil {
		result := search.Result{
			ErrorMessage: userMessage(err),
			NotFound:     errors.Is(err, scryfall.ErrNotFound),
		}
		if sess.Complete(seq, result) {
			h.eventBus.Publish(Event{Type: EventSearchFailed, SessionID: sessionID})
		} else {
			log.Printf("discarding superseded search failure for %q", query)
		}
		return
	}

	// Artwork failures are non-fatal; the renderer shows the placeholder
	art, err := h.fetcher.Fetch(ctx, card.BestImageURL())
	if err != nil {
		log.Printf("artwork unavailable for %q: %v", card.Name, err)
		art = nil
	}

	if sess.Complete(seq, search.Result{Card: card, Artwork: art}) {
		h.eventBus.Publish(Event{Type: EventSearchCompleted, SessionID: sessionID})
	} else {
		log.Printf("discarding superseded search result for %q", query)
	}
}

// userMessage converts a lookup error into the message shown on screen
func userMessage(err error) string {
	switch {
	case errors.Is(err, scryfall.ErrEmptyQuery):
		return "Please enter a card name."
	case errors.Is(err, scryfall.ErrNotFound):
		msg := err.Error()
		if detail, ok := strings.CutPrefix(msg, scryfall.ErrNotFound.Error()+": "); ok {
			return detail
		}
		return "No card matched that name."
	default:
		return "Card search is temporarily unavailable. Check your connection."
	}
}

// Healthz handlers

// HealthLive reports process liveness
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// HealthReady reports readiness to serve searches
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.store == nil || h.searcher == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
