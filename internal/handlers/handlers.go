package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"

	"scry/internal/config"
	"scry/internal/images"
	"scry/internal/scryfall"
	"scry/internal/search"
)

// CardSearcher performs named card lookups. *scryfall.Client satisfies it;
// tests substitute their own.
type CardSearcher interface {
	CardNamed(ctx context.Context, name string, fuzzy bool) (*scryfall.Card, error)
}

// ArtworkFetcher downloads and decodes card artwork
type ArtworkFetcher interface {
	Fetch(ctx context.Context, url string) (*images.Artwork, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	store    *search.MemoryStore
	searcher CardSearcher
	fetcher  ArtworkFetcher
	eventBus *EventBus
	config   *config.AppConfig
}

// New creates a new handler
func New(store *search.MemoryStore, searcher CardSearcher, fetcher ArtworkFetcher, cfg *config.AppConfig) *Handler {
	return &Handler{
		store:    store,
		searcher: searcher,
		fetcher:  fetcher,
		eventBus: NewEventBus(),
		config:   cfg,
	}
}

// Store returns the handler's store (for testing)
func (h *Handler) Store() *search.MemoryStore {
	return h.store
}

// Event represents a search lifecycle event
type Event struct {
	Type      string
	SessionID string
}

// Event types published on the bus
const (
	EventSearchStarted   = "search_started"
	EventSearchCompleted = "search_completed"
	EventSearchFailed    = "search_failed"
)

// EventBus manages event subscriptions per session
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Event
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]chan Event),
	}
}

// Subscribe subscribes to events for a session
func (eb *EventBus) Subscribe(sessionID string) chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan Event, 10)
	eb.subscribers[sessionID] = append(eb.subscribers[sessionID], ch)
	return ch
}

// Unsubscribe removes a subscription
func (eb *EventBus) Unsubscribe(sessionID string, ch chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs := eb.subscribers[sessionID]
	for i, sub := range subs {
		if sub == ch {
			eb.subscribers[sessionID] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
}

// Publish publishes an event to all subscribers of its session
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, ch := range eb.subscribers[event.SessionID] {
		select {
		case ch <- event:
		default:
			// Channel full, skip
		}
	}
}

// getOrCreateSession gets or creates a session cookie for the user
func getOrCreateSession(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie("session")
	if err == nil {
		return cookie.Value
	}

	// Create new session
	b := make([]byte, 16)
	rand.Read(b)
	sessionID := hex.EncodeToString(b)

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7, // 7 days
	})

	return sessionID
}
