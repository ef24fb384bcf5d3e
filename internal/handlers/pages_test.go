package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"scry/internal/images"
	"scry/internal/scryfall"
	"scry/internal/search"
)

func testCard() *scryfall.Card {
	return &scryfall.Card{
		Name:       "Lightning Bolt",
		ManaCost:   "{R}",
		TypeLine:   "Instant",
		OracleText: "Lightning Bolt deals 3 damage to any target.",
		ImageURIs:  &scryfall.ImageURIs{Normal: "https://cards.example/bolt.jpg"},
	}
}

func postSearch(h *Handler, form string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/search", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "session", Value: "testsess"})
	w := httptest.NewRecorder()
	h.Search(w, req)
	return w
}

// waitForResult polls until the session leaves the Searching phase
func waitForResult(t *testing.T, sess *search.Session) *search.Result {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		phase, _, result := sess.Snapshot()
		if phase == search.PhaseResult {
			return result
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for search to complete")
	return nil
}

func TestHome(t *testing.T) {
	h := newTestHandler(&mockSearcher{}, &mockFetcher{})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	h.Home(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `id="search-form"`) {
		t.Error("expected search form in home page")
	}
	if !strings.Contains(body, "Enter a card name") {
		t.Error("expected idle prompt on first load")
	}

	// A new visitor gets a session cookie
	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected a session cookie to be set")
	}
}

func TestSearch_EmptyQueryDispatchesNothing(t *testing.T) {
	for _, form := range []string{"query=", "query=%20%20%20"} {
		searcher := &mockSearcher{}
		h := newTestHandler(searcher, &mockFetcher{})

		w := postSearch(h, form)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Please enter a card name") {
			t.Errorf("expected inline validation message for form %q", form)
		}
		if got := searcher.callCount(); got != 0 {
			t.Errorf("expected no lookup for form %q, searcher called %d times", form, got)
		}

		// Session stays untouched
		if sess := h.Store().Get("testsess"); sess != nil {
			if phase, _, _ := sess.Snapshot(); phase != search.PhaseIdle {
				t.Errorf("expected session to stay idle, got %s", phase)
			}
		}
	}
}

func TestSearch_Success(t *testing.T) {
	searcher := &mockSearcher{card: testCard()}
	fetcher := &mockFetcher{art: &images.Artwork{Data: []byte{1}, MIME: "image/jpeg"}}
	h := newTestHandler(searcher, fetcher)

	events := h.eventBus.Subscribe("testsess")
	defer h.eventBus.Unsubscribe("testsess", events)

	w := postSearch(h, "query=Lightning+Bolt&fuzzy=true")

	// The immediate response shows the loading state
	if !strings.Contains(w.Body.String(), "Searching for") {
		t.Error("expected searching indicator in immediate response")
	}

	sess := h.Store().Get("testsess")
	if sess == nil {
		t.Fatal("expected session to exist after search")
	}
	result := waitForResult(t, sess)

	if result.Card == nil || result.Card.Name != "Lightning Bolt" {
		t.Fatalf("expected card result, got %+v", result)
	}
	if result.Artwork == nil {
		t.Error("expected artwork alongside the card")
	}
	if fetcher.callCount() != 1 {
		t.Errorf("expected one artwork fetch, got %d", fetcher.callCount())
	}

	// started then completed
	first := <-events
	if first.Type != EventSearchStarted {
		t.Errorf("expected %s first, got %s", EventSearchStarted, first.Type)
	}
	select {
	case second := <-events:
		if second.Type != EventSearchCompleted {
			t.Errorf("expected %s, got %s", EventSearchCompleted, second.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for completion event")
	}
}

func TestSearch_ExactModeWithoutCheckbox(t *testing.T) {
	searcher := &mockSearcher{card: testCard()}
	h := newTestHandler(searcher, &mockFetcher{})

	postSearch(h, "query=Lightning+Bolt")

	sess := h.Store().Get("testsess")
	waitForResult(t, sess)
	if sess.Fuzzy() {
		t.Error("expected exact match when the fuzzy checkbox is absent")
	}
}

func TestPerformSearch_NotFound(t *testing.T) {
	searcher := &mockSearcher{err: fmt.Errorf("%w: No cards found matching \"zzzz\"", scryfall.ErrNotFound)}
	fetcher := &mockFetcher{}
	h := newTestHandler(searcher, fetcher)

	sess := h.Store().GetOrCreate("s1")
	seq := sess.Begin("zzzz", true)
	h.performSearch("s1", sess, seq, "zzzz", true)

	phase, _, result := sess.Snapshot()
	if phase != search.PhaseResult {
		t.Fatalf("expected result phase, got %s", phase)
	}
	if !result.NotFound {
		t.Error("expected NotFound flag")
	}
	if !strings.Contains(result.ErrorMessage, "No cards found") {
		t.Errorf("expected API detail surfaced, got %q", result.ErrorMessage)
	}
	if fetcher.callCount() != 0 {
		t.Error("no artwork fetch expected after a failed lookup")
	}
}

func TestPerformSearch_TransientFailure(t *testing.T) {
	searcher := &mockSearcher{err: fmt.Errorf("%w: status 503", scryfall.ErrUnavailable)}
	h := newTestHandler(searcher, &mockFetcher{})

	sess := h.Store().GetOrCreate("s1")
	seq := sess.Begin("Bolt", true)
	h.performSearch("s1", sess, seq, "Bolt", true)

	_, _, result := sess.Snapshot()
	if result.NotFound {
		t.Error("transient failure must not read as not-found")
	}
	if !strings.Contains(result.ErrorMessage, "temporarily unavailable") {
		t.Errorf("expected retry-inviting message, got %q", result.ErrorMessage)
	}
}

func TestPerformSearch_ArtworkFailureIsNonFatal(t *testing.T) {
	searcher := &mockSearcher{card: testCard()}
	fetcher := &mockFetcher{err: errors.New("connection reset")}
	h := newTestHandler(searcher, fetcher)

	sess := h.Store().GetOrCreate("s1")
	seq := sess.Begin("Lightning Bolt", true)
	h.performSearch("s1", sess, seq, "Lightning Bolt", true)

	_, _, result := sess.Snapshot()
	if result.Card == nil {
		t.Fatal("expected card result despite artwork failure")
	}
	if result.Artwork != nil {
		t.Error("expected nil artwork after fetch failure")
	}
	if result.ErrorMessage != "" {
		t.Errorf("artwork failure must not produce an error message, got %q", result.ErrorMessage)
	}
}

func TestPerformSearch_SupersededResultIsDropped(t *testing.T) {
	first := &mockSearcher{card: testCard()}
	h := newTestHandler(first, &mockFetcher{})

	sess := h.Store().GetOrCreate("s1")
	oldSeq := sess.Begin("Lightning Bolt", true)

	// A newer search begins before the first completes
	newSeq := sess.Begin("Counterspell", true)

	h.performSearch("s1", sess, oldSeq, "Lightning Bolt", true)

	phase, query, result := sess.Snapshot()
	if phase != search.PhaseSearching {
		t.Fatalf("stale completion must not change phase, got %s", phase)
	}
	if query != "Counterspell" {
		t.Errorf("expected newest query to survive, got %q", query)
	}
	if result != nil {
		t.Error("expected no result from superseded search")
	}

	// The newest search still completes normally
	counterspell := testCard()
	counterspell.Name = "Counterspell"
	h.searcher = &mockSearcher{card: counterspell}
	h.performSearch("s1", sess, newSeq, "Counterspell", true)

	_, _, result = sess.Snapshot()
	if result == nil || result.Card.Name != "Counterspell" {
		t.Fatalf("expected newest result to win, got %+v", result)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"empty query", scryfall.ErrEmptyQuery, "Please enter a card name."},
		{
			"not found with detail",
			fmt.Errorf("%w: No cards found matching \"xyz\"", scryfall.ErrNotFound),
			`No cards found matching "xyz"`,
		},
		{"bare not found", scryfall.ErrNotFound, "No card matched that name."},
		{
			"unavailable",
			fmt.Errorf("%w: status 500", scryfall.ErrUnavailable),
			"Card search is temporarily unavailable. Check your connection.",
		},
		{
			"transport error",
			errors.New("dial tcp: connection refused"),
			"Card search is temporarily unavailable. Check your connection.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userMessage(tt.err); got != tt.want {
				t.Errorf("userMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestHandler(&mockSearcher{}, &mockFetcher{})

	w := httptest.NewRecorder()
	h.HealthLive(w, httptest.NewRequest("GET", "/health/live", nil))
	if w.Code != http.StatusOK {
		t.Errorf("liveness: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.HealthReady(w, httptest.NewRequest("GET", "/health/ready", nil))
	if w.Code != http.StatusOK {
		t.Errorf("readiness: expected 200, got %d", w.Code)
	}

	broken := &Handler{config: h.config}
	w = httptest.NewRecorder()
	broken.HealthReady(w, httptest.NewRequest("GET", "/health/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("readiness without deps: expected 503, got %d", w.Code)
	}
}
