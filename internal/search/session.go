package search

import (
	"sync"

	"scry/internal/images"
	"scry/internal/scryfall"
)

// Phase is the explicit state of the search surface
type Phase string

const (
	PhaseIdle      Phase = "idle"      // no query in flight, nothing shown yet
	PhaseSearching Phase = "searching" // request dispatched, loading indicator shown
	PhaseResult    Phase = "result"    // a card or an error message is shown
)

// Result is the outcome of one completed search. Either Card is set
// (with optional Artwork) or ErrorMessage is set, never both.
type Result struct {
	Card         *scryfall.Card
	Artwork      *images.Artwork
	ErrorMessage string
	NotFound     bool
}

// Session holds the search state for one browser session.
//
// At most one result is current at any time; a completed search replaces
// it wholesale. Each Begin bumps a sequence number and completions carrying
// a stale sequence are dropped, so when rapid searches overlap the newest
// one wins regardless of response ordering.
type Session struct {
	mu     sync.Mutex
	phase  Phase
	seq    uint64
	query  string
	fuzzy  bool
	result *Result
}

// NewSession creates an idle session. Fuzzy matching is the default
// mode until a search chooses otherwise.
func NewSession() *Session {
	return &Session{phase: PhaseIdle, fuzzy: true}
}

// Begin transitions the session into Searching for the given query and
// returns the sequence number the eventual completion must present.
func (s *Session) Begin(query string, fuzzy bool) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.phase = PhaseSearching
	s.query = query
	s.fuzzy = fuzzy
	return s.seq
}

// Complete transitions Searching into Result, provided seq is still
// current. Returns false when the completion was superseded by a newer
// search and has been discarded.
func (s *Session) Complete(seq uint64, result Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}
	s.phase = PhaseResult
	s.result = &result
	return true
}

// Snapshot returns the session's current phase, query, and result
func (s *Session) Snapshot() (Phase, string, *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase, s.query, s.result
}

// Fuzzy reports the match mode of the most recent search
func (s *Session) Fuzzy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fuzzy
}
