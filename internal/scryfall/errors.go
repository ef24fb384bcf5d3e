package scryfall

import "errors"

var (
	ErrEmptyQuery  = errors.New("search query is empty")
	ErrNotFound    = errors.New("no card matched the search")
	ErrUnavailable = errors.New("card search is temporarily unavailable")
)
