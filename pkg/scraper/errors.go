package scraper

import (
	"errors"
	"fmt"
)

// ErrTrainNotThisDay means the train exists at the source but has no run on
// the requested day. Distinct from an unknown train, which scrapes to nil.
var ErrTrainNotThisDay = errors.New("train is not running on the requested day")

// ParseError reports a required region that was present but malformed,
// which usually means the source site changed its markup.
type ParseError struct {
	What string
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: unexpected text %q", e.What, e.Text)
}

func newParseError(what, text string) error {
	return &ParseError{What: what, Text: text}
}
