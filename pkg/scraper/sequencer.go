package scraper

import "time"

// DateTimeSequencer reconstructs absolute timestamps from a stream of
// times-of-day presented in traversal order. The source only prints HH:MM
// per stop, so a train crossing midnight would otherwise produce
// out-of-order timestamps. Whenever a candidate is not strictly after the
// previous timestamp the working day advances by one.
//
// A fresh sequencer must be created per stop list; sharing one across
// independent lists breaks the monotonicity guarantee.
type DateTimeSequencer struct {
	current time.Time
	loc     *time.Location
}

// NewDateTimeSequencer anchors the sequencer to the given calendar day.
// The internal state starts one second before midnight of the anchor day
// so that the first call never triggers a spurious rollover.
func NewDateTimeSequencer(year int, month time.Month, day int, loc *time.Location) *DateTimeSequencer {
	return &DateTimeSequencer{
		current: time.Date(year, month, day, 0, 0, 0, 0, loc).Add(-time.Second),
		loc:     loc,
	}
}

// Next returns the absolute timestamp for the given time-of-day, rolling
// the working day over at most once.
func (s *DateTimeSequencer) Next(hour, minute, second int) time.Time {
	candidate := time.Date(
		s.current.Year(), s.current.Month(), s.current.Day(),
		hour, minute, second, 0, s.loc,
	)
	if !candidate.After(s.current) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	s.current = candidate
	return candidate
}
