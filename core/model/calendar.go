package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

const minutesPerDay = 24 * 60

// Date is a calendar day in ISO form (YYYY-MM-DD). Two dates compare
// chronologically when compared as strings.
type Date string

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date(t.Format(dateLayout)), nil
}

// MustDate is like ParseDate but panics on malformed input. It is meant for
// literals in tests and examples.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight UTC of the date. The zero time is returned for a
// malformed date.
func (d Date) Time() time.Time {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date(d.Time().AddDate(0, 0, n).Format(dateLayout))
}

func (d Date) String() string { return string(d) }

// UnmarshalText rejects malformed dates when decoding JSON.
func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Clock is a time of day expressed in minutes after midnight.
type Clock int

// ParseClock parses "HH:MM" or "H:MM".
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock(h*60 + m), nil
}

// MustClock is like ParseClock but panics on malformed input.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// MarshalText renders the clock as HH:MM.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses HH:MM.
func (c *Clock) UnmarshalText(b []byte) error {
	v, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Span returns the minutes elapsed from start to end. An end earlier than the
// start wraps past midnight.
func Span(start, end Clock) int {
	if end < start {
		return int(end) + minutesPerDay - int(start)
	}
	return int(end - start)
}

// Window returns the absolute start and end of a time window beginning on
// date. Overnight windows end on the following day.
func Window(date Date, start, end Clock) (time.Time, time.Time) {
	day := date.Time()
	s := day.Add(time.Duration(start) * time.Minute)
	return s, s.Add(time.Duration(Span(start, end)) * time.Minute)
}

// Horizon is the inclusive range of dates covered by a planning run.
type Horizon struct {
	From Date `json:"start_date"`
	To   Date `json:"end_date"`
}

// Validate checks both bounds are well formed and ordered.
func (h Horizon) Validate() error {
	if _, err := ParseDate(string(h.From)); err != nil {
		return fmt.Errorf("horizon start: %w", err)
	}
	if _, err := ParseDate(string(h.To)); err != nil {
		return fmt.Errorf("horizon end: %w", err)
	}
	if h.To < h.From {
		return fmt.Errorf("%w: end %s before start %s", ErrInvalidHorizon, h.To, h.From)
	}
	return nil
}

// Contains reports whether d lies within the horizon.
func (h Horizon) Contains(d Date) bool {
	return d >= h.From && d <= h.To
}

// Days lists every date of the horizon in order.
func (h Horizon) Days() []Date {
	var days []Date
	for d := h.From; d <= h.To; d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}
