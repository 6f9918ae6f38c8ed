// Package models defines the core data types for the habit tracker.
package models

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// dateLayout is the day-granular serialization format for Date.
const dateLayout = "2006-01-02"

// Date is a calendar date with day granularity and no time-of-day component.
// The zero value is not a valid date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current calendar date in local time.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return DateOf(t), nil
}

// asTime returns the date at midnight UTC, the anchor for day arithmetic.
func (d Date) asTime() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.asTime().Format(dateLayout)
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.asTime().Weekday()
}

// AddDays returns the date n calendar days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.asTime().AddDate(0, 0, n))
}

// DaysSince returns the number of calendar days from o to d.
// Negative when o is after d.
func (d Date) DaysSince(o Date) int {
	return int(d.asTime().Sub(o.asTime()) / (24 * time.Hour))
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool { return d.asTime().Before(o.asTime()) }

// After reports whether d is later than o.
func (d Date) After(o Date) bool { return d.asTime().After(o.asTime()) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// MarshalYAML serializes the date as a YYYY-MM-DD string.
func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML parses a YYYY-MM-DD scalar.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// clockRe accepts 24-hour HH:MM with an optional leading zero on the hour.
var clockRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ClockTime is a time of day with minute granularity, used for reminders.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses a 24-hour HH:MM value such as "09:00" or "21:30".
func ParseClockTime(s string) (ClockTime, error) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return ClockTime{}, fmt.Errorf("invalid time %q (want HH:MM, e.g. 09:00)", s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// String formats the time as zero-padded HH:MM.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MarshalYAML serializes the time as an HH:MM string.
func (c ClockTime) MarshalYAML() (any, error) {
	return c.String(), nil
}

// UnmarshalYAML parses an HH:MM scalar.
func (c *ClockTime) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Habit is a single tracked habit record.
// Completions is kept sorted ascending with no duplicate dates.
type Habit struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Reminder    *ClockTime `yaml:"reminder_time,omitempty"`
	CreatedAt   Date       `yaml:"created_at"`
	Completions []Date     `yaml:"completions"`
}

// CompletedOn reports whether the habit was completed on the given date.
func (h *Habit) CompletedOn(d Date) bool {
	for _, c := range h.Completions {
		if c == d {
			return true
		}
	}
	return false
}

// MarkDone inserts d into the completion set, keeping it sorted.
// Returns false if d was already present.
func (h *Habit) MarkDone(d Date) bool {
	i := 0
	for i < len(h.Completions) && h.Completions[i].Before(d) {
		i++
	}
	if i < len(h.Completions) && h.Completions[i] == d {
		return false
	}
	h.Completions = append(h.Completions, Date{})
	copy(h.Completions[i+1:], h.Completions[i:])
	h.Completions[i] = d
	return true
}

// MarkUndone removes d from the completion set.
// Returns false if d was not present.
func (h *Habit) MarkUndone(d Date) bool {
	for i, c := range h.Completions {
		if c == d {
			h.Completions = append(h.Completions[:i], h.Completions[i+1:]...)
			return true
		}
	}
	return false
}

// LastCompleted returns the most recent completion date, or nil if there is none.
func (h *Habit) LastCompleted() *Date {
	if len(h.Completions) == 0 {
		return nil
	}
	last := h.Completions[len(h.Completions)-1]
	return &last
}

// Streaks holds the derived streak view of a habit.
type Streaks struct {
	// Current is the run of consecutive completed days ending at today or
	// yesterday; 0 when the most recent completion is older than that.
	Current int
	// Longest is the longest run of consecutive completed days ever recorded.
	Longest int
}

// DayStatus is one day of a habit's history.
type DayStatus struct {
	Date Date
	Done bool
}

// HabitStatus annotates a habit with its derived state for listing.
type HabitStatus struct {
	Habit     *Habit
	DoneToday bool
	Streaks   Streaks
}

// Stats is the full derived statistics view of a habit.
type Stats struct {
	Name             string
	Description      string
	TotalCompletions int
	// SuccessRate is completions divided by eligible days, in [0,1].
	SuccessRate float64
	Rate7d      float64
	Rate30d     float64
	Streaks     Streaks
	LastDone    *Date
	Completions []Date
}
