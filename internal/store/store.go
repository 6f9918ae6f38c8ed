// Package store implements the habit store: a whole-file YAML record set
// loaded into memory at process start and written back after each mutation.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ionisingTuna/cli-habit-tracker/internal/config"
	"github.com/ionisingTuna/cli-habit-tracker/internal/models"
	"github.com/ionisingTuna/cli-habit-tracker/internal/streak"
)

// Error kinds surfaced at the CLI boundary.
var (
	ErrDuplicateHabit = errors.New("habit already exists")
	ErrNotFound       = errors.New("habit not found")
	ErrInvalidTime    = errors.New("invalid time format")
	ErrFutureDate     = errors.New("date is in the future")
	ErrCorruptStore   = errors.New("habit store is corrupt")
)

// DefaultHistoryDays is the history window used when the caller passes no count.
const DefaultHistoryDays = 30

// storeFile is the on-disk shape of the whole store.
type storeFile struct {
	Habits []*models.Habit `yaml:"habits"`
}

// Store owns the full set of habit records for one data file.
// Records keep their insertion order across load and persist.
type Store struct {
	path   string
	habits []*models.Habit
	index  map[string]*models.Habit
}

// Open loads the store from path, validating it against the current date.
// If path is empty it is resolved via config.GetDataFile. A missing or empty
// file yields an empty store; a malformed one fails with ErrCorruptStore.
func Open(path string) (*Store, error) {
	return OpenAt(path, models.Today())
}

// OpenAt is Open with an explicit reference date for the no-future check on
// completion dates.
func OpenAt(path string, today models.Date) (*Store, error) {
	if path == "" {
		path = config.GetDataFile()
	}
	s := &Store{path: path, index: make(map[string]*models.Habit)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store.Open: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return s, nil
	}

	var file storeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, path, err)
	}
	for _, h := range file.Habits {
		if h == nil || h.Name == "" {
			return nil, fmt.Errorf("%w: %s: habit record without a name", ErrCorruptStore, path)
		}
		if h.CreatedAt.IsZero() {
			return nil, fmt.Errorf("%w: %s: habit %q has no created_at date", ErrCorruptStore, path, h.Name)
		}
		if _, ok := s.index[h.Name]; ok {
			return nil, fmt.Errorf("%w: %s: duplicate habit %q", ErrCorruptStore, path, h.Name)
		}
		normalizeCompletions(h)
		if last := h.LastCompleted(); last != nil && last.After(today) {
			return nil, fmt.Errorf("%w: %s: habit %q has a completion in the future (%s)", ErrCorruptStore, path, h.Name, *last)
		}
		s.habits = append(s.habits, h)
		s.index[h.Name] = h
	}
	return s, nil
}

// normalizeCompletions sorts the completion list and drops duplicate dates,
// tolerating hand-edited files.
func normalizeCompletions(h *models.Habit) {
	sort.Slice(h.Completions, func(i, j int) bool {
		return h.Completions[i].Before(h.Completions[j])
	})
	out := h.Completions[:0]
	for i, d := range h.Completions {
		if i == 0 || h.Completions[i-1] != d {
			out = append(out, d)
		}
	}
	h.Completions = out
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Persist writes the whole store back to the backing file.
//
// Two processes racing a load-mutate-persist cycle on the same file are
// last-write-wins; the loser's update is lost. Accepted limitation for a
// single-user tool.
func (s *Store) Persist() error {
	out, err := yaml.Marshal(storeFile{Habits: s.habits})
	if err != nil {
		return fmt.Errorf("store.Persist: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("store.Persist: %w", err)
	}
	if err := os.WriteFile(s.path, out, 0o600); err != nil {
		return fmt.Errorf("store.Persist: %w", err)
	}
	return nil
}

// get looks up a habit by exact, case-sensitive name.
func (s *Store) get(name string) (*models.Habit, error) {
	h, ok := s.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return h, nil
}

// Add creates a new habit with an empty completion set and no reminder,
// then persists. Fails with ErrDuplicateHabit if the name is taken.
func (s *Store) Add(name, description string, today models.Date) (*models.Habit, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("habit name must not be empty")
	}
	if _, ok := s.index[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateHabit, name)
	}
	h := &models.Habit{
		Name:        name,
		Description: description,
		CreatedAt:   today,
		Completions: make([]models.Date, 0),
	}
	s.habits = append(s.habits, h)
	s.index[name] = h
	if err := s.Persist(); err != nil {
		return nil, err
	}
	return h, nil
}

// Remove deletes a habit and its entire completion history, then persists.
func (s *Store) Remove(name string) error {
	if _, err := s.get(name); err != nil {
		return err
	}
	for i, h := range s.habits {
		if h.Name == name {
			s.habits = append(s.habits[:i], s.habits[i+1:]...)
			break
		}
	}
	delete(s.index, name)
	return s.Persist()
}

// MarkDone records a completion for the given date. Marking an already
// completed day is a no-op. Dates after today are rejected.
func (s *Store) MarkDone(name string, date, today models.Date) error {
	h, err := s.get(name)
	if err != nil {
		return err
	}
	if date.After(today) {
		return fmt.Errorf("%w: %s", ErrFutureDate, date)
	}
	if !h.MarkDone(date) {
		return nil
	}
	return s.Persist()
}

// MarkUndone removes a completion for the given date; a no-op if the date
// was not marked.
func (s *Store) MarkUndone(name string, date models.Date) error {
	h, err := s.get(name)
	if err != nil {
		return err
	}
	if !h.MarkUndone(date) {
		return nil
	}
	return s.Persist()
}

// SetReminder parses raw as HH:MM and overwrites the habit's reminder time.
// Fails with ErrInvalidTime without touching the prior value.
func (s *Store) SetReminder(name, raw string) error {
	h, err := s.get(name)
	if err != nil {
		return err
	}
	ct, err := models.ParseClockTime(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	h.Reminder = &ct
	return s.Persist()
}

// List returns all habits in insertion order, annotated with done-today and
// their derived streaks.
func (s *Store) List(today models.Date) []models.HabitStatus {
	out := make([]models.HabitStatus, 0, len(s.habits))
	for _, h := range s.habits {
		out = append(out, models.HabitStatus{
			Habit:     h,
			DoneToday: h.CompletedOn(today),
			Streaks:   streak.Compute(h.Completions, today),
		})
	}
	return out
}

// Streaks returns the current and longest streaks for one habit.
func (s *Store) Streaks(name string, today models.Date) (models.Streaks, error) {
	h, err := s.get(name)
	if err != nil {
		return models.Streaks{}, err
	}
	return streak.Compute(h.Completions, today), nil
}

// Stats returns the full statistics view for one habit. The overall success
// rate is measured from since when given, otherwise from the creation date.
func (s *Store) Stats(name string, since *models.Date, today models.Date) (*models.Stats, error) {
	h, err := s.get(name)
	if err != nil {
		return nil, err
	}
	from := h.CreatedAt
	if since != nil {
		from = *since
	}
	completions := make([]models.Date, len(h.Completions))
	copy(completions, h.Completions)
	return &models.Stats{
		Name:             h.Name,
		Description:      h.Description,
		TotalCompletions: len(h.Completions),
		SuccessRate:      streak.SuccessRate(h.Completions, from, today),
		Rate7d:           streak.SuccessRate(h.Completions, today.AddDays(-6), today),
		Rate30d:          streak.SuccessRate(h.Completions, today.AddDays(-29), today),
		Streaks:          streak.Compute(h.Completions, today),
		LastDone:         h.LastCompleted(),
		Completions:      completions,
	}, nil
}

// History reports completion status for each of the last days calendar days
// ending today, oldest first. A non-positive days falls back to
// DefaultHistoryDays.
func (s *Store) History(name string, days int, today models.Date) ([]models.DayStatus, error) {
	h, err := s.get(name)
	if err != nil {
		return nil, err
	}
	if days < 1 {
		days = DefaultHistoryDays
	}
	return streak.History(h.Completions, today, days), nil
}
