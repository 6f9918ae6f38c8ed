package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/ionisingTuna/cli-habit-tracker/internal/models"
	"github.com/ionisingTuna/cli-habit-tracker/internal/store"
)

var today = models.NewDate(2026, time.August, 31)

func ago(n int) models.Date { return today.AddDays(-n) }

// openTestStore opens a store backed by a file in a temp directory, anchored
// at the fixed reference date so fixtures are never "in the future".
func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.OpenAt(filepath.Join(t.TempDir(), "habits.yaml"), today)
	if err != nil {
		t.Fatalf("openTestStore: %v", err)
	}
	return st
}

// reopen reloads the store's backing file at the fixed reference date.
func reopen(t *testing.T, st *store.Store) *store.Store {
	t.Helper()
	reloaded, err := store.OpenAt(st.Path(), today)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	return reloaded
}

func TestOpen_MissingFile(t *testing.T) {
	c := qt.New(t)
	st, err := store.Open(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	c.Assert(err, qt.IsNil)
	c.Assert(st.List(today), qt.HasLen, 0)
}

func TestOpen_EmptyFile(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(t.TempDir(), "habits.yaml")
	c.Assert(os.WriteFile(path, []byte("\n"), 0o600), qt.IsNil)

	st, err := store.Open(path)
	c.Assert(err, qt.IsNil)
	c.Assert(st.List(today), qt.HasLen, 0)
}

func TestOpen_CorruptFile(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name string
		body string
	}{
		{"not yaml at all", "{{{{"},
		{"wrong shape", "habits: 42\n"},
		{"record without a name", "habits:\n  - description: x\n    created_at: \"2026-08-01\"\n"},
		{"missing created_at", "habits:\n  - name: run\n"},
		{"unparsable completion date", "habits:\n  - name: run\n    created_at: \"2026-08-01\"\n    completions:\n      - \"soon\"\n"},
		{"unparsable reminder", "habits:\n  - name: run\n    created_at: \"2026-08-01\"\n    reminder_time: \"7am\"\n"},
		{"duplicate names", "habits:\n  - name: run\n    created_at: \"2026-08-01\"\n  - name: run\n    created_at: \"2026-08-02\"\n"},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			path := filepath.Join(c.TB.TempDir(), "habits.yaml")
			c.Assert(os.WriteFile(path, []byte(tc.body), 0o600), qt.IsNil)

			_, err := store.Open(path)
			c.Assert(errors.Is(err, store.ErrCorruptStore), qt.IsTrue, qt.Commentf("err = %v", err))
		})
	}
}

func TestAdd_HappyPath(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)

	h, err := st.Add("exercise", "morning run", today)
	c.Assert(err, qt.IsNil)
	c.Assert(h.Name, qt.Equals, "exercise")
	c.Assert(h.Description, qt.Equals, "morning run")
	c.Assert(h.CreatedAt, qt.Equals, today)
	c.Assert(h.Completions, qt.HasLen, 0)
	c.Assert(h.Reminder, qt.IsNil)
}

func TestAdd_Duplicate(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)

	_, err := st.Add("exercise", "original description", today)
	c.Assert(err, qt.IsNil)
	c.Assert(st.MarkDone("exercise", today, today), qt.IsNil)

	_, err = st.Add("exercise", "other description", today)
	c.Assert(errors.Is(err, store.ErrDuplicateHabit), qt.IsTrue)

	// The existing habit is untouched, in memory and on disk.
	statuses := reopen(t, st).List(today)
	c.Assert(statuses, qt.HasLen, 1)
	c.Assert(statuses[0].Habit.Description, qt.Equals, "original description")
	c.Assert(statuses[0].Habit.Completions, qt.DeepEquals, []models.Date{today})
}

func TestAdd_EmptyName(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)
	_, err := st.Add("  ", "", today)
	c.Assert(err, qt.IsNotNil)
}

func TestAdd_CaseSensitiveNames(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)

	_, err := st.Add("Read", "", today)
	c.Assert(err, qt.IsNil)
	_, err = st.Add("read", "", today)
	c.Assert(err, qt.IsNil)
	c.Assert(st.List(today), qt.HasLen, 2)
}

func TestRemove_HappyPath(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)

	_, err := st.Add("exercise", "", today)
	c.Assert(err, qt.IsNil)
	c.Assert(st.Remove("exercise"), qt.IsNil)
	c.Assert(st.List(today), qt.HasLen, 0)

	c.Assert(errors.Is(st.Remove("exercise"), store.ErrNotFound), qt.IsTrue)
}

func TestRemove_ThenReAdd_NoResidualState(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)

	_, err := st.Add("exercise", "old", today)
	c.Assert(err, qt.IsNil)
	c.Assert(st.MarkDone("exercise", today, today), qt.IsNil)
	c.Assert(st.SetReminder("exercise", "07:30"), qt.IsNil)
	c.Assert(st.Remove("exercise"), qt.IsNil)

	h, err := st.Add("exercise", "", today)
	c.Assert(err, qt.IsNil)
	c.Assert(h.Completions, qt.HasLen, 0)
	c.Assert(h.Reminder, qt.IsNil)
	c.Assert(h.Description, qt.Equals, "")

	streaks, err := st.Streaks("exercise", today)
	c.Assert(err, qt.IsNil)
	c.Assert(streaks, qt.Equals, models.Streaks{})
}

func TestMarkDone_Idempotent(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)

	_, err := st.Add("exercise", "", today)
	c.Assert(err, qt.IsNil)

	for range 3 {
		c.Assert(st.MarkDone("exercise", today, today), qt.IsNil)
	}

	stats, err := st.Stats("exercise", nil, today)
	c.Assert(err, qt.IsNil)
	c.Assert(stats.TotalCompletions, qt.Equals, 1)
	c.Assert(stats.Completions, qt.DeepEquals, []models.Date{today})
}

func TestMarkDone_ThenUndone_IsInverse(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)

	_, err := st.Add("exercise", "", today)
	c.Assert(err, qt.IsNil)
	c.Assert(st.MarkDone("exercise", ago(1), today), qt.IsNil)

	c.Assert(st.MarkDone("exercise", today, today), qt.IsNil)
	c.Assert(st.MarkUndone("exercise", today), qt.IsNil)

	stats, err := st.Stats("exercise", nil, today)
	c.Assert(err, qt.IsNil)
	c.Assert(stats.Completions, qt.DeepEquals, []models.Date{ago(1)})

	// Unmarking a date that is not marked is a no-op, not an error.
	c.Assert(st.MarkUndone("exercise", today), qt.IsNil)
}

func TestMarkDone_Errors(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)

	c.Run("unknown habit", func(c *qt.C) {
		err := st.MarkDone("missing", today, today)
		c.Assert(errors.Is(err, store.ErrNotFound), qt.IsTrue)
	})

	c.Run("future date rejected", func(c *qt.C) {
		_, err := st.Add("exercise", "", today)
		c.Assert(err, qt.IsNil)
		err = st.MarkDone("exercise", today.AddDays(1), today)
		c.Assert(errors.Is(err, store.ErrFutureDate), qt.IsTrue)
	})
}

func TestSetReminder_HappyPath(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)

	_, err := st.Add("exercise", "", today)
	c.Assert(err, qt.IsNil)
	c.Assert(st.SetReminder("exercise", "07:30"), qt.IsNil)

	statuses := st.List(today)
	c.Assert(statuses[0].Habit.Reminder, qt.IsNotNil)
	c.Assert(statuses[0].Habit.Reminder.String(), qt.Equals, "07:30")

	// Overwrites the previous value.
	c.Assert(st.SetReminder("exercise", "21:00"), qt.IsNil)
	c.Assert(st.List(today)[0].Habit.Reminder.String(), qt.Equals, "21:00")
}

func TestSetReminder_InvalidTime_KeepsPriorValue(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)

	_, err := st.Add("exercise", "", today)
	c.Assert(err, qt.IsNil)
	c.Assert(st.SetReminder("exercise", "07:30"), qt.IsNil)

	for _, raw := range []string{"25:99", "7am", ""} {
		err := st.SetReminder("exercise", raw)
		c.Assert(errors.Is(err, store.ErrInvalidTime), qt.IsTrue, qt.Commentf("input %q", raw))
	}

	c.Assert(reopen(t, st).List(today)[0].Habit.Reminder.String(), qt.Equals, "07:30")
}

func TestSetReminder_UnknownHabit(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)
	c.Assert(errors.Is(st.SetReminder("missing", "07:30"), store.ErrNotFound), qt.IsTrue)
}

func TestList_InsertionOrderAndAnnotations(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := st.Add(name, "", today)
		c.Assert(err, qt.IsNil)
	}
	c.Assert(st.MarkDone("alpha", today, today), qt.IsNil)
	c.Assert(st.MarkDone("alpha", ago(1), today), qt.IsNil)

	statuses := st.List(today)
	c.Assert(statuses, qt.HasLen, 3)
	c.Assert(statuses[0].Habit.Name, qt.Equals, "zeta")
	c.Assert(statuses[1].Habit.Name, qt.Equals, "alpha")
	c.Assert(statuses[2].Habit.Name, qt.Equals, "mid")

	c.Assert(statuses[0].DoneToday, qt.IsFalse)
	c.Assert(statuses[1].DoneToday, qt.IsTrue)
	c.Assert(statuses[1].Streaks, qt.Equals, models.Streaks{Current: 2, Longest: 2})
}

func TestStats_HappyPath(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)

	created := ago(9)
	_, err := st.Add("exercise", "morning run", created)
	c.Assert(err, qt.IsNil)
	for _, d := range []models.Date{today, ago(1), ago(2), ago(7)} {
		c.Assert(st.MarkDone("exercise", d, today), qt.IsNil)
	}

	stats, err := st.Stats("exercise", nil, today)
	c.Assert(err, qt.IsNil)
	c.Assert(stats.Name, qt.Equals, "exercise")
	c.Assert(stats.Description, qt.Equals, "morning run")
	c.Assert(stats.TotalCompletions, qt.Equals, 4)
	// 4 completions over the 10 days since creation.
	c.Assert(stats.SuccessRate, qt.Equals, 0.4)
	c.Assert(stats.Rate7d, qt.Equals, 3.0/7.0)
	c.Assert(stats.Streaks, qt.Equals, models.Streaks{Current: 3, Longest: 3})
	c.Assert(*stats.LastDone, qt.Equals, today)
	c.Assert(stats.Completions, qt.DeepEquals, []models.Date{ago(7), ago(2), ago(1), today})
}

func TestStats_SinceBound(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)

	_, err := st.Add("exercise", "", ago(20))
	c.Assert(err, qt.IsNil)
	for _, d := range []models.Date{today, ago(1), ago(15)} {
		c.Assert(st.MarkDone("exercise", d, today), qt.IsNil)
	}

	since := ago(3)
	stats, err := st.Stats("exercise", &since, today)
	c.Assert(err, qt.IsNil)
	// 2 completions in the 4-day window; the one 15 days ago is out.
	c.Assert(stats.SuccessRate, qt.Equals, 0.5)
	// Total is unaffected by the bound.
	c.Assert(stats.TotalCompletions, qt.Equals, 3)
}

func TestStats_UnknownHabit(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)
	_, err := st.Stats("missing", nil, today)
	c.Assert(errors.Is(err, store.ErrNotFound), qt.IsTrue)
}

func TestHistory_HappyPath(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)

	_, err := st.Add("exercise", "", today)
	c.Assert(err, qt.IsNil)
	c.Assert(st.MarkDone("exercise", today, today), qt.IsNil)
	c.Assert(st.MarkDone("exercise", ago(3), today), qt.IsNil)

	entries, err := st.History("exercise", 7, today)
	c.Assert(err, qt.IsNil)
	c.Assert(entries, qt.HasLen, 7)
	c.Assert(entries[0].Date, qt.Equals, ago(6))
	c.Assert(entries[6].Date, qt.Equals, today)
	c.Assert(entries[6].Done, qt.IsTrue)
	c.Assert(entries[3].Done, qt.IsTrue)
	c.Assert(entries[5].Done, qt.IsFalse)
}

func TestHistory_DefaultWindow(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)

	_, err := st.Add("exercise", "", today)
	c.Assert(err, qt.IsNil)

	entries, err := st.History("exercise", 0, today)
	c.Assert(err, qt.IsNil)
	c.Assert(entries, qt.HasLen, store.DefaultHistoryDays)
}

func TestPersist_RoundTrip(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)

	_, err := st.Add("exercise", "morning run", ago(5))
	c.Assert(err, qt.IsNil)
	c.Assert(st.MarkDone("exercise", today, today), qt.IsNil)
	c.Assert(st.MarkDone("exercise", ago(1), today), qt.IsNil)
	c.Assert(st.SetReminder("exercise", "07:30"), qt.IsNil)

	// No reminder, no completions, no description.
	_, err = st.Add("read", "", today)
	c.Assert(err, qt.IsNil)

	orig := st.List(today)
	back := reopen(t, st).List(today)
	c.Assert(back, qt.HasLen, len(orig))
	for i := range orig {
		c.Assert(back[i].Habit, qt.DeepEquals, orig[i].Habit)
	}
}

func TestPersist_FileIsHumanInspectable(t *testing.T) {
	c := qt.New(t)
	st := openTestStore(t)

	_, err := st.Add("exercise", "morning run", today)
	c.Assert(err, qt.IsNil)
	c.Assert(st.MarkDone("exercise", today, today), qt.IsNil)
	c.Assert(st.SetReminder("exercise", "07:30"), qt.IsNil)

	data, err := os.ReadFile(st.Path())
	c.Assert(err, qt.IsNil)
	body := string(data)
	c.Assert(strings.Contains(body, "name: exercise"), qt.IsTrue)
	c.Assert(strings.Contains(body, "morning run"), qt.IsTrue)
	c.Assert(strings.Contains(body, "07:30"), qt.IsTrue)
	c.Assert(strings.Contains(body, today.String()), qt.IsTrue)
}

func TestOpen_NormalizesHandEditedCompletions(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(t.TempDir(), "habits.yaml")
	body := "habits:\n" +
		"  - name: run\n" +
		"    created_at: \"2026-08-01\"\n" +
		"    completions:\n" +
		"      - \"2026-08-30\"\n" +
		"      - \"2026-08-29\"\n" +
		"      - \"2026-08-30\"\n"
	c.Assert(os.WriteFile(path, []byte(body), 0o600), qt.IsNil)

	st, err := store.OpenAt(path, today)
	c.Assert(err, qt.IsNil)
	statuses := st.List(today)
	c.Assert(statuses[0].Habit.Completions, qt.DeepEquals, []models.Date{
		models.NewDate(2026, time.August, 29),
		models.NewDate(2026, time.August, 30),
	})
}

func TestOpenAt_FutureCompletionDate(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(t.TempDir(), "habits.yaml")
	body := "habits:\n" +
		"  - name: run\n" +
		"    created_at: \"" + ago(10).String() + "\"\n" +
		"    completions:\n" +
		"      - \"" + today.AddDays(3).String() + "\"\n"
	c.Assert(os.WriteFile(path, []byte(body), 0o600), qt.IsNil)

	_, err := store.OpenAt(path, today)
	c.Assert(errors.Is(err, store.ErrCorruptStore), qt.IsTrue, qt.Commentf("err = %v", err))
}
