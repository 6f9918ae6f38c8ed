// Package mcp provides the stdio MCP server exposing habit-tracking tools
// for coding agents and assistants.
package mcp

import (
	"context"
	"encoding/json"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ionisingTuna/cli-habit-tracker/internal/buildinfo"
	"github.com/ionisingTuna/cli-habit-tracker/internal/config"
	"github.com/ionisingTuna/cli-habit-tracker/internal/models"
	"github.com/ionisingTuna/cli-habit-tracker/internal/store"
)

// NewServer creates and registers all habit tools on a new MCP server.
// dataFile may be empty, in which case each tool call resolves the configured
// data file. It is separate from Serve so tests can obtain a configured server
// without committing to the stdio transport.
func NewServer(dataFile string) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("habit", buildinfo.Version)
	registerTools(s, dataFile)
	return s
}

// Serve starts the stdio MCP server, blocking until stdin closes.
func Serve(_ context.Context, dataFile string) error {
	return mcpserver.ServeStdio(NewServer(dataFile))
}

// open loads a fresh store for one tool call. Each call runs its own
// load-mutate-persist cycle, same as one CLI invocation.
func open(dataFile string) (*store.Store, error) {
	if dataFile == "" {
		dataFile = config.GetDataFile()
	}
	return store.Open(dataFile)
}

// registerTools wires all habit tools into the server.
func registerTools(s *mcpserver.MCPServer, dataFile string) {
	s.AddTool(mcp.NewTool("habit_add",
		mcp.WithDescription("Register a new habit to track. Fails if a habit with the same name already exists."),
		mcp.WithString("name",
			mcp.Description("Unique habit name."),
			mcp.Required(),
		),
		mcp.WithString("description",
			mcp.Description("Optional free-text description."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAdd(dataFile, req)
	})

	s.AddTool(mcp.NewTool("habit_remove",
		mcp.WithDescription("Remove a habit and delete its entire completion history. Irrecoverable."),
		mcp.WithString("name",
			mcp.Description("Habit name."),
			mcp.Required(),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRemove(dataFile, req)
	})

	s.AddTool(mcp.NewTool("habit_done",
		mcp.WithDescription("Mark a habit as completed for a date (default today). Marking an already completed day is a no-op."),
		mcp.WithString("name",
			mcp.Description("Habit name."),
			mcp.Required(),
		),
		mcp.WithString("date",
			mcp.Description("YYYY-MM-DD; defaults to today. Future dates are rejected."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDone(dataFile, req)
	})

	s.AddTool(mcp.NewTool("habit_undone",
		mcp.WithDescription("Unmark a habit's completion for a date (default today). A no-op if the day was not marked."),
		mcp.WithString("name",
			mcp.Description("Habit name."),
			mcp.Required(),
		),
		mcp.WithString("date",
			mcp.Description("YYYY-MM-DD; defaults to today."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleUndone(dataFile, req)
	})

	s.AddTool(mcp.NewTool("habit_list",
		mcp.WithDescription("List all habits with done-today status, streaks and reminder times."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleList(dataFile)
	})

	s.AddTool(mcp.NewTool("habit_stats",
		mcp.WithDescription("Detailed statistics for one habit: total completions, success rates, current and longest streak."),
		mcp.WithString("name",
			mcp.Description("Habit name."),
			mcp.Required(),
		),
		mcp.WithString("since",
			mcp.Description("YYYY-MM-DD; measure the overall success rate from this date instead of the creation date."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleStats(dataFile, req)
	})

	s.AddTool(mcp.NewTool("habit_history",
		mcp.WithDescription("Day-by-day completion history for one habit, oldest first."),
		mcp.WithString("name",
			mcp.Description("Habit name."),
			mcp.Required(),
		),
		mcp.WithNumber("days",
			mcp.Description("Number of days ending today (default 30)."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleHistory(dataFile, req)
	})

	s.AddTool(mcp.NewTool("habit_remind",
		mcp.WithDescription("Set the reminder time for a habit."),
		mcp.WithString("name",
			mcp.Description("Habit name."),
			mcp.Required(),
		),
		mcp.WithString("time",
			mcp.Description("24-hour HH:MM, e.g. 09:00."),
			mcp.Required(),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRemind(dataFile, req)
	})
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func handleAdd(dataFile string, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := open(dataFile)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	h, err := st.Add(req.GetString("name", ""), req.GetString("description", ""), models.Today())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"name":       h.Name,
		"created_at": h.CreatedAt.String(),
	})
}

func handleRemove(dataFile string, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := open(dataFile)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name := req.GetString("name", "")
	if err := st.Remove(name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"removed": name})
}

func handleDone(dataFile string, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := open(dataFile)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	today := models.Today()
	date, err := dateArg(req, today)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name := req.GetString("name", "")
	if err := st.MarkDone(name, date, today); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	streaks, err := st.Streaks(name, today)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"name":           name,
		"date":           date.String(),
		"current_streak": streaks.Current,
	})
}

func handleUndone(dataFile string, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := open(dataFile)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := dateArg(req, models.Today())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name := req.GetString("name", "")
	if err := st.MarkUndone(name, date); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"name": name, "date": date.String()})
}

func handleList(dataFile string) (*mcp.CallToolResult, error) {
	st, err := open(dataFile)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	statuses := st.List(models.Today())
	habits := make([]map[string]any, 0, len(statuses))
	for _, hs := range statuses {
		entry := map[string]any{
			"name":           hs.Habit.Name,
			"description":    hs.Habit.Description,
			"done_today":     hs.DoneToday,
			"current_streak": hs.Streaks.Current,
			"longest_streak": hs.Streaks.Longest,
		}
		if hs.Habit.Reminder != nil {
			entry["reminder_time"] = hs.Habit.Reminder.String()
		}
		habits = append(habits, entry)
	}
	return jsonResult(map[string]any{"total": len(habits), "habits": habits})
}

func handleStats(dataFile string, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := open(dataFile)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var since *models.Date
	if raw := req.GetString("since", ""); raw != "" {
		d, err := models.ParseDate(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		since = &d
	}
	stats, err := st.Stats(req.GetString("name", ""), since, models.Today())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := map[string]any{
		"name":              stats.Name,
		"description":       stats.Description,
		"total_completions": stats.TotalCompletions,
		"success_rate":      roundTwo(stats.SuccessRate),
		"success_rate_7d":   roundTwo(stats.Rate7d),
		"success_rate_30d":  roundTwo(stats.Rate30d),
		"current_streak":    stats.Streaks.Current,
		"longest_streak":    stats.Streaks.Longest,
	}
	if stats.LastDone != nil {
		out["last_completed"] = stats.LastDone.String()
	}
	return jsonResult(out)
}

func handleHistory(dataFile string, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := open(dataFile)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entries, err := st.History(req.GetString("name", ""), req.GetInt("days", 0), models.Today())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	days := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		days = append(days, map[string]any{"date": e.Date.String(), "done": e.Done})
	}
	return jsonResult(days)
}

func handleRemind(dataFile string, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := open(dataFile)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name := req.GetString("name", "")
	raw := req.GetString("time", "")
	if err := st.SetReminder(name, raw); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"name": name, "reminder_time": raw})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// dateArg reads the optional "date" argument, defaulting to today.
func dateArg(req mcp.CallToolRequest, today models.Date) (models.Date, error) {
	raw := req.GetString("date", "")
	if raw == "" {
		return today, nil
	}
	return models.ParseDate(raw)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// roundTwo rounds f to 2 decimal places.
func roundTwo(f float64) float64 {
	return math.Round(f*100) / 100
}
