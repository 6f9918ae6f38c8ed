// Package shared holds the context passed to all CLI commands.
package shared

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// DataFile overrides the habit data file location.
	// When empty, resolution falls through to HABIT_DATA_FILE env var →
	// persisted config → ~/.habits.yaml.
	DataFile string
}
