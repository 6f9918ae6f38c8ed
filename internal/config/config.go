// Package config resolves the location of the habit data file and manages
// the persisted global configuration.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the data file created in the user's home directory when
// nothing else is configured.
const DefaultFileName = ".habits.yaml"

// globalConfigPath returns the path to the global habit config file.
// This file stores only data_file (and future global settings).
func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "habit", "config.yaml"), nil
}

// normalizePath expands ~ and makes the path absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// ResolveDataFile returns the data file path and the source of the resolution.
// Priority: HABIT_DATA_FILE env → persisted global config → ~/.habits.yaml
// source is one of "env", "config", or "default".
func ResolveDataFile() (path, source string) {
	if env := os.Getenv("HABIT_DATA_FILE"); env != "" {
		p, err := normalizePath(env)
		if err == nil {
			return p, "env"
		}
		slog.Warn("ignoring unusable HABIT_DATA_FILE", "value", env, "err", err)
	}

	if persisted, ok, err := GetPersistedDataFile(); ok {
		return persisted, "config"
	} else if err != nil {
		slog.Warn("failed to read global config", "err", err)
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultFileName), "default"
}

// GetDataFile returns the resolved data file path.
func GetDataFile() string {
	path, _ := ResolveDataFile()
	return path
}

// GetPersistedDataFile reads data_file from the global config.
// Returns ("", false, nil) if not set.
func GetPersistedDataFile() (string, bool, error) {
	cfgPath, err := globalConfigPath()
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return "", false, nil
	}

	val, _ := raw["data_file"].(string)
	val = strings.TrimSpace(val)
	if val == "" {
		return "", false, nil
	}

	p, err := normalizePath(val)
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

// SetPersistedDataFile normalizes path and persists it in the global config.
// Returns the normalized path.
func SetPersistedDataFile(path string) (string, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return "", err
	}

	cfgPath, err := globalConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", err
	}

	// Read existing global config, preserving any other keys.
	var raw map[string]any
	if data, err := os.ReadFile(cfgPath); err == nil {
		_ = yaml.Unmarshal(data, &raw)
	}
	if raw == nil {
		raw = make(map[string]any)
	}
	raw["data_file"] = normalized

	out, err := yaml.Marshal(raw)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cfgPath, out, 0o600); err != nil {
		return "", err
	}
	return normalized, nil
}

// ClearPersistedDataFile removes data_file from the global config.
// Returns true if the key was present and removed.
// If the file becomes empty after removal it is deleted.
func ClearPersistedDataFile() (bool, error) {
	cfgPath, err := globalConfigPath()
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return false, nil
	}

	if _, ok := raw["data_file"]; !ok {
		return false, nil
	}
	delete(raw, "data_file")

	if len(raw) == 0 {
		_ = os.Remove(cfgPath)
		return true, nil
	}

	out, err := yaml.Marshal(raw)
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(cfgPath, out, 0o600)
}
