package monitor

import "time"

// Tick and debounce bounds. Out-of-range configured values are silently
// replaced by the defaults, never surfaced as errors.
const (
	TickIntervalMin     = 100 * time.Millisecond
	TickIntervalMax     = 5000 * time.Millisecond
	TickIntervalDefault = 500 * time.Millisecond

	DebounceMin     = 500 * time.Millisecond
	DebounceMax     = 10000 * time.Millisecond
	DebounceDefault = 2000 * time.Millisecond
)

// ParseConcurrency caps how many save files are decoded at once so large
// character rosters do not saturate disk I/O.
const ParseConcurrency = 4

// Config holds configuration for the save-file monitor.
type Config struct {
	// SaveDir is the primary character-save directory.
	SaveDir string `mapstructure:"save_dir" default:""`
	// StashDirs are additional directories holding shared-stash files.
	StashDirs []string `mapstructure:"stash_dirs" default:""`
	// GameMode is one of softcore, hardcore, both, manual.
	GameMode string `mapstructure:"game_mode" default:"both"`
	// TickIntervalMs is the reader tick interval in milliseconds.
	TickIntervalMs int `mapstructure:"tick_interval_ms" default:"500"`
	// DebounceMs is the file-change debounce delay in milliseconds.
	DebounceMs int `mapstructure:"debounce_ms" default:"2000"`
	// RescanCron optionally schedules forced full rescans (cron spec).
	RescanCron string `mapstructure:"rescan_cron" default:""`
}

// TickInterval returns the validated tick interval.
func (c Config) TickInterval() time.Duration {
	return validated(time.Duration(c.TickIntervalMs)*time.Millisecond, TickIntervalMin, TickIntervalMax, TickIntervalDefault)
}

// Debounce returns the validated debounce delay.
func (c Config) Debounce() time.Duration {
	return validated(time.Duration(c.DebounceMs)*time.Millisecond, DebounceMin, DebounceMax, DebounceDefault)
}

func validated(v, min, max, def time.Duration) time.Duration {
	if v < min || v > max {
		return def
	}
	return v
}
