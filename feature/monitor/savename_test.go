package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestSaveNameFromPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		override *bool
		want     string
	}{
		{"CharacterSave", "/saves/Sorceress.d2s", nil, "Sorceress"},
		{"CharacterSaveIgnoresOverride", "/saves/MyBarb.d2s", boolPtr(true), "MyBarb"},
		{"StashSoftcoreByName", "/saves/SharedStashSoftCoreV2.d2i", nil, "Shared Stash Softcore"},
		{"StashHardcoreByName", "/saves/SharedStashHardCoreV2.d2i", nil, "Shared Stash Hardcore"},
		{"StashOverrideWins", "/saves/SharedStashSoftCoreV2.d2i", boolPtr(true), "Shared Stash Hardcore"},
		{"StashOverrideWinsDown", "/saves/SharedStashHardCoreV2.d2i", boolPtr(false), "Shared Stash Softcore"},
		{"StashUnrecognizedName", "/saves/stash.d2i", nil, "Shared Stash Softcore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SaveNameFromPath(tt.path, tt.override))
		})
	}
}

func TestCharacterClass(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{0, "Amazon"},
		{1, "Sorceress"},
		{2, "Necromancer"},
		{3, "Paladin"},
		{4, "Barbarian"},
		{5, "Druid"},
		{6, "Assassin"},
		{7, "unknown"},
		{-1, "unknown"},
		{99, "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CharacterClass(tt.id))
	}
}

func TestIsSaveFile(t *testing.T) {
	assert.True(t, IsSaveFile("/saves/Sorc.d2s"))
	assert.True(t, IsSaveFile("/saves/SharedStashSoftCoreV2.d2i"))
	assert.True(t, IsSaveFile("/saves/UPPER.D2S"))
	assert.False(t, IsSaveFile("/saves/Sorc.key"))
	assert.False(t, IsSaveFile("/saves/notes.txt"))
}

func TestConfigValidation(t *testing.T) {
	t.Run("InRangeKept", func(t *testing.T) {
		cfg := Config{TickIntervalMs: 250, DebounceMs: 800}
		assert.Equal(t, 250, int(cfg.TickInterval().Milliseconds()))
		assert.Equal(t, 800, int(cfg.Debounce().Milliseconds()))
	})

	t.Run("OutOfRangeReplacedByDefaults", func(t *testing.T) {
		for _, ms := range []int{0, 50, 99, 5001, -10} {
			cfg := Config{TickIntervalMs: ms}
			assert.Equal(t, TickIntervalDefault, cfg.TickInterval(), "tick %d", ms)
		}
		for _, ms := range []int{0, 499, 10001, -1} {
			cfg := Config{DebounceMs: ms}
			assert.Equal(t, DebounceDefault, cfg.Debounce(), "debounce %d", ms)
		}
	})
}
