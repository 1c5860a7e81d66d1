package monitor

import (
	"context"
	"time"

	"grail-monitor/core/save"
)

// GameMode controls which saves are tracked and whether parsing is automatic.
const (
	GameModeSoftcore = "softcore"
	GameModeHardcore = "hardcore"
	GameModeBoth     = "both"
	// GameModeManual disables automatic parsing entirely; the user triggers
	// every parse pass explicitly.
	GameModeManual = "manual"
)

// SaveSource is one watched save file. It is created on directory scan and
// refreshed on every parse; it is never mutated concurrently with its own
// parse.
type SaveSource struct {
	Path           string    `json:"path"`
	Name           string    `json:"name"`
	CharacterClass string    `json:"character_class"`
	Level          int       `json:"level"`
	Difficulty     string    `json:"difficulty"`
	Hardcore       bool      `json:"hardcore"`
	Expansion      bool      `json:"expansion"`
	Stash          bool      `json:"stash"`
	ModifiedAt     time.Time `json:"modified_at"`
}

// ExtractedItem is the normalized record produced by flattening the
// decoder's raw item trees. Socketed contents become sibling ExtractedItems
// attributed to the same character and location.
type ExtractedItem struct {
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Quality   int       `json:"quality"`
	Level     int       `json:"level"`
	Ethereal  bool      `json:"ethereal"`
	Sockets   int       `json:"sockets"`
	Timestamp time.Time `json:"timestamp"`
	Character string    `json:"character"`
	Location  string    `json:"location"`

	// Raw keeps the identifying fields the grail matcher needs (names, type
	// code, magic attributes). Socketed sub-items are stripped since they
	// are flattened into their own records.
	Raw save.RawItem `json:"-"`
}

// Analyzer consumes the items extracted from one save file. The detection
// service implements it.
type Analyzer interface {
	// AnalyzeSave inspects the extracted items of one save source. The items
	// slice, including an explicitly empty one, must be used as-is.
	AnalyzeSave(ctx context.Context, source SaveSource, items []ExtractedItem)
}

// MonitoringStartedPayload is emitted on the monitoring-started topic.
type MonitoringStartedPayload struct {
	Directory     string `json:"directory"`
	SaveFileCount int    `json:"save_file_count"`
}

// MonitoringErrorPayload is emitted on the monitoring-error topic.
type MonitoringErrorPayload struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Directory string `json:"directory"`
}

// ErrorTypeDirectoryNotFound marks a missing save directory.
const ErrorTypeDirectoryNotFound = "directory-not-found"

// SaveFileEventPayload is emitted on the save-file-event topic for every
// parsed file. Silent is set during the initial bypass-debounce pass so
// consumers can suppress user-facing notifications.
type SaveFileEventPayload struct {
	Type           string          `json:"type"`
	File           SaveSource      `json:"file"`
	ExtractedItems []ExtractedItem `json:"extracted_items"`
	Silent         bool            `json:"silent"`
}

// Save-file event types.
const (
	SaveFileEventParsed = "parsed"
)
