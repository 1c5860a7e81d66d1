package monitor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"grail-monitor/core/eventbus"
	"grail-monitor/core/executor"
	"grail-monitor/core/metrics"

	"go.uber.org/zap"
)

type parseOutcome struct {
	source SaveSource
	items  []ExtractedItem
}

// ParseAll runs one parse pass over every candidate save file: character
// saves in the save directory plus shared-stash files, which may live in
// separately configured directories. Files parse through the bounded
// executor; a single file's read or decode failure is logged and contributes
// an empty item set without affecting its siblings. Returns the number of
// files processed.
func (m *Monitor) ParseAll(ctx context.Context) int {
	return m.parseAll(ctx, false)
}

func (m *Monitor) parseAll(ctx context.Context, silent bool) int {
	paths := m.candidateFiles()
	if len(paths) == 0 {
		return 0
	}

	tasks := make([]executor.Task[parseOutcome], len(paths))
	for i, path := range paths {
		tasks[i] = func(ctx context.Context) (parseOutcome, error) {
			return m.parseFile(path)
		}
	}

	results := executor.Run(ctx, tasks, ParseConcurrency)

	m.mu.Lock()
	analyzer := m.analyzer
	m.mu.Unlock()

	for i, res := range results {
		outcome := res.Value
		if res.Err != nil {
			metrics.DecodeFailures.Inc()
			m.logger.Warn("save file parse failed",
				zap.String("path", paths[i]),
				zap.Error(res.Err),
			)
			// A failed file still reports an empty item set.
			outcome = parseOutcome{
				source: SaveSource{Path: paths[i], Name: SaveNameFromPath(paths[i], nil)},
				items:  []ExtractedItem{},
			}
		} else {
			metrics.FilesDecoded.Inc()
		}

		m.bus.Emit(eventbus.TopicSaveFileEvent, SaveFileEventPayload{
			Type:           SaveFileEventParsed,
			File:           outcome.source,
			ExtractedItems: outcome.items,
			Silent:         silent,
		})
		if analyzer != nil {
			analyzer.AnalyzeSave(ctx, outcome.source, outcome.items)
		}
	}

	metrics.ParsePasses.Inc()
	m.logger.Debug("parse pass complete",
		zap.Int("files", len(paths)),
		zap.Bool("silent", silent),
	)
	return len(paths)
}

// candidateFiles enumerates the character saves in the save directory and
// the shared-stash files in the save directory plus any extra stash
// directories. Missing directories contribute nothing.
func (m *Monitor) candidateFiles() []string {
	var paths []string

	dirs := append([]string{m.cfg.SaveDir}, m.cfg.StashDirs...)
	seen := make(map[string]struct{}, len(dirs))

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if _, dup := seen[dir]; dup {
			continue
		}
		seen[dir] = struct{}{}

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			switch strings.ToLower(filepath.Ext(name)) {
			case extCharacter:
				// Character saves only come from the primary directory.
				if dir == m.cfg.SaveDir {
					paths = append(paths, filepath.Join(dir, name))
				}
			case extStash:
				paths = append(paths, filepath.Join(dir, name))
			}
		}
	}

	return paths
}

// ParseFile reads and decodes a single save file outside of a full parse
// pass. Consumers that receive a bare file path rather than extracted items
// use it to produce the item list themselves.
func (m *Monitor) ParseFile(ctx context.Context, path string) (SaveSource, []ExtractedItem, error) {
	if err := ctx.Err(); err != nil {
		return SaveSource{}, nil, err
	}
	outcome, err := m.parseFile(path)
	if err != nil {
		return SaveSource{}, nil, err
	}
	return outcome.source, outcome.items, nil
}

func (m *Monitor) parseFile(path string) (parseOutcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return parseOutcome{}, fmt.Errorf("failed to read save file: %w", err)
	}

	modifiedAt := time.Now()
	if info, err := os.Stat(path); err == nil {
		modifiedAt = info.ModTime()
	}

	if strings.ToLower(filepath.Ext(path)) == extStash {
		return m.parseStash(path, data, modifiedAt)
	}
	return m.parseCharacter(path, data, modifiedAt)
}

func (m *Monitor) parseCharacter(path string, data []byte, modifiedAt time.Time) (parseOutcome, error) {
	file, err := m.decoder.Decode(data)
	if err != nil {
		return parseOutcome{}, fmt.Errorf("failed to decode character save: %w", err)
	}

	source := SaveSource{
		Path:           path,
		Name:           SaveNameFromPath(path, nil),
		CharacterClass: CharacterClass(file.Header.Class),
		Level:          file.Header.Level,
		Hardcore:       file.Header.Hardcore,
		Expansion:      file.Header.Expansion,
		ModifiedAt:     modifiedAt,
	}

	items := []ExtractedItem{}
	m.extractor.ExtractList(file.Items, &items, source.Name, "inventory")
	m.extractor.ExtractList(file.MercItems, &items, source.Name, "mercenary")
	m.extractor.ExtractList(file.CorpseItems, &items, source.Name, "corpse")

	return parseOutcome{source: source, items: items}, nil
}

func (m *Monitor) parseStash(path string, data []byte, modifiedAt time.Time) (parseOutcome, error) {
	file, err := m.stashDecoder.DecodeStash(data)
	if err != nil {
		return parseOutcome{}, fmt.Errorf("failed to decode shared stash: %w", err)
	}

	source := SaveSource{
		Path:       path,
		Name:       SaveNameFromPath(path, &file.Hardcore),
		Hardcore:   file.Hardcore,
		Stash:      true,
		ModifiedAt: modifiedAt,
	}

	items := []ExtractedItem{}
	for i, page := range file.Pages {
		location := fmt.Sprintf("stash page %d", i+1)
		m.extractor.ExtractList(page.Items, &items, source.Name, location)
	}

	return parseOutcome{source: source, items: items}, nil
}

// countSaveFiles returns the number of candidate save files currently on
// disk, for the monitoring-started event.
func (m *Monitor) countSaveFiles() int {
	return len(m.candidateFiles())
}
