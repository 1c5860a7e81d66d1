package monitor

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"grail-monitor/core/eventbus"
	"grail-monitor/core/save"
	"grail-monitor/feature/catalog"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// State is the monitor lifecycle state.
type State int

const (
	StateIdle State = iota
	StateWatching
)

// String returns the state name.
func (s State) String() string {
	if s == StateWatching {
		return "watching"
	}
	return "idle"
}

// Monitor owns the save-file watch lifecycle: it coalesces filesystem change
// bursts, drives batched parsing and feeds extracted items to the analyzer.
type Monitor struct {
	cfg          Config
	logger       *zap.Logger
	bus          *eventbus.Bus
	decoder      save.Decoder
	stashDecoder save.StashDecoder
	extractor    *Extractor
	analyzer     Analyzer

	mu      sync.Mutex
	state   State
	watcher *fsnotify.Watcher
	done    chan struct{}
	croner  *cron.Cron
	wg      sync.WaitGroup

	// Change accounting. The counter (not just the timestamp) is what
	// guarantees a change arriving during an in-flight parse still triggers
	// exactly one follow-up pass.
	changeCounter uint64
	lastChangeAt  time.Time
	lastProcessed uint64
	initialParse  bool
	forceParse    bool
}

// New creates a monitor. The analyzer is wired separately via SetAnalyzer
// because the detection service is constructed after the monitor.
func New(cfg Config, logger *zap.Logger, bus *eventbus.Bus, decoder save.Decoder, stashDecoder save.StashDecoder, matcher *catalog.Matcher) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		cfg:          cfg,
		logger:       logger,
		bus:          bus,
		decoder:      decoder,
		stashDecoder: stashDecoder,
		extractor:    NewExtractor(matcher, logger),
	}
}

// SetAnalyzer wires the consumer of extracted items.
func (m *Monitor) SetAnalyzer(a Analyzer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyzer = a
}

// State returns the current lifecycle state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Start begins watching the configured save directory. A missing directory
// is non-fatal: it emits a monitoring-error event and the monitor stays
// idle. Calling Start while already watching is a no-op.
func (m *Monitor) Start() error {
	m.mu.Lock()
	if m.state == StateWatching {
		m.mu.Unlock()
		return nil
	}

	info, err := os.Stat(m.cfg.SaveDir)
	if err != nil || !info.IsDir() {
		dir := m.cfg.SaveDir
		m.mu.Unlock()
		m.logger.Warn("save directory not found", zap.String("directory", dir))
		m.bus.Emit(eventbus.TopicMonitoringError, MonitoringErrorPayload{
			Type:      ErrorTypeDirectoryNotFound,
			Message:   fmt.Sprintf("save directory does not exist: %s", dir),
			Directory: dir,
		})
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	if err := watcher.Add(m.cfg.SaveDir); err != nil {
		_ = watcher.Close()
		m.mu.Unlock()
		return fmt.Errorf("failed to watch save directory: %w", err)
	}
	for _, dir := range m.cfg.StashDirs {
		if dir == m.cfg.SaveDir {
			continue
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			if err := watcher.Add(dir); err != nil {
				m.logger.Warn("failed to watch stash directory", zap.String("directory", dir), zap.Error(err))
			}
		}
	}

	m.watcher = watcher
	m.done = make(chan struct{})
	m.initialParse = true
	m.state = StateWatching

	if m.cfg.RescanCron != "" {
		m.croner = cron.New()
		if _, err := m.croner.AddFunc(m.cfg.RescanCron, m.RequestParse); err != nil {
			m.logger.Warn("invalid rescan cron spec, scheduled rescans disabled",
				zap.String("spec", m.cfg.RescanCron), zap.Error(err))
			m.croner = nil
		} else {
			m.croner.Start()
		}
	}

	m.wg.Add(2)
	go m.watchLoop(watcher, m.done)
	go m.tickLoop(m.done)

	count := m.countSaveFiles()
	dir := m.cfg.SaveDir
	m.mu.Unlock()

	m.logger.Info("monitoring started",
		zap.String("directory", dir),
		zap.Int("save_files", count),
	)
	m.bus.Emit(eventbus.TopicMonitoringStarted, MonitoringStartedPayload{
		Directory:     dir,
		SaveFileCount: count,
	})
	return nil
}

// Stop closes the watch handle and cancels the periodic tick. An in-flight
// parse runs to completion. Safe to call when already idle.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if m.state == StateIdle {
		m.mu.Unlock()
		return
	}

	close(m.done)
	_ = m.watcher.Close()
	m.watcher = nil
	if m.croner != nil {
		m.croner.Stop()
		m.croner = nil
	}
	m.state = StateIdle
	m.mu.Unlock()

	m.wg.Wait()

	m.logger.Info("monitoring stopped")
	m.bus.Emit(eventbus.TopicMonitoringStopped, struct{}{})
}

// RequestParse flags a parse for the next tick, bypassing the debounce
// window and the manual-mode suppression. This is the explicit user entry
// point.
func (m *Monitor) RequestParse() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forceParse = true
}

func (m *Monitor) watchLoop(watcher *fsnotify.Watcher, done <-chan struct{}) {
	defer m.wg.Done()
	for {
		select {
		case <-done:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !IsSaveFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			m.recordChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			m.logger.Warn("filesystem watcher error", zap.Error(err))
		}
	}
}

func (m *Monitor) recordChange() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changeCounter++
	m.lastChangeAt = time.Now()
}

func (m *Monitor) tickLoop(done <-chan struct{}) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.TickInterval())
	defer ticker.Stop()

	// The initial pass bypasses the debounce window entirely.
	m.tick()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			m.tick()
		}
	}
}

// tick decides whether a parse pass is due. A pass runs when the initial
// parse is pending, a force parse was requested, or the debounce delay has
// elapsed since the last change AND the change counter has advanced past the
// last processed value. Manual game mode never auto-triggers.
func (m *Monitor) tick() {
	m.mu.Lock()

	var trigger, silent bool
	switch {
	case m.initialParse:
		trigger, silent = true, true
	case m.forceParse:
		trigger = true
	case m.cfg.GameMode == GameModeManual:
		// Explicit requests only.
	case m.changeCounter > m.lastProcessed && time.Since(m.lastChangeAt) >= m.cfg.Debounce():
		trigger = true
	}

	if !trigger {
		m.mu.Unlock()
		return
	}

	snapshot := m.changeCounter
	m.initialParse = false
	m.forceParse = false
	m.mu.Unlock()

	m.parseAll(context.Background(), silent)

	// Changes that arrived during the parse pushed the counter past the
	// snapshot; they will trigger exactly one follow-up pass once the
	// debounce window elapses again.
	m.mu.Lock()
	if snapshot > m.lastProcessed {
		m.lastProcessed = snapshot
	}
	m.mu.Unlock()
}
