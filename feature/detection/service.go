package detection

import (
	"context"
	"sync"
	"time"

	"grail-monitor/core/eventbus"
	"grail-monitor/core/metrics"
	"grail-monitor/feature/catalog"
	"grail-monitor/feature/monitor"

	"go.uber.org/zap"
)

// Key identifies one dedupable detection. The same catalog item in its
// normal and ethereal forms counts as two distinct detections.
type Key struct {
	ItemID   string
	Ethereal bool
}

// ItemDetectionPayload is emitted on the item-detection topic once per newly
// observed (item, ethereal) pair.
type ItemDetectionPayload struct {
	Type      string                `json:"type"`
	Item      monitor.ExtractedItem `json:"item"`
	GrailItem catalog.Item          `json:"grail_item"`
}

// ItemDetectionFound is the payload type for a fresh detection.
const ItemDetectionFound = "item-found"

// FileParser resolves a save file path into its source descriptor and
// extracted items. The save file monitor implements it.
type FileParser interface {
	ParseFile(ctx context.Context, path string) (monitor.SaveSource, []monitor.ExtractedItem, error)
}

// Service reconciles extracted save items against the catalog and reports
// each (item, ethereal) pair the first time it is observed. Subsequent
// observations of the same pair, whether from the same file on a later parse
// pass or from a different character entirely, are silent.
type Service struct {
	logger  *zap.Logger
	bus     *eventbus.Bus
	matcher *catalog.Matcher
	store   *Store
	parser  FileParser

	mu sync.Mutex
	// seen is the global dedup set across all save sources.
	seen map[Key]struct{}
	// byFile remembers which keys each file contributed, so clearing one
	// file's state also releases those keys globally.
	byFile map[string]map[Key]struct{}
}

// NewService creates the detection service. The store and parser are
// optional; without a store detections are not persisted, and without a
// parser only pre-extracted item lists can be analyzed.
func NewService(logger *zap.Logger, bus *eventbus.Bus, matcher *catalog.Matcher, store *Store, parser FileParser) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger:  logger,
		bus:     bus,
		matcher: matcher,
		store:   store,
		parser:  parser,
		seen:    make(map[Key]struct{}),
		byFile:  make(map[string]map[Key]struct{}),
	}
}

// SetCatalog swaps the catalog used for matching. Already-seen keys are
// kept; the swap only affects how future raw items resolve.
func (s *Service) SetCatalog(c *catalog.Catalog) {
	s.matcher.SetCatalog(c)
}

// Hydrate seeds the dedup set from the persisted progress records so that
// items found before a restart do not re-fire while they still sit in a save
// file. Hydrated keys carry no file attribution.
func (s *Service) Hydrate(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	records, err := s.store.All(ctx)
	if err != nil {
		return err
	}
	s.SeedFromRecords(records)
	s.logger.Info("detection state hydrated", zap.Int("records", len(records)))
	return nil
}

// SeedFromRecords marks the given records as already detected.
func (s *Service) SeedFromRecords(records []ProgressRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		s.seen[Key{ItemID: rec.ItemID, Ethereal: rec.Ethereal}] = struct{}{}
	}
}

// AnalyzeSave inspects the extracted items of one save source and emits an
// item-detection event for every pair observed for the first time. A nil
// items slice means the caller did not parse the file; the service then
// parses it itself. An explicitly empty slice is used as-is and detects
// nothing.
func (s *Service) AnalyzeSave(ctx context.Context, source monitor.SaveSource, items []monitor.ExtractedItem) {
	if items == nil {
		if s.parser == nil {
			s.logger.Warn("no items supplied and no parser configured",
				zap.String("path", source.Path))
			return
		}
		parsed, extracted, err := s.parser.ParseFile(ctx, source.Path)
		if err != nil {
			s.logger.Warn("failed to parse save file",
				zap.String("path", source.Path),
				zap.Error(err),
			)
			return
		}
		source = parsed
		items = extracted
	}

	for i := range items {
		item := &items[i]

		grail := s.matcher.Resolve(&item.Raw)
		if grail == nil {
			continue
		}

		key := Key{ItemID: grail.ID, Ethereal: item.Ethereal}
		if !s.markSeen(source.Path, key) {
			continue
		}

		metrics.ItemsDetected.Inc()
		s.logger.Info("new grail item detected",
			zap.String("item", grail.Name),
			zap.String("id", grail.ID),
			zap.Bool("ethereal", item.Ethereal),
			zap.String("character", item.Character),
			zap.String("location", item.Location),
		)

		s.persist(ctx, grail, item)
		s.bus.Emit(eventbus.TopicItemDetection, ItemDetectionPayload{
			Type:      ItemDetectionFound,
			Item:      *item,
			GrailItem: *grail,
		})
	}
}

// markSeen records the key and reports whether it was new.
func (s *Service) markSeen(path string, key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.seen[key]; dup {
		return false
	}
	s.seen[key] = struct{}{}

	keys := s.byFile[path]
	if keys == nil {
		keys = make(map[Key]struct{})
		s.byFile[path] = keys
	}
	keys[key] = struct{}{}
	return true
}

func (s *Service) persist(ctx context.Context, grail *catalog.Item, item *monitor.ExtractedItem) {
	if s.store == nil {
		return
	}
	record := &ProgressRecord{
		ItemID:    grail.ID,
		Ethereal:  item.Ethereal,
		Name:      grail.Name,
		Character: item.Character,
		Location:  item.Location,
		FoundAt:   time.Now(),
	}
	if err := s.store.Insert(ctx, record); err != nil {
		// A persistence failure must not block the detection itself.
		s.logger.Error("failed to persist detection",
			zap.String("id", grail.ID),
			zap.Error(err),
		)
	}
}

// ClearSeen resets detection state. With an empty path every key is
// forgotten; with a file path only the keys that file contributed are
// released, from both the per-file record and the global set, so the items
// re-fire on the next parse of any file containing them.
func (s *Service) ClearSeen(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if path == "" {
		s.seen = make(map[Key]struct{})
		s.byFile = make(map[string]map[Key]struct{})
		return
	}

	for key := range s.byFile[path] {
		delete(s.seen, key)
	}
	delete(s.byFile, path)
}

// SeenCount returns the number of distinct (item, ethereal) pairs detected.
func (s *Service) SeenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// Seen reports whether the given pair has already been detected.
func (s *Service) Seen(itemID string, ethereal bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[Key{ItemID: itemID, Ethereal: ethereal}]
	return ok
}

// SeenKeys returns a snapshot of every detected pair, for the stats engine.
func (s *Service) SeenKeys() []Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]Key, 0, len(s.seen))
	for key := range s.seen {
		keys = append(keys, key)
	}
	return keys
}
