package monitor

import (
	"time"

	"grail-monitor/core/save"
	"grail-monitor/feature/catalog"

	"go.uber.org/zap"
)

// maxSocketDepth bounds recursion into socketed contents. Legitimate saves
// nest at most one level; anything deeper is malformed decoder output.
const maxSocketDepth = 8

// Extractor flattens decoder item trees into grail-relevant ExtractedItems.
type Extractor struct {
	matcher *catalog.Matcher
	logger  *zap.Logger
	now     func() time.Time
}

// NewExtractor creates an extractor backed by the given matcher.
func NewExtractor(matcher *catalog.Matcher, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{matcher: matcher, logger: logger, now: time.Now}
}

// ExtractList appends the grail-relevant items found in raws to out,
// attributing them to the given character and location label. Items without
// any grail-identifying field are skipped entirely. Socketed sub-items are
// extracted as siblings under the same character and location.
func (e *Extractor) ExtractList(raws []save.RawItem, out *[]ExtractedItem, character, location string) {
	e.extract(raws, out, character, location, 0)
}

func (e *Extractor) extract(raws []save.RawItem, out *[]ExtractedItem, character, location string, depth int) {
	if depth > maxSocketDepth {
		e.logger.Warn("socket nesting exceeds depth bound, discarding contents",
			zap.String("character", character),
			zap.Int("depth", depth),
		)
		return
	}

	for i := range raws {
		raw := &raws[i]

		cls := catalog.Classify(raw)
		switch cls.Kind {
		case catalog.KindRune:
			name := raw.TypeName
			if item := e.matcher.Catalog().RuneByCode(cls.Code); item != nil {
				name = item.Name
			}
			*out = append(*out, e.record(raw, name, "rune", character, location))

		case catalog.KindRuneword:
			// The decoder has been observed emitting a runeword name on
			// non-runeword items; only trust names the catalog knows.
			if e.matcher.Catalog().RunewordByName(cls.Name) == nil {
				e.logger.Warn("discarding unrecognized runeword name",
					zap.String("runeword", raw.RunewordName),
					zap.String("character", character),
				)
				break
			}
			*out = append(*out, e.record(raw, cls.Name, "runeword", character, location))

		case catalog.KindUniqueOrSet:
			itemType := "unique"
			if raw.UniqueName == "" {
				itemType = "set"
			}
			*out = append(*out, e.record(raw, cls.Name, itemType, character, location))

		case catalog.KindUnclassified:
			// Expected high-frequency case; not worth logging.
		}

		if len(raw.SocketedItems) > 0 {
			e.extract(raw.SocketedItems, out, character, location, depth+1)
		}
	}
}

func (e *Extractor) record(raw *save.RawItem, name, itemType, character, location string) ExtractedItem {
	flat := *raw
	flat.SocketedItems = nil

	return ExtractedItem{
		Name:      name,
		Type:      itemType,
		Quality:   raw.Quality,
		Level:     raw.Level,
		Ethereal:  raw.Ethereal,
		Sockets:   raw.Sockets,
		Timestamp: e.now(),
		Character: character,
		Location:  location,
		Raw:       flat,
	}
}
