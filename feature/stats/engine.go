package stats

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"grail-monitor/feature/catalog"
	"grail-monitor/feature/monitor"

	"go.uber.org/zap"
)

// soundThrottle is the minimum gap between two sound-trigger callbacks.
const soundThrottle = 1000 * time.Millisecond

// existCounts are the memoized existence totals of one category under one
// settings combination.
type existCounts struct {
	normal   int
	ethereal int
}

// Engine computes grail completion statistics over a catalog and an
// ownership set. It keeps two pieces of state across computations: the
// memoized category existence totals, and the previous computation's owned
// ids for the newly-found diff.
type Engine struct {
	logger *zap.Logger

	mu       sync.Mutex
	catalog  *catalog.Catalog
	exists   map[string]existCounts
	previous map[string]struct{}

	soundFn   func()
	lastSound time.Time
	now       func() time.Time
}

// NewEngine creates a stats engine over the given catalog.
func NewEngine(logger *zap.Logger, c *catalog.Catalog) *Engine {
	return &Engine{
		logger:   logger,
		catalog:  c,
		exists:   make(map[string]existCounts),
		previous: make(map[string]struct{}),
		now:      time.Now,
	}
}

// SetCatalog swaps the catalog and invalidates the memoized totals.
func (e *Engine) SetCatalog(c *catalog.Catalog) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.catalog = c
	e.exists = make(map[string]existCounts)
}

// SetSoundTrigger installs the callback fired when a computation discovers
// newly found items. Calls are throttled and suppressed in manual mode.
func (e *Engine) SetSoundTrigger(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.soundFn = fn
}

// ResetPrevious forgets the previous computation's owned set, so the next
// computation reports every owned id as newly found.
func (e *Engine) ResetPrevious() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.previous = make(map[string]struct{})
}

// cacheKey encodes the settings toggles that change existence totals.
func cacheKey(category string, s Settings) string {
	return fmt.Sprintf("%s|n:%t|e:%t|sep:%t|v:%s", category, s.GrailNormal, s.GrailEthereal, s.EtherealSeparate, s.GameVersion)
}

// ComputeSub computes the owned/exists tallies of one unique/set category.
func (e *Engine) ComputeSub(category string, owned *Ownership, settings Settings) SubStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.computeSub(category, owned, settings)
}

func (e *Engine) computeSub(category string, owned *Ownership, settings Settings) SubStats {
	template := e.categoryTemplate(category)
	counts := e.existsFor(category, template, settings)

	var sub SubStats

	if settings.Merged() {
		// Merged ledger: either form counts once, toward the normal bucket.
		sub.Normal.Exists = counts.normal
		for _, item := range template {
			if owned.HasEither(item.ID) {
				sub.Normal.Owned++
			}
		}
		sub.Normal = finalize(sub.Normal)
		return sub
	}

	if settings.GrailNormal {
		sub.Normal.Exists = counts.normal
		for _, item := range template {
			if item.Ethereal != catalog.EtherealOnly && owned.HasNormal(item.ID) {
				sub.Normal.Owned++
			}
		}
		sub.Normal = finalize(sub.Normal)
	}

	if settings.GrailEthereal {
		sub.Ethereal.Exists = counts.ethereal
		for _, item := range template {
			if item.Ethereal != catalog.EtherealNone && owned.HasEthereal(item.ID) {
				sub.Ethereal.Owned++
			}
		}
		sub.Ethereal = finalize(sub.Ethereal)
	}

	return sub
}

// existsFor returns the memoized existence totals of one category.
func (e *Engine) existsFor(category string, template []catalog.Item, settings Settings) existCounts {
	key := cacheKey(category, settings)
	if counts, ok := e.exists[key]; ok {
		return counts
	}

	var counts existCounts
	if settings.Merged() {
		// Every item is obtainable in some form.
		counts.normal = len(template)
	} else {
		for _, item := range template {
			if settings.GrailNormal && item.Ethereal != catalog.EtherealOnly {
				counts.normal++
			}
			if settings.GrailEthereal && item.Ethereal != catalog.EtherealNone {
				counts.ethereal++
			}
		}
	}

	e.exists[key] = counts
	return counts
}

func (e *Engine) categoryTemplate(category string) []catalog.Item {
	var out []catalog.Item
	for _, item := range e.catalog.Items() {
		if item.Category != category {
			continue
		}
		if item.Type == catalog.TypeUnique || item.Type == catalog.TypeSet {
			out = append(out, item)
		}
	}
	return out
}

// runeStats tallies the flat rune category. Runes have no ethereal form.
func (e *Engine) runeStats(owned *Ownership, settings Settings) Bucket {
	var b Bucket
	if !settings.IncludeRunes {
		return b
	}
	b.Exists = catalog.TotalRunes
	for _, item := range e.catalog.ItemsOfType(catalog.TypeRune) {
		if owned.HasEither(item.ID) {
			b.Owned++
		}
	}
	return finalize(b)
}

// runewordStats tallies the flat runeword category. Classic excludes
// runewords introduced in patch 2.4.
func (e *Engine) runewordStats(owned *Ownership, settings Settings) Bucket {
	var b Bucket
	if !settings.IncludeRunewords {
		return b
	}

	classic := settings.GameVersion == GameVersionClassic
	if classic {
		b.Exists = catalog.TotalRunewordsClassic
	} else {
		b.Exists = catalog.TotalRunewords
	}

	for _, item := range e.catalog.ItemsOfType(catalog.TypeRuneword) {
		if classic && item.PatchVersion == catalog.PatchResurrected24 {
			continue
		}
		if owned.HasEither(item.ID) {
			b.Owned++
		}
	}
	return finalize(b)
}

// Compute runs one full computation: every unique/set category, the flat
// rune and runeword categories, a combined total, and the newly-found diff
// against the previous call. The sound trigger fires at most once per
// computation, throttled and never in manual mode.
func (e *Engine) Compute(owned *Ownership, settings Settings) Stats {
	e.mu.Lock()

	stats := Stats{
		Categories: make(map[string]SubStats, 4),
	}

	categories := []string{
		catalog.CategoryArmor,
		catalog.CategoryWeapons,
		catalog.CategoryJewelry,
		catalog.CategorySets,
	}
	for _, category := range categories {
		sub := e.computeSub(category, owned, settings)
		stats.Categories[category] = sub
		stats.Total.Exists += sub.Normal.Exists + sub.Ethereal.Exists
		stats.Total.Owned += sub.Normal.Owned + sub.Ethereal.Owned
	}

	stats.Runes = e.runeStats(owned, settings)
	stats.Runewords = e.runewordStats(owned, settings)
	stats.Total.Exists += stats.Runes.Exists + stats.Runewords.Exists
	stats.Total.Owned += stats.Runes.Owned + stats.Runewords.Owned
	stats.Total = finalize(stats.Total)

	current := e.ownedUnion(owned, settings)
	for id := range current {
		if _, seen := e.previous[id]; !seen {
			stats.NewlyFoundIDs = append(stats.NewlyFoundIDs, id)
		}
	}
	sort.Strings(stats.NewlyFoundIDs)
	e.previous = current

	fire := e.soundDecision(stats.NewlyFoundIDs, settings)
	e.mu.Unlock()

	if fire != nil {
		fire()
		e.logger.Debug("sound trigger fired", zap.Int("newly_found", len(stats.NewlyFoundIDs)))
	}
	return stats
}

// ownedUnion collects every owned id relevant under the settings.
func (e *Engine) ownedUnion(owned *Ownership, settings Settings) map[string]struct{} {
	union := make(map[string]struct{})
	for _, item := range e.catalog.Items() {
		switch item.Type {
		case catalog.TypeRune:
			if !settings.IncludeRunes {
				continue
			}
		case catalog.TypeRuneword:
			if !settings.IncludeRunewords {
				continue
			}
			if settings.GameVersion == GameVersionClassic && item.PatchVersion == catalog.PatchResurrected24 {
				continue
			}
		}
		if owned.HasEither(item.ID) {
			union[item.ID] = struct{}{}
		}
	}
	return union
}

// soundDecision decides under the lock whether the callback fires and hands
// it back. The caller invokes it after unlocking, so a callback that calls
// back into the engine cannot deadlock.
func (e *Engine) soundDecision(newlyFound []string, settings Settings) func() {
	if e.soundFn == nil || len(newlyFound) == 0 {
		return nil
	}
	if settings.GameMode == monitor.GameModeManual {
		return nil
	}
	now := e.now()
	if now.Sub(e.lastSound) < soundThrottle {
		return nil
	}
	e.lastSound = now
	return e.soundFn
}

// finalize fills in the derived fields of a bucket. A category is never
// reported as 100% unless owned equals exists exactly.
func finalize(b Bucket) Bucket {
	b.Remaining = b.Exists - b.Owned
	b.Percent = percent(b.Owned, b.Exists)
	return b
}

func percent(owned, exists int) int {
	if exists <= 0 {
		return 0
	}
	p := int(math.Round(float64(owned) / float64(exists) * 100))
	if p >= 100 && owned != exists {
		p = 99
	}
	return p
}
