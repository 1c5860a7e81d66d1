package detection

import (
	"context"
	"testing"

	"grail-monitor/core/eventbus"
	"grail-monitor/core/save"
	"grail-monitor/feature/catalog"
	"grail-monitor/feature/monitor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCatalog() *catalog.Catalog {
	items := []catalog.Item{
		{ID: "shako", Name: "Harlequin Crest", Type: catalog.TypeUnique, Category: catalog.CategoryArmor, Ethereal: catalog.EtherealOptional},
		{ID: "windforce", Name: "Windforce", Type: catalog.TypeUnique, Category: catalog.CategoryWeapons, Ethereal: catalog.EtherealOptional},
		{ID: "tal_rasha_mask", Name: "Tal Rasha's Horadric Crest", Type: catalog.TypeSet, Category: catalog.CategorySets},
	}
	items = append(items, catalog.BuiltinRunes()...)
	items = append(items, catalog.BuiltinRunewords()...)
	return catalog.New(items)
}

func newTestService(t *testing.T, parser FileParser) (*Service, *[]ItemDetectionPayload) {
	t.Helper()

	bus := eventbus.New(zap.NewNop())
	var events []ItemDetectionPayload
	_, _ = bus.On(eventbus.TopicItemDetection, func(payload any) error {
		events = append(events, payload.(ItemDetectionPayload))
		return nil
	})

	matcher := catalog.NewMatcher(testCatalog())
	svc := NewService(zap.NewNop(), bus, matcher, nil, parser)
	return svc, &events
}

func uniqueItem(name string, ethereal bool) monitor.ExtractedItem {
	return monitor.ExtractedItem{
		Name:     name,
		Ethereal: ethereal,
		Raw:      save.RawItem{Quality: save.QualityUnique, UniqueName: name, Ethereal: ethereal},
	}
}

func TestAnalyzeSaveFirstObservationFiresOnce(t *testing.T) {
	svc, events := newTestService(t, nil)
	ctx := context.Background()

	source := monitor.SaveSource{Path: "/saves/Sorc.d2s", Name: "Sorc"}
	items := []monitor.ExtractedItem{uniqueItem("Harlequin Crest", false)}

	svc.AnalyzeSave(ctx, source, items)
	require.Len(t, *events, 1)
	assert.Equal(t, ItemDetectionFound, (*events)[0].Type)
	assert.Equal(t, "shako", (*events)[0].GrailItem.ID)

	// The same item on a later parse pass of the same file.
	svc.AnalyzeSave(ctx, source, items)
	assert.Len(t, *events, 1)

	// The same item on a different character.
	other := monitor.SaveSource{Path: "/saves/Pala.d2s", Name: "Pala"}
	svc.AnalyzeSave(ctx, other, items)
	assert.Len(t, *events, 1)

	assert.Equal(t, 1, svc.SeenCount())
}

func TestAnalyzeSaveEtherealFormsAreDistinct(t *testing.T) {
	svc, events := newTestService(t, nil)
	ctx := context.Background()
	source := monitor.SaveSource{Path: "/saves/Sorc.d2s", Name: "Sorc"}

	svc.AnalyzeSave(ctx, source, []monitor.ExtractedItem{uniqueItem("Windforce", false)})
	require.Len(t, *events, 1)

	svc.AnalyzeSave(ctx, source, []monitor.ExtractedItem{uniqueItem("Windforce", true)})
	require.Len(t, *events, 2)
	assert.True(t, (*events)[1].Item.Ethereal)

	assert.True(t, svc.Seen("windforce", false))
	assert.True(t, svc.Seen("windforce", true))
}

func TestAnalyzeSaveIgnoresUnresolvableItems(t *testing.T) {
	svc, events := newTestService(t, nil)
	ctx := context.Background()
	source := monitor.SaveSource{Path: "/saves/Sorc.d2s", Name: "Sorc"}

	items := []monitor.ExtractedItem{
		{Name: "Some Magic Ring", Raw: save.RawItem{Quality: save.QualityMagic, Type: "rin"}},
		uniqueItem("Not In Catalog", false),
	}
	svc.AnalyzeSave(ctx, source, items)
	assert.Empty(t, *events)
	assert.Equal(t, 0, svc.SeenCount())
}

func TestNewServiceNilLoggerDoesNotPanic(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	matcher := catalog.NewMatcher(testCatalog())
	svc := NewService(nil, bus, matcher, nil, nil)

	// Nil items with no parser configured hits the warn path.
	source := monitor.SaveSource{Path: "/saves/Sorc.d2s", Name: "Sorc"}
	assert.NotPanics(t, func() {
		svc.AnalyzeSave(context.Background(), source, nil)
	})
}

func TestSeedFromRecordsSuppressesPersistedForms(t *testing.T) {
	svc, events := newTestService(t, nil)
	ctx := context.Background()

	svc.SeedFromRecords([]ProgressRecord{
		{ItemID: "shako", Ethereal: false},
	})

	source := monitor.SaveSource{Path: "/saves/Sorc.d2s", Name: "Sorc"}
	svc.AnalyzeSave(ctx, source, []monitor.ExtractedItem{
		uniqueItem("Harlequin Crest", false),
		uniqueItem("Harlequin Crest", true),
	})

	// Only the ethereal form is new.
	require.Len(t, *events, 1)
	assert.True(t, (*events)[0].Item.Ethereal)
}

type stubParser struct {
	source monitor.SaveSource
	items  []monitor.ExtractedItem
	calls  int
}

func (p *stubParser) ParseFile(_ context.Context, _ string) (monitor.SaveSource, []monitor.ExtractedItem, error) {
	p.calls++
	return p.source, p.items, nil
}

func TestAnalyzeSaveEmptySliceUsedAsIs(t *testing.T) {
	parser := &stubParser{
		items: []monitor.ExtractedItem{uniqueItem("Harlequin Crest", false)},
	}
	svc, events := newTestService(t, parser)

	source := monitor.SaveSource{Path: "/saves/Sorc.d2s", Name: "Sorc"}
	svc.AnalyzeSave(context.Background(), source, []monitor.ExtractedItem{})

	assert.Zero(t, parser.calls)
	assert.Empty(t, *events)
}

func TestAnalyzeSaveNilItemsParsesFile(t *testing.T) {
	parser := &stubParser{
		source: monitor.SaveSource{Path: "/saves/Sorc.d2s", Name: "Sorc"},
		items:  []monitor.ExtractedItem{uniqueItem("Harlequin Crest", false)},
	}
	svc, events := newTestService(t, parser)

	svc.AnalyzeSave(context.Background(), monitor.SaveSource{Path: "/saves/Sorc.d2s"}, nil)

	assert.Equal(t, 1, parser.calls)
	require.Len(t, *events, 1)
	assert.Equal(t, "shako", (*events)[0].GrailItem.ID)
}

func TestClearSeenPerFileReleasesOnlyThatFilesKeys(t *testing.T) {
	svc, events := newTestService(t, nil)
	ctx := context.Background()

	sorc := monitor.SaveSource{Path: "/saves/Sorc.d2s", Name: "Sorc"}
	pala := monitor.SaveSource{Path: "/saves/Pala.d2s", Name: "Pala"}

	svc.AnalyzeSave(ctx, sorc, []monitor.ExtractedItem{uniqueItem("Harlequin Crest", false)})
	svc.AnalyzeSave(ctx, pala, []monitor.ExtractedItem{uniqueItem("Windforce", false)})
	require.Len(t, *events, 2)

	svc.ClearSeen(sorc.Path)
	assert.False(t, svc.Seen("shako", false))
	assert.True(t, svc.Seen("windforce", false))

	// The released item re-fires, even from another file.
	svc.AnalyzeSave(ctx, pala, []monitor.ExtractedItem{uniqueItem("Harlequin Crest", false)})
	assert.Len(t, *events, 3)
}

func TestClearSeenAllResetsEverything(t *testing.T) {
	svc, events := newTestService(t, nil)
	ctx := context.Background()
	source := monitor.SaveSource{Path: "/saves/Sorc.d2s", Name: "Sorc"}

	svc.AnalyzeSave(ctx, source, []monitor.ExtractedItem{
		uniqueItem("Harlequin Crest", false),
		uniqueItem("Windforce", true),
	})
	require.Len(t, *events, 2)
	require.Equal(t, 2, svc.SeenCount())

	svc.ClearSeen("")
	assert.Equal(t, 0, svc.SeenCount())

	svc.AnalyzeSave(ctx, source, []monitor.ExtractedItem{uniqueItem("Harlequin Crest", false)})
	assert.Len(t, *events, 3)
}
