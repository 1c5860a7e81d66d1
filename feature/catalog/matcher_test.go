package catalog

import (
	"testing"

	"grail-monitor/core/save"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	items := BuiltinRunes()
	items = append(items, BuiltinRunewords()...)
	items = append(items,
		Item{ID: "shako", Name: "Harlequin Crest", Type: TypeUnique, Category: CategoryArmor, SubCategory: "helms", Ethereal: EtherealOptional},
		Item{ID: "tal_rasha_lidless_eye", Name: "Tal Rasha's Lidless Eye", Type: TypeSet, Category: CategorySets, Ethereal: EtherealNone},
		Item{ID: "mara_kaleidoscope", Name: "Mara's Kaleidoscope", Type: TypeUnique, Category: CategoryJewelry, Ethereal: EtherealNone},
		Item{ID: FacetID("cold", "death"), Name: "Rainbow Facet", Type: TypeUnique, Category: CategoryJewelry, Ethereal: EtherealNone},
		Item{ID: FacetID("fire", "levelup"), Name: "Rainbow Facet", Type: TypeUnique, Category: CategoryJewelry, Ethereal: EtherealNone},
	)
	return New(items)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Lowercase", "Lore", "lore"},
		{"Apostrophe", "Mara's Kaleidoscope", "maraskaleidoscope"},
		{"Spaces", "Heart of the Oak", "heartoftheoak"},
		{"Diacritics", "Márá's Kaleidoscope", "maraskaleidoscope"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestBuiltinData(t *testing.T) {
	assert.Len(t, BuiltinRunes(), TotalRunes)
	assert.Len(t, BuiltinRunewords(), TotalRunewords)

	classic := 0
	for _, rw := range BuiltinRunewords() {
		if rw.PatchVersion != PatchResurrected24 {
			classic++
		}
	}
	assert.Equal(t, TotalRunewordsClassic, classic)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  save.RawItem
		want Classification
	}{
		{
			"RuneCode",
			save.RawItem{Type: "r30"},
			Classification{Kind: KindRune, Code: "r30"},
		},
		{
			"RunewordWinsOverBase",
			save.RawItem{Type: "ltp", RunewordName: "Spirit"},
			Classification{Kind: KindRuneword, Name: "Spirit"},
		},
		{
			"RunewordDecoderBug",
			save.RawItem{RunewordName: "Love"},
			Classification{Kind: KindRuneword, Name: "Lore"},
		},
		{
			"UniqueName",
			save.RawItem{UniqueName: "Harlequin Crest"},
			Classification{Kind: KindUniqueOrSet, Name: "Harlequin Crest"},
		},
		{
			"SetName",
			save.RawItem{SetName: "Tal Rasha's Lidless Eye"},
			Classification{Kind: KindUniqueOrSet, Name: "Tal Rasha's Lidless Eye"},
		},
		{
			"RareNameNeverConsidered",
			save.RawItem{RareName: "Harlequin Crest"},
			Classification{Kind: KindUnclassified},
		},
		{
			"Plain",
			save.RawItem{Type: "hdm"},
			Classification{Kind: KindUnclassified},
		},
		{
			"OutOfRangeRuneCode",
			save.RawItem{Type: "r34"},
			Classification{Kind: KindUnclassified},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(&tt.raw))
		})
	}
}

func TestMatcher_Resolve(t *testing.T) {
	m := NewMatcher(testCatalog())

	t.Run("BerRuneByCode", func(t *testing.T) {
		item := m.Resolve(&save.RawItem{Type: "r30"})
		require.NotNil(t, item)
		assert.Equal(t, "rune_r30", item.ID)
		assert.Equal(t, "Ber Rune", item.Name)
	})

	t.Run("LoveResolvesToLore", func(t *testing.T) {
		love := m.Resolve(&save.RawItem{RunewordName: "Love"})
		lore := m.Resolve(&save.RawItem{RunewordName: "Lore"})
		require.NotNil(t, love)
		require.NotNil(t, lore)
		assert.Equal(t, lore.ID, love.ID)
	})

	t.Run("UniqueByNormalizedName", func(t *testing.T) {
		item := m.Resolve(&save.RawItem{UniqueName: "harlequin crest"})
		require.NotNil(t, item)
		assert.Equal(t, "shako", item.ID)
	})

	t.Run("SetByName", func(t *testing.T) {
		item := m.Resolve(&save.RawItem{SetName: "Tal Rasha's Lidless Eye"})
		require.NotNil(t, item)
		assert.Equal(t, "tal_rasha_lidless_eye", item.ID)
	})

	t.Run("RareNameReturnsNil", func(t *testing.T) {
		assert.Nil(t, m.Resolve(&save.RawItem{RareName: "Harlequin Crest"}))
	})

	t.Run("UnknownNameReturnsNil", func(t *testing.T) {
		assert.Nil(t, m.Resolve(&save.RawItem{UniqueName: "Totally Made Up"}))
	})

	t.Run("FacetVariants", func(t *testing.T) {
		coldDeath := m.Resolve(&save.RawItem{
			UniqueName: "Rainbow Facet",
			MagicAttributes: []save.MagicAttribute{
				{Name: "item_skillondeath"},
				{Name: "passive_cold_pierce"},
			},
		})
		require.NotNil(t, coldDeath)
		assert.Equal(t, FacetID("cold", "death"), coldDeath.ID)

		fireLevelUp := m.Resolve(&save.RawItem{
			UniqueName: "Rainbow Facet",
			MagicAttributes: []save.MagicAttribute{
				{Name: "passive_fire_pierce"},
				{Name: "item_skillonlevelup"},
			},
		})
		require.NotNil(t, fireLevelUp)
		assert.Equal(t, FacetID("fire", "levelup"), fireLevelUp.ID)
	})

	t.Run("FacetWithoutMarkersReturnsNil", func(t *testing.T) {
		assert.Nil(t, m.Resolve(&save.RawItem{UniqueName: "Rainbow Facet"}))
	})
}

func TestMatcher_SetCatalog(t *testing.T) {
	m := NewMatcher(New(nil))
	assert.Nil(t, m.Resolve(&save.RawItem{Type: "r30"}))

	m.SetCatalog(testCatalog())
	assert.NotNil(t, m.Resolve(&save.RawItem{Type: "r30"}))
}
