package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"grail-monitor/core/save"
)

// Kind is the mutually exclusive classification of a raw save item.
type Kind int

const (
	KindUnclassified Kind = iota
	KindRune
	KindRuneword
	KindUniqueOrSet
)

// Classification is the tagged result of shape-sniffing a raw item. Exactly
// one identifying field is carried depending on Kind.
type Classification struct {
	Kind Kind
	// Code is the rune type code for KindRune.
	Code string
	// Name is the runeword or unique/set name for the other matched kinds,
	// with decoder-bug corrections already applied.
	Name string
}

// runeCodePattern matches the two-digit rune item codes r01 through r33.
var runeCodePattern = regexp.MustCompile(`^r(0[1-9]|[12][0-9]|3[0-3])$`)

// Classify derives the grail classification of a raw item from its
// identifying fields. The rare name field is deliberately never consulted:
// rare items carry randomly generated names that can coincidentally collide
// with real catalog names.
func Classify(raw *save.RawItem) Classification {
	switch {
	case runeCodePattern.MatchString(raw.Type):
		return Classification{Kind: KindRune, Code: raw.Type}
	case raw.RunewordName != "":
		return Classification{Kind: KindRuneword, Name: CorrectRunewordName(raw.RunewordName)}
	case raw.UniqueName != "":
		return Classification{Kind: KindUniqueOrSet, Name: raw.UniqueName}
	case raw.SetName != "":
		return Classification{Kind: KindUniqueOrSet, Name: raw.SetName}
	default:
		return Classification{Kind: KindUnclassified}
	}
}

// CorrectRunewordName applies the known decoder bug fix: the decoder emits
// "Love" for the runeword Lore. All other names pass through unchanged.
func CorrectRunewordName(name string) string {
	if Normalize(name) == "love" {
		return "Lore"
	}
	return name
}

// Matcher resolves raw save items against a catalog.
type Matcher struct {
	catalog *Catalog
}

// NewMatcher creates a matcher for the given catalog.
func NewMatcher(c *Catalog) *Matcher {
	return &Matcher{catalog: c}
}

// SetCatalog swaps the catalog used for lookups. It does not re-evaluate
// anything resolved earlier.
func (m *Matcher) SetCatalog(c *Catalog) {
	m.catalog = c
}

// Catalog returns the active catalog.
func (m *Matcher) Catalog() *Catalog {
	return m.catalog
}

// Resolve maps a raw item to its stable catalog entry, or nil when the item
// is not grail-relevant or the lookup fails. It never returns an error:
// unresolvable items are an expected, high-frequency case.
func (m *Matcher) Resolve(raw *save.RawItem) *Item {
	if m.catalog == nil {
		return nil
	}

	cls := Classify(raw)
	switch cls.Kind {
	case KindRune:
		return m.catalog.RuneByCode(cls.Code)
	case KindRuneword:
		return m.catalog.RunewordByName(cls.Name)
	case KindUniqueOrSet:
		if Normalize(cls.Name) == facetFamilyKey {
			return m.resolveFacet(raw)
		}
		return m.catalog.UniqueOrSetByName(cls.Name)
	default:
		return nil
	}
}

// The Rainbow Facet family shares one display name across eight catalog
// entries; the concrete variant is encoded in hidden magic attributes
// (trigger: on death vs on level-up, element: one of four pierces).
const facetFamilyKey = "rainbowfacet"

const (
	attrSkillOnDeath   = "item_skillondeath"
	attrSkillOnLevelUp = "item_skillonlevelup"
)

var facetElementAttrs = map[string]string{
	"passive_cold_pierce": "cold",
	"passive_fire_pierce": "fire",
	"passive_ltng_pierce": "lightning",
	"passive_pois_pierce": "poison",
}

// FacetID builds the catalog id of a Rainbow Facet variant.
func FacetID(element, trigger string) string {
	return fmt.Sprintf("rainbow_facet_%s_%s", element, trigger)
}

func (m *Matcher) resolveFacet(raw *save.RawItem) *Item {
	var trigger, element string
	for _, attr := range raw.MagicAttributes {
		name := strings.ToLower(attr.Name)
		switch name {
		case attrSkillOnDeath:
			trigger = "death"
		case attrSkillOnLevelUp:
			trigger = "levelup"
		default:
			if el, ok := facetElementAttrs[name]; ok {
				element = el
			}
		}
	}

	if trigger == "" || element == "" {
		return nil
	}
	return m.catalog.ByID(FacetID(element, trigger))
}
