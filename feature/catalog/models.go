package catalog

// ItemType classifies a catalog entry.
type ItemType string

const (
	TypeUnique   ItemType = "unique"
	TypeSet      ItemType = "set"
	TypeRune     ItemType = "rune"
	TypeRuneword ItemType = "runeword"
)

// EtherealCapability describes which forms of an item can exist.
type EtherealCapability string

const (
	// EtherealNone items can never spawn ethereal.
	EtherealNone EtherealCapability = "none"
	// EtherealOptional items spawn in both forms.
	EtherealOptional EtherealCapability = "optional"
	// EtherealOnly items always spawn ethereal.
	EtherealOnly EtherealCapability = "only"
)

// Top-level categories used by the stats engine.
const (
	CategoryArmor   = "armor"
	CategoryWeapons = "weapons"
	CategoryJewelry = "jewelry"
	CategorySets    = "sets"
)

// Item is a static reference entry for one trackable collectible.
// Instances are immutable after catalog construction.
type Item struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Code        string             `yaml:"code,omitempty"`
	Type        ItemType           `yaml:"type"`
	Category    string             `yaml:"category,omitempty"`
	SubCategory string             `yaml:"subcategory,omitempty"`
	Ethereal    EtherealCapability `yaml:"ethereal,omitempty"`
	// PatchVersion is the game patch that introduced the entry. Runewords
	// tagged "2.4" do not exist under the Classic game version.
	PatchVersion string `yaml:"patch,omitempty"`
}

// Catalog is the static reference list of all trackable entries, with
// derived lookup indexes. Built once, never mutated.
type Catalog struct {
	items []Item

	byID            map[string]*Item
	runesByCode     map[string]*Item
	runewordsByName map[string]*Item
	namesByKey      map[string]*Item
}

// New builds a catalog with its lookup indexes from the given entries.
// Item ids must be globally unique; a later duplicate silently wins so that
// user-supplied catalog files can override built-in entries.
func New(items []Item) *Catalog {
	c := &Catalog{
		items:           items,
		byID:            make(map[string]*Item, len(items)),
		runesByCode:     make(map[string]*Item),
		runewordsByName: make(map[string]*Item),
		namesByKey:      make(map[string]*Item),
	}

	for i := range items {
		item := &c.items[i]
		c.byID[item.ID] = item

		switch item.Type {
		case TypeRune:
			c.runesByCode[item.Code] = item
		case TypeRuneword:
			c.runewordsByName[Normalize(item.Name)] = item
		case TypeUnique, TypeSet:
			c.namesByKey[Normalize(item.Name)] = item
		}
	}

	return c
}

// ByID returns the entry with the given id, or nil.
func (c *Catalog) ByID(id string) *Item {
	return c.byID[id]
}

// RuneByCode returns the rune with the given type code (e.g. "r30"), or nil.
func (c *Catalog) RuneByCode(code string) *Item {
	return c.runesByCode[code]
}

// RunewordByName returns the runeword matching the normalized name, or nil.
func (c *Catalog) RunewordByName(name string) *Item {
	return c.runewordsByName[Normalize(name)]
}

// UniqueOrSetByName returns the unique or set item matching the normalized
// name, or nil.
func (c *Catalog) UniqueOrSetByName(name string) *Item {
	return c.namesByKey[Normalize(name)]
}

// Items returns all entries in the catalog.
func (c *Catalog) Items() []Item {
	return c.items
}

// ItemsOfType returns all entries of the given type.
func (c *Catalog) ItemsOfType(t ItemType) []Item {
	var out []Item
	for _, item := range c.items {
		if item.Type == t {
			out = append(out, item)
		}
	}
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.items)
}
