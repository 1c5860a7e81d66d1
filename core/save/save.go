package save

// Item quality codes as produced by the decoder.
const (
	QualityLow      = 1
	QualityNormal   = 2
	QualitySuperior = 3
	QualityMagic    = 4
	QualitySet      = 5
	QualityRare     = 6
	QualityUnique   = 7
	QualityCrafted  = 8
)

// MagicAttribute is a single decoded magic property of an item.
type MagicAttribute struct {
	ID     int
	Name   string
	Values []int
}

// RawItem is the decoder's native per-item shape. Instances are transient;
// they exist only for the duration of one parse pass and must never be held
// across parses.
type RawItem struct {
	// Type is the three-letter item code (e.g. "r30" for a Ber rune).
	Type     string
	TypeName string
	Quality  int
	Level    int

	Ethereal bool
	Sockets  int

	// Exactly one of the name fields below identifies a grail-relevant item.
	// RareName is decoder output for randomly generated rare names and must
	// never be used for catalog matching.
	UniqueName   string
	SetName      string
	RareName     string
	RunewordName string

	MagicAttributes []MagicAttribute

	// SocketedItems holds the items socketed into this one, in socket order.
	SocketedItems []RawItem

	// Location is the decoder's slot label (inventory, stash, equipped, ...).
	Location string
}

// Header is the decoded character-save header.
type Header struct {
	Name       string
	Class      int
	Level      int
	Hardcore   bool
	Expansion  bool
	LastPlayed int64
}

// CharacterFile is the decoded form of a .d2s character save.
type CharacterFile struct {
	Header      Header
	Items       []RawItem
	MercItems   []RawItem
	CorpseItems []RawItem
}

// StashPage is a single page of a shared stash.
type StashPage struct {
	Items []RawItem
}

// StashFile is the decoded form of a .d2i shared-stash file.
type StashFile struct {
	Hardcore   bool
	SharedGold int
	Pages      []StashPage
}

// Decoder decodes character save files. The binary format itself is owned by
// an external library; this interface is the only contract the monitor
// depends on.
type Decoder interface {
	Decode(data []byte) (*CharacterFile, error)
}

// StashDecoder decodes shared-stash files.
type StashDecoder interface {
	DecodeStash(data []byte) (*StashFile, error)
}
