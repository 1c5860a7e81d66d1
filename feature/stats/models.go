package stats

// Game versions. Classic predates the patch that added new runewords, so
// those entries do not exist under it.
const (
	GameVersionClassic     = "classic"
	GameVersionResurrected = "resurrected"
)

// Settings select which parts of the grail are tracked.
type Settings struct {
	// GrailNormal and GrailEthereal enable tracking of the two item forms.
	// When both are enabled and EtherealSeparate is false, an item found in
	// either form counts once toward the normal bucket and the ethereal
	// bucket collapses. EtherealSeparate keeps the two ledgers independent.
	GrailNormal      bool   `mapstructure:"normal" default:"true"`
	GrailEthereal    bool   `mapstructure:"ethereal" default:"false"`
	EtherealSeparate bool   `mapstructure:"ethereal_separate" default:"false"`
	IncludeRunes     bool   `mapstructure:"runes" default:"true"`
	IncludeRunewords bool   `mapstructure:"runewords" default:"true"`
	GameVersion      string `mapstructure:"game_version" default:"resurrected"`
	GameMode         string `mapstructure:"game_mode" default:"softcore"`
}

// Merged reports whether both forms are tracked on one shared ledger.
func (s Settings) Merged() bool {
	return s.GrailNormal && s.GrailEthereal && !s.EtherealSeparate
}

// Bucket is one owned/exists tally.
type Bucket struct {
	Exists    int `json:"exists"`
	Owned     int `json:"owned"`
	Remaining int `json:"remaining"`
	Percent   int `json:"percent"`
}

// SubStats is the per-category breakdown into the two item forms.
type SubStats struct {
	Normal   Bucket `json:"normal"`
	Ethereal Bucket `json:"ethereal"`
}

// Stats is one full computation over every tracked category.
type Stats struct {
	Categories map[string]SubStats `json:"categories"`
	Runes      Bucket              `json:"runes"`
	Runewords  Bucket              `json:"runewords"`
	Total      Bucket              `json:"total"`
	// NewlyFoundIDs are the owned ids absent from the previous computation.
	NewlyFoundIDs []string `json:"newly_found_ids"`
}

// Ownership is the input to a stats computation: which catalog ids are owned
// in which form. It is a plain value assembled by the caller from detection
// state; the engine never mutates it.
type Ownership struct {
	normal   map[string]struct{}
	ethereal map[string]struct{}
}

// NewOwnership creates an empty ownership set.
func NewOwnership() *Ownership {
	return &Ownership{
		normal:   make(map[string]struct{}),
		ethereal: make(map[string]struct{}),
	}
}

// Add records one owned (id, form) pair.
func (o *Ownership) Add(id string, ethereal bool) {
	if ethereal {
		o.ethereal[id] = struct{}{}
	} else {
		o.normal[id] = struct{}{}
	}
}

// HasNormal reports ownership of the normal form.
func (o *Ownership) HasNormal(id string) bool {
	_, ok := o.normal[id]
	return ok
}

// HasEthereal reports ownership of the ethereal form.
func (o *Ownership) HasEthereal(id string) bool {
	_, ok := o.ethereal[id]
	return ok
}

// HasEither reports ownership of the item in any form.
func (o *Ownership) HasEither(id string) bool {
	return o.HasNormal(id) || o.HasEthereal(id)
}
