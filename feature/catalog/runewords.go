package catalog

// Runeword totals are fixed by the game version: Resurrected added seven
// runewords in patch 2.4 on top of the original set.
const (
	TotalRunewords        = 85
	TotalRunewordsClassic = 78
)

// PatchResurrected24 tags runewords that do not exist under the Classic
// game version.
const PatchResurrected24 = "2.4"

var classicRunewordNames = []string{
	"Ancient's Pledge", "Beast", "Black", "Bone", "Bramble", "Brand",
	"Breath of the Dying", "Call to Arms", "Chains of Honor", "Chaos",
	"Crescent Moon", "Death", "Delirium", "Destruction", "Doom", "Dragon",
	"Dream", "Duress", "Edge", "Enigma", "Enlightenment", "Eternity",
	"Exile", "Faith", "Famine", "Fortitude", "Fury", "Gloom", "Grief",
	"Hand of Justice", "Harmony", "Heart of the Oak", "Holy Thunder",
	"Honor", "Ice", "Infinity", "Insight", "King's Grace", "Kingslayer",
	"Last Wish", "Lawbringer", "Leaf", "Lionheart", "Lore", "Malice",
	"Melody", "Memory", "Myth", "Nadir", "Oath", "Obedience", "Passion",
	"Peace", "Phoenix", "Pride", "Principle", "Prudence", "Radiance",
	"Rain", "Rhyme", "Rift", "Sanctuary", "Silence", "Smoke", "Spirit",
	"Splendor", "Stealth", "Steel", "Stone", "Strength", "Treachery",
	"Venom", "Voice of Reason", "Wealth", "White", "Wind", "Wrath",
	"Zephyr",
}

var patch24RunewordNames = []string{
	"Flickering Flame", "Mist", "Obsession", "Pattern", "Plague",
	"Unbending Will", "Wisdom",
}

// BuiltinRunewords returns all runeword entries. Runewords are effects, not
// physical items, so they have no ethereal dimension.
func BuiltinRunewords() []Item {
	items := make([]Item, 0, len(classicRunewordNames)+len(patch24RunewordNames))
	for _, name := range classicRunewordNames {
		items = append(items, Item{
			ID:       "runeword_" + Normalize(name),
			Name:     name,
			Type:     TypeRuneword,
			Ethereal: EtherealNone,
		})
	}
	for _, name := range patch24RunewordNames {
		items = append(items, Item{
			ID:           "runeword_" + Normalize(name),
			Name:         name,
			Type:         TypeRuneword,
			Ethereal:     EtherealNone,
			PatchVersion: PatchResurrected24,
		})
	}
	return items
}
