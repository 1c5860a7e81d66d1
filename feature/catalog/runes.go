package catalog

import "fmt"

// TotalRunes is the fixed number of distinct runes in the game.
const TotalRunes = 33

var runeNames = []string{
	"El", "Eld", "Tir", "Nef", "Eth", "Ith", "Tal", "Ral", "Ort", "Thul",
	"Amn", "Sol", "Shael", "Dol", "Hel", "Io", "Lum", "Ko", "Fal", "Lem",
	"Pul", "Um", "Mal", "Ist", "Gul", "Vex", "Ohm", "Lo", "Sur", "Ber",
	"Jah", "Cham", "Zod",
}

// BuiltinRunes returns the 33 rune entries with their "r01".."r33" type
// codes. Runes never spawn ethereal.
func BuiltinRunes() []Item {
	items := make([]Item, 0, len(runeNames))
	for i, name := range runeNames {
		code := fmt.Sprintf("r%02d", i+1)
		items = append(items, Item{
			ID:       "rune_" + code,
			Name:     name + " Rune",
			Code:     code,
			Type:     TypeRune,
			Ethereal: EtherealNone,
		})
	}
	return items
}
