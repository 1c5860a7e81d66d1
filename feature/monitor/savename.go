package monitor

import (
	"path/filepath"
	"strings"
)

// Save-file extensions.
const (
	extCharacter = ".d2s"
	extStash     = ".d2i"
)

// SaveNameFromPath derives the display name of a save file. Character saves
// display as their filename without extension. Shared-stash files display as
// "Shared Stash Hardcore" or "Shared Stash Softcore": an explicit hardcore
// override takes precedence, otherwise the name falls back to a
// case-insensitive substring check on the filename. The override is ignored
// for non-stash files.
func SaveNameFromPath(path string, hardcoreOverride *bool) string {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))

	if ext != extStash {
		return strings.TrimSuffix(base, filepath.Ext(base))
	}

	hardcore := strings.Contains(strings.ToLower(base), "hardcore")
	if hardcoreOverride != nil {
		hardcore = *hardcoreOverride
	}
	if hardcore {
		return "Shared Stash Hardcore"
	}
	return "Shared Stash Softcore"
}

var characterClasses = map[int]string{
	0: "Amazon",
	1: "Sorceress",
	2: "Necromancer",
	3: "Paladin",
	4: "Barbarian",
	5: "Druid",
	6: "Assassin",
}

// CharacterClass maps the decoder's class id to a class name. Ids outside
// 0-6 map to "unknown".
func CharacterClass(id int) string {
	if name, ok := characterClasses[id]; ok {
		return name
	}
	return "unknown"
}

// IsSaveFile reports whether the path looks like a watched save file.
func IsSaveFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extCharacter, extStash:
		return true
	default:
		return false
	}
}
