package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk shape of a catalog data file.
type catalogFile struct {
	Items []Item `yaml:"items"`
}

// Load builds the full catalog: the built-in rune and runeword entries plus
// the unique and set items read from the YAML data file at path. An empty
// path yields a catalog with only the built-in entries, which is enough for
// rune and runeword tracking.
func Load(path string) (*Catalog, error) {
	items := BuiltinRunes()
	items = append(items, BuiltinRunewords()...)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}

		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse catalog file: %w", err)
		}

		for _, item := range file.Items {
			if item.Ethereal == "" {
				item.Ethereal = EtherealNone
			}
			items = append(items, item)
		}
	}

	return New(items), nil
}
