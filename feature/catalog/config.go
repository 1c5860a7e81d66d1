package catalog

// Config holds configuration for the item catalog.
type Config struct {
	// Path is the YAML data file with the unique and set entries. Empty
	// loads only the built-in rune and runeword entries.
	Path string `mapstructure:"path" default:""`
}
