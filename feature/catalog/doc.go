// Package catalog holds the static reference list of all trackable
// collectibles and the matcher that resolves decoded save items against it.
//
// It reconciles two sources of truth:
//  1. Built-in data: the fixed rune (33) and runeword (85) sets, which never
//     change at runtime.
//  2. A YAML data file: the unique and set item entries with their category,
//     subcategory and ethereal-capability tags.
//
// # Matching
//
// Matching is deliberately narrow. An item is classified from exactly one of
// its identifying fields (rune type code, runeword name, unique name, set
// name) into a tagged Classification; the rare-name field is never used
// because rare names are randomly generated and collide with real catalog
// names. Lookups go through Normalize on both sides, and two decoder quirks
// are handled centrally: the "Love" -> "Lore" runeword mis-decode, and the
// Rainbow Facet family whose eight variants are only distinguishable through
// hidden magic-attribute markers.
package catalog
