// Package stats computes grail completion statistics: owned versus existing
// counts per category and item form, with a newly-found diff against the
// previous computation.
//
// Existence totals depend only on the catalog and the settings toggles, so
// they are memoized per (category, toggles) key. The rune and runeword
// totals are fixed game constants rather than catalog counts; the runeword
// total shrinks under the Classic game version, which predates the patch
// 2.4 runewords.
//
// When both item forms are tracked on a merged ledger, an item found in
// either form counts once toward the normal bucket. This mirrors the
// merged completion display and is intentional.
package stats
