// Package detection reconciles items extracted from save files against the
// grail catalog and reports each (item, ethereal form) pair exactly once.
//
// The dedup set is global across all save sources: a Harlequin Crest found
// on a second character after one was already seen is not news. Ethereal and
// normal forms count separately. Detections persist as progress records and
// re-seed the set on startup so a restart does not re-announce items still
// sitting in a save file.
//
// Clearing is either global or per file. A per-file clear releases the keys
// that file contributed from the global set too, so the items fire again on
// the next parse pass of any file containing them.
package detection
