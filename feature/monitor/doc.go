// Package monitor implements the save-file monitoring feature.
//
// It owns the watch lifecycle over the configured save directories, coalesces
// bursty filesystem change notifications, and drives batched parsing of
// character saves and shared stashes through the bounded-concurrency
// executor. Decoded items are flattened (including recursive socket
// contents) into normalized ExtractedItems and handed to the detection
// service.
//
// # Debounce design
//
// Every raw filesystem notification increments a change counter and stamps
// the change time. A periodic tick triggers a parse pass only once the
// debounce delay has elapsed since the last change AND the counter has
// advanced past the last processed value. Because the trigger is
// counter-based rather than purely time-based, a change that arrives while a
// parse is in flight is never dropped: it produces exactly one follow-up
// pass once the debounce window elapses again.
//
// # Components
//
//   - Monitor: lifecycle, watcher, tick loop, parse passes.
//   - Extractor: raw item tree flattening and grail classification.
//   - Handler: HTTP endpoints to start, stop and force parses.
package monitor
