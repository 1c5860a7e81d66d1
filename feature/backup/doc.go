// Package backup copies parsed save files into object storage.
//
// The service subscribes to save-file events instead of hooking the parse
// path, so a slow or unavailable storage backend never delays parsing.
// Each save file keeps a bounded history of timestamped copies under
// saves/<name>/; older copies are pruned past the retention count.
package backup
