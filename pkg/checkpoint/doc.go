// Package checkpoint saves and resumes crawl progress.
//
// A checkpoint is written when a run stops early (a listing page could not
// be fetched, or the export failed). It records the next listing page to
// request and the posts collected so far, so `crawl --resume` continues
// without fetching those posts again.
//
// Checkpoints are stored per community and author in platform-specific data
// directories:
//   - Linux: $XDG_DATA_HOME/cafecrawler/checkpoints/ (~/.local/share by default)
//   - macOS: ~/Library/Application Support/cafecrawler/checkpoints/
//   - Windows: %APPDATA%/cafecrawler/checkpoints/
//
// Files are replaced atomically and carry a version number.
package checkpoint
