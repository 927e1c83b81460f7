// Package logger provides the structured logging interface used across the crawler.
//
// It wraps zerolog with a small interface that components receive through
// their constructors. There is no package-level logger: the command builds
// one with New and passes it down.
//
// A Journal can be attached to record every emitted (timestamp, level,
// message) entry for the run, which is later exported as JSON:
//
//	journal := logger.NewJournal()
//	log, err := logger.New(&cfg.Logging, logger.WithJournal(journal))
//	...
//	_ = journal.ExportJSON("crawl-log.json")
//
// TestLogger captures messages in memory for assertions in tests.
package logger
