// Package crawler runs one author crawl: it authenticates, walks the
// author's listing page by page, gathers comment threads and hands the
// corpus to an exporter.
//
// The Coordinator owns the run lifecycle and its statistics. The Paginator
// does the collection and contains per-entry failures; a listing failure
// truncates the corpus instead of discarding it, and the remainder can be
// picked up later from a checkpoint.
//
//	coord := crawler.NewCoordinator(auth, paginator, exporter, log,
//		crawler.WithCheckpoints(store, resume))
//	if !coord.Run(ctx, cfg) {
//		os.Exit(1)
//	}
package crawler
