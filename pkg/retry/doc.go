// Package retry provides backoff and retry logic for transient request failures.
//
// Errors are classified through the kinds in pkg/errors: network failures,
// rate limiting and server errors are retried, everything else is returned
// on the first attempt. KindBackoff selects a longer delay for rate limiting
// than for a dropped connection.
//
//	body, err := retry.DoWithResult(ctx, cfg, func(ctx context.Context) ([]byte, error) {
//		return fetch(ctx, url)
//	})
package retry
