// Package ratelimit spaces requests to the community so the crawl does not
// trip its abuse defenses.
//
// Interval enforces the fixed delay between successive listing pages.
// SlidingWindow caps the total request rate of a session (detail pages and
// comment threads included).
package ratelimit
