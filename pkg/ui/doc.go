// Package ui holds the console side of the crawler: colored output, the
// progress line, the run summary table and end-of-run notifications.
// The full-screen monitor lives in the tui subpackage.
package ui
