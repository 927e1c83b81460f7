// Package storage writes documents into an output directory.
//
// Files are written to a temporary sibling and renamed into place, so a
// reader never observes a half-written document and an interrupted run
// leaves the previous version intact. Names are plain file names; anything
// containing a path separator is rejected.
package storage
