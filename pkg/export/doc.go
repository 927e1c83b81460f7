// Package export renders a crawled corpus as a Markdown document tree.
//
// The tree is one INDEX.md listing every post in corpus order plus one file
// per post, linked relatively:
//
//	out/
//	  INDEX.md
//	  Hello_World.md
//	  Hello_World_2.md
//	  article.md
//
// File names are derived from titles with SanitizeFilename. Titles that
// sanitize to the same name get numeric suffixes in corpus order, so the
// same corpus always produces the same files.
package export
