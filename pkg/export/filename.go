package export

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	// FallbackName is used when nothing of a title survives sanitizing
	FallbackName = "article"

	// IndexName is the index document; no post may take it
	IndexName = "INDEX"

	maxNameLength = 50
)

// SanitizeFilename derives a file name (without extension) from a title.
// Letters, digits, space, '-' and '_' are kept, spaces become '_' and the
// result is cut to 50 characters.
func SanitizeFilename(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		}
	}

	name := []rune(b.String())
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	if len(name) == 0 {
		return FallbackName
	}
	return string(name)
}

// nameAllocator hands out distinct names within one export. Names are
// compared case-insensitively so the tree survives case-insensitive filesystems.
type nameAllocator struct {
	used map[string]bool
}

func newNameAllocator() *nameAllocator {
	return &nameAllocator{used: map[string]bool{strings.ToLower(IndexName): true}}
}

// allocate returns base, or base_2, base_3, ... for the first unused variant
func (a *nameAllocator) allocate(base string) string {
	name := base
	for n := 2; a.used[strings.ToLower(name)]; n++ {
		name = fmt.Sprintf("%s_%d", base, n)
	}
	a.used[strings.ToLower(name)] = true
	return name
}
