// Package slug derives URL-safe identifiers from display names and keeps
// them unique within a table by numeric suffixing. Categories and products
// share the same algorithm; both regenerate the slug whenever the name
// changes, excluding the record's own identity from the uniqueness check.
package slug

import (
	"context"
	"fmt"

	gosimple "github.com/gosimple/slug"
)

// ExistsFunc reports whether a candidate slug is already taken by another
// record. Implementations must exclude the record being saved.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// maxAttempts bounds the suffix search. The pre-check races under
// concurrent writers either way; the DB unique constraint is the backstop.
const maxAttempts = 1000

// Make lowercases and hyphenates name into a base slug.
func Make(name string) string {
	return gosimple.Make(name)
}

// MakeUnique derives the base slug from name, then appends -1, -2, … until
// exists reports the candidate free.
func MakeUnique(ctx context.Context, name string, exists ExistsFunc) (string, error) {
	base := Make(name)
	if base == "" {
		return "", fmt.Errorf("name %q produces an empty slug", name)
	}

	candidate := base
	for counter := 1; counter <= maxAttempts; counter++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
	return "", fmt.Errorf("no free slug found for %q after %d attempts", name, maxAttempts)
}
