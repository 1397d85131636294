package bot

import (
	"fmt"
	"regexp"
	"strings"
)

const maxSlugLen = 100

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugRuns     = regexp.MustCompile(`[\s-]+`)
)

// Slugify derives a URL-safe identifier from a title: lowercase,
// ASCII letters and digits only, hyphen-separated, at most 100 characters.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = slugRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
		slug = strings.TrimRight(slug, "-")
	}

	return slug
}

type slugStore interface {
	SlugExists(slug string) (bool, error)
}

// AllocateSlug resolves collisions against existing posts by appending
// -1, -2, ... until an unused slug is found. The suffix counts against
// the 100-char limit, so a base at the cap is trimmed to make room.
// The check is not atomic against concurrent writers; the unique index
// on posts.slug is the final arbiter and a violation surfaces as a
// publish failure.
func AllocateSlug(store slugStore, title string) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "post"
	}

	slug := base
	for counter := 1; ; counter++ {
		exists, err := store.SlugExists(slug)
		if err != nil {
			return "", fmt.Errorf("slug lookup: %w", err)
		}
		if !exists {
			return slug, nil
		}

		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > maxSlugLen {
			trimmed = strings.TrimRight(trimmed[:maxSlugLen-len(suffix)], "-")
		}
		slug = trimmed + suffix
	}
}
