package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from a product or category name.
//
// Examples:
//   - "Pikachu Plush Toy" → "pikachu-plush-toy"
//   - "Flygon T-Shirt (XL)" → "flygon-t-shirt-xl"
func Generate(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))

	// Fold common accented characters to ASCII, then replace everything
	// else non-alphanumeric with hyphens.
	replacer := strings.NewReplacer(
		"é", "e", "è", "e", "ê", "e", "á", "a", "à", "a", "â", "a",
		"í", "i", "ó", "o", "ô", "o", "ú", "u", "ñ", "n", "ç", "c",
	)
	slug = replacer.Replace(slug)

	slug = slugRegexp.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
