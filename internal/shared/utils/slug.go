package utils

import (
	"regexp"
	"strings"
)

// slugSpace: ASCII whitespace cộng vertical tab, Unicode separators (NBSP,
// em-space, line/paragraph separator) và BOM
const slugSpace = `\s\v\p{Z}\x{FEFF}`

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9` + slugSpace + `-]`)
	slugWhitespace   = regexp.MustCompile(`[` + slugSpace + `]+`)
	slugDashes       = regexp.MustCompile(`-+`)
)

// Slugify biến free text thành URL-safe identifier
// "Hard Science Fiction" → "hard-science-fiction"
//
// Output chỉ gồm a-z, 0-9 và dấu '-' đơn, không có '-' ở đầu/cuối.
// Slugify(Slugify(x)) == Slugify(x).
func Slugify(text string) string {
	// Step 1: Lowercase
	lower := strings.ToLower(text)

	// Step 2: Remove special characters (keep a-z, 0-9, whitespace, hyphens)
	cleaned := slugInvalidChars.ReplaceAllString(lower, "")

	// Step 3: Whitespace runs → single hyphen
	hyphenated := slugWhitespace.ReplaceAllString(cleaned, "-")

	// Step 4: Collapse consecutive hyphens
	normalized := slugDashes.ReplaceAllString(hyphenated, "-")

	// Step 5: Trim leading/trailing hyphens, then surrounding whitespace
	return strings.TrimSpace(strings.Trim(normalized, "-"))
}
