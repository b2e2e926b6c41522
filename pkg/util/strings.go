package util

import (
	"regexp"
	"strings"
)

var whitespaceRegexp = regexp.MustCompile(`\s+`)

// CollapseSpaces replaces every run of whitespace with a single space and
// trims both ends. The source site pads its markup with newlines and tabs,
// so every scraped text fragment goes through this before matching.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(whitespaceRegexp.ReplaceAllString(s, " "))
}

var diacriticFolds = map[rune]rune{
	'ă': 'a',
	'Ă': 'A',
	'â': 'a',
	'Â': 'A',
	'î': 'i',
	'Î': 'I',
	'ș': 's',
	'Ș': 'S',
	'ț': 't',
	'Ț': 'T',
	// Legacy cedilla forms, still present in parts of the site
	'ş': 's',
	'Ş': 'S',
	'ţ': 't',
	'Ţ': 'T',
}

// FoldDiacritics maps Romanian diacritics to their base Latin letters.
// Everything else passes through unchanged.
func FoldDiacritics(s string) string {
	return strings.Map(func(r rune) rune {
		if folded, ok := diacriticFolds[r]; ok {
			return folded
		}
		return r
	}, s)
}
