package parsing

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// keyReplacer strips the punctuation the stats server drops from file-safe names
var keyReplacer = strings.NewReplacer(
	" ", "-",
	".", "",
	"'", "",
)

// NormalizeName converts a display name into the key used to join documents:
// lowercase, spaces become hyphens, periods and apostrophes are removed.
func NormalizeName(name string) string {
	return keyReplacer.Replace(strings.ToLower(name))
}

// TitleCaseKey turns a normalized key back into a display name,
// e.g. "iron-valiant" becomes "Iron Valiant".
func TitleCaseKey(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "-", " "))
	return cases.Title(language.English).String(strings.Join(words, " "))
}
