package model

import (
	"html"
	"regexp"
	"strings"
)

var (
	apostropheRegex = regexp.MustCompile(`[’‘‛❛❜ʻʼʽʾʿˈˊ]`)
	suffixRegex     = regexp.MustCompile(`\b(jr\.?|sr\.?|ii|iii|iv|v)\b`)
	punctRegex      = regexp.MustCompile(`[^\w\s']`)
	spaceRegex      = regexp.MustCompile(`\s+`)
)

// NormalizeName reduces a player name to a canonical matching form. The
// ranking sites disagree on suffixes ("Deebo Samuel Sr."), apostrophe glyphs
// ("Ja’Marr" vs "Ja'Marr") and punctuation, so all of those are stripped
// before names are compared.
func NormalizeName(name string) string {
	name = strings.ToLower(html.UnescapeString(name))
	name = apostropheRegex.ReplaceAllString(name, "'")
	name = suffixRegex.ReplaceAllString(name, "")
	name = punctRegex.ReplaceAllString(name, "")
	name = spaceRegex.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// NameMatches reports whether a name scraped from a ranking site refers to
// the given roster name. Sites often append extra detail ("Josh Allen BUF -
// QB"), so a substring match on the normalized forms is used rather than
// exact equality.
func NameMatches(rosterName, scrapedName string) bool {
	target := NormalizeName(rosterName)
	if target == "" {
		return false
	}
	return strings.Contains(NormalizeName(scrapedName), target)
}
