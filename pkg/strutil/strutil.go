// Package strutil provides user-facing string helpers.
package strutil

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// StrLen counts user-perceived characters (extended grapheme clusters), so
// "é" written with a combining accent and emoji sequences count as one.
func StrLen(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// EqStr compares two strings ignoring case and surrounding whitespace.
func EqStr(a, b string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(a)) == fold.String(strings.TrimSpace(b))
}

var groupPrinter = message.NewPrinter(language.English)

// FormatWithUnderscores groups digits by thousands with '_', e.g. 1_000_000.
func FormatWithUnderscores(v uint64) string {
	return strings.ReplaceAll(groupPrinter.Sprintf("%d", v), ",", "_")
}
