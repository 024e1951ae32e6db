package recipekit

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// decorative holds emoji blocks and the checkbox glyph that recipe plugins
// put in front of ingredient lines.
var decorative = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x25a2, Hi: 0x25a2, Stride: 1}, // ▢
	},
	R32: []unicode.Range32{
		{Lo: 0x1f1e0, Hi: 0x1f1ff, Stride: 1}, // flags
		{Lo: 0x1f300, Hi: 0x1f5ff, Stride: 1}, // symbols & pictographs
		{Lo: 0x1f600, Hi: 0x1f64f, Stride: 1}, // emoticons
		{Lo: 0x1f680, Hi: 0x1f6ff, Stride: 1}, // transport & map symbols
	},
}

// StripDecorative removes emoji and checkbox glyphs from s and trims the result.
func StripDecorative(s string) string {
	out, _, err := transform.String(runes.Remove(runes.In(decorative)), s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(out)
}

// ReplaceNBSP replaces non-breaking spaces with plain spaces.
func ReplaceNBSP(s string) string {
	return strings.ReplaceAll(s, "\u00a0", " ")
}

// CleanText trims s and replaces non-breaking spaces with plain spaces.
func CleanText(s string) string {
	return ReplaceNBSP(strings.TrimSpace(s))
}

// CollapseSpace replaces every run of whitespace, including non-breaking
// spaces, with a single space and trims the ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// MinutesDuration formats a minute count as an ISO-8601 duration ("PT15M").
func MinutesDuration(minutes string) string {
	return "PT" + strings.TrimSpace(minutes) + "M"
}

// StripQuery drops everything from the first "?" on.
func StripQuery(src string) string {
	before, _, _ := strings.Cut(src, "?")
	return before
}
