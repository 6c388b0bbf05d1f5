package services

import (
	"strings"
	"unicode"
)

// pictographRanges covers the emoji and pictographic blocks that show up in
// review text. Variation selectors and joiners are included so composed
// emoji sequences are removed cleanly.
var pictographRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2190, Hi: 0x21FF, Stride: 1}, // arrows
		{Lo: 0x2600, Hi: 0x27BF, Stride: 1}, // misc symbols, dingbats
		{Lo: 0x2B00, Hi: 0x2BFF, Stride: 1}, // misc symbols and arrows
		{Lo: 0xFE00, Hi: 0xFE0F, Stride: 1}, // variation selectors
	},
	R32: []unicode.Range32{
		{Lo: 0x1F000, Hi: 0x1F0FF, Stride: 1}, // mahjong, dominoes, cards
		{Lo: 0x1F100, Hi: 0x1F2FF, Stride: 1}, // enclosed alphanumerics
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1}, // misc symbols and pictographs
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1}, // emoticons
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1}, // transport
		{Lo: 0x1F700, Hi: 0x1F77F, Stride: 1}, // alchemical
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1}, // supplemental symbols
		{Lo: 0x1FA00, Hi: 0x1FAFF, Stride: 1}, // extended pictographs
	},
}

const zeroWidthJoiner = rune(0x200D)

// Normalize strips pictographic/emoji code points, collapses runs of
// whitespace (including newlines and tabs) to a single space and trims the
// result. It is pure, total and idempotent; whitespace-only input yields "".
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == zeroWidthJoiner || unicode.Is(pictographRanges, r) {
			continue
		}
		b.WriteRune(r)
	}

	fields := strings.FieldsFunc(b.String(), unicode.IsSpace)
	return strings.Join(fields, " ")
}
