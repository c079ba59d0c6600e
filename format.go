package affine

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize upper-cases text with full Unicode case mapping, so that for
// example "ß" becomes "SS". Characters without an uppercase form are left
// as they are.
func Normalize(text string) string {
	// A Caser keeps state between calls and must not be shared.
	return cases.Upper(language.Und).String(text)
}

// SeparateFormatAndData splits normalized text into a format mask and the
// alphabet positions of its letters. The mask has one entry per decoded
// character: true marks a format character (anything outside A-Z, including
// bytes that are not valid UTF-8) that is carried over byte for byte, false
// marks a letter whose position is in the returned slice.
func SeparateFormatAndData(s string) ([]bool, []uint8) {
	formatMask := make([]bool, 0, len(s))
	positions := make([]uint8, 0, len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if IsLetter(r) {
			positions = append(positions, LetterToPosition(r))
			formatMask = append(formatMask, false)
		} else {
			formatMask = append(formatMask, true)
		}
		i += size
	}

	return formatMask, positions
}

// ReconstructWithFormat rebuilds a string from transformed letter positions,
// copying the raw bytes of format characters from original where formatMask
// is set. original must be the string the mask was computed from.
func ReconstructWithFormat(positions []uint8, formatMask []bool, original string) string {
	var sb strings.Builder
	sb.Grow(len(original))
	dataIdx := 0

	for i, k := 0, 0; k < len(formatMask); k++ {
		_, size := utf8.DecodeRuneInString(original[i:])
		if formatMask[k] {
			sb.WriteString(original[i : i+size])
		} else {
			sb.WriteRune(PositionToLetter(positions[dataIdx]))
			dataIdx++
		}
		i += size
	}

	return sb.String()
}
