package affine

// IsLetter reports whether r is one of the 26 uppercase Latin letters.
func IsLetter(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// LetterToPosition returns the zero-based alphabet position of an
// uppercase letter (A=0 ... Z=25).
func LetterToPosition(r rune) uint8 {
	return uint8(r - 'A')
}

// PositionToLetter is the inverse of LetterToPosition.
func PositionToLetter(p uint8) rune {
	return 'A' + rune(p)
}
