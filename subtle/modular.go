// Package subtle provides low-level primitives for the affine cipher.
package subtle

// AlphabetSize is the modulus of the cipher: the 26 letters A-Z.
const AlphabetSize = 26

// Mod returns x modulo m as a value in [0, m-1], also when x is negative.
// m must be positive.
func Mod(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

// GCD returns the non-negative greatest common divisor of a and b.
// GCD(0, 0) is 0.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ModularInverse returns the x in [1, m-1] for which (a * x) mod m == 1.
//
// Candidates are searched in ascending order, so the result is the smallest
// such x. A NoInverseError is returned when the search range holds no
// solution, which is the case whenever gcd(a, m) != 1 or m <= 1.
func ModularInverse(a, m int) (int, error) {
	if m <= 1 {
		return 0, &NoInverseError{A: a, Modulus: m}
	}

	// Reducing a first keeps a*x from overflowing for large keys.
	r := Mod(a, m)
	for x := 1; x < m; x++ {
		if (r*x)%m == 1 {
			return x, nil
		}
	}
	return 0, &NoInverseError{A: a, Modulus: m}
}

// Validate reports whether a can serve as the multiplicative key, that is
// whether gcd(a, 26) == 1. It returns an InvalidKeyError otherwise.
func Validate(a int) error {
	if g := GCD(a, AlphabetSize); g != 1 {
		return &InvalidKeyError{A: a, GCD: g}
	}
	return nil
}
