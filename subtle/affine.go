package subtle

import "fmt"

// Affine implements the raw affine transform on alphabet positions
// (A=0 ... Z=25) for a fixed key pair.
//
// Thread safety: an Affine is immutable after construction and safe for
// concurrent use by multiple goroutines.
type Affine struct {
	a, b int

	// Key material reduced modulo AlphabetSize, and the inverse of a.
	ra, rb, inv int
}

// NewAffine validates a and returns an Affine for the pair (a, b).
// b is unconstrained and is used modulo 26.
func NewAffine(a, b int) (*Affine, error) {
	if err := Validate(a); err != nil {
		return nil, err
	}
	inv, err := ModularInverse(a, AlphabetSize)
	if err != nil {
		return nil, err
	}
	return &Affine{
		a:   a,
		b:   b,
		ra:  Mod(a, AlphabetSize),
		rb:  Mod(b, AlphabetSize),
		inv: inv,
	}, nil
}

// Key returns the key pair the Affine was built from, unreduced.
func (f *Affine) Key() (a, b int) {
	return f.a, f.b
}

// Inverse returns the modular inverse of a modulo 26.
func (f *Affine) Inverse() int {
	return f.inv
}

// EncryptPosition maps x to (a*x + b) mod 26.
func (f *Affine) EncryptPosition(x int) int {
	return (f.ra*Mod(x, AlphabetSize) + f.rb) % AlphabetSize
}

// DecryptPosition maps y to (a⁻¹ * (y - b)) mod 26.
func (f *Affine) DecryptPosition(y int) int {
	return Mod(f.inv*(Mod(y, AlphabetSize)-f.rb), AlphabetSize)
}

// Encrypt applies EncryptPosition to every element of positions and returns
// a new slice. Every position must lie in [0, 25].
func (f *Affine) Encrypt(positions []uint8) ([]uint8, error) {
	return f.transform(positions, f.EncryptPosition)
}

// Decrypt is the inverse of Encrypt.
func (f *Affine) Decrypt(positions []uint8) ([]uint8, error) {
	return f.transform(positions, f.DecryptPosition)
}

func (f *Affine) transform(positions []uint8, fn func(int) int) ([]uint8, error) {
	out := make([]uint8, len(positions))
	for i, p := range positions {
		if p >= AlphabetSize {
			return nil, fmt.Errorf("position %d out of range at index %d (must be < %d)", p, i, AlphabetSize)
		}
		out[i] = uint8(fn(int(p)))
	}
	return out, nil
}
