// Package affine implements the affine cipher, a classical monoalphabetic
// substitution cipher over the 26 letters A-Z.
//
// A key is a pair of integers (a, b). Each letter at alphabet position x
// (A=0 ... Z=25) is encrypted to position (a*x + b) mod 26 and decrypted with
// (a⁻¹ * (y - b)) mod 26, where a⁻¹ is the inverse of a modulo 26. The key a
// must therefore be coprime with 26; b is free and used modulo 26.
//
// Input is upper-cased before it is transformed. Characters that are not
// letters A-Z after upper-casing (digits, punctuation, whitespace, other
// scripts) are passed through unchanged, so the output keeps the layout of
// the input. Decryption cannot restore the original casing.
//
// The affine cipher offers no security: it falls to frequency analysis and
// has only 312 distinct keys.
//
// Example usage:
//
//	c, err := affine.New(5, 8)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ciphertext, err := c.Encrypt("Hello, World!")
//	if err != nil {
//		log.Fatal(err)
//	}
//	// ciphertext is "RCLLA, OAPLX!"
//
//	plaintext, err := c.Decrypt(ciphertext)
//	if err != nil {
//		log.Fatal(err)
//	}
//	// plaintext is "HELLO, WORLD!"
package affine

import (
	"fmt"

	"github.com/vdparikh/affine/subtle"
)

// AlphabetSize is the modulus of the cipher.
const AlphabetSize = subtle.AlphabetSize

// InvalidKeyError is returned when gcd(a, 26) != 1.
type InvalidKeyError = subtle.InvalidKeyError

// NoInverseError is returned when a modular inverse does not exist.
type NoInverseError = subtle.NoInverseError

var (
	// ErrInvalidKey matches any InvalidKeyError under errors.Is.
	ErrInvalidKey = subtle.ErrInvalidKey

	// ErrNoInverse matches any NoInverseError under errors.Is.
	ErrNoInverse = subtle.ErrNoInverse
)

// Cipher is an affine cipher bound to one key pair.
// It is immutable and safe for concurrent use.
type Cipher struct {
	raw *subtle.Affine
}

// New validates a and returns a Cipher for the key pair (a, b).
// It fails with an InvalidKeyError when a is not coprime with 26.
func New(a, b int) (*Cipher, error) {
	raw, err := subtle.NewAffine(a, b)
	if err != nil {
		return nil, err
	}
	return &Cipher{raw: raw}, nil
}

// NewFromPrimitive wraps an already validated raw primitive.
func NewFromPrimitive(raw *subtle.Affine) *Cipher {
	return &Cipher{raw: raw}
}

// Key returns the key pair of the cipher.
func (c *Cipher) Key() (a, b int) {
	return c.raw.Key()
}

// Encrypt upper-cases text and encrypts every letter A-Z. Other characters
// keep their position and value.
func (c *Cipher) Encrypt(text string) (string, error) {
	out, err := c.apply(text, c.raw.Encrypt)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt: %w", err)
	}
	return out, nil
}

// Decrypt upper-cases ciphertext and decrypts every letter A-Z.
// For every text t, Decrypt(Encrypt(t)) equals Normalize(t).
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	out, err := c.apply(ciphertext, c.raw.Decrypt)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}
	return out, nil
}

func (c *Cipher) apply(text string, fn func([]uint8) ([]uint8, error)) (string, error) {
	normalized := Normalize(text)
	formatMask, positions := SeparateFormatAndData(normalized)

	transformed, err := fn(positions)
	if err != nil {
		return "", err
	}

	return ReconstructWithFormat(transformed, formatMask, normalized), nil
}

// Encrypt encrypts text with the key pair (a, b). The key is validated before
// any character is processed; an invalid a yields an InvalidKeyError and no
// output.
func Encrypt(text string, a, b int) (string, error) {
	c, err := New(a, b)
	if err != nil {
		return "", err
	}
	return c.Encrypt(text)
}

// Decrypt decrypts text with the key pair (a, b) used for encryption.
func Decrypt(text string, a, b int) (string, error) {
	c, err := New(a, b)
	if err != nil {
		return "", err
	}
	return c.Decrypt(text)
}

// ModularInverse returns the smallest x in [1, m-1] with (a * x) mod m == 1,
// or a NoInverseError when there is none.
func ModularInverse(a, m int) (int, error) {
	return subtle.ModularInverse(a, m)
}

// Validate returns an InvalidKeyError unless gcd(a, 26) == 1.
func Validate(a int) error {
	return subtle.Validate(a)
}

var _ Affine = (*Cipher)(nil)
