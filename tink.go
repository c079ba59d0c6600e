// This file defines the Affine primitive interface. For Tink keyset
// integration, see the tinkaffine package.

package affine

// Affine is a Tink-style primitive for the affine cipher, in the mould of
// tink.DeterministicAEAD: the same key and input always give the same output.
type Affine interface {
	// Encrypt upper-cases text and substitutes every letter A-Z.
	// Other characters are kept in place.
	Encrypt(text string) (string, error)

	// Decrypt is the inverse of Encrypt on upper-cased text.
	Decrypt(ciphertext string) (string, error)
}
