package subtle

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey matches every InvalidKeyError under errors.Is.
	ErrInvalidKey = errors.New("key 'a' must be coprime with 26")

	// ErrNoInverse matches every NoInverseError under errors.Is.
	ErrNoInverse = errors.New("no modular inverse")
)

// InvalidKeyError is returned when the multiplicative key shares a factor
// with the alphabet size and therefore cannot define a bijective mapping.
type InvalidKeyError struct {
	A   int
	GCD int
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key a = %d: gcd(%d, %d) = %d, key 'a' must be coprime with %d",
		e.A, e.A, AlphabetSize, e.GCD, AlphabetSize)
}

// Is makes errors.Is(err, ErrInvalidKey) hold.
func (e *InvalidKeyError) Is(target error) bool {
	return target == ErrInvalidKey
}

// NoInverseError is returned when a has no inverse modulo Modulus.
type NoInverseError struct {
	A       int
	Modulus int
}

func (e *NoInverseError) Error() string {
	return fmt.Sprintf("no modular inverse for a = %d under mod %d", e.A, e.Modulus)
}

// Is makes errors.Is(err, ErrNoInverse) hold.
func (e *NoInverseError) Is(target error) bool {
	return target == ErrNoInverse
}
