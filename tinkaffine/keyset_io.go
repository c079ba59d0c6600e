package tinkaffine

import (
	"fmt"
	"io"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
)

// WriteKeyset writes handle to w as a cleartext JSON keyset.
// Affine keys carry no secrecy worth protecting, so no AEAD is involved.
func WriteKeyset(handle *keyset.Handle, w io.Writer) error {
	if err := insecurecleartextkeyset.Write(handle, keyset.NewJSONWriter(w)); err != nil {
		return fmt.Errorf("failed to write keyset: %w", err)
	}
	return nil
}

// ReadKeyset reads a cleartext JSON keyset written by WriteKeyset.
func ReadKeyset(r io.Reader) (*keyset.Handle, error) {
	handle, err := insecurecleartextkeyset.Read(keyset.NewJSONReader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to read keyset: %w", err)
	}
	return handle, nil
}
