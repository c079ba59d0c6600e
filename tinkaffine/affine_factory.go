// Package tinkaffine provides Tink integration for the affine cipher.
// This file contains the factory function for creating affine primitives from Tink keyset handles.
package tinkaffine

import (
	"fmt"

	"github.com/google/tink/go/keyset"
	"github.com/vdparikh/affine"
	"github.com/vdparikh/affine/subtle"
)

// New creates an affine primitive from the primary key of a Tink keyset handle.
// The KeyManager is registered on first use.
//
// Example:
//
//	handle, err := tinkaffine.NewKeysetHandleFromKey(5, 8)
//	if err != nil {
//	    return err
//	}
//	primitive, err := tinkaffine.New(handle)
//	if err != nil {
//	    return err
//	}
//	ciphertext, err := primitive.Encrypt("attack at dawn")
func New(handle *keyset.Handle) (affine.Affine, error) {
	if handle == nil {
		return nil, fmt.Errorf("keyset handle cannot be nil")
	}

	if err := Register(); err != nil {
		return nil, fmt.Errorf("failed to register key manager: %w", err)
	}

	primitives, err := handle.Primitives()
	if err != nil {
		return nil, fmt.Errorf("failed to get primitives from handle: %w", err)
	}

	primary := primitives.Primary
	if primary == nil {
		return nil, fmt.Errorf("no primary key found in keyset")
	}

	raw, ok := primary.Primitive.(*subtle.Affine)
	if !ok {
		return nil, fmt.Errorf("primary key %d is not an affine key", primary.KeyID)
	}

	return affine.NewFromPrimitive(raw), nil
}
