// Package tinkaffine provides Tink integration for the affine cipher.
// This file contains the KeyManager that registers affine keys with Tink's registry.
package tinkaffine

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/tink/go/core/registry"
	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	tinkpb "github.com/google/tink/go/proto/tink_go_proto"
	"github.com/vdparikh/affine/subtle"
	"google.golang.org/protobuf/proto"
)

const (
	// AffineKeyTypeURL is the type URL for affine keys in Tink's registry.
	AffineKeyTypeURL = "type.googleapis.com/vdparikh.affine.AffineKey"

	// keySize is the length of serialized key material: a and b as
	// big-endian int64 values.
	keySize = 16
)

// ErrKeyGenerationUnsupported is returned by NewKey and NewKeyData. Affine
// keys are chosen by the user and imported with NewKeysetHandleFromKey.
var ErrKeyGenerationUnsupported = errors.New("affine keys cannot be generated, import them with NewKeysetHandleFromKey")

// KeyManager implements registry.KeyManager for affine keys.
type KeyManager struct {
	typeURL string
}

// NewKeyManager creates a new affine key manager.
func NewKeyManager() *KeyManager {
	return &KeyManager{
		typeURL: AffineKeyTypeURL,
	}
}

// Primitive decodes serialized key material and returns a *subtle.Affine.
func (km *KeyManager) Primitive(serializedKey []byte) (interface{}, error) {
	a, b, err := DecodeKey(serializedKey)
	if err != nil {
		return nil, err
	}

	f, err := subtle.NewAffine(a, b)
	if err != nil {
		return nil, fmt.Errorf("failed to create affine primitive: %w", err)
	}
	return f, nil
}

// DoesSupport returns true if this KeyManager supports the given key type URL.
func (km *KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == km.typeURL
}

// TypeURL returns the type URL of the keys managed by this KeyManager.
func (km *KeyManager) TypeURL() string {
	return km.typeURL
}

// NewKey always fails: there is no key generation for affine keys.
func (km *KeyManager) NewKey(serializedKeyTemplate []byte) (proto.Message, error) {
	return nil, ErrKeyGenerationUnsupported
}

// NewKeyData always fails: there is no key generation for affine keys.
func (km *KeyManager) NewKeyData(serializedKeyTemplate []byte) (*tinkpb.KeyData, error) {
	return nil, ErrKeyGenerationUnsupported
}

// Verify that KeyManager implements registry.KeyManager
var _ registry.KeyManager = (*KeyManager)(nil)

// EncodeKey serializes the key pair (a, b) into key material.
func EncodeKey(a, b int) []byte {
	buf := make([]byte, keySize)
	binary.BigEndian.PutUint64(buf[:8], uint64(int64(a)))
	binary.BigEndian.PutUint64(buf[8:], uint64(int64(b)))
	return buf
}

// DecodeKey is the inverse of EncodeKey. It does not validate a.
func DecodeKey(serializedKey []byte) (a, b int, err error) {
	if len(serializedKey) != keySize {
		return 0, 0, fmt.Errorf("invalid key size: %d bytes (must be %d)", len(serializedKey), keySize)
	}
	a = int(int64(binary.BigEndian.Uint64(serializedKey[:8])))
	b = int(int64(binary.BigEndian.Uint64(serializedKey[8:])))
	return a, b, nil
}

// NewKeysetHandleFromKey creates a keyset handle holding the key pair (a, b)
// as its only, primary key.
//
// Example:
//
//	handle, err := tinkaffine.NewKeysetHandleFromKey(5, 8)
//	if err != nil {
//		log.Fatal(err)
//	}
//	primitive, err := tinkaffine.New(handle)
//
// Note: This creates an unencrypted keyset.
func NewKeysetHandleFromKey(a, b int) (*keyset.Handle, error) {
	if err := subtle.Validate(a); err != nil {
		return nil, err
	}

	// Generate a unique key ID
	keyIDBytes := make([]byte, 4)
	if _, err := rand.Read(keyIDBytes); err != nil {
		return nil, fmt.Errorf("failed to generate key ID: %w", err)
	}
	keyID := binary.BigEndian.Uint32(keyIDBytes)
	if keyID == 0 {
		keyID = 1
	}

	keyData := &tinkpb.KeyData{
		TypeUrl:         AffineKeyTypeURL,
		Value:           EncodeKey(a, b),
		KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
	}

	keysetKey := &tinkpb.Keyset_Key{
		KeyData:          keyData,
		KeyId:            keyID,
		Status:           tinkpb.KeyStatusType_ENABLED,
		OutputPrefixType: tinkpb.OutputPrefixType_RAW,
	}

	ks := &tinkpb.Keyset{
		PrimaryKeyId: keyID,
		Key:          []*tinkpb.Keyset_Key{keysetKey},
	}

	buf := &keyset.MemReaderWriter{Keyset: ks}
	return insecurecleartextkeyset.Read(buf)
}
