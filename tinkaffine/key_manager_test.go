package tinkaffine

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/tink/go/keyset"
	tinkpb "github.com/google/tink/go/proto/tink_go_proto"
	"github.com/vdparikh/affine"
	"github.com/vdparikh/affine/subtle"
)

func TestKeyManager_Primitive(t *testing.T) {
	km := NewKeyManager()

	p, err := km.Primitive(EncodeKey(5, 8))
	if err != nil {
		t.Fatalf("Failed to create primitive: %v", err)
	}
	raw, ok := p.(*subtle.Affine)
	if !ok {
		t.Fatalf("Expected *subtle.Affine, got %T", p)
	}
	if a, b := raw.Key(); a != 5 || b != 8 {
		t.Errorf("Key mismatch: got (%d, %d)", a, b)
	}
}

func TestKeyManager_PrimitiveRejectsBadMaterial(t *testing.T) {
	km := NewKeyManager()

	if _, err := km.Primitive([]byte{1, 2, 3}); err == nil {
		t.Error("Expected error for short key material")
	}

	_, err := km.Primitive(EncodeKey(4, 1))
	if !errors.Is(err, affine.ErrInvalidKey) {
		t.Errorf("Expected ErrInvalidKey for a=4, got %v", err)
	}
}

func TestKeyManager_TypeURL(t *testing.T) {
	km := NewKeyManager()
	if km.TypeURL() != AffineKeyTypeURL {
		t.Errorf("TypeURL mismatch: %s", km.TypeURL())
	}
	if !km.DoesSupport(AffineKeyTypeURL) {
		t.Error("KeyManager should support its own type URL")
	}
	if km.DoesSupport("type.googleapis.com/google.crypto.tink.AesGcmKey") {
		t.Error("KeyManager should not support AES-GCM keys")
	}
}

func TestKeyManager_NoKeyGeneration(t *testing.T) {
	km := NewKeyManager()
	if _, err := km.NewKey(nil); !errors.Is(err, ErrKeyGenerationUnsupported) {
		t.Errorf("NewKey: expected ErrKeyGenerationUnsupported, got %v", err)
	}
	if _, err := km.NewKeyData(nil); !errors.Is(err, ErrKeyGenerationUnsupported) {
		t.Errorf("NewKeyData: expected ErrKeyGenerationUnsupported, got %v", err)
	}
}

func TestEncodeDecodeKey(t *testing.T) {
	pairs := [][2]int{{1, 0}, {5, 8}, {-3, -7}, {25, 1 << 40}, {7, -(1 << 40)}}
	for _, pair := range pairs {
		a, b, err := DecodeKey(EncodeKey(pair[0], pair[1]))
		if err != nil {
			t.Fatalf("DecodeKey failed: %v", err)
		}
		if a != pair[0] || b != pair[1] {
			t.Errorf("Expected (%d, %d), got (%d, %d)", pair[0], pair[1], a, b)
		}
	}
}

func TestNewKeysetHandleFromKey(t *testing.T) {
	handle, err := NewKeysetHandleFromKey(7, 3)
	if err != nil {
		t.Fatalf("Failed to create keyset handle: %v", err)
	}

	info := handle.KeysetInfo()
	if len(info.KeyInfo) != 1 {
		t.Fatalf("Expected one key, got %d", len(info.KeyInfo))
	}
	if info.KeyInfo[0].TypeUrl != AffineKeyTypeURL {
		t.Errorf("TypeUrl mismatch: %s", info.KeyInfo[0].TypeUrl)
	}
	if info.KeyInfo[0].Status != tinkpb.KeyStatusType_ENABLED {
		t.Errorf("Key should be enabled, got %v", info.KeyInfo[0].Status)
	}
	if info.PrimaryKeyId != info.KeyInfo[0].KeyId {
		t.Error("Imported key should be primary")
	}
}

func TestNewKeysetHandleFromKey_InvalidKey(t *testing.T) {
	if _, err := NewKeysetHandleFromKey(13, 3); !errors.Is(err, affine.ErrInvalidKey) {
		t.Errorf("Expected ErrInvalidKey, got %v", err)
	}
}

func TestKeysetSerializationRoundTrip(t *testing.T) {
	handle, err := NewKeysetHandleFromKey(11, 20)
	if err != nil {
		t.Fatalf("Failed to create keyset handle: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteKeyset(handle, &buf); err != nil {
		t.Fatalf("Failed to write keyset: %v", err)
	}

	restored, err := ReadKeyset(&buf)
	if err != nil {
		t.Fatalf("Failed to read keyset: %v", err)
	}

	original, err := New(handle)
	if err != nil {
		t.Fatalf("Failed to create primitive: %v", err)
	}
	reloaded, err := New(restored)
	if err != nil {
		t.Fatalf("Failed to create primitive from restored keyset: %v", err)
	}

	plaintext := "Consistent across restarts"
	c1, err := original.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Failed to encrypt: %v", err)
	}
	c2, err := reloaded.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Failed to encrypt: %v", err)
	}
	if c1 != c2 {
		t.Errorf("Restored keyset encrypts differently: %s vs %s", c1, c2)
	}
}

func TestReadKeyset_RejectsGarbage(t *testing.T) {
	if _, err := ReadKeyset(bytes.NewBufferString("not a keyset")); err == nil {
		t.Error("Expected error for malformed keyset")
	}
}

func TestNew_RejectsInvalidStoredKey(t *testing.T) {
	if err := Register(); err != nil {
		t.Fatalf("Failed to register KeyManager: %v", err)
	}

	ks := &tinkpb.Keyset{
		PrimaryKeyId: 42,
		Key: []*tinkpb.Keyset_Key{{
			KeyData: &tinkpb.KeyData{
				TypeUrl:         AffineKeyTypeURL,
				Value:           EncodeKey(2, 0),
				KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
			},
			KeyId:            42,
			Status:           tinkpb.KeyStatusType_ENABLED,
			OutputPrefixType: tinkpb.OutputPrefixType_RAW,
		}},
	}

	var buf bytes.Buffer
	if err := keyset.NewJSONWriter(&buf).Write(ks); err != nil {
		t.Fatalf("Failed to serialize keyset: %v", err)
	}
	handle, err := ReadKeyset(&buf)
	if err != nil {
		t.Fatalf("Failed to read keyset: %v", err)
	}

	_, err = New(handle)
	if err == nil {
		t.Fatal("Expected error for keyset holding a=2")
	}
	if !strings.Contains(err.Error(), "coprime") {
		t.Errorf("Error should report the invalid key, got: %v", err)
	}
}

func TestNew_NilHandle(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("Expected error for nil handle")
	}
}

func TestRegister_Idempotent(t *testing.T) {
	for i := 0; i < 3; i++ {
		if err := Register(); err != nil {
			t.Fatalf("Register call %d failed: %v", i, err)
		}
	}
}
