package tinkaffine

import (
	"sync"

	"github.com/google/tink/go/core/registry"
)

var registerMu sync.Mutex

// Register registers the affine KeyManager with Tink's global registry.
// It is safe to call more than once.
func Register() error {
	registerMu.Lock()
	defer registerMu.Unlock()

	if _, err := registry.GetKeyManager(AffineKeyTypeURL); err == nil {
		return nil
	}
	return registry.RegisterKeyManager(NewKeyManager())
}
