// Package auth issues and verifies PASETO access tokens for accounts.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/summerplanapp/summerplan-server/internal/errors"
)

const (
	// PASETO v4 requires a 256-bit (32-byte) symmetric key.
	keyLength = 32
	// Expected hex-encoded length (32 bytes = 64 hex characters).
	keyHexLength = 64
)

// LoadOrGenerateKey loads or generates the PASETO v4 symmetric key.
// The key lives in <dataPath>/auth.key as a hex-encoded string; a missing
// file triggers generation so first boot needs no setup.
func LoadOrGenerateKey(dataPath string) ([]byte, error) {
	keyPath := filepath.Join(dataPath, "auth.key")

	if keyBytes, err := os.ReadFile(keyPath); err == nil {
		keyHex := strings.TrimSpace(string(keyBytes))
		if len(keyHex) != keyHexLength {
			return nil, errors.Internal("auth key file has wrong length", nil)
		}
		key, err := hex.DecodeString(keyHex)
		if err != nil {
			return nil, errors.Internal("auth key file is not valid hex", err)
		}
		return key, nil
	}

	key := make([]byte, keyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Internal("failed to generate auth key", err)
	}

	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		return nil, errors.Internal("failed to create data directory", err)
	}
	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, errors.Internal("failed to save auth key", err)
	}
	return key, nil
}
