package platform

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/roomverse/platform/internal/model"
)

func NewID() string {
	return uuid.New().String()
}

// NewAPIKey generates a raw API key: the "pk_" prefix followed by 64 hex
// characters, 67 chars total.
func NewAPIKey() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	return model.KeyPrefix + hex.EncodeToString(b)
}
