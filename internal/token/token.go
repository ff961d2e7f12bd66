// Package token mints device identifiers and device bearer credentials.
package token

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewDeviceID returns an opaque, collision-free device identifier.
func NewDeviceID() string {
	return "DEV-" + uuid.NewString()
}

// NewAuthToken returns a 256-bit crypto-random bearer token, hex encoded.
func NewAuthToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
