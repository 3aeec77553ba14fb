package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/google/uuid"
)

// HashPassword returns the SHA-256 hex digest the portal expects in place
// of the password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func randomHex32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewDevicePayload identifies a fresh web client install: a 32 character
// device id and a 64 character push token.
func NewDevicePayload() domain.DevicePayload {
	return domain.DevicePayload{
		CliType:     "web",
		CliVer:      "v.2515",
		PushToken:   randomHex32() + randomHex32(),
		DeviceID:    randomHex32(),
		DeviceName:  "Chrome",
		DeviceModel: 120,
		CliOs:       "MacIntel",
	}
}
