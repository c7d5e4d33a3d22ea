package utils

import (
	"crypto/rand"
	"encoding/base64"
	"unicode/utf8"
)

// APIKeyPrefix marks every issued tenant key so leaked strings are easy to
// recognize in logs and support tickets.
const APIKeyPrefix = "nc_"

func randomToken(bytes int) string {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}

// GenerateAPIKey mints an unguessable tenant API key. Keys are immutable
// after issuance.
func GenerateAPIKey() string {
	return APIKeyPrefix + randomToken(32)
}

// GenerateAdminToken mints the process-wide admin token used when none is
// configured. It must be surfaced exactly once at startup; it cannot be
// recovered later.
func GenerateAdminToken() string {
	return randomToken(32)
}

// Truncate bounds a string to max bytes to satisfy storage column limits.
// The cut never splits a multi-byte rune; postgres rejects invalid UTF-8.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
