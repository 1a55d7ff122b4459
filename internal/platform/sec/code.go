// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// # Confirmation Codes

// GenerateConfirmationCode returns a random hex-encoded single-use secret.
//
// The code substitutes for a password in the signup flow: it is emailed
// out-of-band and later exchanged for an access token. byteLength is the
// entropy in bytes; the returned string is twice as long.
func GenerateConfirmationCode(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate confirmation code: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}

// HashCode returns the hex-encoded SHA-256 digest of a confirmation code.
//
// Only the digest is stored, so a leaked code store cannot be replayed
// directly. SHA-256 is sufficient here: codes carry full random entropy,
// unlike passwords, so a slow hash buys nothing.
func HashCode(code string) string {
	digest := sha256.Sum256([]byte(code))
	return hex.EncodeToString(digest[:])
}

// VerifyCode reports whether a presented code matches a stored digest,
// using a constant-time comparison.
func VerifyCode(presentedCode, storedDigest string) bool {
	presentedDigest := HashCode(presentedCode)
	return subtle.ConstantTimeCompare([]byte(presentedDigest), []byte(storedDigest)) == 1
}
