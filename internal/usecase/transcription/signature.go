package transcription

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// verifySignature checks the hex-encoded SHA-256 HMAC the provider sends
// with each webhook. A missing secret or signature always fails closed.
func verifySignature(secret string, payload []byte, signatureHex string) bool {
	if secret == "" || signatureHex == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signatureHex))
}
