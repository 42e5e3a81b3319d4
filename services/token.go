package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Davet token'ı için entropi miktarı. 32 bayt, URL'de 64 hex karakter eder.
const invitationTokenBytes = 32

// generateInvitationToken kriptografik olarak rastgele, tahmin edilemez bir
// davet token'ı üretir.
func generateInvitationToken() (string, error) {
	buf := make([]byte, invitationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("davet token'ı üretilemedi: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
