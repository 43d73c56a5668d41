package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const hashChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateAccessHash returns a random 20-character alphanumeric share hash.
func GenerateAccessHash() (string, error) {
	return randomString(20)
}

// GenerateAccessUUID returns a random UUID string for use as an access token.
func GenerateAccessUUID() string {
	return uuid.NewString()
}

// GeneratePinCode returns a random 4-digit edit PIN (1000-9999).
func GeneratePinCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("failed to generate pin: %w", err)
	}
	return fmt.Sprintf("%d", 1000+n.Int64()), nil
}

func randomString(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(hashChars)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random string: %w", err)
		}
		out[i] = hashChars[n.Int64()]
	}
	return string(out), nil
}
