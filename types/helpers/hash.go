package helpers

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashInput hashes the input string using SHA-256
func HashInput(input string) string {
	hash := sha256.New()
	hash.Write([]byte(input))
	hashBytes := hash.Sum(nil)
	return hex.EncodeToString(hashBytes)
}
