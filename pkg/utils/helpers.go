package utils

import (
	cryptorand "crypto/rand"
	"encoding/base64"
	"time"

	"golang.org/x/exp/rand"
)

func init() {
	rand.Seed(uint64(time.Now().UnixNano()))
}

// GenerateRandomString returns a random alphanumeric string. Not suitable
// for secrets; use GenerateSigningKey for key material.
func GenerateRandomString(limit int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, limit)
	for i := range result {
		result[i] = chars[rand.Intn(len(chars))]
	}

	return string(result)
}

// GenerateSigningKey returns a base64 encoded key of size random bytes
// read from the system CSPRNG.
func GenerateSigningKey(size int) string {
	key := make([]byte, size)
	if _, err := cryptorand.Read(key); err != nil {
		panic(err)
	}

	return base64.StdEncoding.EncodeToString(key)
}
