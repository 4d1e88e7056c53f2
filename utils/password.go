package utils

import (
	"github.com/matthewhartstonge/argon2"
)

// HashPassword encodes a registration password with argon2id for storage
// on the user document.
func HashPassword(password string) (string, error) {
	cfg := argon2.DefaultConfig()
	encoded, err := cfg.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// VerifyPassword checks a login attempt against the encoded hash stored at
// registration.
func VerifyPassword(encodedHash, password string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
