package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	// SecretKeyAlphabet avoids characters that need quoting in TOML or shell.
	SecretKeyAlphabet      = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	DefaultSecretKeyLength = 48
	minSecretKeyLength     = 32
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

// NewSecretKey returns a value usable as secret_key. Lengths below the
// accepted minimum are raised to it.
func NewSecretKey(length int) (string, error) {
	if length < minSecretKeyLength {
		length = minSecretKeyLength
	}
	return RandomString(length, SecretKeyAlphabet)
}
