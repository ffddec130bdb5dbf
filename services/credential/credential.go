// Package credential generates and verifies account passwords. It holds no
// state: generated plaintext is handed to the mailer by the caller and
// dropped, only bcrypt hashes are ever persisted.
package credential

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// Alphabet excludes lookalike characters (I, O, l, 0, 1) so credentials
// delivered over email can be retyped without support round-trips.
const Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789@#!"

// DefaultLength is the length of auto-issued patient passwords.
const DefaultLength = 10

// Generate draws a password of the given length uniformly from Alphabet
// using a secure random source.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}
	max := big.NewInt(int64(len(Alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to draw random index: %w", err)
		}
		buf[i] = Alphabet[n.Int64()]
	}
	return string(buf), nil
}

// Hash produces a salted bcrypt hash of the plaintext.
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. It never returns
// an error: a malformed hash verifies as false.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
