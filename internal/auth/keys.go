package auth

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// Secret key prefixes. The prefix selects the credential keyspace a presented
// key is matched against.
const (
	TestKeyPrefix = "sk_test_"
	LiveKeyPrefix = "sk_live_"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateID generates a random alphanumeric identifier for third party
// API applications.
func GenerateID(length int) string {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // crypto/rand failure is unrecoverable
		}
		buf[i] = idAlphabet[n.Int64()]
	}
	return string(buf)
}

// GenerateSecretKey generates a prefixed API secret key. Live keys carry the
// sk_live_ prefix, test keys sk_test_.
func GenerateSecretKey(live bool) string {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		panic(err)
	}
	prefix := TestKeyPrefix
	if live {
		prefix = LiveKeyPrefix
	}
	return prefix + base64.RawURLEncoding.EncodeToString(raw)
}

// IsLiveKey reports whether the given secret key belongs to the live keyspace.
func IsLiveKey(key string) bool {
	return len(key) >= len(LiveKeyPrefix) && key[:len(LiveKeyPrefix)] == LiveKeyPrefix
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
