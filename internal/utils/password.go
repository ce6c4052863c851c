package utils

import "golang.org/x/crypto/bcrypt"

// HashSecret returns the bcrypt hash of plain using the given cost.
func HashSecret(plain string, cost int) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), cost)
}

// VerifySecret safely compares a bcrypt hash and a plain secret.
func VerifySecret(hash []byte, plain string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain)) == nil
}
