package service

import "golang.org/x/crypto/bcrypt"

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 8

// HashPassword returns a salted bcrypt hash of the plaintext. The per-call
// random salt is embedded in the output, so two hashes of the same password
// differ while both still verify.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored hash. Malformed
// or corrupted hashes yield false rather than an error, so stored-data
// problems cannot become an authentication oracle.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
