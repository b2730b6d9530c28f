// Package auth holds the credential verifier and the session token codec.
package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the 10 rounds the stored hashes were produced with.
const bcryptCost = 10

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash. The
// comparison is done by bcrypt itself; a non-bcrypt hash (such as the
// unusable marker) always fails.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsStrongPassword reports whether password meets the policy: at least 8
// characters with an uppercase letter, a lowercase letter, a digit and one
// special character from !@#$%^&*().
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			for _, s := range "!@#$%^&*()" {
				if r == s {
					hasSpecial = true
					break
				}
			}
		}
	}
	return hasUpper && hasLower && hasDigit && hasSpecial
}
