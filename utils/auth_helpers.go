package utils

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the fixed bcrypt work factor for user passwords.
const PasswordCost = 12

// HashPassword hashes a plain text password. Callers invoke this explicitly
// on registration and password changes; nothing rehashes on unrelated saves.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), PasswordCost)
	return string(b), err
}

// CheckPassword compares a hashed password with the plain text password
func CheckPassword(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}
