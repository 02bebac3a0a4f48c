package users

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is a stored credential record. The password hash is opaque to every
// package except this one and must never be serialized.
type User struct {
	ID           string    `json:"id,omitempty"`    // Unique identifier, assigned by the repository
	Email        string    `json:"email,omitempty"` // User's email address, unique, stored case-sensitively
	PasswordHash string    `json:"-"`               // Hashed version of the user's password - never serialize
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a candidate password against a stored hash.
// bcrypt's comparison is constant-time with respect to the hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
