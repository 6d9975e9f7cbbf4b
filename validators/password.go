package validators

import (
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost represents the bcrypt cost factor.
type BcryptCost int

// Bcrypt cost constants.
const (
	BcryptMinCost     BcryptCost = BcryptCost(bcrypt.MinCost)
	BcryptDefaultCost BcryptCost = BcryptCost(bcrypt.DefaultCost)
	BcryptMaxCost     BcryptCost = BcryptCost(bcrypt.MaxCost)
)

// reBcrypt matches the modular crypt form of a bcrypt hash.
var reBcrypt = regexp.MustCompile(`^\$2[ayb]\$\d{2}\$[./0-9A-Za-z]{53}$`)

// HashPassword returns the bcrypt hash of plaintext at the default cost.
func HashPassword(plaintext string) (string, error) {
	return HashPasswordWithCost(plaintext, BcryptDefaultCost)
}

// HashPasswordWithCost returns the bcrypt hash of plaintext at cost.
func HashPasswordWithCost(plaintext string, cost BcryptCost) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), int(cost))
	if err != nil {
		return "", fmt.Errorf("bcrypt hash failed: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches hash.
func CheckPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// IsBcryptHash reports whether s is a well-formed bcrypt hash with a valid cost.
func IsBcryptHash(s string) bool {
	if !reBcrypt.MatchString(s) {
		return false
	}
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
