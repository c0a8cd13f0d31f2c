package user

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8
	MaxFullNameLength = 200
)

var (
	ErrInvalidEmail    = errors.New("invalid email")
	ErrWeakPassword    = errors.New("password too short")
	ErrFullNameTooLong = errors.New("full name too long")
)

// NormalizeEmail lowercases and trims an address. Accounts are keyed on the
// normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParseEmail normalizes email and rejects anything that is not a bare address.
func ParseEmail(email string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func CleanFullName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > MaxFullNameLength {
		return "", ErrFullNameTooLong
	}
	return name, nil
}

// HashPassword checks the length rule and hashes the password exactly as
// given. Surrounding whitespace is part of the password.
func HashPassword(password string, cost int) (string, error) {
	if utf8.RuneCountInString(strings.TrimSpace(password)) < MinPasswordLength {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (u User) PasswordMatches(password string) bool {
	if u.PasswordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Public strips credentials before a user leaves the service layer.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
