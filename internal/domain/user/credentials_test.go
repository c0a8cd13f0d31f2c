package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestParseEmail(t *testing.T) {
	got, err := ParseEmail("  Student@Law.EDU ")
	require.NoError(t, err)
	assert.Equal(t, "student@law.edu", got)

	for _, bad := range []string{"", "   ", "not-an-email", "Ada <ada@law.edu>", "a@"} {
		_, err := ParseEmail(bad)
		assert.ErrorIs(t, err, ErrInvalidEmail, "email=%q", bad)
	}
}

func TestCleanFullName(t *testing.T) {
	got, err := CleanFullName("  Ada Lovelace ")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got)

	_, err = CleanFullName(strings.Repeat("é", MaxFullNameLength))
	assert.NoError(t, err, "length counts runes")

	_, err = CleanFullName(strings.Repeat("x", MaxFullNameLength+1))
	assert.ErrorIs(t, err, ErrFullNameTooLong)
}

func TestHashPassword(t *testing.T) {
	_, err := HashPassword("short", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = HashPassword("   abc     ", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrWeakPassword, "padding does not count toward length")

	hash, err := HashPassword(" longenough ", bcrypt.MinCost)
	require.NoError(t, err)

	u := User{PasswordHash: hash}
	assert.True(t, u.PasswordMatches(" longenough "))
	assert.False(t, u.PasswordMatches("longenough"))
	assert.False(t, User{}.PasswordMatches("longenough"))
	assert.Empty(t, u.Public().PasswordHash)
}
