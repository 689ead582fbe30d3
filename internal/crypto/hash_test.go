package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher_Cost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "min cost", cost: bcrypt.MinCost, want: bcrypt.MinCost},
		{name: "custom cost", cost: 12, want: 12},
		{name: "zero falls back to default", cost: 0, want: bcrypt.DefaultCost},
		{name: "too high falls back to default", cost: bcrypt.MaxCost + 1, want: bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPasswordHasher(tt.cost).Cost())
		})
	}
}

func TestPasswordHasher_HashAndCompare(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("P4ssword")
	require.NoError(t, err)

	assert.NotEqual(t, "P4ssword", hash)
	assert.True(t, h.Compare(hash, "P4ssword"))
	assert.False(t, h.Compare(hash, "p4ssword"))
	assert.False(t, h.Compare("not-a-hash", "P4ssword"))
}

func TestPasswordHasher_HashIsSalted(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash("P4ssword")
	require.NoError(t, err)
	second, err := h.Hash("P4ssword")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPasswordHasher_EmptyPassword(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	_, err := h.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestPasswordHasher_CompareDummy(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	assert.NotPanics(t, func() {
		h.CompareDummy("whatever")
	})
}

func TestPasswordHasher_LongPasswords(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
	}{
		{name: "72 bytes", password: "Aa1" + strings.Repeat("x", 69)},
		{name: "100 characters", password: "Aa1" + strings.Repeat("x", 97)},
		{name: "255 characters", password: "Aa1" + strings.Repeat("x", 252)},
		{name: "255 multi-byte runes", password: "Aa1" + strings.Repeat("ж", 252)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)

			assert.True(t, h.Compare(hash, tt.password))
			// Различие после 72-го байта тоже учитывается
			assert.False(t, h.Compare(hash, tt.password+"y"))
			assert.False(t, h.Compare(hash, tt.password[:len(tt.password)-1]))
		})
	}
}
