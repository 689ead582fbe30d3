package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_JSONNeverContainsPassword(t *testing.T) {
	user := User{
		ID:          7,
		Username:    "user1",
		DisplayName: "display1",
		Password:    "$2a$10$somehash",
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.NotContains(t, raw, "password")
	assert.NotContains(t, string(data), user.Password)
	assert.Equal(t, "user1", raw["username"])
}

func TestUser_HasImage(t *testing.T) {
	u := &User{}
	assert.False(t, u.HasImage())

	u.Image = "0f8c3e"
	assert.True(t, u.HasImage())
}
