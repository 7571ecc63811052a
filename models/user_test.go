package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserJSONOmitsCredentials(t *testing.T) {
	u := User{ID: "u1", Email: "a@x.io", Role: RolePatient, PasswordHash: "$2a$10$hash", TokenHash: "abc123"}

	b, err := json.Marshal(u)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &fields))
	for _, key := range []string{"password", "passwordHash", "tokenHash"} {
		assert.NotContains(t, fields, key)
	}
	assert.NotContains(t, string(b), "$2a$10$hash")
}
