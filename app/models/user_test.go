package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/nexus/app/models"
)

func TestUser_NeverSerialisesPassword(t *testing.T) {
	u := models.User{ID: 1, Email: "a@b.com", HashedPassword: "$2a$10$secret", IsActive: true}

	data, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "password")
	assert.Contains(t, string(data), `"is_active":true`)
}
