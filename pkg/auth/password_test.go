package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/nexus/pkg/auth"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := auth.NewHasher(bcrypt.MinCost)

	digest, err := h.Hash("pw123")
	require.NoError(t, err)

	assert.NotEqual(t, "pw123", digest)
	assert.True(t, h.Verify("pw123", digest))
	assert.False(t, h.Verify("pw124", digest))
}

func TestHasher_SaltsEveryHash(t *testing.T) {
	h := auth.NewHasher(bcrypt.MinCost)

	a, err := h.Hash("same-input")
	require.NoError(t, err)
	b, err := h.Hash("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("same-input", a))
	assert.True(t, h.Verify("same-input", b))
}

func TestHasher_RejectsBadInput(t *testing.T) {
	h := auth.NewHasher(bcrypt.MinCost)

	_, err := h.Hash("")
	assert.ErrorIs(t, err, auth.ErrEmptyPassword)

	_, err = h.Hash(strings.Repeat("x", auth.MaxPasswordBytes+1))
	assert.ErrorIs(t, err, auth.ErrPasswordTooLong)

	_, err = h.Hash(strings.Repeat("x", auth.MaxPasswordBytes))
	assert.NoError(t, err)
}

func TestHasher_MalformedDigestIsMismatch(t *testing.T) {
	h := auth.NewHasher(bcrypt.MinCost)

	assert.False(t, h.Verify("pw123", "not-a-bcrypt-digest"))
	assert.False(t, h.Verify("pw123", ""))
}

func TestHasher_CostOutOfRangeUsesDefault(t *testing.T) {
	h := auth.NewHasher(0)

	digest, err := h.Hash("pw123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestHasher_Burn(t *testing.T) {
	h := auth.NewHasher(bcrypt.MinCost)
	assert.NotPanics(t, func() { h.Burn("anything") })
}
