package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt will hash without truncating.
const MaxPasswordBytes = 72

var (
	ErrEmptyPassword   = errors.New("auth: password is empty")
	ErrPasswordTooLong = errors.New("auth: password exceeds 72 bytes")
)

// Hasher hashes and verifies passwords with bcrypt.
type Hasher struct {
	cost  int
	dummy []byte
}

// NewHasher returns a Hasher using cost, or bcrypt.DefaultCost when cost is
// outside bcrypt's accepted range.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	// Compared against on unknown-user logins so both failure paths pay for
	// one bcrypt comparison at the same cost.
	dummy, err := bcrypt.GenerateFromPassword([]byte("nexus-timing-equaliser"), cost)
	if err != nil {
		panic("auth: generate dummy digest: " + err.Error())
	}

	return &Hasher{cost: cost, dummy: dummy}
}

// Hash returns a salted bcrypt digest of plain.
func (h *Hasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	if len(plain) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	return string(digest), err
}

// Verify reports whether plain matches digest. Malformed digests are a
// mismatch, not an error.
func (h *Hasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// Burn performs a comparison that always fails.
func (h *Hasher) Burn(plain string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plain))
}
