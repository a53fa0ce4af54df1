package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/nexus/app/models"
	"github.com/shashiranjanraj/nexus/app/services"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := services.NewAuthService(newFakeUsers(), fakeIssuer{})

	user, err := svc.Register(ctx, "a@b.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)
	assert.True(t, user.IsActive)

	_, err = svc.Register(ctx, "a@b.com", "other")
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
}

func TestRegister_LosesRaceToUniqueIndex(t *testing.T) {
	users := newFakeUsers()
	users.raceOnCreate = true
	svc := services.NewAuthService(users, fakeIssuer{})

	_, err := svc.Register(context.Background(), "a@b.com", "pw123")
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
}

func TestRegister_StoreUnavailable(t *testing.T) {
	users := newFakeUsers()
	users.err = models.ErrStoreUnavailable
	svc := services.NewAuthService(users, fakeIssuer{})

	_, err := svc.Register(context.Background(), "a@b.com", "pw123")
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := services.NewAuthService(newFakeUsers(), fakeIssuer{})

	_, err := svc.Register(ctx, "a@b.com", "pw123")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "a@b.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "token-for:a@b.com", token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)

	_, errWrong := svc.Login(ctx, "a@b.com", "wrong")
	_, errUnknown := svc.Login(ctx, "x@y.com", "pw123")
	assert.ErrorIs(t, errWrong, models.ErrAuthenticationFailed)
	assert.ErrorIs(t, errUnknown, models.ErrAuthenticationFailed)
	assert.Equal(t, errWrong.Error(), errUnknown.Error(), "failures are indistinguishable")
}

func TestLogin_IssuerFailure(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	_, err := services.NewAuthService(users, fakeIssuer{}).Register(ctx, "a@b.com", "pw123")
	require.NoError(t, err)

	boom := errors.New("signing failed")
	_, err = services.NewAuthService(users, fakeIssuer{err: boom}).Login(ctx, "a@b.com", "pw123")
	assert.ErrorIs(t, err, boom)
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	svc := services.NewAuthService(newFakeUsers(), fakeIssuer{})

	created, err := svc.Register(ctx, "a@b.com", "pw123")
	require.NoError(t, err)

	me, err := svc.CurrentUser(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, me.ID)

	_, err = svc.CurrentUser(ctx, "gone@b.com")
	assert.ErrorIs(t, err, models.ErrAuthenticationFailed)

	_, err = svc.CurrentUser(ctx, "")
	assert.ErrorIs(t, err, models.ErrAuthenticationFailed)
}
