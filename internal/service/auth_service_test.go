package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpeacock1649-gif/layer-builder/internal/config"
	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, config.JWTConfig{
		Secret:             "test-secret-at-least-32-characters",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "layer-builder-test",
	})
	return svc, repo
}

func registerUser(t *testing.T, svc AuthService) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "broker@example.com",
		Password: "correct horse battery",
		FullName: "Test Broker",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo := newAuthFixture(t)
	user := registerUser(t, svc)

	stored := repo.users[user.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct horse battery", stored.PasswordHash)
	assert.True(t, stored.IsActive)
}

func TestLoginAndValidateToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	user := registerUser(t, svc)

	pair, err := svc.Login(context.Background(), LoginInput{
		Email:    "broker@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "broker@example.com", claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	registerUser(t, svc)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "broker@example.com",
		Password: "wrong password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever works",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, repo := newAuthFixture(t)
	user := registerUser(t, svc)
	repo.users[user.ID].IsActive = false

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "broker@example.com",
		Password: "correct horse battery",
	})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture(t)
	registerUser(t, svc)

	pair, err := svc.Login(context.Background(), LoginInput{
		Email:    "broker@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.ValidateToken(refreshed.AccessToken)
	assert.NoError(t, err)
}

// Access tokens must not be accepted where a refresh token is expected, and
// vice versa.
func TestTokenAudienceIsEnforced(t *testing.T) {
	svc, _ := newAuthFixture(t)
	registerUser(t, svc)

	pair, err := svc.Login(context.Background(), LoginInput{
		Email:    "broker@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.Error(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
