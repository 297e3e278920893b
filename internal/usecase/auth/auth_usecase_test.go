package auth

import (
	"context"
	"testing"

	"github.com/savelxev/biteplan-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := m.byEmail[user.Email]; exists {
		return domain.ErrEmailTaken
	}
	stored := *user
	m.byEmail[user.Email] = &stored
	m.byID[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

const testSecret = "0123456789abcdef0123456789abcdef"

func TestRegisterAndLogin(t *testing.T) {
	repo := newMockUserRepo()
	uc := NewAuthUseCase(repo, testSecret, 60)

	registered, err := uc.Register(context.Background(), "a@b.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, registered.Token)
	assert.NotEmpty(t, registered.User.ID)
	assert.NotEqual(t, "password123", registered.User.PasswordHash, "password must be hashed")

	// issued token resolves back to the same user
	userID, err := uc.ParseToken(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, userID)

	loggedIn, err := uc.Login(context.Background(), "a@b.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	uc := NewAuthUseCase(repo, testSecret, 60)

	_, err := uc.Register(context.Background(), "a@b.com", "password123")
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), "a@b.com", "password456")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newMockUserRepo()
	uc := NewAuthUseCase(repo, testSecret, 60)

	_, err := uc.Register(context.Background(), "a@b.com", "password123")
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), "a@b.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), "nobody@b.com", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	uc := NewAuthUseCase(newMockUserRepo(), testSecret, 60)

	_, err := uc.ParseToken("not-a-token")
	assert.Error(t, err)

	// token signed with a different secret
	other := NewAuthUseCase(newMockUserRepo(), "ffffffffffffffffffffffffffffffff", 60)
	resp, err := other.Register(context.Background(), "x@y.com", "password123")
	require.NoError(t, err)

	_, err = uc.ParseToken(resp.Token)
	assert.Error(t, err)
}
