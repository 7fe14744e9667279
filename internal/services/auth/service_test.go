package auth

import (
	"testing"

	"aurum/internal/models"
	"aurum/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) IncrementTokenVersion(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func hashedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Email:        "alice@example.com",
		Password:     string(hashed),
		Name:         "Alice",
		Role:         "user",
		TokenVersion: 1,
	}
	user.ID = 7
	return user
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewService(repo)

	repo.On("GetByEmail", "alice@example.com").Return(nil, repositories.ErrUserNotFound)
	repo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Register("alice@example.com", "s3cret", "Alice")

	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")))
	assert.Equal(t, "user", user.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewService(repo)

	repo.On("GetByEmail", "alice@example.com").Return(hashedUser(t, "s3cret"), nil)

	_, err := svc.Register("alice@example.com", "s3cret", "Alice")

	assert.ErrorIs(t, err, ErrEmailTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestLoginIssuesTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	repo := new(MockUserRepo)
	svc := NewService(repo)

	user := hashedUser(t, "s3cret")
	repo.On("GetByEmail", "alice@example.com").Return(user, nil)
	repo.On("Update", user).Return(nil)

	got, access, refresh, err := svc.Login("alice@example.com", "s3cret")

	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.False(t, got.LastLoginAt.IsZero())
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewService(repo)

	repo.On("GetByEmail", "alice@example.com").Return(hashedUser(t, "s3cret"), nil)

	_, _, _, err := svc.Login("alice@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewService(repo)

	repo.On("GetByEmail", "nobody@example.com").Return(nil, repositories.ErrUserNotFound)

	_, _, _, err := svc.Login("nobody@example.com", "s3cret")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokensRejectsStaleVersion(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	repo := new(MockUserRepo)
	svc := NewService(repo)

	user := hashedUser(t, "s3cret")
	repo.On("GetByEmail", "alice@example.com").Return(user, nil)
	repo.On("Update", user).Return(nil)

	_, _, refresh, err := svc.Login("alice@example.com", "s3cret")
	require.NoError(t, err)

	// Logout bumps the version, so the old refresh token stops working.
	stale := *user
	stale.TokenVersion = 2
	repo.On("GetByID", uint(7)).Return(&stale, nil)

	_, _, err = svc.RefreshTokens(refresh)
	assert.Error(t, err)
}

func TestLogoutIncrementsTokenVersion(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewService(repo)

	repo.On("IncrementTokenVersion", uint(7)).Return(nil)

	require.NoError(t, svc.Logout(7))
	repo.AssertExpectations(t)
}
