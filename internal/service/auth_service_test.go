package service

import (
	"errors"
	"testing"

	"github.com/sahayak/sahayak-backend/internal/common"
	"github.com/sahayak/sahayak-backend/internal/domain"
	"github.com/sahayak/sahayak-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// --- Mock UserRepository ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(user *domain.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) FindByID(id string) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByUsername(username string) (*domain.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindAll() ([]domain.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ExistsByUsername(username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) UpdateRole(id, role string) error {
	return m.Called(id, role).Error(0)
}

// --- Tests ---

func newTestJWTManager() *jwt.Manager {
	return jwt.NewManager("test-secret-key-for-testing-only-32b!", 15, 1440)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestRegister_Success(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, newTestJWTManager())

	repo.On("ExistsByEmail", "new@test.com").Return(false, nil)
	repo.On("ExistsByUsername", "newuser").Return(false, nil)
	repo.On("Create", mock.AnythingOfType("*domain.User")).Return(nil)

	req := &domain.RegisterRequest{
		Username:    "newuser",
		Email:       "new@test.com",
		DisplayName: "New User",
		Password:    "pass1234",
	}
	result, err := svc.Register(req)

	assert.NoError(t, err)
	assert.Equal(t, "newuser", result.Username)
	assert.Equal(t, domain.RoleContributor, result.Role)
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, newTestJWTManager())

	repo.On("ExistsByEmail", "taken@test.com").Return(true, nil)

	req := &domain.RegisterRequest{Username: "u", Email: "taken@test.com", DisplayName: "U", Password: "pass1234"}
	result, err := svc.Register(req)

	assert.ErrorIs(t, err, common.ErrEmailTaken)
	assert.Nil(t, result)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, newTestJWTManager())

	repo.On("ExistsByEmail", "new@test.com").Return(false, nil)
	repo.On("ExistsByUsername", "taken").Return(true, nil)

	req := &domain.RegisterRequest{Username: "taken", Email: "new@test.com", DisplayName: "U", Password: "pass1234"}
	result, err := svc.Register(req)

	assert.ErrorIs(t, err, common.ErrUsernameTaken)
	assert.Nil(t, result)
}

func TestRegister_InvalidRole(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, newTestJWTManager())

	repo.On("ExistsByEmail", "new@test.com").Return(false, nil)
	repo.On("ExistsByUsername", "newuser").Return(false, nil)

	req := &domain.RegisterRequest{
		Username:    "newuser",
		Email:       "new@test.com",
		DisplayName: "U",
		Password:    "pass1234",
		Role:        "superuser",
	}
	result, err := svc.Register(req)

	assert.ErrorIs(t, err, common.ErrInvalidRole)
	assert.Nil(t, result)
}

func TestLogin_Success(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, newTestJWTManager())

	user := &domain.User{
		ID:          "u-1",
		Username:    "tester",
		Email:       "tester@test.com",
		DisplayName: "Tester",
		Password:    hashPassword(t, "password123"),
		Role:        domain.RoleContributor,
	}
	repo.On("FindByEmail", "tester@test.com").Return(user, nil)

	result, err := svc.Login("tester@test.com", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "bearer", result.TokenType)
	assert.Equal(t, "u-1", result.User.ID)
	assert.Equal(t, domain.RoleContributor, result.User.Role)
}

func TestLogin_UserNotFound(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, newTestJWTManager())

	repo.On("FindByEmail", "nobody@test.com").Return(nil, errors.New("not found"))

	result, err := svc.Login("nobody@test.com", "password")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Nil(t, result)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, newTestJWTManager())

	user := &domain.User{
		ID:       "u-1",
		Email:    "tester@test.com",
		Password: hashPassword(t, "correct"),
	}
	repo.On("FindByEmail", "tester@test.com").Return(user, nil)

	result, err := svc.Login("tester@test.com", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Nil(t, result)
}

func TestLogin_TokenCarriesRole(t *testing.T) {
	repo := new(mockUserRepo)
	jwtMgr := newTestJWTManager()
	svc := NewAuthService(repo, jwtMgr)

	user := &domain.User{
		ID:       "a-1",
		Email:    "admin@test.com",
		Password: hashPassword(t, "password123"),
		Role:     domain.RoleAdmin,
	}
	repo.On("FindByEmail", "admin@test.com").Return(user, nil)

	result, err := svc.Login("admin@test.com", "password123")
	assert.NoError(t, err)

	claims, err := jwtMgr.VerifyToken(result.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "a-1", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestCurrentUser_NotFound(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, newTestJWTManager())

	repo.On("FindByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	result, err := svc.CurrentUser("missing")
	assert.ErrorIs(t, err, common.ErrUserNotFound)
	assert.Nil(t, result)
}
