package repository

import (
	"testing"

	"github.com/sahayak/sahayak-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo UserRepository, username, email, role string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:    username,
		Email:       email,
		DisplayName: username,
		Password:    "hashed",
		Role:        role,
	}
	require.NoError(t, repo.Create(user))
	return user
}

func TestUserRepository_CreateAssignsID(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	user := seedUser(t, repo, "asha", "asha@test.com", domain.RoleContributor)
	assert.NotEmpty(t, user.ID)

	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha", found.Username)
}

func TestUserRepository_FindByEmailAndUsername(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	seedUser(t, repo, "asha", "asha@test.com", domain.RoleContributor)

	byEmail, err := repo.FindByEmail("asha@test.com")
	require.NoError(t, err)
	assert.Equal(t, "asha", byEmail.Username)

	byUsername, err := repo.FindByUsername("asha")
	require.NoError(t, err)
	assert.Equal(t, "asha@test.com", byUsername.Email)
}

func TestUserRepository_Exists(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	seedUser(t, repo, "asha", "asha@test.com", domain.RoleContributor)

	exists, err := repo.ExistsByEmail("asha@test.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail("other@test.com")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByUsername("asha")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername("nobody")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_UpdateRole(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	user := seedUser(t, repo, "asha", "asha@test.com", domain.RoleContributor)
	require.NoError(t, repo.UpdateRole(user.ID, domain.RoleAdmin))

	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, found.Role)
}

func TestUserRepository_FindAll(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	seedUser(t, repo, "asha", "asha@test.com", domain.RoleContributor)
	seedUser(t, repo, "admin", "admin@test.com", domain.RoleAdmin)

	users, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
