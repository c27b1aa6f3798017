package db

import (
	"context"
	"testing"

	"github.com/bitswalk/jobly/src/common/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRepository_Register(t *testing.T) {
	database := setupTestDB(t)
	repo := NewUserRepository(database, bcrypt.MinCost)
	ctx := context.Background()

	user, err := repo.Register(ctx, NewUser{
		Username:  "new",
		Password:  "password",
		FirstName: "Test",
		LastName:  "Tester",
		Email:     "test@test.com",
		IsAdmin:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, User{Username: "new", FirstName: "Test", LastName: "Tester", Email: "test@test.com", IsAdmin: true}, *user)

	var stored string
	require.NoError(t, database.DB().QueryRow(`SELECT password FROM users WHERE username = $1`, "new").Scan(&stored))
	assert.NotEqual(t, "password", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("password")))

	_, err = repo.Register(ctx, NewUser{Username: "new", Password: "other", FirstName: "a", LastName: "b", Email: "x@y.z"})
	assert.True(t, errors.Is(err, errors.ErrDuplicateUsername))
	assert.True(t, errors.IsBadRequest(err))
}

func TestUserRepository_Authenticate(t *testing.T) {
	database := setupTestDB(t)
	seedTestData(t, database)
	repo := NewUserRepository(database, bcrypt.MinCost)
	ctx := context.Background()

	user, err := repo.Authenticate(ctx, "u1", "password-u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.Username)
	assert.Equal(t, "Fu1", user.FirstName)

	_, err = repo.Authenticate(ctx, "u1", "wrong")
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
	assert.True(t, errors.IsUnauthorized(err))

	_, err = repo.Authenticate(ctx, "ghost", "password")
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestUserRepository_FindAllAndGet(t *testing.T) {
	database := setupTestDB(t)
	ids := seedTestData(t, database)
	repo := NewUserRepository(database, bcrypt.MinCost)
	ctx := context.Background()

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].Username)
	assert.Equal(t, "u2", users[1].Username)

	user, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1@email.com", user.Email)
	assert.Equal(t, []int64{ids[0]}, user.Jobs)

	user, err = repo.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, user.Jobs)

	_, err = repo.Get(ctx, "ghost")
	assert.True(t, errors.Is(err, errors.ErrUserNotFound))
}

func TestUserRepository_Update(t *testing.T) {
	database := setupTestDB(t)
	seedTestData(t, database)
	repo := NewUserRepository(database, bcrypt.MinCost)
	ctx := context.Background()

	user, err := repo.Update(ctx, "u1", Fields{
		{"firstName", "NewF"},
		{"email", "new@email.com"},
		{"isAdmin", true},
	})
	require.NoError(t, err)
	assert.Equal(t, "NewF", user.FirstName)
	assert.Equal(t, "Lu1", user.LastName)
	assert.Equal(t, "new@email.com", user.Email)
	assert.True(t, user.IsAdmin)

	_, err = repo.Update(ctx, "u1", Fields{{"password", "new password"}})
	require.NoError(t, err)

	_, err = repo.Authenticate(ctx, "u1", "new password")
	assert.NoError(t, err)
	_, err = repo.Authenticate(ctx, "u1", "password-u1")
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))

	_, err = repo.Update(ctx, "ghost", Fields{{"firstName", "x"}})
	assert.True(t, errors.IsNotFound(err))

	_, err = repo.Update(ctx, "u1", Fields{})
	assert.True(t, errors.Is(err, errors.ErrNoData))
}

func TestUserRepository_Remove(t *testing.T) {
	database := setupTestDB(t)
	seedTestData(t, database)
	repo := NewUserRepository(database, bcrypt.MinCost)
	ctx := context.Background()

	require.NoError(t, repo.Remove(ctx, "u1"))

	_, err := repo.Get(ctx, "u1")
	assert.True(t, errors.IsNotFound(err))

	err = repo.Remove(ctx, "u1")
	assert.True(t, errors.Is(err, errors.ErrUserNotFound))
}

func TestUserRepository_ApplyToJob(t *testing.T) {
	database := setupTestDB(t)
	ids := seedTestData(t, database)
	repo := NewUserRepository(database, bcrypt.MinCost)
	ctx := context.Background()

	require.NoError(t, repo.ApplyToJob(ctx, "u2", ids[1]))

	user, err := repo.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, []int64{ids[1]}, user.Jobs)

	err = repo.ApplyToJob(ctx, "u2", ids[1])
	assert.True(t, errors.Is(err, errors.ErrDuplicateApplication))

	err = repo.ApplyToJob(ctx, "u2", 0)
	assert.True(t, errors.Is(err, errors.ErrJobNotFound))

	err = repo.ApplyToJob(ctx, "ghost", ids[0])
	assert.True(t, errors.Is(err, errors.ErrUserNotFound))
}

func TestNewUserRepository_CostFallback(t *testing.T) {
	repo := NewUserRepository(nil, 0)
	assert.Equal(t, bcrypt.DefaultCost, repo.bcryptCost)
}

func TestDatabase_Settings(t *testing.T) {
	database := setupTestDB(t)

	_, err := database.GetSetting("jwt_secret")
	assert.Error(t, err)

	require.NoError(t, database.SetSetting("jwt_secret", "one"))
	require.NoError(t, database.SetSetting("jwt_secret", "two"))

	value, err := database.GetSetting("jwt_secret")
	require.NoError(t, err)
	assert.Equal(t, "two", value)
}
