package auth

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/resumoteca/resumoteca/internal/config"
	"github.com/resumoteca/resumoteca/internal/entities"
)

func setupTestService(t *testing.T) (*Service, func()) {
	dbPath := "./test_auth_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{})
	require.NoError(t, err)

	cfg := config.Auth{
		Mode:             config.AuthModeLocal,
		BcryptCost:       4, // minimum cost, tests only
		MaxLoginAttempts: 3,
		LockoutDuration:  time.Minute,
	}
	service := NewService(db, cfg)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return service, cleanup
}

func TestService_CreateUser(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	user, err := service.CreateUser("admin", "admin@example.com", "correct-horse-battery")

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "admin", user.Username)
	assert.NotEqual(t, "correct-horse-battery", user.PasswordHash)
}

func TestService_CreateUser_Duplicate(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.CreateUser("admin", "admin@example.com", "correct-horse-battery")
	require.NoError(t, err)

	_, err = service.CreateUser("admin", "other@example.com", "correct-horse-battery")
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = service.CreateUser("other", "admin@example.com", "correct-horse-battery")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestService_CreateUser_InvalidInput(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.CreateUser("", "a@b.com", "password-here")
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = service.CreateUser("ab", "a@b.com", "password-here")
	assert.ErrorIs(t, err, ErrUsernameInvalid)

	_, err = service.CreateUser("admin", "not-an-email", "password-here")
	assert.ErrorIs(t, err, ErrEmailInvalid)

	_, err = service.CreateUser("admin", "a@b.com", "")
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestService_Authenticate(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.CreateUser("admin", "admin@example.com", "correct-horse-battery")
	require.NoError(t, err)

	user, err := service.Authenticate("admin", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	fresh, err := service.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, fresh.LastLoginAt)

	// Email also works as the login identifier
	_, err = service.Authenticate("admin@example.com", "correct-horse-battery")
	assert.NoError(t, err)
}

func TestService_Authenticate_WrongPassword(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.CreateUser("admin", "admin@example.com", "correct-horse-battery")
	require.NoError(t, err)

	_, err = service.Authenticate("admin", "wrong")
	assert.Error(t, err)
}

func TestService_Authenticate_UnknownUser(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.Authenticate("ghost", "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_Authenticate_Lockout(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.CreateUser("admin", "admin@example.com", "correct-horse-battery")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = service.Authenticate("admin", "wrong")
		assert.Error(t, err)
	}

	// Account is now locked even with the correct password
	_, err = service.Authenticate("admin", "correct-horse-battery")
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestService_Authenticate_LockoutResetsOnSuccess(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.CreateUser("admin", "admin@example.com", "correct-horse-battery")
	require.NoError(t, err)

	_, err = service.Authenticate("admin", "wrong")
	assert.Error(t, err)

	user, err := service.Authenticate("admin", "correct-horse-battery")
	require.NoError(t, err)

	fresh, err := service.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.FailedLoginCount)
}

func TestService_ChangePassword(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	user, err := service.CreateUser("admin", "admin@example.com", "correct-horse-battery")
	require.NoError(t, err)

	err = service.ChangePassword(user.ID, "correct-horse-battery", "new-password-here")
	require.NoError(t, err)

	_, err = service.Authenticate("admin", "new-password-here")
	assert.NoError(t, err)

	_, err = service.Authenticate("admin", "correct-horse-battery")
	assert.Error(t, err)
}

func TestService_HasUsers(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	hasUsers, err := service.HasUsers()
	require.NoError(t, err)
	assert.False(t, hasUsers)

	_, err = service.CreateUser("admin", "admin@example.com", "correct-horse-battery")
	require.NoError(t, err)

	hasUsers, err = service.HasUsers()
	require.NoError(t, err)
	assert.True(t, hasUsers)
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("some-long-password", 4)
	require.NoError(t, err)
	assert.NoError(t, CheckPassword("some-long-password", hash))
	assert.Error(t, CheckPassword("other-password", hash))
}
