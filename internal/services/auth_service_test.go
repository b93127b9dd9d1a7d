package services_test

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bragboard/bragboard-api/internal/config"
	"github.com/bragboard/bragboard-api/internal/database"
	"github.com/bragboard/bragboard-api/internal/dto"
	"github.com/bragboard/bragboard-api/internal/models"
	"github.com/bragboard/bragboard-api/internal/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Keep a single connection so the shared in-memory database survives
	// for the whole test.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "test-secret",
		TokenExpiry: 24 * time.Hour,
		AdminSecret: "SECRET2026",
	}
}

func registerReq(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:       "Ann",
		Email:      email,
		Password:   "pw",
		Department: "Eng",
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := services.NewAuthService(newTestDB(t), testConfig())

	user, err := svc.Register(registerReq("a@x.com"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, user.Role)
	assert.False(t, user.IsAdmin())
	assert.NotEqual(t, "pw", user.Password)

	token, logged, err := svc.Authenticate("a@x.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := services.NewAuthService(newTestDB(t), testConfig())

	_, err := svc.Register(registerReq("a@x.com"))
	require.NoError(t, err)

	_, err = svc.Register(registerReq("a@x.com"))
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestAuthenticateRejectsBothFactorsAlike(t *testing.T) {
	svc := services.NewAuthService(newTestDB(t), testConfig())

	_, err := svc.Register(registerReq("a@x.com"))
	require.NoError(t, err)

	_, _, badPassword := svc.Authenticate("a@x.com", "wrong")
	_, _, badEmail := svc.Authenticate("nobody@x.com", "pw")

	assert.ErrorIs(t, badPassword, services.ErrInvalidCredentials)
	assert.ErrorIs(t, badEmail, services.ErrInvalidCredentials)
}

func TestAdminSecretGrantsRole(t *testing.T) {
	svc := services.NewAuthService(newTestDB(t), testConfig())

	req := registerReq("admin@x.com")
	req.AdminSecret = "SECRET2026"
	user, err := svc.Register(req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	req = registerReq("emp@x.com")
	req.AdminSecret = "wrong"
	user, err = svc.Register(req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, user.Role)
}

func TestEmptyAdminSecretDisablesGrant(t *testing.T) {
	cfg := testConfig()
	cfg.AdminSecret = ""
	svc := services.NewAuthService(newTestDB(t), cfg)

	req := registerReq("a@x.com")
	req.AdminSecret = ""
	user, err := svc.Register(req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, user.Role)
}

func TestTokenSubjectAndExpiry(t *testing.T) {
	cfg := testConfig()
	svc := services.NewAuthService(newTestDB(t), cfg)

	user, err := svc.Register(registerReq("a@x.com"))
	require.NoError(t, err)

	tokenString, err := svc.GenerateToken(user.ID)
	require.NoError(t, err)

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, strconv.FormatUint(uint64(user.ID), 10), claims.Subject)
	assert.WithinDuration(t, time.Now().Add(cfg.TokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestResolveUserRequiresLiveRecord(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db, testConfig())

	user, err := svc.Register(registerReq("a@x.com"))
	require.NoError(t, err)
	sub := strconv.FormatUint(uint64(user.ID), 10)

	resolved, err := svc.ResolveUser(sub)
	require.NoError(t, err)
	assert.Equal(t, user.Email, resolved.Email)

	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)

	_, err = svc.ResolveUser(sub)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestLongPasswordsTruncateAtBcryptLimit(t *testing.T) {
	svc := services.NewAuthService(newTestDB(t), testConfig())

	long := strings.Repeat("a", 100)
	req := registerReq("a@x.com")
	req.Password = long
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, _, err = svc.Authenticate("a@x.com", long)
	assert.NoError(t, err)

	// Only the first 72 bytes are significant.
	_, _, err = svc.Authenticate("a@x.com", long[:72])
	assert.NoError(t, err)
}

func TestListOtherUsersExcludesCaller(t *testing.T) {
	svc := services.NewAuthService(newTestDB(t), testConfig())

	me, err := svc.Register(registerReq("me@x.com"))
	require.NoError(t, err)
	_, err = svc.Register(registerReq("other@x.com"))
	require.NoError(t, err)

	users, err := svc.ListOtherUsers(me.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "other@x.com", users[0].Email)
}
