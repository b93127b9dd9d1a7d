package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bragboard/bragboard-api/internal/config"
	"github.com/bragboard/bragboard-api/internal/dto"
	"github.com/bragboard/bragboard-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	// One message for both unknown email and wrong password, so the
	// response never reveals which factor failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// bcrypt ignores everything past 72 bytes and recent versions reject longer
// inputs outright, so truncate before hashing and verifying.
const bcryptMaxLen = 72

func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxLen {
		b = b[:bcryptMaxLen]
	}
	return b
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates an employee account. The admin role is granted only when
// the submitted secret matches the configured one; an unset secret disables
// that path.
func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := models.RoleEmployee
	if s.cfg.AdminSecret != "" && req.AdminSecret == s.cfg.AdminSecret {
		role = models.RoleAdmin
	}

	user := models.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   hash,
		Department: req.Department,
		Role:       role,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Authenticate verifies credentials and issues a bearer token.
func (s *AuthService) Authenticate(email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), bcryptInput(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}

// GenerateToken signs an HS256 token carrying only the user id and expiry.
// Roles are deliberately not embedded: authorization is re-checked against
// the live record on every request, so a demoted admin loses access
// immediately.
func (s *AuthService) GenerateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ResolveUser maps a validated token subject back to the live user record.
func (s *AuthService) ResolveUser(subject string) (*models.User, error) {
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return nil, ErrUserNotFound
	}

	var user models.User
	if err := s.db.First(&user, uint(id)).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// ListOtherUsers returns every user except the caller, for the recipient
// picker.
func (s *AuthService) ListOtherUsers(currentID uint) ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("id <> ?", currentID).Order("name").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
