package services

import (
	"context"
	"errors"
	"time"

	"github.com/Antieqkers/antieq-wisma-bill/internal/models"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/jwt"

	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("Username atau password salah")

// UserService handles operator accounts and login.
type UserService struct {
	db         *gorm.DB
	jwtManager *jwt.Manager
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		db:         db,
		jwtManager: jwt.GetManager(),
	}
}

// LoginResult is what a successful login returns.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      *models.User `json:"user"`
}

// Login verifies credentials and issues a token.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.IsActive() {
		return nil, errors.New("Akun dinonaktifkan")
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.db.WithContext(ctx).Model(&user).Update("last_login_at", now).Error; err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(s.jwtManager.GetTokenDuration().Seconds()),
		User:      &user,
	}, nil
}

// RefreshToken re-issues a token.
func (s *UserService) RefreshToken(tokenString string) (string, error) {
	return s.jwtManager.RefreshToken(tokenString)
}

// GetByID loads one operator account.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	return &user, err
}

// Create registers an operator account.
func (s *UserService) Create(ctx context.Context, username, password, name, role string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("Username dan password wajib diisi")
	}
	if role != models.RoleAdmin && role != models.RoleOperator {
		role = models.RoleOperator
	}

	var count int64
	s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil, errors.New("Username sudah digunakan")
	}

	user := &models.User{
		Username: username,
		Name:     name,
		Role:     role,
		Status:   models.UserStatusActive,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Create(user).Error
	return user, err
}
