package services

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/terraincognita07/salesboard/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidUserInput   = errors.New("invalid user input")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
)

const (
	minPasswordLength = 8
	minUsernameLength = 3
	maxUsernameLength = 20
)

type AuthUserRepository interface {
	CountUsers() (int64, error)
	FindByID(userID uint) (models.User, error)
	FindByLogin(login string) (models.User, error)
	ExistsByUsernameOrEmail(username string, email string) (bool, error)
	Create(user *models.User) error
	UpdatePassword(userID uint, passwordHash string) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Confirm  string
}

func NormalizeLogin(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Register creates a user. The first account becomes the admin.
func (service *AuthService) Register(input RegisterInput) (models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := NormalizeLogin(input.Email)
	usernameLength := len([]rune(username))
	if usernameLength < minUsernameLength || usernameLength > maxUsernameLength || len(input.Password) < minPasswordLength {
		return models.User{}, ErrInvalidUserInput
	}
	if input.Confirm != "" && input.Confirm != input.Password {
		return models.User{}, ErrPasswordMismatch
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return models.User{}, ErrInvalidUserInput
	}

	exists, err := service.users.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return models.User{}, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return models.User{}, ErrUserExists
	}

	count, err := service.users.CountUsers()
	if err != nil {
		return models.User{}, fmt.Errorf("count users: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	role := models.RoleUser
	if count == 0 {
		role = models.RoleAdmin
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (service *AuthService) Authenticate(login string, password string) (models.User, error) {
	candidate := strings.TrimSpace(login)
	if candidate == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := service.users.FindByLogin(candidate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user, err = service.users.FindByLogin(NormalizeLogin(candidate))
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.User{}, ErrInvalidCredentials
			}
			return models.User{}, fmt.Errorf("load user: %w", err)
		}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

func (service *AuthService) FindByLogin(login string) (models.User, error) {
	return service.users.FindByLogin(NormalizeLogin(login))
}

func (service *AuthService) ChangePassword(userID uint, currentPassword string, newPassword string) error {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCredentials
	}
	if len(newPassword) < minPasswordLength {
		return ErrInvalidUserInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := service.users.UpdatePassword(userID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
