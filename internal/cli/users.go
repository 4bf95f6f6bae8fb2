// Package cli holds the administrative commands behind the salesboard
// binary. Each command works on an already opened database and reports to
// the writer it is given.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/salesboard/internal/db"
	"github.com/terraincognita07/salesboard/internal/models"
	"github.com/terraincognita07/salesboard/internal/services"
	"gorm.io/gorm"
)

// CreateUser registers an account. An empty password is replaced by a
// generated one that is printed once.
func CreateUser(database *gorm.DB, out io.Writer, username string, email string, password string) (models.User, error) {
	generated := password == ""
	if generated {
		temporaryPassword, err := generateTemporaryPassword(12)
		if err != nil {
			return models.User{}, fmt.Errorf("generate temporary password: %w", err)
		}
		password = temporaryPassword
	}

	auth := services.NewAuthService(db.NewUserRepository(database))
	user, err := auth.Register(services.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
		Confirm:  password,
	})
	switch {
	case errors.Is(err, services.ErrInvalidUserInput):
		return models.User{}, fmt.Errorf("username must be 3-20 characters, email valid and password at least 8 characters: %w", err)
	case err != nil:
		return models.User{}, err
	}

	fmt.Fprintf(out, "Created %s account %s <%s>\n", user.Role, user.Username, user.Email)
	if generated {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
	}
	return user, nil
}

// PromptPassword asks for a password on stdin without echoing it.
func PromptPassword(out io.Writer, stdin *os.File, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	value, err := readPasswordNoEcho(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(value), nil
}

// findUser matches login as typed first so mixed case usernames resolve,
// then as a normalized email.
func findUser(users *db.UserRepository, login string) (models.User, error) {
	user, err := users.FindByLogin(login)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = users.FindByLogin(services.NormalizeLogin(login))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("user %s not found", login)
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}
