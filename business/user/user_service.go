package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kledje/domain"
	"kledje/pkg/logger"
	"kledje/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User, columns ...string) error
}

type TokenIssuer interface {
	GenerateJWT(userID string) (string, error)
}

type userService struct {
	userRepo UserRepository
	tokens   TokenIssuer
	validate *validator.Validate
}

func NewUserService(userRepo UserRepository, tokens TokenIssuer, validate *validator.Validate) *userService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
		validate: validate,
	}
}

const minPasswordLength = "min=6"

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Register creates a user with the "user" role and returns a signed token.
func (s *userService) Register(ctx context.Context, in RegisterInput) (string, *domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if in.Name == "" || in.Email == "" || in.Password == "" {
		return "", nil, domain.NewValidationError(domain.MsgRequiredFields)
	}

	if err := s.validate.Var(in.Password, minPasswordLength); err != nil {
		return "", nil, domain.NewValidationError(domain.MsgPasswordTooShort)
	}

	if err := s.validate.Var(in.Email, "email"); err != nil {
		return "", nil, domain.NewValidationError(`"email" must be a valid email`)
	}

	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Error("Failed to look up email", "error", err)
		return "", nil, err
	}
	if existing != nil {
		return "", nil, domain.NewConflictError(domain.MsgUserExists)
	}

	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &domain.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(passwordHash),
		Phone:    in.Phone,
		Role:     domain.RoleUser,
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		logger.Error("Failed to create new user", "error", err)
		return "", nil, err
	}

	token, err := s.tokens.GenerateJWT(newUser.ID)
	if err != nil {
		logger.Error("Failed to generate token", "user_id", newUser.ID, "error", err)
		return "", nil, err
	}

	logger.Info("User registered", "user_id", newUser.ID)
	return token, newUser, nil
}

// Login never reveals whether the email or the password was wrong.
func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, domain.NewValidationError(domain.MsgLoginFieldsRequired)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.NewAuthenticationError(domain.MsgInvalidCredentials, err)
		}
		logger.Error("Failed to find user for login", "error", err)
		return "", nil, err
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Debug("Invalid password", "user_id", user.ID)
		return "", nil, domain.NewAuthenticationError(domain.MsgInvalidCredentials, nil)
	}

	token, err := s.tokens.GenerateJWT(user.ID)
	if err != nil {
		logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return "", nil, err
	}

	return token, user, nil
}

// UpdateProfile changes only the non-empty fields.
func (s *userService) UpdateProfile(ctx context.Context, current *domain.User, name, phone string) (*domain.User, error) {
	updated := *current
	var columns []string

	if name = strings.TrimSpace(name); name != "" {
		updated.Name = name
		columns = append(columns, "name")
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		updated.Phone = phone
		columns = append(columns, "phone")
	}

	if len(columns) == 0 {
		return current, nil
	}

	if err := s.userRepo.Update(ctx, &updated, columns...); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError(domain.MsgUserNotFound, err)
		}
		logger.Error("Failed to update profile", "user_id", current.ID, "error", err)
		return nil, err
	}

	return s.userRepo.FindByID(ctx, current.ID)
}

func (s *userService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return domain.NewValidationError(domain.MsgPasswordFields)
	}

	if err := s.validate.Var(newPassword, minPasswordLength); err != nil {
		return domain.NewValidationError(domain.MsgNewPasswordTooShort)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewNotFoundError(domain.MsgUserNotFound, err)
		}
		return err
	}

	if !utils.CheckPassword(currentPassword, user.Password) {
		return domain.NewAuthenticationError(domain.MsgWrongPassword, nil)
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(passwordHash)
	if err := s.userRepo.Update(ctx, user, "password"); err != nil {
		logger.Error("Failed to change password", "user_id", userID, "error", err)
		return err
	}

	logger.Info("Password changed", "user_id", userID)
	return nil
}
