package rest

import (
	"context"
	"net/http"
	"time"

	"kledje/business/user"
	"kledje/domain"
	"kledje/internal/middleware"
	"kledje/pkg/response"

	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(ctx context.Context, in user.RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	UpdateProfile(ctx context.Context, current *domain.User, name, phone string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

type UserHandler struct {
	userService UserService
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		timeout:     defaultTimeout,
	}
}

type UserRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserUpdateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var req UserRegisterRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	token, u, err := h.userService.Register(ctx, user.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response.Token(domain.MsgRegistered, token, u))
}

func (h *UserHandler) Login(c echo.Context) error {
	var req UserLoginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	token, u, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Token(domain.MsgLoggedIn, token, u))
}

// Me returns the user resolved by the auth middleware.
func (h *UserHandler) Me(c echo.Context) error {
	current := middleware.CurrentUser(c)
	if current == nil {
		return domain.NewAuthenticationError(domain.MsgNotAuthorizedRoute, nil)
	}

	return c.JSON(http.StatusOK, response.OK(current))
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	current := middleware.CurrentUser(c)
	if current == nil {
		return domain.NewAuthenticationError(domain.MsgNotAuthorizedRoute, nil)
	}

	var req UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	updated, err := h.userService.UpdateProfile(ctx, current, req.Name, req.Phone)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Message(domain.MsgProfileUpdated, updated))
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	current := middleware.CurrentUser(c)
	if current == nil {
		return domain.NewAuthenticationError(domain.MsgNotAuthorizedRoute, nil)
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	if err := h.userService.ChangePassword(ctx, current.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Message(domain.MsgPasswordChanged, nil))
}
