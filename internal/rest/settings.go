package rest

import (
	"context"
	"net/http"
	"time"

	"kledje/domain"
	"kledje/pkg/response"

	"github.com/labstack/echo/v4"
)

type SettingsService interface {
	GetSettings(ctx context.Context) (*domain.SiteSettings, error)
	UpdateSettings(ctx context.Context, body map[string]any) (*domain.SiteSettings, error)
	GetContact(ctx context.Context) (domain.ContactInfo, error)
	UpdateContact(ctx context.Context, phone, email, address string) (domain.ContactInfo, error)
}

type SettingsHandler struct {
	settingsService SettingsService
	timeout         time.Duration
}

func NewSettingsHandler(settingsService SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		timeout:         defaultTimeout,
	}
}

type ContactRequest struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (h *SettingsHandler) GetSettings(c echo.Context) error {
	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	settings, err := h.settingsService.GetSettings(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.OK(settings))
}

func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	body := map[string]any{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	settings, err := h.settingsService.UpdateSettings(ctx, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Message(domain.MsgSettingsUpdated, settings))
}

func (h *SettingsHandler) GetContact(c echo.Context) error {
	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	contact, err := h.settingsService.GetContact(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.OK(contact))
}

func (h *SettingsHandler) UpdateContact(c echo.Context) error {
	var req ContactRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	contact, err := h.settingsService.UpdateContact(ctx, req.Phone, req.Email, req.Address)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Message(domain.MsgContactUpdated, contact))
}
