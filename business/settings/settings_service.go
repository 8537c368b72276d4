package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"kledje/domain"
	"kledje/pkg/logger"

	"gorm.io/datatypes"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Update(ctx context.Context, fields map[string]any) error
}

type settingsService struct {
	settingsRepo SettingsRepository
	now          func() time.Time
}

func NewSettingsService(settingsRepo SettingsRepository) *settingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

func (s *settingsService) GetSettings(ctx context.Context) (*domain.SiteSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to load settings", "error", err)
		}
		return nil, notFound(err)
	}

	return settings, nil
}

// UpdateSettings applies only the keys in domain.SettingsFields; anything
// else in the body is dropped.
func (s *settingsService) UpdateSettings(ctx context.Context, body map[string]any) (*domain.SiteSettings, error) {
	fields := map[string]any{}

	for key, value := range body {
		if !slices.Contains(domain.SettingsFields, key) || value == nil {
			continue
		}

		if key == "contact_info" {
			contact, err := decodeContact(value)
			if err != nil {
				return nil, err
			}
			fields[key] = datatypes.NewJSONType(contact)
			continue
		}

		str, ok := value.(string)
		if !ok {
			return nil, domain.NewValidationError(fmt.Sprintf("%q must be a string", key))
		}
		fields[key] = str
	}

	fields["updated_at"] = s.now()

	if err := s.settingsRepo.Update(ctx, fields); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to update settings", "error", err)
		}
		return nil, notFound(err)
	}

	logger.Info("Settings updated", "fields", len(fields)-1)
	return s.GetSettings(ctx)
}

func (s *settingsService) GetContact(ctx context.Context) (domain.ContactInfo, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return domain.ContactInfo{}, err
	}

	return settings.ContactInfo.Data(), nil
}

// UpdateContact replaces contact_info with the non-empty values given.
func (s *settingsService) UpdateContact(ctx context.Context, phone, email, address string) (domain.ContactInfo, error) {
	contact := domain.ContactInfo{
		Phone:   strings.TrimSpace(phone),
		Email:   strings.TrimSpace(email),
		Address: strings.TrimSpace(address),
	}

	err := s.settingsRepo.Update(ctx, map[string]any{
		"contact_info": datatypes.NewJSONType(contact),
		"updated_at":   s.now(),
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to update contact info", "error", err)
		}
		return domain.ContactInfo{}, notFound(err)
	}

	return s.GetContact(ctx)
}

func decodeContact(value any) (domain.ContactInfo, error) {
	var contact domain.ContactInfo

	raw, err := json.Marshal(value)
	if err != nil {
		return contact, domain.NewValidationError(`"contact_info" must be of type object`)
	}
	if err := json.Unmarshal(raw, &contact); err != nil {
		return contact, domain.NewValidationError(`"contact_info" must be of type object`)
	}

	return contact, nil
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFoundError(domain.MsgResourceNotFound, err)
	}
	return err
}
