package settings

import (
	"context"
	"testing"

	"kledje/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type mockSettingsRepository struct {
	mock.Mock
}

func (m *mockSettingsRepository) Get(ctx context.Context) (*domain.SiteSettings, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*domain.SiteSettings)
	return s, args.Error(1)
}

func (m *mockSettingsRepository) Update(ctx context.Context, fields map[string]any) error {
	return m.Called(ctx, fields).Error(0)
}

func TestUpdateSettingsDropsUnknownFields(t *testing.T) {
	ctx := context.Background()
	repo := new(mockSettingsRepository)
	svc := NewSettingsService(repo)

	repo.On("Update", ctx, mock.MatchedBy(func(fields map[string]any) bool {
		_, hasID := fields["id"]
		_, hasAdmin := fields["is_admin"]
		contact, ok := fields["contact_info"].(datatypes.JSONType[domain.ContactInfo])
		return !hasID && !hasAdmin && ok &&
			fields["site_name"] == "Kledje" &&
			contact.Data().Phone == "01012345678" &&
			fields["updated_at"] != nil
	})).Return(nil)
	repo.On("Get", ctx).Return(&domain.SiteSettings{ID: domain.SettingsID, SiteName: "Kledje"}, nil)

	got, err := svc.UpdateSettings(ctx, map[string]any{
		"id":           7,
		"is_admin":     true,
		"site_name":    "Kledje",
		"contact_info": map[string]any{"phone": "01012345678"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Kledje", got.SiteName)
	repo.AssertExpectations(t)
}

func TestUpdateSettingsRejectsNonString(t *testing.T) {
	svc := NewSettingsService(new(mockSettingsRepository))

	_, err := svc.UpdateSettings(context.Background(), map[string]any{"hero_title": 12})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestUpdateContactKeepsOnlyProvidedValues(t *testing.T) {
	ctx := context.Background()
	repo := new(mockSettingsRepository)
	svc := NewSettingsService(repo)

	repo.On("Update", ctx, mock.MatchedBy(func(fields map[string]any) bool {
		contact := fields["contact_info"].(datatypes.JSONType[domain.ContactInfo]).Data()
		return contact == domain.ContactInfo{Email: "hi@kledje.com"}
	})).Return(nil)
	repo.On("Get", ctx).Return(&domain.SiteSettings{
		ContactInfo: datatypes.NewJSONType(domain.ContactInfo{Email: "hi@kledje.com"}),
	}, nil)

	contact, err := svc.UpdateContact(ctx, "", "hi@kledje.com", " ")
	require.NoError(t, err)
	assert.Equal(t, domain.ContactInfo{Email: "hi@kledje.com"}, contact)
}

func TestGetSettingsMissingRow(t *testing.T) {
	ctx := context.Background()
	repo := new(mockSettingsRepository)
	svc := NewSettingsService(repo)

	repo.On("Get", ctx).Return(nil, domain.ErrNotFound)

	_, err := svc.GetSettings(ctx)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}
