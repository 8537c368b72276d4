package offer

import (
	"context"
	"testing"
	"time"

	"kledje/domain"
	"kledje/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOfferRepository struct {
	mock.Mock
}

func (m *mockOfferRepository) List(ctx context.Context, params query.Params) ([]domain.Offer, query.Page, error) {
	args := m.Called(ctx, params)
	offers, _ := args.Get(0).([]domain.Offer)
	return offers, args.Get(1).(query.Page), args.Error(2)
}

func (m *mockOfferRepository) ListActive(ctx context.Context, now time.Time) ([]domain.Offer, error) {
	args := m.Called(ctx, now)
	offers, _ := args.Get(0).([]domain.Offer)
	return offers, args.Error(1)
}

func (m *mockOfferRepository) FindByID(ctx context.Context, id string) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*domain.Offer)
	return o, args.Error(1)
}

func (m *mockOfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	return m.Called(ctx, offer).Error(0)
}

func (m *mockOfferRepository) Update(ctx context.Context, offer *domain.Offer) error {
	return m.Called(ctx, offer).Error(0)
}

func (m *mockOfferRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestListOffersVisibility(t *testing.T) {
	ctx := context.Background()
	repo := new(mockOfferRepository)
	svc := NewOfferServiceWithClock(repo, clock)

	// anonymous callers get the end_date rule appended, admins do not
	repo.On("List", ctx, mock.MatchedBy(func(p query.Params) bool { return len(p.Filters) == 1 })).
		Return([]domain.Offer{}, query.Page{Page: 1, Limit: 10}, nil).Once()
	repo.On("List", ctx, mock.MatchedBy(func(p query.Params) bool { return len(p.Filters) == 0 })).
		Return([]domain.Offer{}, query.Page{Page: 1, Limit: 10}, nil).Once()

	_, _, err := svc.ListOffers(ctx, map[string]any{}, false)
	require.NoError(t, err)
	_, _, err = svc.ListOffers(ctx, map[string]any{}, true)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetExpiredOffer(t *testing.T) {
	ctx := context.Background()
	repo := new(mockOfferRepository)
	svc := NewOfferServiceWithClock(repo, clock)

	past := fixedNow.Add(-time.Hour)
	repo.On("FindByID", ctx, "o1").Return(&domain.Offer{ID: "o1", EndDate: &past}, nil)

	_, err := svc.GetOfferByID(ctx, "o1", false)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	got, err := svc.GetOfferByID(ctx, "o1", true)
	require.NoError(t, err)
	assert.Equal(t, "o1", got.ID)
}

func TestActiveOffersUsesClock(t *testing.T) {
	ctx := context.Background()
	repo := new(mockOfferRepository)
	svc := NewOfferServiceWithClock(repo, clock)

	repo.On("ListActive", ctx, fixedNow).Return([]domain.Offer{{ID: "o2", Active: true}}, nil)

	offers, err := svc.ActiveOffers(ctx)
	require.NoError(t, err)
	assert.Len(t, offers, 1)
}

func TestDeleteMissingOffer(t *testing.T) {
	ctx := context.Background()
	repo := new(mockOfferRepository)
	svc := NewOfferServiceWithClock(repo, clock)

	repo.On("Delete", ctx, "gone").Return(domain.ErrNotFound)

	err := svc.DeleteOffer(ctx, "gone")
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.MsgOfferNotFound, appErr.Message)
}
