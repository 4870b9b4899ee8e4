package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/srgjo27/service_booking/internal/core/domain"
	"github.com/srgjo27/service_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedSession(t *testing.T) *services.DetailSession {
	t.Helper()
	s := services.NewDetailSession(nil, "shop-1")
	catalog := &domain.Catalog{
		Shop:     salonShop(),
		Services: salonServices(),
		Staff:    rosterFixture(),
		Discount: &domain.Discount{ID: "d1", Percentage: 20},
	}
	require.NoError(t, s.Apply(s.BeginLoad(), catalog, nil))
	return s
}

func TestDetailSession_StaleLoadIsDiscarded(t *testing.T) {
	s := services.NewDetailSession(nil, "shop-1")

	first := s.BeginLoad()
	second := s.BeginLoad()

	newer := &domain.Catalog{Shop: domain.Shop{ID: "shop-1", Name: "Newer"}}
	older := &domain.Catalog{Shop: domain.Shop{ID: "shop-1", Name: "Older"}}

	require.NoError(t, s.Apply(second, newer, nil))
	assert.ErrorIs(t, s.Apply(first, older, nil), domain.ErrStaleLoad)

	assert.Equal(t, "Newer", s.Catalog().Shop.Name)
	assert.True(t, s.Available())
}

func TestDetailSession_SwitchShopInvalidatesInFlightLoad(t *testing.T) {
	s := services.NewDetailSession(nil, "shop-1")
	gen := s.BeginLoad()

	s.SwitchShop("shop-2")

	err := s.Apply(gen, &domain.Catalog{Shop: domain.Shop{ID: "shop-1"}}, nil)
	assert.ErrorIs(t, err, domain.ErrStaleLoad)
	assert.Equal(t, "shop-2", s.ShopID())
	assert.Equal(t, "shop-2", s.Catalog().Shop.ID)
	assert.False(t, s.Available())
}

func TestDetailSession_FailedLoadLeavesEmptyCatalog(t *testing.T) {
	s := services.NewDetailSession(nil, "shop-1")

	err := s.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.False(t, s.Available())
	assert.False(t, s.Catalog().HasServices())
	assert.Equal(t, []string{domain.AnyStaffID}, staffIDs(s.EligibleStaff()))
}

func TestDetailSession_ApplyPassesLoadErrorThrough(t *testing.T) {
	s := services.NewDetailSession(nil, "shop-1")
	loadErr := errors.New("boom")

	err := s.Apply(s.BeginLoad(), nil, loadErr)

	assert.Equal(t, loadErr, err)
	assert.NotNil(t, s.Catalog())
	assert.False(t, s.Available())
}

func TestDetailSession_ToggleValidatesAgainstCatalog(t *testing.T) {
	s := loadedSession(t)

	_, err := s.Toggle("Waxing", domain.BaseOption)
	assert.ErrorIs(t, err, domain.ErrUnknownService)

	_, err = s.Toggle("Haircut", domain.BaseOption)
	assert.ErrorIs(t, err, domain.ErrBaseNotSelectable)

	_, err = s.Toggle("Haircut", "o9")
	assert.ErrorIs(t, err, domain.ErrUnknownOption)

	selected, err := s.Toggle("Haircut", "o1")
	require.NoError(t, err)
	assert.True(t, selected)

	selected, err = s.Toggle("Massage", domain.BaseOption)
	require.NoError(t, err)
	assert.True(t, selected)

	assert.Equal(t, 170.0, s.Breakdown().Subtotal)
}

func TestDetailSession_StaleSelectionCanBeRemoved(t *testing.T) {
	s := loadedSession(t)
	_, err := s.Toggle("Haircut", "o1")
	require.NoError(t, err)

	reloaded := &domain.Catalog{Shop: salonShop(), Services: []domain.Service{{ID: "svc-massage", Name: "Massage", Price: 120}}}
	require.NoError(t, s.Apply(s.BeginLoad(), reloaded, nil))

	selected, err := s.Toggle("Haircut", "o1")
	require.NoError(t, err)
	assert.False(t, selected)
	assert.True(t, s.Selection().Empty())
}

func TestDetailSession_StaffMustBeEligible(t *testing.T) {
	s := loadedSession(t)
	_, err := s.Toggle("Haircut", "o2")
	require.NoError(t, err)

	assert.Equal(t, []string{"s1", domain.AnyStaffID}, staffIDs(s.EligibleStaff()))
	assert.ErrorIs(t, s.SelectStaff("s2"), domain.ErrStaffNotEligible)
	require.NoError(t, s.SelectStaff("s1"))

	id, ok := s.Selection().StaffID()
	assert.True(t, ok)
	assert.Equal(t, "s1", id)

	require.NoError(t, s.SelectStaff(""))
	_, ok = s.Selection().StaffID()
	assert.False(t, ok)
}

func TestDetailSession_ApplyDiscount(t *testing.T) {
	s := loadedSession(t)
	_, err := s.Toggle("Haircut", "o1")
	require.NoError(t, err)
	_, err = s.Toggle("Haircut", "o2")
	require.NoError(t, err)

	assert.ErrorIs(t, s.ApplyDiscount("other"), domain.ErrDiscountUnavailable)
	require.NoError(t, s.ApplyDiscount("d1"))

	b := s.Breakdown()
	assert.Equal(t, 26.0, b.DiscountAmount)
	assert.Equal(t, 104.0, b.FinalTotal)

	require.NoError(t, s.ApplyDiscount(""))
	assert.Equal(t, 130.0, s.Breakdown().FinalTotal)
}

func TestDetailSession_AssembleAndReset(t *testing.T) {
	s := loadedSession(t)

	_, err := s.Assemble()
	assert.ErrorIs(t, err, domain.ErrEmptySelection)
	assert.True(t, services.IsUserError(err))

	_, err = s.Toggle("Massage", domain.BaseOption)
	require.NoError(t, err)
	_, err = s.Assemble()
	assert.ErrorIs(t, err, domain.ErrNoStaffSelected)

	require.NoError(t, s.SelectStaff(domain.AnyStaffID))
	req, err := s.Assemble()
	require.NoError(t, err)
	assert.Equal(t, "shop-1", req.ShopID)
	assert.Len(t, req.Items, 1)

	s.Reset()
	assert.True(t, s.Selection().Empty())
}

func TestIsUserError(t *testing.T) {
	assert.True(t, services.IsUserError(domain.ErrNoStaffSelected))
	assert.False(t, services.IsUserError(domain.ErrCatalogUnavailable))
	assert.False(t, services.IsUserError(nil))
}
