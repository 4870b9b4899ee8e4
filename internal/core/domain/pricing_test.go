package domain_test

import (
	"math"
	"testing"

	"github.com/srgjo27/service_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func haircutCatalog() []domain.Service {
	return []domain.Service{
		{
			ID:       "svc-hair",
			Name:     "Haircut",
			Price:    40,
			Duration: 30,
			Options: []domain.ServiceOption{
				{ID: "o1", Name: "Short", Price: 50, Duration: 30},
				{ID: "o2", Name: "Long", Price: 80, Duration: 45},
			},
		},
		{ID: "svc-massage", Name: "Massage", Price: 120, Duration: 60},
	}
}

func TestComputeBreakdown_ToggleSequence(t *testing.T) {
	services := haircutCatalog()
	s := domain.NewSelectionState()

	s.Toggle("Haircut", "o1")
	assert.Equal(t, 50.0, domain.ComputeBreakdown(s, services).Subtotal)

	s.Toggle("Haircut", "o2")
	assert.Equal(t, 130.0, domain.ComputeBreakdown(s, services).Subtotal)

	s.Toggle("Haircut", "o1")
	assert.Equal(t, 80.0, domain.ComputeBreakdown(s, services).Subtotal)
}

func TestComputeBreakdown_NoDiscount(t *testing.T) {
	s := domain.NewSelectionState()
	s.Toggle("Haircut", "o1")
	s.Toggle("Haircut", "o2")

	b := domain.ComputeBreakdown(s, haircutCatalog())

	assert.Equal(t, 130.0, b.Subtotal)
	assert.Equal(t, 0.0, b.DiscountAmount)
	assert.Equal(t, 130.0, b.FinalTotal)
	assert.Equal(t, 0.0, b.Tax)
	assert.False(t, b.HasDiscount)
}

func TestComputeBreakdown_WithDiscount(t *testing.T) {
	s := domain.NewSelectionState()
	s.Toggle("Haircut", "o1")
	s.Toggle("Haircut", "o2")
	s.ApplyDiscount(&domain.Discount{ID: "d1", Percentage: 20})

	b := domain.ComputeBreakdown(s, haircutCatalog())

	assert.Equal(t, 130.0, b.Subtotal)
	assert.Equal(t, 26.0, b.DiscountAmount)
	assert.Equal(t, 104.0, b.DiscountedSubtotal)
	assert.Equal(t, 104.0, b.FinalTotal)
	assert.Equal(t, 20.0, b.DiscountPercentage)
	assert.True(t, b.HasDiscount)
}

func TestComputeBreakdown_BasePrice(t *testing.T) {
	s := domain.NewSelectionState()
	s.Toggle("Massage", domain.BaseOption)
	s.Toggle("Haircut", domain.BaseOption)

	assert.Equal(t, 160.0, domain.ComputeBreakdown(s, haircutCatalog()).Subtotal)
}

func TestComputeBreakdown_StaleOptionContributesZero(t *testing.T) {
	s := domain.NewSelectionState()
	s.Toggle("Haircut", "o1")
	s.Toggle("Haircut", "removed")
	s.Toggle("Gone", domain.BaseOption)

	assert.NotPanics(t, func() {
		b := domain.ComputeBreakdown(s, haircutCatalog())
		assert.Equal(t, 50.0, b.Subtotal)
	})
}

func TestComputeBreakdown_NilState(t *testing.T) {
	b := domain.ComputeBreakdown(nil, haircutCatalog())
	assert.Equal(t, domain.PriceBreakdown{}, b)
}

func TestComputeBreakdown_FinalTotalNeverNegative(t *testing.T) {
	services := haircutCatalog()
	for _, pct := range []float64{0, 0.5, 12.5, 33.333, 50, 99.9, 100, 150, -10, math.NaN()} {
		s := domain.NewSelectionState()
		s.Toggle("Haircut", "o1")
		s.Toggle("Massage", domain.BaseOption)
		s.ApplyDiscount(&domain.Discount{ID: "d", Percentage: pct})

		b := domain.ComputeBreakdown(s, services)
		assert.GreaterOrEqual(t, b.FinalTotal, 0.0, "percentage %v", pct)
		assert.LessOrEqual(t, b.DiscountAmount, b.Subtotal, "percentage %v", pct)
	}
}

func TestDiscountAmount_RoundsHalfAwayFromZero(t *testing.T) {
	// 25% of 10 is 2.5
	assert.Equal(t, 3.0, domain.DiscountAmount(10, &domain.Discount{Percentage: 25}))
	// 15% of 30 is 4.5
	assert.Equal(t, 5.0, domain.DiscountAmount(30, &domain.Discount{Percentage: 15}))
	assert.Equal(t, 0.0, domain.DiscountAmount(0, &domain.Discount{Percentage: 50}))
	assert.Equal(t, 0.0, domain.DiscountAmount(100, nil))
}

func TestDiscountedPrice(t *testing.T) {
	assert.Equal(t, 80.0, domain.DiscountedPrice(100, &domain.Discount{Percentage: 20}))
	assert.Equal(t, 100.0, domain.DiscountedPrice(100, nil))
	assert.Equal(t, 0.0, domain.DiscountedPrice(100, &domain.Discount{Percentage: 120}))
}

func TestResolvePair(t *testing.T) {
	services := haircutCatalog()

	price, duration, ok := domain.ResolvePair(services, "Haircut", "o2")
	assert.True(t, ok)
	assert.Equal(t, 80.0, price)
	assert.Equal(t, 45, duration)

	price, duration, ok = domain.ResolvePair(services, "Massage", domain.BaseOption)
	assert.True(t, ok)
	assert.Equal(t, 120.0, price)
	assert.Equal(t, 60, duration)

	_, _, ok = domain.ResolvePair(services, "Haircut", "missing")
	assert.False(t, ok)
}
