package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/srgjo27/service_booking/internal/core/domain"
)

// DetailSession holds the selection for one shop while a user is picking
// services. Catalog loads may finish on another goroutine, so state is
// guarded, and a load is only applied if no newer load was started since.
type DetailSession struct {
	loader *CatalogLoader

	mu         sync.Mutex
	shopID     string
	generation uint64
	catalog    *domain.Catalog
	available  bool
	selection  *domain.SelectionState
}

func NewDetailSession(loader *CatalogLoader, shopID string) *DetailSession {
	return &DetailSession{
		loader:    loader,
		shopID:    shopID,
		catalog:   domain.EmptyCatalog(shopID),
		selection: domain.NewSelectionState(),
	}
}

// BeginLoad starts a new load generation. Completions carrying an older
// generation are discarded by Apply.
func (s *DetailSession) BeginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// Load fetches the catalog for the session's shop and applies it.
func (s *DetailSession) Load(ctx context.Context) error {
	gen := s.BeginLoad()

	s.mu.Lock()
	shopID := s.shopID
	s.mu.Unlock()

	if s.loader == nil {
		return s.Apply(gen, nil, domain.ErrCatalogUnavailable)
	}
	catalog, err := s.loader.LoadCatalog(ctx, shopID)
	return s.Apply(gen, catalog, err)
}

// Apply installs a loaded catalog. It returns domain.ErrStaleLoad when gen is
// not the latest generation; otherwise it returns loadErr unchanged.
func (s *DetailSession) Apply(gen uint64, catalog *domain.Catalog, loadErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return domain.ErrStaleLoad
	}
	if catalog == nil {
		catalog = domain.EmptyCatalog(s.shopID)
	}
	s.catalog = catalog
	s.available = loadErr == nil
	return loadErr
}

// SwitchShop discards the selection and invalidates any load in flight.
func (s *DetailSession) SwitchShop(shopID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.shopID = shopID
	s.catalog = domain.EmptyCatalog(shopID)
	s.available = false
	s.selection = domain.NewSelectionState()
}

func (s *DetailSession) ShopID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shopID
}

func (s *DetailSession) Catalog() *domain.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

// Available is false until a load succeeds.
func (s *DetailSession) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

// Toggle checks the pair against the catalog before flipping it. A pair that
// is already selected can always be removed, even if it went stale.
func (s *DetailSession) Toggle(serviceName, optionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selection.IsSelected(serviceName, optionID) {
		return s.selection.Toggle(serviceName, optionID), nil
	}

	svc, ok := s.catalog.Service(serviceName)
	if !ok {
		return false, fmt.Errorf("%w: %q", domain.ErrUnknownService, serviceName)
	}
	if optionID == domain.BaseOption {
		if !svc.BaseSelectable() {
			return false, fmt.Errorf("%w: %q", domain.ErrBaseNotSelectable, serviceName)
		}
	} else if _, ok := svc.Option(optionID); !ok {
		return false, fmt.Errorf("%w: %q option %q", domain.ErrUnknownOption, serviceName, optionID)
	}
	return s.selection.Toggle(serviceName, optionID), nil
}

// SelectStaff picks a staff member from the currently eligible list; an
// empty id clears the choice.
func (s *DetailSession) SelectStaff(staffID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if staffID == "" {
		s.selection.SelectStaff(nil)
		return nil
	}
	for _, st := range s.eligibleStaffLocked() {
		if st.ID == staffID {
			s.selection.SelectStaff(&staffID)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrStaffNotEligible, staffID)
}

// ApplyDiscount applies the shop's active discount by id, replacing any
// previous one. An empty id clears it.
func (s *DetailSession) ApplyDiscount(discountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if discountID == "" {
		s.selection.ApplyDiscount(nil)
		return nil
	}
	if s.catalog.Discount == nil || s.catalog.Discount.ID != discountID {
		return fmt.Errorf("%w: %s", domain.ErrDiscountUnavailable, discountID)
	}
	s.selection.ApplyDiscount(s.catalog.Discount)
	return nil
}

func (s *DetailSession) Selection() *domain.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Clone()
}

func (s *DetailSession) EligibleStaff() []domain.Staff {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eligibleStaffLocked()
}

func (s *DetailSession) eligibleStaffLocked() []domain.Staff {
	return FilterStaff(s.catalog.Staff, s.selection.Services(), s.catalog.Services)
}

func (s *DetailSession) Breakdown() domain.PriceBreakdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ComputeBreakdown(s.selection, s.catalog.Services)
}

// Assemble builds the booking request for the current selection.
func (s *DetailSession) Assemble() (*domain.BookingRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Assemble(s.selection, s.catalog.Services, s.eligibleStaffLocked(), s.catalog.Shop)
}

// Reset discards the selection, typically after a successful handoff.
func (s *DetailSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = domain.NewSelectionState()
}

// IsUserError reports whether err is one of the selection problems that are
// shown inline to the user rather than treated as a failure.
func IsUserError(err error) bool {
	for _, target := range []error{
		domain.ErrEmptySelection,
		domain.ErrNoStaffSelected,
		domain.ErrStaffNotEligible,
		domain.ErrUnknownService,
		domain.ErrUnknownOption,
		domain.ErrBaseNotSelectable,
		domain.ErrDiscountUnavailable,
		domain.ErrStaleOptionReference,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
