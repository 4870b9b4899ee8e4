package services

import (
	"fmt"
	"strings"

	"github.com/srgjo27/service_booking/internal/core/domain"
)

// Assemble turns a selection into the request handed to the booking
// collaborator. staffRoster should be the eligible staff for the selection.
//
// Selected pairs that no longer resolve against services are skipped and
// reported in Warnings so the caller can ask for a new pick.
func Assemble(state *domain.SelectionState, services []domain.Service, staffRoster []domain.Staff, shop domain.Shop) (*domain.BookingRequest, error) {
	if state == nil || state.Empty() {
		return nil, domain.ErrEmptySelection
	}

	staffID, ok := state.StaffID()
	if !ok {
		return nil, domain.ErrNoStaffSelected
	}
	staff, err := resolveStaff(staffID, staffRoster)
	if err != nil {
		return nil, err
	}

	var (
		items    []domain.LineItem
		warnings []string
		duration int
	)
	for _, pair := range state.Pairs() {
		item, err := expandPair(services, pair)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		duration += item.Duration
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmptySelection, domain.ErrStaleOptionReference)
	}

	return &domain.BookingRequest{
		ShopID:        shop.ID,
		ShopName:      shop.Name,
		ShopAddress:   shopAddress(shop),
		ShopPhone:     shop.Phone,
		Items:         items,
		Staff:         staff,
		Discount:      state.Discount(),
		Breakdown:     domain.ComputeBreakdown(state, services),
		TotalDuration: duration,
		Warnings:      warnings,
	}, nil
}

func resolveStaff(staffID string, roster []domain.Staff) (domain.Staff, error) {
	for _, st := range roster {
		if st.ID == staffID {
			return st, nil
		}
	}
	if staffID == domain.AnyStaffID {
		return domain.AnyAvailableStaff(), nil
	}
	return domain.Staff{}, fmt.Errorf("%w: %s", domain.ErrStaffNotEligible, staffID)
}

func expandPair(services []domain.Service, pair domain.SelectionPair) (domain.LineItem, error) {
	svc, ok := domain.FindService(services, pair.ServiceName)
	if !ok {
		return domain.LineItem{}, fmt.Errorf("%w: service %q", domain.ErrStaleOptionReference, pair.ServiceName)
	}

	if pair.OptionID == domain.BaseOption {
		return domain.LineItem{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			OptionID:    domain.BaseOption,
			DisplayName: svc.Name,
			UnitPrice:   svc.Price,
			Duration:    svc.Duration,
		}, nil
	}

	opt, ok := svc.Option(pair.OptionID)
	if !ok {
		return domain.LineItem{}, fmt.Errorf("%w: %q option %q", domain.ErrStaleOptionReference, svc.Name, pair.OptionID)
	}
	return domain.LineItem{
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		OptionID:    opt.ID,
		DisplayName: svc.Name + " — " + opt.Name,
		UnitPrice:   opt.Price,
		Duration:    opt.Duration,
	}, nil
}

func shopAddress(shop domain.Shop) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{shop.Address, shop.City, shop.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
