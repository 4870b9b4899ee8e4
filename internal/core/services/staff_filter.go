package services

import "github.com/srgjo27/service_booking/internal/core/domain"

// FilterStaff narrows the roster to staff assigned to at least one of the
// selected services. "Any Available" is always offered.
//
// When none of the selected services carries assignment data every staff
// member stays eligible. Missing assignments must not block a booking.
func FilterStaff(allStaff []domain.Staff, selectedServiceNames []string, catalogServices []domain.Service) []domain.Staff {
	if len(selectedServiceNames) == 0 {
		return withAnyAvailable(allStaff)
	}

	assigned := make(map[string]struct{})
	for _, name := range selectedServiceNames {
		svc, ok := domain.FindService(catalogServices, name)
		if !ok {
			continue
		}
		for _, id := range svc.StaffIDs {
			assigned[id] = struct{}{}
		}
	}

	eligible := make([]domain.Staff, 0, len(allStaff)+1)
	for _, st := range allStaff {
		if st.IsAny() || len(assigned) == 0 {
			eligible = append(eligible, st)
			continue
		}
		if _, ok := assigned[st.ID]; ok {
			eligible = append(eligible, st)
		}
	}
	return withAnyAvailable(eligible)
}

func withAnyAvailable(staff []domain.Staff) []domain.Staff {
	for _, st := range staff {
		if st.IsAny() {
			return staff
		}
	}
	out := make([]domain.Staff, 0, len(staff)+1)
	out = append(out, staff...)
	return append(out, domain.AnyAvailableStaff())
}
