package domain

import "errors"

var (
	ErrCatalogUnavailable   = errors.New("catalog unavailable")
	ErrShopNotFound         = errors.New("shop not found")
	ErrEmptySelection       = errors.New("select a service to continue")
	ErrNoStaffSelected      = errors.New("select a staff member to continue")
	ErrStaffNotEligible     = errors.New("selected staff member is not available for these services")
	ErrStaleOptionReference = errors.New("selected option is no longer offered")
	ErrUnknownService       = errors.New("unknown service")
	ErrUnknownOption        = errors.New("unknown service option")
	ErrBaseNotSelectable    = errors.New("service must be booked through one of its options")
	ErrDiscountUnavailable  = errors.New("discount is not available for this shop")
	ErrStaleLoad            = errors.New("catalog load superseded by a newer request")
	ErrBookingNotFound      = errors.New("booking not found")
)
