package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingExpired   BookingStatus = "EXPIRED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// LineItem is one selected (service, option) pair expanded for booking.
type LineItem struct {
	ServiceID   string  `json:"service_id"`
	ServiceName string  `json:"service_name"`
	OptionID    string  `json:"option_id"`
	DisplayName string  `json:"display_name"`
	UnitPrice   float64 `json:"unit_price"`
	Duration    int     `json:"duration"`
}

// BookingRequest is the immutable payload handed to the booking collaborator.
type BookingRequest struct {
	ShopID        string         `json:"shop_id"`
	ShopName      string         `json:"shop_name"`
	ShopAddress   string         `json:"shop_address"`
	ShopPhone     string         `json:"shop_phone"`
	Items         []LineItem     `json:"items"`
	Staff         Staff          `json:"staff"`
	Discount      *Discount      `json:"discount,omitempty"`
	Breakdown     PriceBreakdown `json:"breakdown"`
	TotalDuration int            `json:"total_duration"`
	Warnings      []string       `json:"warnings,omitempty"`
}

type Booking struct {
	ID          uuid.UUID     `json:"id"`
	CustomerID  string        `json:"customer_id"`
	ShopID      string        `json:"shop_id"`
	StaffID     string        `json:"staff_id"`
	DiscountID  string        `json:"discount_id,omitempty"`
	TotalAmount float64       `json:"total_amount"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	ExpiresAt   time.Time     `json:"expires_at"`
	ConfirmedAt *time.Time    `json:"confirmed_at,omitempty"`
	Items       []BookingItem `json:"items"`
}

type BookingItem struct {
	ID             uuid.UUID `json:"id"`
	BookingID      uuid.UUID `json:"booking_id"`
	ServiceID      string    `json:"service_id"`
	OptionID       string    `json:"option_id"`
	Name           string    `json:"name"`
	PriceAtBooking float64   `json:"price_at_booking"`
	Duration       int       `json:"duration"`
}

func (b *Booking) IsPending() bool {
	return b.Status == BookingPending
}
