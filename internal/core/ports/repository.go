package ports

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/srgjo27/service_booking/internal/core/domain"
)

// ShopRecord and the other *Record types are the shapes providers hand back.
// They tolerate the naming drift found in the stored data; CatalogLoader is
// the only place that turns them into domain types.
type ShopRecord struct {
	ID       string
	Name     string
	Category string
	Address  string
	City     string
	Country  string
	Phone    string
	IsActive *bool
}

type ServiceRecord struct {
	ID          string
	ShopID      string
	Name        string
	Description string
	Category    string
	Price       float64
	Duration    int
	IsActive    *bool
	AllowBase   bool
	// AssignedStaff is either a JSON array of ids or a JSON string holding one.
	AssignedStaff json.RawMessage
}

type OptionRecord struct {
	ID                string
	ServiceID         string
	Name              string
	OptionName        string
	Description       string
	OptionDescription string
	Price             float64
	Duration          int
	IsActive          *bool
	SortOrder         int
}

type StaffRecord struct {
	ID          string
	Name        string
	Role        string
	Specialties []string
	Rating      *float64
	ServiceIDs  []string
	IsActive    *bool
}

type DiscountRecord struct {
	ID          string
	ShopID      string
	Title       string
	Description string
	Code        string
	Type        string
	Value       float64
	IsActive    bool
}

type CatalogProvider interface {
	GetShop(ctx context.Context, shopID string) (*ShopRecord, error)
	GetServices(ctx context.Context, shopID string) ([]ServiceRecord, error)
	GetServiceOptions(ctx context.Context, serviceID, shopID string) ([]OptionRecord, error)
	GetStaff(ctx context.Context, shopID string) ([]StaffRecord, error)
}

// DiscountProvider returns at most one active discount per shop, or nil.
type DiscountProvider interface {
	GetActiveDiscount(ctx context.Context, shopID string) (*DiscountRecord, error)
}

type CatalogCache interface {
	Get(ctx context.Context, shopID string) (*domain.Catalog, bool, error)
	Set(ctx context.Context, catalog *domain.Catalog) error
	Invalidate(ctx context.Context, shopID string) error
}

type FavoritesRepository interface {
	Toggle(ctx context.Context, userID, shopID string) (bool, error)
	IsFavorite(ctx context.Context, userID, shopID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]string, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) error
	GetExpiredBookings(ctx context.Context) ([]uuid.UUID, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID) error
}

type BookingNotifier interface {
	NotifyBookingCreated(ctx context.Context, booking *domain.Booking, req *domain.BookingRequest) error
}
