package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/service_booking/internal/core/domain"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	queryHeader := `
	INSERT INTO bookings (id, customer_id, shop_id, staff_id, discount_id, total_amount, status, created_at, expires_at)
	VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9)
	`

	_, err = tx.ExecContext(ctx, queryHeader,
		booking.ID, booking.CustomerID, booking.ShopID, booking.StaffID, booking.DiscountID,
		booking.TotalAmount, booking.Status, booking.CreatedAt, booking.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert booking header: %w", err)
	}

	queryItem := `
	INSERT INTO booking_items (id, booking_id, service_id, option_id, name, price_at_booking, duration)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	stmt, err := tx.PrepareContext(ctx, queryItem)
	if err != nil {
		return fmt.Errorf("failed to prepare item statement: %w", err)
	}

	defer stmt.Close()

	for _, item := range booking.Items {
		_, err := stmt.ExecContext(ctx, item.ID, item.BookingID, item.ServiceID, item.OptionID, item.Name, item.PriceAtBooking, item.Duration)
		if err != nil {
			return fmt.Errorf("failed to insert booking item %s/%s: %w", item.ServiceID, item.OptionID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateStatus only moves pending bookings that have not yet expired. It
// returns domain.ErrBookingNotFound when no such booking exists.
func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) error {
	query := `
	UPDATE bookings
	SET status = $1, confirmed_at = $2
	WHERE id = $3 AND status = 'PENDING' AND expires_at > NOW()
	`

	var confirmedAt *time.Time
	if status == domain.BookingConfirmed {
		now := time.Now()
		confirmedAt = &now
	}

	res, err := r.db.ExecContext(ctx, query, status, confirmedAt, bookingID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrBookingNotFound
	}

	return nil
}

func (r *BookingRepository) GetExpiredBookings(ctx context.Context) ([]uuid.UUID, error) {
	query := `
	SELECT id FROM bookings
	WHERE status = 'PENDING' AND expires_at < NOW()
	LIMIT 100
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *BookingRepository) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = 'EXPIRED' WHERE id = $1 AND status = 'PENDING'`, bookingID)
	return err
}
