package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/srgjo27/service_booking/internal/core/domain"
	"github.com/srgjo27/service_booking/internal/core/ports"
)

const (
	DefaultBookingHold     = 15 * time.Minute
	DefaultCleanupSchedule = "@every 1m"
)

var (
	ErrInvalidCustomer  = errors.New("invalid customer id")
	ErrInvalidBookingID = errors.New("invalid booking id")
)

// BookingService receives assembled booking requests and records them as
// pending bookings. Pending bookings that are not confirmed within the hold
// window are expired by the background sweep.
type BookingService struct {
	bookingRepo ports.BookingRepository
	notifier    ports.BookingNotifier
	hold        time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

func NewBookingService(bookingRepo ports.BookingRepository, notifier ports.BookingNotifier, hold time.Duration, logger *zap.Logger) *BookingService {
	if hold <= 0 {
		hold = DefaultBookingHold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		hold:        hold,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, customerID string, req *domain.BookingRequest) (*domain.Booking, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, ErrInvalidCustomer
	}
	if req == nil || len(req.Items) == 0 {
		return nil, domain.ErrEmptySelection
	}
	if req.Staff.ID == "" {
		return nil, domain.ErrNoStaffSelected
	}

	bookingID := uuid.New()
	now := s.now().UTC()

	items := make([]domain.BookingItem, 0, len(req.Items))
	for _, line := range req.Items {
		items = append(items, domain.BookingItem{
			ID:             uuid.New(),
			BookingID:      bookingID,
			ServiceID:      line.ServiceID,
			OptionID:       line.OptionID,
			Name:           line.DisplayName,
			PriceAtBooking: line.UnitPrice,
			Duration:       line.Duration,
		})
	}

	booking := &domain.Booking{
		ID:          bookingID,
		CustomerID:  customerID,
		ShopID:      req.ShopID,
		StaffID:     req.Staff.ID,
		TotalAmount: req.Breakdown.FinalTotal,
		Status:      domain.BookingPending,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.hold),
		Items:       items,
	}
	if req.Discount != nil {
		booking.DiscountID = req.Discount.ID
	}

	if err := s.bookingRepo.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.Info("booking created",
		zap.String("booking_id", bookingID.String()),
		zap.String("shop_id", booking.ShopID),
		zap.Int("items", len(items)),
		zap.Float64("total", booking.TotalAmount))

	if s.notifier != nil {
		if err := s.notifier.NotifyBookingCreated(ctx, booking, req); err != nil {
			s.logger.Warn("booking notification failed",
				zap.String("booking_id", bookingID.String()), zap.Error(err))
		}
	}

	return booking, nil
}

func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return ErrInvalidBookingID
	}
	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.BookingConfirmed); err != nil {
		return fmt.Errorf("failed to confirm booking %s: %w", id, err)
	}
	return nil
}

// RunBackgroundCleanup expires stale pending bookings on schedule until ctx
// is done. An empty schedule means DefaultCleanupSchedule.
func (s *BookingService) RunBackgroundCleanup(ctx context.Context, schedule string) error {
	if schedule == "" {
		schedule = DefaultCleanupSchedule
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { s.processExpiredBookings(ctx) }); err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", schedule, err)
	}
	c.Start()
	s.logger.Info("background worker started", zap.String("schedule", schedule))

	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("background worker stopped")
	return nil
}

func (s *BookingService) processExpiredBookings(ctx context.Context) {
	ids, err := s.bookingRepo.GetExpiredBookings(ctx)
	if err != nil {
		s.logger.Error("error fetching expired bookings", zap.Error(err))
		return
	}

	if len(ids) == 0 {
		return
	}

	s.logger.Info("expiring pending bookings", zap.Int("count", len(ids)))

	for _, id := range ids {
		if err := s.bookingRepo.CancelBooking(ctx, id); err != nil {
			s.logger.Error("failed to expire booking", zap.String("booking_id", id.String()), zap.Error(err))
		} else {
			s.logger.Info("booking expired", zap.String("booking_id", id.String()))
		}
	}
}
