package sms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/srgjo27/service_booking/internal/core/domain"
)

var ErrNoRecipient = errors.New("shop has no phone number")

type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

func (c Config) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// Notifier texts the shop when a booking is placed.
type Notifier struct {
	api    messageCreator
	from   string
	logger *zap.Logger
}

func NewNotifier(cfg Config, logger *zap.Logger) *Notifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newNotifier(client.Api, cfg.FromNumber, logger)
}

func newNotifier(api messageCreator, from string, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{api: api, from: from, logger: logger}
}

func (n *Notifier) NotifyBookingCreated(ctx context.Context, booking *domain.Booking, req *domain.BookingRequest) error {
	to := strings.TrimSpace(req.ShopPhone)
	if to == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.from)
	params.SetBody(BookingMessage(booking, req))

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send booking sms: %w", err)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	n.logger.Info("booking sms sent", zap.String("booking_id", booking.ID.String()), zap.String("sid", sid))
	return nil
}

// BookingMessage renders the plain-text body sent to the shop.
func BookingMessage(booking *domain.Booking, req *domain.BookingRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New booking %s at %s\n", shortID(booking.ID.String()), req.ShopName)
	for _, item := range req.Items {
		fmt.Fprintf(&b, "- %s (%d min) %.0f\n", item.DisplayName, item.Duration, item.UnitPrice)
	}
	fmt.Fprintf(&b, "Staff: %s\n", req.Staff.Name)
	if req.Breakdown.HasDiscount {
		fmt.Fprintf(&b, "Discount: %.0f%% (-%.0f)\n", req.Breakdown.DiscountPercentage, req.Breakdown.DiscountAmount)
	}
	fmt.Fprintf(&b, "Total: %.0f, %d min", req.Breakdown.FinalTotal, req.TotalDuration)
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
