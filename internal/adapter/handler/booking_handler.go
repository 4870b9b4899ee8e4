package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/srgjo27/service_booking/internal/core/domain"
	"github.com/srgjo27/service_booking/internal/core/services"
)

const noServicesMessage = "no services available"

type SelectionInput struct {
	Selections map[string][]string `json:"selections"`
	StaffID    string              `json:"staff_id"`
	DiscountID string              `json:"discount_id"`
}

type CreateBookingInput struct {
	SelectionInput
	CustomerID string `json:"customer_id" binding:"required"`
}

type QuoteLine struct {
	ServiceName     string  `json:"service_name"`
	OptionID        string  `json:"option_id"`
	Price           float64 `json:"price"`
	DiscountedPrice float64 `json:"discounted_price"`
	Duration        int     `json:"duration"`
}

type QuoteResponse struct {
	Lines         []QuoteLine            `json:"lines"`
	Breakdown     domain.PriceBreakdown  `json:"breakdown"`
	EligibleStaff []domain.Staff         `json:"eligible_staff"`
	Request       *domain.BookingRequest `json:"request,omitempty"`
	Ready         bool                   `json:"ready"`
	Message       string                 `json:"message,omitempty"`
}

type CreateBookingResponse struct {
	Booking  *domain.Booking `json:"booking"`
	Warnings []string        `json:"warnings,omitempty"`
}

type BookingHandler struct {
	loader   *services.CatalogLoader
	bookings *services.BookingService
	logger   *zap.Logger
}

func NewBookingHandler(loader *services.CatalogLoader, bookings *services.BookingService, logger *zap.Logger) *BookingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingHandler{loader: loader, bookings: bookings, logger: logger}
}

func (h *BookingHandler) GetCatalog(c *gin.Context) {
	ctx := c.Request.Context()
	shopID := c.Param("shopID")

	if c.Query("refresh") == "true" {
		if err := h.loader.InvalidateCatalog(ctx, shopID); err != nil {
			h.logger.Warn("catalog cache invalidation failed", zap.String("shop_id", shopID), zap.Error(err))
		}
	}

	catalog, err := h.loader.LoadCatalog(ctx, shopID)
	if err != nil {
		h.logger.Warn("serving empty catalog", zap.String("shop_id", shopID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"catalog":   catalog,
		"available": err == nil,
	})
}

func (h *BookingHandler) Quote(c *gin.Context) {
	var input SelectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid json body")
		return
	}

	session, err := h.restore(c.Request.Context(), c.Param("shopID"), input)
	if errors.Is(err, domain.ErrCatalogUnavailable) {
		c.JSON(http.StatusOK, QuoteResponse{
			Lines:         []QuoteLine{},
			EligibleStaff: []domain.Staff{domain.AnyAvailableStaff()},
			Message:       noServicesMessage,
		})
		return
	}
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	resp := QuoteResponse{
		Lines:         quoteLines(session),
		Breakdown:     session.Breakdown(),
		EligibleStaff: session.EligibleStaff(),
	}

	req, err := session.Assemble()
	switch {
	case err == nil:
		resp.Request = req
		resp.Ready = true
	case services.IsUserError(err):
		resp.Message = err.Error()
	default:
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid json body")
		return
	}

	ctx := c.Request.Context()
	session, err := h.restore(ctx, c.Param("shopID"), input.SelectionInput)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	req, err := session.Assemble()
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	booking, err := h.bookings.CreateBooking(ctx, input.CustomerID, req)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, CreateBookingResponse{Booking: booking, Warnings: req.Warnings})
}

func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	if err := h.bookings.ConfirmBooking(c.Request.Context(), c.Param("bookingID")); err != nil {
		handleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": domain.BookingConfirmed})
}

// restore replays a client's selection against a freshly loaded catalog.
// Services are applied in catalog order so line items are stable.
func (h *BookingHandler) restore(ctx context.Context, shopID string, input SelectionInput) (*services.DetailSession, error) {
	session := services.NewDetailSession(h.loader, shopID)
	if err := session.Load(ctx); err != nil {
		return nil, err
	}

	catalog := session.Catalog()
	for _, svc := range catalog.Services {
		for _, optionID := range input.Selections[svc.Name] {
			if session.Selection().IsSelected(svc.Name, optionID) {
				continue
			}
			if _, err := session.Toggle(svc.Name, optionID); err != nil {
				return nil, err
			}
		}
	}
	for name := range input.Selections {
		if _, ok := catalog.Service(name); !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownService, name)
		}
	}

	if err := session.SelectStaff(input.StaffID); err != nil {
		return nil, err
	}
	if err := session.ApplyDiscount(input.DiscountID); err != nil {
		return nil, err
	}
	return session, nil
}

func quoteLines(session *services.DetailSession) []QuoteLine {
	catalog := session.Catalog()
	discount := session.Selection().Discount()

	lines := []QuoteLine{}
	for _, pair := range session.Selection().Pairs() {
		price, duration, ok := domain.ResolvePair(catalog.Services, pair.ServiceName, pair.OptionID)
		if !ok {
			continue
		}
		lines = append(lines, QuoteLine{
			ServiceName:     pair.ServiceName,
			OptionID:        pair.OptionID,
			Price:           price,
			DiscountedPrice: domain.DiscountedPrice(price, discount),
			Duration:        duration,
		})
	}
	return lines
}

func handleError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrBookingNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrCatalogUnavailable):
		respondError(c, http.StatusBadRequest, noServicesMessage)
	case services.IsUserError(err),
		errors.Is(err, services.ErrInvalidCustomer),
		errors.Is(err, services.ErrInvalidBookingID),
		errors.Is(err, services.ErrInvalidFavorite):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
