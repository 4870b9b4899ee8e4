package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/service_booking/internal/adapter/fixture"
	"github.com/srgjo27/service_booking/internal/adapter/handler"
	"github.com/srgjo27/service_booking/internal/core/domain"
	"github.com/srgjo27/service_booking/internal/core/ports/mocks"
	"github.com/srgjo27/service_booking/internal/core/services"
)

const catalogYAML = `
shops:
  - id: shop-1
    name: Salon Ayu
    phone: "+62611000"
    services:
      - id: svc-hair
        name: Haircut
        price: 40
        duration: 30
        assigned_staff: [st-ayu]
        options:
          - {id: o1, name: Short, price: 50, duration: 30, sort_order: 1}
          - {id: o2, name: Long, price: 80, duration: 45, sort_order: 2}
      - id: svc-massage
        name: Massage
        price: 120
        duration: 60
    staff:
      - {id: st-ayu, name: Ayu}
      - {id: st-budi, name: Budi}
    discount: {id: d1, type: percentage, value: 20}
`

type testServer struct {
	router    *gin.Engine
	bookings  *mocks.BookingRepository
	favorites *mocks.FavoritesRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider, err := fixture.Parse([]byte(catalogYAML))
	require.NoError(t, err)

	bookingRepo := mocks.NewBookingRepository(t)
	favoritesRepo := mocks.NewFavoritesRepository(t)

	loader := services.NewCatalogLoader(provider, provider, nil, nil)
	bookingSvc := services.NewBookingService(bookingRepo, nil, 0, nil)

	router := handler.NewRouter(
		handler.NewBookingHandler(loader, bookingSvc, nil),
		handler.NewFavoritesHandler(services.NewFavoritesService(favoritesRepo), nil),
		nil,
	)
	return &testServer{router: router, bookings: bookingRepo, favorites: favoritesRepo}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetCatalog(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/shops/shop-1/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Catalog   domain.Catalog `json:"catalog"`
		Available bool           `json:"available"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	assert.Len(t, resp.Catalog.Services, 2)
	assert.Len(t, resp.Catalog.Staff, 3)

	w = s.do(t, http.MethodGet, "/shops/ghost/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Available)
	assert.Empty(t, resp.Catalog.Services)
	assert.Equal(t, "ghost", resp.Catalog.Shop.ID)
}

func TestGetCatalog_RefreshInvalidatesCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	provider, err := fixture.Parse([]byte(catalogYAML))
	require.NoError(t, err)

	cache := mocks.NewCatalogCache(t)
	cache.On("Invalidate", mock.Anything, "shop-1").Return(nil).Once()
	cache.On("Get", mock.Anything, "shop-1").Return(nil, false, nil)
	cache.On("Set", mock.Anything, mock.Anything).Return(nil)

	loader := services.NewCatalogLoader(provider, provider, cache, nil)
	router := handler.NewRouter(
		handler.NewBookingHandler(loader, services.NewBookingService(mocks.NewBookingRepository(t), nil, 0, nil), nil),
		nil,
		nil,
	)

	req := httptest.NewRequest(http.MethodGet, "/shops/shop-1/catalog?refresh=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/shops/shop-1/catalog", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestQuote_UnknownShopHasNoServices(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/shops/ghost/quote", handler.SelectionInput{
		Selections: map[string][]string{"Haircut": {"o1"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Ready)
	assert.Empty(t, resp.Lines)
	assert.Equal(t, "no services available", resp.Message)
}

func TestQuote_WithDiscount(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/shops/shop-1/quote", handler.SelectionInput{
		Selections: map[string][]string{"Haircut": {"o1", "o2"}},
		DiscountID: "d1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 130.0, resp.Breakdown.Subtotal)
	assert.Equal(t, 26.0, resp.Breakdown.DiscountAmount)
	assert.Equal(t, 104.0, resp.Breakdown.FinalTotal)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, 40.0, resp.Lines[0].DiscountedPrice)

	staff := make([]string, 0, len(resp.EligibleStaff))
	for _, st := range resp.EligibleStaff {
		staff = append(staff, st.ID)
	}
	assert.Equal(t, []string{"st-ayu", domain.AnyStaffID}, staff)

	assert.False(t, resp.Ready)
	assert.Equal(t, domain.ErrNoStaffSelected.Error(), resp.Message)
}

func TestQuote_Ready(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/shops/shop-1/quote", handler.SelectionInput{
		Selections: map[string][]string{"Massage": {domain.BaseOption}, "Haircut": {"o2"}},
		StaffID:    domain.AnyStaffID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Ready)
	require.NotNil(t, resp.Request)
	require.Len(t, resp.Request.Items, 2)
	assert.Equal(t, "Haircut — Long", resp.Request.Items[0].DisplayName)
	assert.Equal(t, "Massage", resp.Request.Items[1].DisplayName)
	assert.Equal(t, 200.0, resp.Request.Breakdown.FinalTotal)
}

func TestQuote_RejectsInvalidSelections(t *testing.T) {
	s := newTestServer(t)

	cases := map[string]handler.SelectionInput{
		"unknown service":      {Selections: map[string][]string{"Waxing": {domain.BaseOption}}},
		"unknown option":       {Selections: map[string][]string{"Haircut": {"o9"}}},
		"base not selectable":  {Selections: map[string][]string{"Haircut": {domain.BaseOption}}},
		"ineligible staff":     {Selections: map[string][]string{"Haircut": {"o1"}}, StaffID: "st-budi"},
		"unavailable discount": {Selections: map[string][]string{"Haircut": {"o1"}}, DiscountID: "d9"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/shops/shop-1/quote", input)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateBooking(t *testing.T) {
	s := newTestServer(t)

	s.bookings.On("CreateBooking", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.ShopID == "shop-1" && b.TotalAmount == 50 && len(b.Items) == 1 && b.StaffID == "st-ayu"
	})).Return(nil)

	w := s.do(t, http.MethodPost, "/shops/shop-1/bookings", map[string]any{
		"customer_id": "cust-1",
		"selections":  map[string][]string{"Haircut": {"o1"}},
		"staff_id":    "st-ayu",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp handler.CreateBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.BookingPending, resp.Booking.Status)
}

func TestCreateBooking_ValidationErrors(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/shops/shop-1/bookings", map[string]any{
		"customer_id": "cust-1",
		"staff_id":    domain.AnyStaffID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"`+domain.ErrEmptySelection.Error()+`"}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/shops/shop-1/bookings", map[string]any{
		"selections": map[string][]string{"Haircut": {"o1"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/shops/ghost/bookings", map[string]any{
		"customer_id": "cust-1",
		"selections":  map[string][]string{"Haircut": {"o1"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"no services available"}`, w.Body.String())
}

func TestCreateBooking_RepositoryFailure(t *testing.T) {
	s := newTestServer(t)
	s.bookings.On("CreateBooking", mock.Anything, mock.Anything).Return(errors.New("db down"))

	w := s.do(t, http.MethodPost, "/shops/shop-1/bookings", map[string]any{
		"customer_id": "cust-1",
		"selections":  map[string][]string{"Massage": {domain.BaseOption}},
		"staff_id":    domain.AnyStaffID,
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestConfirmBooking(t *testing.T) {
	s := newTestServer(t)
	id := uuid.New()

	s.bookings.On("UpdateStatus", mock.Anything, id, domain.BookingConfirmed).Return(nil).Once()
	w := s.do(t, http.MethodPost, "/bookings/"+id.String()+"/confirm", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	s.bookings.On("UpdateStatus", mock.Anything, id, domain.BookingConfirmed).Return(domain.ErrBookingNotFound).Once()
	w = s.do(t, http.MethodPost, "/bookings/"+id.String()+"/confirm", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/bookings/not-a-uuid/confirm", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavorites(t *testing.T) {
	s := newTestServer(t)

	s.favorites.On("Toggle", mock.Anything, "user-1", "shop-1").Return(true, nil)
	s.favorites.On("ListByUser", mock.Anything, "user-1").Return([]string{"shop-1"}, nil)

	w := s.do(t, http.MethodPut, "/users/user-1/favorites/shop-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"shop_id":"shop-1","favorite":true}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/users/user-1/favorites", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"shop_ids":["shop-1"]}`, w.Body.String())
}

func TestFavoriteStatus(t *testing.T) {
	s := newTestServer(t)

	s.favorites.On("IsFavorite", mock.Anything, "user-1", "shop-1").Return(true, nil)
	s.favorites.On("IsFavorite", mock.Anything, "user-1", "shop-2").Return(false, errors.New("db down"))

	w := s.do(t, http.MethodGet, "/users/user-1/favorites/shop-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"shop_id":"shop-1","favorite":true}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/users/user-1/favorites/shop-2", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
