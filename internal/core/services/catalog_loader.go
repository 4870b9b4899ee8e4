package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/srgjo27/service_booking/internal/core/domain"
	"github.com/srgjo27/service_booking/internal/core/ports"
)

const (
	defaultStaffRating = 4.5
	defaultStaffRole   = "Staff"
	percentageDiscount = "percentage"
)

// CatalogLoader reads a shop from its provider and normalizes it. It is the
// only code that knows about the provider record shapes.
type CatalogLoader struct {
	provider  ports.CatalogProvider
	discounts ports.DiscountProvider
	cache     ports.CatalogCache
	logger    *zap.Logger
}

// NewCatalogLoader accepts nil discounts and cache.
func NewCatalogLoader(provider ports.CatalogProvider, discounts ports.DiscountProvider, cache ports.CatalogCache, logger *zap.Logger) *CatalogLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogLoader{
		provider:  provider,
		discounts: discounts,
		cache:     cache,
		logger:    logger,
	}
}

// LoadCatalog never returns a nil catalog. When the shop cannot be read the
// result is empty and the error wraps domain.ErrCatalogUnavailable.
func (l *CatalogLoader) LoadCatalog(ctx context.Context, shopID string) (*domain.Catalog, error) {
	shopID = strings.TrimSpace(shopID)
	if shopID == "" {
		return domain.EmptyCatalog(shopID), fmt.Errorf("%w: shop id is required", domain.ErrCatalogUnavailable)
	}
	log := l.logger.With(zap.String("shop_id", shopID))

	if l.cache != nil {
		cached, ok, err := l.cache.Get(ctx, shopID)
		if err != nil {
			log.Warn("catalog cache read failed", zap.Error(err))
		} else if ok && cached != nil {
			return cached, nil
		}
	}

	if l.provider == nil {
		return domain.EmptyCatalog(shopID), fmt.Errorf("%w: no catalog provider configured", domain.ErrCatalogUnavailable)
	}

	shopRec, err := l.provider.GetShop(ctx, shopID)
	if err != nil {
		log.Warn("failed to load shop", zap.Error(err))
		return domain.EmptyCatalog(shopID), fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	if shopRec == nil {
		return domain.EmptyCatalog(shopID), fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, domain.ErrShopNotFound)
	}

	serviceRecs, err := l.provider.GetServices(ctx, shopID)
	if err != nil {
		log.Warn("failed to load services", zap.Error(err))
		return domain.EmptyCatalog(shopID), fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	// A degraded catalog is still served but never cached, so an option or
	// staff outage cannot outlive the request that hit it.
	degraded := false

	services := make([]domain.Service, 0, len(serviceRecs))
	for _, rec := range serviceRecs {
		if !isActive(rec.IsActive) || strings.TrimSpace(rec.Name) == "" {
			continue
		}
		svc := normalizeService(shopID, rec, log)

		optionRecs, err := l.provider.GetServiceOptions(ctx, rec.ID, shopID)
		if err != nil {
			log.Warn("failed to load service options, treating service as option-less",
				zap.String("service_id", rec.ID), zap.Error(err))
			optionRecs = nil
			degraded = true
		}
		svc.Options = normalizeOptions(svc.ID, optionRecs)
		services = append(services, svc)
	}

	staffRecs, err := l.provider.GetStaff(ctx, shopID)
	if err != nil {
		log.Warn("failed to load staff, offering any available only", zap.Error(err))
		staffRecs = nil
		degraded = true
	}
	staff := normalizeStaff(staffRecs)
	linkAssignments(services, staff)
	staff = append(staff, domain.AnyAvailableStaff())

	discount, ok := l.loadDiscount(ctx, shopID, log)
	if !ok {
		degraded = true
	}

	catalog := &domain.Catalog{
		Shop:     normalizeShop(shopID, shopRec),
		Services: services,
		Staff:    staff,
		Discount: discount,
	}

	if l.cache != nil && !degraded {
		if err := l.cache.Set(ctx, catalog); err != nil {
			log.Warn("catalog cache write failed", zap.Error(err))
		}
	}

	log.Debug("catalog loaded",
		zap.Int("services", len(catalog.Services)),
		zap.Int("staff", len(catalog.Staff)),
		zap.Bool("discount", catalog.Discount != nil),
		zap.Bool("degraded", degraded))

	return catalog, nil
}

// loadDiscount reports false only when the provider read failed.
func (l *CatalogLoader) loadDiscount(ctx context.Context, shopID string, log *zap.Logger) (*domain.Discount, bool) {
	if l.discounts == nil {
		return nil, true
	}
	rec, err := l.discounts.GetActiveDiscount(ctx, shopID)
	if err != nil {
		log.Warn("failed to load discount", zap.Error(err))
		return nil, false
	}
	if rec == nil || !rec.IsActive || rec.Value <= 0 {
		return nil, true
	}
	if t := strings.ToLower(strings.TrimSpace(rec.Type)); t != "" && t != percentageDiscount {
		log.Debug("ignoring non-percentage discount", zap.String("discount_id", rec.ID), zap.String("type", rec.Type))
		return nil, true
	}
	return &domain.Discount{
		ID:          rec.ID,
		Percentage:  domain.ClampPercentage(rec.Value),
		Title:       strings.TrimSpace(rec.Title),
		Description: strings.TrimSpace(rec.Description),
		Code:        strings.TrimSpace(rec.Code),
	}, true
}

// InvalidateCatalog drops the cached catalog for shopID so the next load
// reads the provider. It is a no-op without a cache.
func (l *CatalogLoader) InvalidateCatalog(ctx context.Context, shopID string) error {
	shopID = strings.TrimSpace(shopID)
	if l.cache == nil || shopID == "" {
		return nil
	}
	if err := l.cache.Invalidate(ctx, shopID); err != nil {
		return fmt.Errorf("invalidate catalog %s: %w", shopID, err)
	}
	return nil
}

func normalizeShop(shopID string, rec *ports.ShopRecord) domain.Shop {
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		id = shopID
	}
	return domain.Shop{
		ID:       id,
		Name:     strings.TrimSpace(rec.Name),
		Category: strings.TrimSpace(rec.Category),
		Address:  strings.TrimSpace(rec.Address),
		City:     strings.TrimSpace(rec.City),
		Country:  strings.TrimSpace(rec.Country),
		Phone:    strings.TrimSpace(rec.Phone),
		Active:   isActive(rec.IsActive),
	}
}

func normalizeService(shopID string, rec ports.ServiceRecord, log *zap.Logger) domain.Service {
	staffIDs, err := parseAssignedStaff(rec.AssignedStaff)
	if err != nil {
		log.Warn("unreadable staff assignment, ignoring",
			zap.String("service_id", rec.ID), zap.Error(err))
		staffIDs = nil
	}
	owner := strings.TrimSpace(rec.ShopID)
	if owner == "" {
		owner = shopID
	}
	return domain.Service{
		ID:          strings.TrimSpace(rec.ID),
		ShopID:      owner,
		Name:        strings.TrimSpace(rec.Name),
		Description: strings.TrimSpace(rec.Description),
		Category:    strings.TrimSpace(rec.Category),
		Price:       nonNegative(rec.Price),
		Duration:    max(rec.Duration, 0),
		StaffIDs:    staffIDs,
		AllowBase:   rec.AllowBase,
		Active:      true,
	}
}

func normalizeOptions(serviceID string, recs []ports.OptionRecord) []domain.ServiceOption {
	if len(recs) == 0 {
		return nil
	}
	opts := make([]domain.ServiceOption, 0, len(recs))
	for _, rec := range recs {
		id := strings.TrimSpace(rec.ID)
		if id == "" || id == domain.BaseOption || !isActive(rec.IsActive) {
			continue
		}
		parent := strings.TrimSpace(rec.ServiceID)
		if parent == "" {
			parent = serviceID
		}
		opts = append(opts, domain.ServiceOption{
			ID:          id,
			ServiceID:   parent,
			Name:        firstNonEmpty(rec.OptionName, rec.Name),
			Description: firstNonEmpty(rec.OptionDescription, rec.Description),
			Price:       nonNegative(rec.Price),
			Duration:    max(rec.Duration, 0),
			Active:      true,
			SortOrder:   rec.SortOrder,
		})
	}
	sort.SliceStable(opts, func(i, j int) bool {
		if opts[i].SortOrder != opts[j].SortOrder {
			return opts[i].SortOrder < opts[j].SortOrder
		}
		return opts[i].Name < opts[j].Name
	})
	if len(opts) == 0 {
		return nil
	}
	return opts
}

func normalizeStaff(recs []ports.StaffRecord) []domain.Staff {
	staff := make([]domain.Staff, 0, len(recs)+1)
	seen := make(map[string]struct{}, len(recs))
	for _, rec := range recs {
		id := strings.TrimSpace(rec.ID)
		if id == "" || id == domain.AnyStaffID || !isActive(rec.IsActive) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		rating := defaultStaffRating
		if rec.Rating != nil && *rec.Rating > 0 {
			rating = *rec.Rating
		}
		role := strings.TrimSpace(rec.Role)
		if role == "" {
			role = defaultStaffRole
		}
		staff = append(staff, domain.Staff{
			ID:          id,
			Name:        strings.TrimSpace(rec.Name),
			Role:        role,
			Specialties: trimAll(rec.Specialties),
			Rating:      rating,
			ServiceIDs:  trimAll(rec.ServiceIDs),
		})
	}
	return staff
}

// linkAssignments merges the two places an assignment can be recorded, on the
// service and on the staff member, so both sides agree afterwards.
func linkAssignments(services []domain.Service, staff []domain.Staff) {
	for i := range services {
		for _, st := range staff {
			if containsString(st.ServiceIDs, services[i].ID) {
				services[i].StaffIDs = appendUnique(services[i].StaffIDs, st.ID)
			}
		}
	}
	for i := range staff {
		for _, svc := range services {
			if containsString(svc.StaffIDs, staff[i].ID) {
				staff[i].ServiceIDs = appendUnique(staff[i].ServiceIDs, svc.ID)
			}
		}
	}
}

func parseAssignedStaff(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	// jsonb columns written by older clients hold the array as a string.
	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, err
		}
		return parseAssignedStaff(json.RawMessage(encoded))
	}

	var values []any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("assigned staff: %w", err)
	}

	var ids []string
	for _, v := range values {
		var id string
		switch t := v.(type) {
		case string:
			id = strings.TrimSpace(t)
		case float64:
			id = strconv.FormatFloat(t, 'f', -1, 64)
		default:
			continue
		}
		if id != "" {
			ids = appendUnique(ids, id)
		}
	}
	return ids, nil
}

func isActive(flag *bool) bool {
	return flag == nil || *flag
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			out = appendUnique(out, s)
		}
	}
	return out
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func appendUnique(values []string, v string) []string {
	if containsString(values, v) {
		return values
	}
	return append(values, v)
}
