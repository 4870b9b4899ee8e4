package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/srgjo27/service_booking/internal/core/ports"
)

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetShop returns nil, nil when the shop does not exist.
func (r *CatalogRepository) GetShop(ctx context.Context, shopID string) (*ports.ShopRecord, error) {
	query := `
	SELECT id, name, COALESCE(category, ''), COALESCE(address, ''), COALESCE(city, ''),
		COALESCE(country, ''), COALESCE(phone, ''), is_active
	FROM provider_businesses
	WHERE id = $1
	`

	var (
		rec    ports.ShopRecord
		active sql.NullBool
	)
	err := r.db.QueryRowContext(ctx, query, shopID).Scan(
		&rec.ID, &rec.Name, &rec.Category, &rec.Address, &rec.City, &rec.Country, &rec.Phone, &active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query shop %s: %w", shopID, err)
	}
	rec.IsActive = nullBool(active)

	return &rec, nil
}

func (r *CatalogRepository) GetServices(ctx context.Context, shopID string) ([]ports.ServiceRecord, error) {
	query := `
	SELECT id, shop_id, name, COALESCE(description, ''), COALESCE(category, ''),
		COALESCE(price, 0), COALESCE(duration, 0), is_active, COALESCE(allow_base, false), assigned_staff
	FROM shop_services
	WHERE shop_id = $1
	ORDER BY created_at, name
	`

	rows, err := r.db.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}

	defer rows.Close()

	var recs []ports.ServiceRecord
	for rows.Next() {
		var (
			rec      ports.ServiceRecord
			active   sql.NullBool
			assigned []byte
		)
		if err := rows.Scan(
			&rec.ID, &rec.ShopID, &rec.Name, &rec.Description, &rec.Category,
			&rec.Price, &rec.Duration, &active, &rec.AllowBase, &assigned,
		); err != nil {
			return nil, err
		}
		rec.IsActive = nullBool(active)
		rec.AssignedStaff = assigned

		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

func (r *CatalogRepository) GetServiceOptions(ctx context.Context, serviceID, shopID string) ([]ports.OptionRecord, error) {
	query := `
	SELECT id, service_id, COALESCE(option_name, ''), COALESCE(description, ''),
		COALESCE(price, 0), COALESCE(duration, 0), is_active, COALESCE(sort_order, 0)
	FROM service_options
	WHERE service_id = $1 AND shop_id = $2 AND is_active = true
	ORDER BY sort_order
	`

	rows, err := r.db.QueryContext(ctx, query, serviceID, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options for service %s: %w", serviceID, err)
	}

	defer rows.Close()

	var recs []ports.OptionRecord
	for rows.Next() {
		var (
			rec    ports.OptionRecord
			active sql.NullBool
		)
		if err := rows.Scan(
			&rec.ID, &rec.ServiceID, &rec.OptionName, &rec.OptionDescription,
			&rec.Price, &rec.Duration, &active, &rec.SortOrder,
		); err != nil {
			return nil, err
		}
		rec.IsActive = nullBool(active)

		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

func (r *CatalogRepository) GetStaff(ctx context.Context, shopID string) ([]ports.StaffRecord, error) {
	query := `
	SELECT id, name, COALESCE(role, ''), specialties, rating, service_ids, is_active
	FROM shop_staff
	WHERE shop_id = $1
	ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}

	defer rows.Close()

	var recs []ports.StaffRecord
	for rows.Next() {
		var (
			rec    ports.StaffRecord
			rating sql.NullFloat64
			active sql.NullBool
		)
		if err := rows.Scan(
			&rec.ID, &rec.Name, &rec.Role, pq.Array(&rec.Specialties), &rating,
			pq.Array(&rec.ServiceIDs), &active,
		); err != nil {
			return nil, err
		}
		if rating.Valid {
			v := rating.Float64
			rec.Rating = &v
		}
		rec.IsActive = nullBool(active)

		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// GetActiveDiscount picks the most recently created active discount.
func (r *CatalogRepository) GetActiveDiscount(ctx context.Context, shopID string) (*ports.DiscountRecord, error) {
	query := `
	SELECT id, shop_id, COALESCE(title, ''), COALESCE(description, ''), COALESCE(code, ''),
		COALESCE(discount_type, 'percentage'), value, is_active
	FROM shop_discounts
	WHERE shop_id = $1 AND is_active = true
	ORDER BY created_at DESC
	LIMIT 1
	`

	var rec ports.DiscountRecord
	err := r.db.QueryRowContext(ctx, query, shopID).Scan(
		&rec.ID, &rec.ShopID, &rec.Title, &rec.Description, &rec.Code, &rec.Type, &rec.Value, &rec.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query discount: %w", err)
	}

	return &rec, nil
}

func nullBool(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}
