// Package fixture serves shop catalogs from a YAML file. It backs local
// development and demos when no database is configured.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/srgjo27/service_booking/internal/core/ports"
)

type file struct {
	Shops []shop `yaml:"shops"`
}

type shop struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	Category string    `yaml:"category"`
	Address  string    `yaml:"address"`
	City     string    `yaml:"city"`
	Country  string    `yaml:"country"`
	Phone    string    `yaml:"phone"`
	IsActive *bool     `yaml:"is_active"`
	Services []service `yaml:"services"`
	Staff    []staff   `yaml:"staff"`
	Discount *discount `yaml:"discount"`
}

type service struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Category      string   `yaml:"category"`
	Price         float64  `yaml:"price"`
	Duration      int      `yaml:"duration"`
	IsActive      *bool    `yaml:"is_active"`
	AllowBase     bool     `yaml:"allow_base"`
	AssignedStaff []string `yaml:"assigned_staff"`
	Options       []option `yaml:"options"`
}

type option struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	Duration    int     `yaml:"duration"`
	IsActive    *bool   `yaml:"is_active"`
	SortOrder   int     `yaml:"sort_order"`
}

type staff struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Role        string   `yaml:"role"`
	Specialties []string `yaml:"specialties"`
	Rating      *float64 `yaml:"rating"`
	ServiceIDs  []string `yaml:"service_ids"`
	IsActive    *bool    `yaml:"is_active"`
}

type discount struct {
	ID          string  `yaml:"id"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Code        string  `yaml:"code"`
	Type        string  `yaml:"type"`
	Value       float64 `yaml:"value"`
	IsActive    *bool   `yaml:"is_active"`
}

// Provider implements ports.CatalogProvider and ports.DiscountProvider over
// an in-memory set of shops.
type Provider struct {
	shops map[string]shop
}

func Load(path string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Provider, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	p := &Provider{shops: make(map[string]shop, len(f.Shops))}
	for _, s := range f.Shops {
		if s.ID == "" {
			return nil, fmt.Errorf("fixture shop %q has no id", s.Name)
		}
		if _, dup := p.shops[s.ID]; dup {
			return nil, fmt.Errorf("duplicate fixture shop id %q", s.ID)
		}
		p.shops[s.ID] = s
	}
	return p, nil
}

func (p *Provider) GetShop(_ context.Context, shopID string) (*ports.ShopRecord, error) {
	s, ok := p.shops[shopID]
	if !ok {
		return nil, nil
	}
	return &ports.ShopRecord{
		ID:       s.ID,
		Name:     s.Name,
		Category: s.Category,
		Address:  s.Address,
		City:     s.City,
		Country:  s.Country,
		Phone:    s.Phone,
		IsActive: s.IsActive,
	}, nil
}

func (p *Provider) GetServices(_ context.Context, shopID string) ([]ports.ServiceRecord, error) {
	s, ok := p.shops[shopID]
	if !ok {
		return nil, nil
	}

	recs := make([]ports.ServiceRecord, 0, len(s.Services))
	for _, svc := range s.Services {
		var assigned json.RawMessage
		if len(svc.AssignedStaff) > 0 {
			raw, err := json.Marshal(svc.AssignedStaff)
			if err != nil {
				return nil, err
			}
			assigned = raw
		}
		recs = append(recs, ports.ServiceRecord{
			ID:            svc.ID,
			ShopID:        shopID,
			Name:          svc.Name,
			Description:   svc.Description,
			Category:      svc.Category,
			Price:         svc.Price,
			Duration:      svc.Duration,
			IsActive:      svc.IsActive,
			AllowBase:     svc.AllowBase,
			AssignedStaff: assigned,
		})
	}
	return recs, nil
}

func (p *Provider) GetServiceOptions(_ context.Context, serviceID, shopID string) ([]ports.OptionRecord, error) {
	s, ok := p.shops[shopID]
	if !ok {
		return nil, nil
	}
	for _, svc := range s.Services {
		if svc.ID != serviceID {
			continue
		}
		recs := make([]ports.OptionRecord, 0, len(svc.Options))
		for _, opt := range svc.Options {
			recs = append(recs, ports.OptionRecord{
				ID:          opt.ID,
				ServiceID:   serviceID,
				Name:        opt.Name,
				Description: opt.Description,
				Price:       opt.Price,
				Duration:    opt.Duration,
				IsActive:    opt.IsActive,
				SortOrder:   opt.SortOrder,
			})
		}
		return recs, nil
	}
	return nil, nil
}

func (p *Provider) GetStaff(_ context.Context, shopID string) ([]ports.StaffRecord, error) {
	s, ok := p.shops[shopID]
	if !ok {
		return nil, nil
	}
	recs := make([]ports.StaffRecord, 0, len(s.Staff))
	for _, st := range s.Staff {
		recs = append(recs, ports.StaffRecord{
			ID:          st.ID,
			Name:        st.Name,
			Role:        st.Role,
			Specialties: st.Specialties,
			Rating:      st.Rating,
			ServiceIDs:  st.ServiceIDs,
			IsActive:    st.IsActive,
		})
	}
	return recs, nil
}

func (p *Provider) GetActiveDiscount(_ context.Context, shopID string) (*ports.DiscountRecord, error) {
	s, ok := p.shops[shopID]
	if !ok || s.Discount == nil {
		return nil, nil
	}
	d := s.Discount
	return &ports.DiscountRecord{
		ID:          d.ID,
		ShopID:      shopID,
		Title:       d.Title,
		Description: d.Description,
		Code:        d.Code,
		Type:        d.Type,
		Value:       d.Value,
		IsActive:    d.IsActive == nil || *d.IsActive,
	}, nil
}
