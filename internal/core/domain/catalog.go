package domain

const (
	// BaseOption selects a service itself rather than one of its options.
	BaseOption = "base"

	// AnyStaffID identifies the synthetic "Any Available" staff member.
	AnyStaffID = "any"
)

type Shop struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Active   bool   `json:"active"`
}

type ServiceOption struct {
	ID          string  `json:"id"`
	ServiceID   string  `json:"service_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
	Active      bool    `json:"active"`
	SortOrder   int     `json:"sort_order"`
}

type Service struct {
	ID          string          `json:"id"`
	ShopID      string          `json:"shop_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Price       float64         `json:"price"`
	Duration    int             `json:"duration"`
	StaffIDs    []string        `json:"staff_ids,omitempty"`
	Options     []ServiceOption `json:"options,omitempty"`
	AllowBase   bool            `json:"allow_base,omitempty"`
	Active      bool            `json:"active"`
}

// BaseSelectable reports whether the plain service can be picked on its own.
func (s *Service) BaseSelectable() bool {
	return len(s.Options) == 0 || s.AllowBase
}

func (s *Service) Option(optionID string) (ServiceOption, bool) {
	for _, opt := range s.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return ServiceOption{}, false
}

func (s *Service) HasStaffAssignments() bool {
	return len(s.StaffIDs) > 0
}

type Staff struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Role        string   `json:"role,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	Rating      float64  `json:"rating"`
	ServiceIDs  []string `json:"service_ids,omitempty"`
}

func (s *Staff) IsAny() bool {
	return s.ID == AnyStaffID
}

// AnyAvailableStaff returns the placeholder that lets the shop pick whoever is free.
func AnyAvailableStaff() Staff {
	return Staff{
		ID:          AnyStaffID,
		Name:        "Any Available",
		Specialties: []string{"All Services"},
	}
}

// Discount is a percentage reduction on the whole selection.
type Discount struct {
	ID          string  `json:"id"`
	Percentage  float64 `json:"percentage"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Code        string  `json:"code,omitempty"`
}

// Catalog is the normalized, read-only view of one shop.
type Catalog struct {
	Shop     Shop      `json:"shop"`
	Services []Service `json:"services"`
	Staff    []Staff   `json:"staff"`
	Discount *Discount `json:"discount,omitempty"`
}

// EmptyCatalog is what callers render when nothing could be loaded.
func EmptyCatalog(shopID string) *Catalog {
	return &Catalog{
		Shop:     Shop{ID: shopID},
		Services: []Service{},
		Staff:    []Staff{AnyAvailableStaff()},
	}
}

func (c *Catalog) HasServices() bool {
	return len(c.Services) > 0
}

// Service looks a service up by display name, which is how selections are keyed.
func (c *Catalog) Service(name string) (*Service, bool) {
	return FindService(c.Services, name)
}

func (c *Catalog) StaffMember(staffID string) (Staff, bool) {
	for _, st := range c.Staff {
		if st.ID == staffID {
			return st, true
		}
	}
	return Staff{}, false
}

func FindService(services []Service, name string) (*Service, bool) {
	for i := range services {
		if services[i].Name == name {
			return &services[i], true
		}
	}
	return nil, false
}
