package domain

// SelectionState records what one user picked on one shop's detail screen.
// It is owned by a single session and is not safe for concurrent writers.
//
// Services are kept in the order they were first selected, and options
// within a service likewise, so line items come out in pick order.
type SelectionState struct {
	order    []string
	options  map[string][]string
	staffID  string
	hasStaff bool
	discount *Discount
}

type SelectionPair struct {
	ServiceName string `json:"service_name"`
	OptionID    string `json:"option_id"`
}

func NewSelectionState() *SelectionState {
	return &SelectionState{options: make(map[string][]string)}
}

// Toggle adds the option when absent and removes it when present. It returns
// whether the option is selected afterwards. A service whose last option is
// removed disappears from the selection entirely.
func (s *SelectionState) Toggle(serviceName, optionID string) bool {
	if s.options == nil {
		s.options = make(map[string][]string)
	}

	current, ok := s.options[serviceName]
	if !ok {
		s.options[serviceName] = []string{optionID}
		s.order = append(s.order, serviceName)
		return true
	}

	for i, id := range current {
		if id != optionID {
			continue
		}
		current = append(current[:i:i], current[i+1:]...)
		if len(current) == 0 {
			delete(s.options, serviceName)
			s.removeFromOrder(serviceName)
		} else {
			s.options[serviceName] = current
		}
		return false
	}

	s.options[serviceName] = append(current, optionID)
	return true
}

func (s *SelectionState) removeFromOrder(serviceName string) {
	for i, name := range s.order {
		if name == serviceName {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			return
		}
	}
}

// ApplyDiscount replaces the applied discount; nil clears it.
func (s *SelectionState) ApplyDiscount(d *Discount) {
	if d == nil {
		s.discount = nil
		return
	}
	cp := *d
	s.discount = &cp
}

// SelectStaff sets the chosen staff member; nil or empty clears it.
func (s *SelectionState) SelectStaff(staffID *string) {
	if staffID == nil || *staffID == "" {
		s.staffID = ""
		s.hasStaff = false
		return
	}
	s.staffID = *staffID
	s.hasStaff = true
}

func (s *SelectionState) StaffID() (string, bool) {
	return s.staffID, s.hasStaff
}

func (s *SelectionState) Discount() *Discount {
	if s.discount == nil {
		return nil
	}
	cp := *s.discount
	return &cp
}

func (s *SelectionState) Empty() bool {
	return len(s.order) == 0
}

// Count is the number of selected (service, option) pairs.
func (s *SelectionState) Count() int {
	n := 0
	for _, ids := range s.options {
		n += len(ids)
	}
	return n
}

func (s *SelectionState) Services() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *SelectionState) Options(serviceName string) []string {
	ids := s.options[serviceName]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func (s *SelectionState) IsSelected(serviceName, optionID string) bool {
	for _, id := range s.options[serviceName] {
		if id == optionID {
			return true
		}
	}
	return false
}

func (s *SelectionState) Pairs() []SelectionPair {
	pairs := make([]SelectionPair, 0, s.Count())
	for _, name := range s.order {
		for _, id := range s.options[name] {
			pairs = append(pairs, SelectionPair{ServiceName: name, OptionID: id})
		}
	}
	return pairs
}

func (s *SelectionState) Clone() *SelectionState {
	cp := NewSelectionState()
	for _, name := range s.order {
		cp.order = append(cp.order, name)
		cp.options[name] = append([]string(nil), s.options[name]...)
	}
	cp.staffID = s.staffID
	cp.hasStaff = s.hasStaff
	cp.ApplyDiscount(s.discount)
	return cp
}
