package domain

import "math"

// PriceBreakdown is always derived from a SelectionState and the catalog; it
// is never stored. Tax stays zero and exists for forward compatibility.
type PriceBreakdown struct {
	Subtotal           float64 `json:"subtotal"`
	DiscountPercentage float64 `json:"discount_percentage"`
	DiscountAmount     float64 `json:"discount_amount"`
	DiscountedSubtotal float64 `json:"discounted_subtotal"`
	Tax                float64 `json:"tax"`
	FinalTotal         float64 `json:"final_total"`
	HasDiscount        bool    `json:"has_discount"`
}

// ComputeBreakdown prices the current selection. Pairs that no longer resolve
// against services contribute nothing.
func ComputeBreakdown(state *SelectionState, services []Service) PriceBreakdown {
	var subtotal float64
	if state != nil {
		for _, pair := range state.Pairs() {
			price, _, ok := ResolvePair(services, pair.ServiceName, pair.OptionID)
			if ok {
				subtotal += price
			}
		}
	}

	var discount *Discount
	if state != nil {
		discount = state.Discount()
	}

	amount := DiscountAmount(subtotal, discount)
	discounted := subtotal - amount

	b := PriceBreakdown{
		Subtotal:           subtotal,
		DiscountAmount:     amount,
		DiscountedSubtotal: discounted,
		FinalTotal:         discounted,
		HasDiscount:        discount != nil,
	}
	if discount != nil {
		b.DiscountPercentage = ClampPercentage(discount.Percentage)
	}
	return b
}

// ResolvePair returns the unit price and duration of one selected pair.
func ResolvePair(services []Service, serviceName, optionID string) (float64, int, bool) {
	svc, ok := FindService(services, serviceName)
	if !ok {
		return 0, 0, false
	}
	if optionID == BaseOption {
		return svc.Price, svc.Duration, true
	}
	opt, ok := svc.Option(optionID)
	if !ok {
		return 0, 0, false
	}
	return opt.Price, opt.Duration, true
}

// DiscountAmount rounds to the nearest whole currency unit, halves away from
// zero, and never exceeds the subtotal.
func DiscountAmount(subtotal float64, d *Discount) float64 {
	if d == nil || subtotal <= 0 {
		return 0
	}
	amount := math.Round(subtotal * ClampPercentage(d.Percentage) / 100)
	if amount > subtotal {
		amount = subtotal
	}
	return amount
}

// DiscountedPrice is the per-line display price shown next to each service.
func DiscountedPrice(price float64, d *Discount) float64 {
	if d == nil {
		return price
	}
	return math.Round(price * (1 - ClampPercentage(d.Percentage)/100))
}

func ClampPercentage(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
