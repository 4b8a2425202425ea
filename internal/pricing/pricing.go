// Package pricing computes cart totals: subtotal, tax, tiered delivery fees and
// coupon discounts. Everything here is pure and deterministic; the only failure
// mode is an unknown coupon code.
package pricing

import (
	"github.com/willotis/tamarind-drinks-app/internal/domain"
)

// DefaultTaxRate is the flat tax rate applied to subtotals.
const DefaultTaxRate = 0.10

// Delivery fee tiers. Boundaries are inclusive at the lower bound.
const (
	freeDeliveryMin    = 50.0
	reducedDeliveryMin = 30.0
	reducedDeliveryFee = 3.0
	baseDeliveryFee    = 5.0
)

// Subtotal sums unitPrice*quantity over all items. Empty input yields 0.
func Subtotal(items []domain.CartItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.UnitPrice * float64(it.Quantity)
	}
	return sum
}

// Tax applies the default tax rate to a subtotal.
func Tax(subtotal float64) float64 {
	return TaxAt(subtotal, DefaultTaxRate)
}

// TaxAt applies an explicit tax rate to a subtotal.
func TaxAt(subtotal, rate float64) float64 {
	return subtotal * rate
}

// DeliveryFee returns the tiered delivery fee for a subtotal:
// free at 50 and above, 3 at 30 and above, otherwise 5.
func DeliveryFee(subtotal float64) float64 {
	switch {
	case subtotal >= freeDeliveryMin:
		return 0
	case subtotal >= reducedDeliveryMin:
		return reducedDeliveryFee
	default:
		return baseDeliveryFee
	}
}

// Total combines the four components. It does not clamp: callers composing a
// quote are responsible for keeping the discount within bounds (Quote does).
func Total(subtotal, tax, deliveryFee, discount float64) float64 {
	return subtotal + tax + deliveryFee - discount
}

// Quote prices a set of items under an optional coupon code. An empty code
// means no coupon. An unknown code returns the coupon-free result together
// with domain.ErrInvalidCoupon so callers keep valid totals while surfacing
// the coupon failure. Free-shipping coupons zero the delivery fee instead of
// contributing a discount, and discounts are capped at the subtotal so the
// total never goes negative.
func Quote(items []domain.CartItem, couponCode string) (domain.PricingResult, error) {
	subtotal := Subtotal(items)
	tax := Tax(subtotal)
	fee := DeliveryFee(subtotal)

	res := domain.PricingResult{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
	}

	if couponCode != "" {
		rule, ok := lookupCoupon(couponCode)
		if !ok {
			res.Total = Total(subtotal, tax, fee, 0)
			return res, domain.ErrInvalidCoupon
		}
		res.CouponCode = couponCode
		if rule.FreeShipping {
			res.DeliveryFee = 0
		}
		discount := rule.discount(subtotal)
		if discount > subtotal {
			discount = subtotal
		}
		res.Discount = discount
	}

	res.Total = Total(res.Subtotal, res.Tax, res.DeliveryFee, res.Discount)
	return res, nil
}
