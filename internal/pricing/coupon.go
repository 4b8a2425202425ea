package pricing

import (
	"strings"

	"github.com/willotis/tamarind-drinks-app/internal/domain"
)

// CouponRule is one named discount policy: a percentage off the subtotal, a
// flat amount off, or free shipping.
type CouponRule struct {
	PercentOff   float64
	FlatOff      float64
	FreeShipping bool
}

// couponRules is the static code table. Codes match case-insensitively.
var couponRules = map[string]CouponRule{
	"SAVE10":   {PercentOff: 0.10},
	"SAVE20":   {PercentOff: 0.20},
	"FIRST":    {FlatOff: 5.0},
	"FREESHIP": {FreeShipping: true},
}

func lookupCoupon(code string) (CouponRule, bool) {
	rule, ok := couponRules[strings.ToUpper(strings.TrimSpace(code))]
	return rule, ok
}

func (r CouponRule) discount(subtotal float64) float64 {
	switch {
	case r.PercentOff > 0:
		return subtotal * r.PercentOff
	case r.FlatOff > 0:
		return r.FlatOff
	default:
		return 0
	}
}

// Discount resolves a coupon code against the rule table and returns the
// discount it grants on the given subtotal. Unknown codes are an error, not a
// zero discount, so callers can tell "no coupon" from "bad coupon".
func Discount(code string, subtotal float64) (float64, error) {
	rule, ok := lookupCoupon(code)
	if !ok {
		return 0, domain.ErrInvalidCoupon
	}
	return rule.discount(subtotal), nil
}
