package domain

import "time"

// CartItem is one product+size+quantity line in an owner's cart. The unit price
// is snapshotted when the line is created so the cart stays stable even if the
// catalog price changes mid-session.
type CartItem struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	UnitPrice   float64   `json:"unitPrice"`
	Quantity    int       `json:"quantity"`
	Size        string    `json:"size,omitempty"`
	AddedAt     time.Time `json:"addedAt"`
}

// PricingResult is the priced view of a set of cart items. It is recomputed on
// demand and never persisted on its own.
type PricingResult struct {
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"deliveryFee"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
	CouponCode  string  `json:"couponCode,omitempty"`
}
