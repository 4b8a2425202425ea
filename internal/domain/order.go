package domain

import "time"

// OrderStatus enumerates the order state machine:
// pending -> processing -> delivered, with pending|processing -> cancelled.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s names a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether an order in this status may still be cancelled.
// Delivered and cancelled are terminal.
func (s OrderStatus) Cancellable() bool {
	return s == StatusPending || s == StatusProcessing
}

// OrderFilter narrows an order history listing.
type OrderFilter string

const (
	FilterAll       OrderFilter = "all"
	FilterActive    OrderFilter = "active"
	FilterCompleted OrderFilter = "completed"
	FilterCancelled OrderFilter = "cancelled"
)

// Statuses returns the statuses the filter selects; nil means no narrowing.
func (f OrderFilter) Statuses() []OrderStatus {
	switch f {
	case FilterActive:
		return []OrderStatus{StatusPending, StatusProcessing}
	case FilterCompleted:
		return []OrderStatus{StatusDelivered}
	case FilterCancelled:
		return []OrderStatus{StatusCancelled}
	default:
		return nil
	}
}

// Address is an order-time value snapshot of a delivery address.
type Address struct {
	Name          string `json:"name,omitempty"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode,omitempty"`
	Country       string `json:"country"`
}

// OrderItem is an immutable copy of a cart line taken at checkout time.
type OrderItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Size        string  `json:"size,omitempty"`
}

// Order is created atomically at checkout. Items and the priced amounts never
// change afterwards; only Status, TrackingNumber and UpdatedAt mutate.
type Order struct {
	ID             string      `json:"id"`
	OrderNumber    string      `json:"orderNumber"`
	OwnerID        string      `json:"ownerId"`
	Status         OrderStatus `json:"status"`
	Subtotal       float64     `json:"subtotal"`
	Tax            float64     `json:"tax"`
	DeliveryFee    float64     `json:"deliveryFee"`
	Discount       float64     `json:"discount"`
	Total          float64     `json:"total"`
	PaymentMethod  string      `json:"paymentMethod"`
	DeliveryMethod string      `json:"deliveryMethod"`
	ShippingAddr   Address     `json:"shippingAddress"`
	TrackingNumber string      `json:"trackingNumber,omitempty"`
	Items          []OrderItem `json:"items"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// OrderStats aggregates order counts by status for administrative reporting.
type OrderStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Delivered  int `json:"delivered"`
	Cancelled  int `json:"cancelled"`
}
