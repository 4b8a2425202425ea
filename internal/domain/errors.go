package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCoupon indicates an unknown coupon code, as opposed to no coupon at all.
	ErrInvalidCoupon = errors.New("invalid coupon code")
	// ErrInvalidTransition indicates an illegal order status change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrEmptyCart indicates a checkout attempt with no line items.
	ErrEmptyCart = errors.New("cart is empty")
)
