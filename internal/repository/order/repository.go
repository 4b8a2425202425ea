package order

import (
	"context"

	"github.com/willotis/tamarind-drinks-app/internal/domain"
)

type Repository interface {
	// Create persists the order and its item snapshot in one transaction;
	// a failure leaves nothing behind.
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// ListByOwner returns the owner's orders newest first. A nil status list
	// means no narrowing.
	ListByOwner(ctx context.Context, ownerID string, statuses []domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	SetTracking(ctx context.Context, id, trackingNumber string) error
	Stats(ctx context.Context) (domain.OrderStats, error)
}
