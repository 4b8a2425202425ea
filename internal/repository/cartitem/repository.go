package cartitem

import (
	"context"

	"github.com/willotis/tamarind-drinks-app/internal/domain"
)

type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.CartItem, error)
	GetByID(ctx context.Context, id string) (*domain.CartItem, error)
	// Add inserts a line or, when one already exists for the same
	// (owner, product, size), increments its quantity keeping the original
	// unit price snapshot.
	Add(ctx context.Context, item domain.CartItem) (*domain.CartItem, error)
	// UpdateQuantity sets a positive quantity. Quantity zero is never stored;
	// callers delete instead.
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context, ownerID string) error
	// CountByOwner returns the summed quantity across the owner's lines.
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}
