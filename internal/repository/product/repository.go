package product

import (
	"context"

	"github.com/willotis/tamarind-drinks-app/internal/domain"
)

// ListFilter narrows a catalog listing; zero value lists everything.
type ListFilter struct {
	CategoryID string
	Search     string
	Featured   bool
}

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
