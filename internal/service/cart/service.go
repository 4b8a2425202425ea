// Package cart manages the line items of one owner's cart: add with merge
// semantics, quantity changes, removal and priced totals.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/willotis/tamarind-drinks-app/internal/domain"
	"github.com/willotis/tamarind-drinks-app/internal/pricing"
	cartitemrepo "github.com/willotis/tamarind-drinks-app/internal/repository/cartitem"
)

type Service struct {
	repo     itemRepo
	products productRepo
}

type itemRepo interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.CartItem, error)
	GetByID(ctx context.Context, id string) (*domain.CartItem, error)
	Add(ctx context.Context, item domain.CartItem) (*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context, ownerID string) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartitemrepo.Repository, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

// AddItem puts quantity units of a product into the owner's cart, snapshotting
// the current catalog price. Adding a (product, size) pair that is already in
// the cart merges by summing quantities; the original price snapshot wins.
func (s *Service) AddItem(ctx context.Context, ownerID, productID, size string, quantity int) (*domain.CartItem, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, errors.New("ownerId required")
	}
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
		}
		return nil, err
	}
	if !product.InStock {
		return nil, errors.New("product out of stock")
	}

	return s.repo.Add(ctx, domain.CartItem{
		OwnerID:     ownerID,
		ProductID:   product.ID,
		ProductName: product.Name,
		ImageURL:    product.ImageURL,
		UnitPrice:   product.Price,
		Quantity:    quantity,
		Size:        size,
	})
}

// RestoreItem re-inserts a fully formed line, keeping its price snapshot
// instead of consulting the catalog. Reorder uses this so historical prices
// carry over. Merge semantics match AddItem.
func (s *Service) RestoreItem(ctx context.Context, item domain.CartItem) error {
	if item.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	_, err := s.repo.Add(ctx, item)
	return err
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less removes
// the line rather than erroring.
func (s *Service) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity <= 0 {
		return s.repo.Delete(ctx, itemID)
	}
	return s.repo.UpdateQuantity(ctx, itemID, quantity)
}

// RemoveItem deletes a line. Removing an absent id is a no-op, so repeated
// removals are safe.
func (s *Service) RemoveItem(ctx context.Context, itemID string) error {
	err := s.repo.Delete(ctx, itemID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

// Clear deletes all lines in the owner's scope.
func (s *Service) Clear(ctx context.Context, ownerID string) error {
	return s.repo.Clear(ctx, ownerID)
}

func (s *Service) Items(ctx context.Context, ownerID string) ([]domain.CartItem, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Count returns the summed quantity in the owner's cart. Gateway failures
// surface as errors; degrading to zero is left to callers that want it.
func (s *Service) Count(ctx context.Context, ownerID string) (int, error) {
	return s.repo.CountByOwner(ctx, ownerID)
}

// Totals prices the owner's current items. When the coupon code is unknown the
// coupon-free totals come back together with domain.ErrInvalidCoupon, so a bad
// code never corrupts the running total.
func (s *Service) Totals(ctx context.Context, ownerID, couponCode string) (domain.PricingResult, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return domain.PricingResult{}, err
	}
	return pricing.Quote(items, couponCode)
}
