// Package order implements the order lifecycle: checkout snapshots, the
// status state machine, reorder and history queries.
package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/willotis/tamarind-drinks-app/internal/domain"
	orderrepo "github.com/willotis/tamarind-drinks-app/internal/repository/order"
)

// pricingEpsilon bounds the float drift tolerated when checking that a
// submitted total matches its components.
const pricingEpsilon = 1e-6

type Service struct {
	repo repo
}

type repo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByOwner(ctx context.Context, ownerID string, statuses []domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	SetTracking(ctx context.Context, id, trackingNumber string) error
	Stats(ctx context.Context) (domain.OrderStats, error)
}

// CartRestorer re-inserts snapshot lines into a cart. Implemented by the cart
// service; narrowed here so reorder stays testable in isolation.
type CartRestorer interface {
	RestoreItem(ctx context.Context, item domain.CartItem) error
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	OwnerID        string
	Items          []domain.CartItem
	Pricing        domain.PricingResult
	Address        domain.Address
	PaymentMethod  string
	DeliveryMethod string
}

// Create checks out a priced cart into an immutable pending order. Items and
// address are snapshotted by value; the caller clears the source cart as an
// explicit follow-up. Nothing is persisted when validation fails.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	if strings.TrimSpace(in.OwnerID) == "" {
		return nil, errors.New("ownerId required")
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return nil, errors.New("payment method required")
	}
	if strings.TrimSpace(in.DeliveryMethod) == "" {
		return nil, errors.New("delivery method required")
	}
	if err := checkPricing(in.Pricing); err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, domain.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ImageURL:    it.ImageURL,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Size:        it.Size,
		})
	}

	return s.repo.Create(ctx, domain.Order{
		ID:             uuid.NewString(),
		OrderNumber:    generateOrderNumber(),
		OwnerID:        in.OwnerID,
		Status:         domain.StatusPending,
		Subtotal:       in.Pricing.Subtotal,
		Tax:            in.Pricing.Tax,
		DeliveryFee:    in.Pricing.DeliveryFee,
		Discount:       in.Pricing.Discount,
		Total:          in.Pricing.Total,
		PaymentMethod:  in.PaymentMethod,
		DeliveryMethod: in.DeliveryMethod,
		ShippingAddr:   in.Address,
		Items:          items,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus sets any known status unconditionally. This is the
// administrative escape hatch; customer-facing cancellation goes through
// Cancel, which guards the transition.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown status %q", status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// SetTracking attaches a tracking number, refreshing the update timestamp.
func (s *Service) SetTracking(ctx context.Context, id, trackingNumber string) error {
	return s.repo.SetTracking(ctx, id, trackingNumber)
}

// Cancel moves an order to cancelled. Only pending and processing orders may
// be cancelled; terminal states report domain.ErrInvalidTransition.
func (s *Service) Cancel(ctx context.Context, id string) error {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !o.Status.Cancellable() {
		return fmt.Errorf("cancel order in status %s: %w", o.Status, domain.ErrInvalidTransition)
	}
	return s.repo.UpdateStatus(ctx, id, domain.StatusCancelled)
}

// Reorder copies an order's item snapshot back into the owner's cart as fresh
// lines with new ids and current timestamps. The original order is untouched.
func (s *Service) Reorder(ctx context.Context, orderID string, cart CartRestorer) error {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	for _, it := range o.Items {
		err := cart.RestoreItem(ctx, domain.CartItem{
			ID:          uuid.NewString(),
			OwnerID:     o.OwnerID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ImageURL:    it.ImageURL,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Size:        it.Size,
			AddedAt:     time.Now(),
		})
		if err != nil {
			return fmt.Errorf("restore item %s: %w", it.ProductID, err)
		}
	}
	return nil
}

// ListByOwner returns the owner's order history newest first, optionally
// narrowed by a status filter.
func (s *Service) ListByOwner(ctx context.Context, ownerID string, filter domain.OrderFilter) ([]domain.Order, error) {
	return s.repo.ListByOwner(ctx, ownerID, filter.Statuses())
}

// Stats reports order counts by status across all owners.
func (s *Service) Stats(ctx context.Context) (domain.OrderStats, error) {
	return s.repo.Stats(ctx)
}

func checkPricing(p domain.PricingResult) error {
	want := p.Subtotal + p.Tax + p.DeliveryFee - p.Discount
	if math.Abs(p.Total-want) > pricingEpsilon {
		return fmt.Errorf("pricing inconsistent: total %v, components sum to %v", p.Total, want)
	}
	return nil
}

// generateOrderNumber builds the human-readable order number from the current
// timestamp and a random suffix, truncated to its last 13 characters.
func generateOrderNumber() string {
	n := fmt.Sprintf("TDR%d%04d", time.Now().UnixMilli(), rand.Intn(9000)+1000)
	if len(n) > 13 {
		n = n[len(n)-13:]
	}
	return n
}
