package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/willotis/tamarind-drinks-app/internal/domain"
)

type stubCartService struct {
	items     []domain.CartItem
	itemsErr  error
	totals    domain.PricingResult
	totalsErr error
	added     *domain.CartItem
	addErr    error
	updateErr error
	removeErr error
	clearErr  error
	count     int
	cleared   []string
	restored  []domain.CartItem
}

func (s *stubCartService) AddItem(_ context.Context, _, _, _ string, _ int) (*domain.CartItem, error) {
	return s.added, s.addErr
}

func (s *stubCartService) RestoreItem(_ context.Context, item domain.CartItem) error {
	s.restored = append(s.restored, item)
	return nil
}

func (s *stubCartService) UpdateQuantity(_ context.Context, _ string, _ int) error {
	return s.updateErr
}

func (s *stubCartService) RemoveItem(_ context.Context, _ string) error {
	return s.removeErr
}

func (s *stubCartService) Clear(_ context.Context, ownerID string) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.cleared = append(s.cleared, ownerID)
	return nil
}

func (s *stubCartService) Items(_ context.Context, _ string) ([]domain.CartItem, error) {
	return s.items, s.itemsErr
}

func (s *stubCartService) Count(_ context.Context, _ string) (int, error) {
	return s.count, nil
}

func (s *stubCartService) Totals(_ context.Context, _, _ string) (domain.PricingResult, error) {
	return s.totals, s.totalsErr
}

func newCartRouter(svc CartService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	owner := router.Group("/owners/:ownerID")
	owner.GET("/cart", getCartHandler(svc))
	owner.GET("/cart/count", cartCountHandler(svc))
	owner.POST("/cart/items", addCartItemHandler(svc))
	owner.PATCH("/cart/items/:itemID", updateCartItemHandler(svc))
	owner.DELETE("/cart/items/:itemID", removeCartItemHandler(svc))
	owner.DELETE("/cart", clearCartHandler(svc))
	return router
}

func TestGetCart_Success(t *testing.T) {
	svc := &stubCartService{
		items:  []domain.CartItem{{ID: "c1", ProductID: "p1", Quantity: 2}},
		totals: domain.PricingResult{Subtotal: 10, Tax: 1, DeliveryFee: 5, Total: 16},
	}
	router := newCartRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/owners/u1/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Totals.Total != 16 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.CouponError != "" {
		t.Fatalf("unexpected coupon error %q", resp.CouponError)
	}
}

func TestGetCart_InvalidCouponStillReturnsTotals(t *testing.T) {
	svc := &stubCartService{
		items:     []domain.CartItem{{ID: "c1", ProductID: "p1", Quantity: 1}},
		totals:    domain.PricingResult{Subtotal: 5, Tax: 0.5, DeliveryFee: 5, Total: 10.5},
		totalsErr: fmt.Errorf("coupon BOGUS: %w", domain.ErrInvalidCoupon),
	}
	router := newCartRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/owners/u1/cart?coupon=BOGUS", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CouponError == "" {
		t.Fatal("expected couponError in response")
	}
	if resp.Totals.Total != 10.5 {
		t.Fatalf("invalid coupon corrupted totals: %+v", resp.Totals)
	}
}

func TestGetCart_EmptyCartEncodesItemsArray(t *testing.T) {
	router := newCartRouter(&stubCartService{})

	req := httptest.NewRequest(http.MethodGet, "/owners/u1/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty items array, got %s", rec.Body.String())
	}
}

func TestAddCartItem_Created(t *testing.T) {
	svc := &stubCartService{added: &domain.CartItem{ID: "c1", ProductID: "p1", Quantity: 1}}
	router := newCartRouter(svc)

	body := strings.NewReader(`{"productId":"p1","quantity":1,"size":"250ml"}`)
	req := httptest.NewRequest(http.MethodPost, "/owners/u1/cart/items", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAddCartItem_MissingFields(t *testing.T) {
	router := newCartRouter(&stubCartService{})

	req := httptest.NewRequest(http.MethodPost, "/owners/u1/cart/items", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestAddCartItem_UnknownProduct(t *testing.T) {
	svc := &stubCartService{addErr: domain.ErrNotFound}
	router := newCartRouter(svc)

	body := strings.NewReader(`{"productId":"missing","quantity":1}`)
	req := httptest.NewRequest(http.MethodPost, "/owners/u1/cart/items", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestAddCartItem_OutOfStock(t *testing.T) {
	svc := &stubCartService{addErr: errors.New("product out of stock")}
	router := newCartRouter(svc)

	body := strings.NewReader(`{"productId":"p1","quantity":1}`)
	req := httptest.NewRequest(http.MethodPost, "/owners/u1/cart/items", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestUpdateCartItem_NotFound(t *testing.T) {
	svc := &stubCartService{updateErr: domain.ErrNotFound}
	router := newCartRouter(svc)

	body := strings.NewReader(`{"quantity":3}`)
	req := httptest.NewRequest(http.MethodPatch, "/owners/u1/cart/items/missing", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestRemoveCartItem_NoContent(t *testing.T) {
	router := newCartRouter(&stubCartService{})

	req := httptest.NewRequest(http.MethodDelete, "/owners/u1/cart/items/c1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}

func TestCartCount(t *testing.T) {
	router := newCartRouter(&stubCartService{count: 5})

	req := httptest.NewRequest(http.MethodGet, "/owners/u1/cart/count", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"count":5`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestClearCart(t *testing.T) {
	svc := &stubCartService{}
	router := newCartRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/owners/u1/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if len(svc.cleared) != 1 || svc.cleared[0] != "u1" {
		t.Fatalf("unexpected clear calls %v", svc.cleared)
	}
}
