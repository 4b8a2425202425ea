package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/willotis/tamarind-drinks-app/internal/domain"
	ordersvc "github.com/willotis/tamarind-drinks-app/internal/service/order"
)

type stubOrderService struct {
	created    *domain.Order
	createErr  error
	lastCreate ordersvc.CreateInput
	order      *domain.Order
	getErr     error
	orders     []domain.Order
	listErr    error
	lastFilter domain.OrderFilter
	cancelErr  error
	statusErr  error
	reorderErr error
	stats      domain.OrderStats
}

func (s *stubOrderService) Create(_ context.Context, in ordersvc.CreateInput) (*domain.Order, error) {
	s.lastCreate = in
	return s.created, s.createErr
}

func (s *stubOrderService) Get(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, s.getErr
}

func (s *stubOrderService) UpdateStatus(_ context.Context, _ string, _ domain.OrderStatus) error {
	return s.statusErr
}

func (s *stubOrderService) SetTracking(_ context.Context, _, _ string) error {
	return nil
}

func (s *stubOrderService) Cancel(_ context.Context, _ string) error {
	return s.cancelErr
}

func (s *stubOrderService) Reorder(_ context.Context, _ string, cart ordersvc.CartRestorer) error {
	if s.reorderErr != nil {
		return s.reorderErr
	}
	if s.order != nil {
		for _, it := range s.order.Items {
			if err := cart.RestoreItem(context.Background(), domain.CartItem{
				ID:        it.ID,
				ProductID: it.ProductID,
				UnitPrice: it.UnitPrice,
				Quantity:  it.Quantity,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *stubOrderService) ListByOwner(_ context.Context, _ string, filter domain.OrderFilter) ([]domain.Order, error) {
	s.lastFilter = filter
	return s.orders, s.listErr
}

func (s *stubOrderService) Stats(_ context.Context) (domain.OrderStats, error) {
	return s.stats, nil
}

func newOrderRouter(orders OrderService, carts CartService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	owner := router.Group("/owners/:ownerID")
	owner.POST("/orders", checkoutHandler(carts, orders))
	owner.GET("/orders", listOrdersHandler(orders))
	router.GET("/orders/stats", orderStatsHandler(orders))
	router.GET("/orders/:id", getOrderHandler(orders))
	router.POST("/orders/:id/cancel", cancelOrderHandler(orders))
	router.POST("/orders/:id/reorder", reorderHandler(orders, carts))
	router.PATCH("/orders/:id/status", updateOrderStatusHandler(orders))
	router.PATCH("/orders/:id/tracking", setTrackingHandler(orders))
	return router
}

const checkoutBody = `{
	"address": {"name":"A","streetAddress":"1 Main St","city":"Nairobi","postalCode":"00100","country":"KE"},
	"paymentMethod": "card",
	"deliveryMethod": "standard"
}`

func TestCheckout_Created(t *testing.T) {
	carts := &stubCartService{
		items:  []domain.CartItem{{ID: "c1", ProductID: "p1", UnitPrice: 5, Quantity: 2}},
		totals: domain.PricingResult{Subtotal: 10, Tax: 1, DeliveryFee: 5, Total: 16},
	}
	orders := &stubOrderService{created: &domain.Order{ID: "o1", Status: domain.StatusPending}}
	router := newOrderRouter(orders, carts)

	req := httptest.NewRequest(http.MethodPost, "/owners/u1/orders", strings.NewReader(checkoutBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if orders.lastCreate.OwnerID != "u1" || len(orders.lastCreate.Items) != 1 {
		t.Fatalf("unexpected create input %+v", orders.lastCreate)
	}
	if len(carts.cleared) != 1 {
		t.Fatal("checkout must clear the cart after the order is persisted")
	}
	if !strings.Contains(rec.Body.String(), `"cartCleared":true`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	carts := &stubCartService{}
	orders := &stubOrderService{createErr: domain.ErrEmptyCart}
	router := newOrderRouter(orders, carts)

	req := httptest.NewRequest(http.MethodPost, "/owners/u1/orders", strings.NewReader(checkoutBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if len(carts.cleared) != 0 {
		t.Fatal("failed checkout must not clear the cart")
	}
}

func TestCheckout_InvalidCoupon(t *testing.T) {
	carts := &stubCartService{
		items:     []domain.CartItem{{ID: "c1", ProductID: "p1", Quantity: 1}},
		totalsErr: fmt.Errorf("coupon BOGUS: %w", domain.ErrInvalidCoupon),
	}
	router := newOrderRouter(&stubOrderService{}, carts)

	body := strings.NewReader(`{
		"couponCode": "BOGUS",
		"address": {"streetAddress":"1 Main St","city":"Nairobi","country":"KE"},
		"paymentMethod": "card",
		"deliveryMethod": "standard"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/owners/u1/orders", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCheckout_CartClearFailureStillReportsOrder(t *testing.T) {
	carts := &stubCartService{
		items:    []domain.CartItem{{ID: "c1", ProductID: "p1", UnitPrice: 5, Quantity: 1}},
		totals:   domain.PricingResult{Subtotal: 5, Tax: 0.5, DeliveryFee: 5, Total: 10.5},
		clearErr: fmt.Errorf("db down"),
	}
	orders := &stubOrderService{created: &domain.Order{ID: "o1"}}
	router := newOrderRouter(orders, carts)

	req := httptest.NewRequest(http.MethodPost, "/owners/u1/orders", strings.NewReader(checkoutBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"cartCleared":false`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestListOrders_FilterMapping(t *testing.T) {
	svc := &stubOrderService{}
	router := newOrderRouter(svc, &stubCartService{})

	for _, filter := range []string{"all", "active", "completed", "cancelled"} {
		req := httptest.NewRequest(http.MethodGet, "/owners/u1/orders?filter="+filter, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("filter %s: expected status 200, got %d", filter, rec.Code)
		}
		if string(svc.lastFilter) != filter {
			t.Fatalf("filter %s: service saw %q", filter, svc.lastFilter)
		}
	}
}

func TestListOrders_UnknownFilter(t *testing.T) {
	router := newOrderRouter(&stubOrderService{}, &stubCartService{})

	req := httptest.NewRequest(http.MethodGet, "/owners/u1/orders?filter=archived", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestListOrders_DefaultsToAll(t *testing.T) {
	svc := &stubOrderService{orders: []domain.Order{{ID: "o1"}, {ID: "o2"}}}
	router := newOrderRouter(svc, &stubCartService{})

	req := httptest.NewRequest(http.MethodGet, "/owners/u1/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.lastFilter != domain.FilterAll {
		t.Fatalf("expected default filter all, got %q", svc.lastFilter)
	}
	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected total 2, got %d", resp.Total)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	router := newOrderRouter(&stubOrderService{getErr: domain.ErrNotFound}, &stubCartService{})

	req := httptest.NewRequest(http.MethodGet, "/orders/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCancelOrder_NoContent(t *testing.T) {
	router := newOrderRouter(&stubOrderService{}, &stubCartService{})

	req := httptest.NewRequest(http.MethodPost, "/orders/o1/cancel", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}

func TestCancelOrder_Conflict(t *testing.T) {
	svc := &stubOrderService{
		cancelErr: fmt.Errorf("cancel order in status delivered: %w", domain.ErrInvalidTransition),
	}
	router := newOrderRouter(svc, &stubCartService{})

	req := httptest.NewRequest(http.MethodPost, "/orders/o1/cancel", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestReorder_RestoresLines(t *testing.T) {
	svc := &stubOrderService{order: &domain.Order{
		ID:    "o1",
		Items: []domain.OrderItem{{ID: "oi1", ProductID: "p1", UnitPrice: 4.99, Quantity: 2}},
	}}
	carts := &stubCartService{}
	router := newOrderRouter(svc, carts)

	req := httptest.NewRequest(http.MethodPost, "/orders/o1/reorder", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if len(carts.restored) != 1 {
		t.Fatalf("expected 1 restored line, got %d", len(carts.restored))
	}
}

func TestUpdateOrderStatus_Unknown(t *testing.T) {
	router := newOrderRouter(&stubOrderService{}, &stubCartService{})

	body := strings.NewReader(`{"status":"shipped"}`)
	req := httptest.NewRequest(http.MethodPatch, "/orders/o1/status", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestUpdateOrderStatus_CaseInsensitive(t *testing.T) {
	router := newOrderRouter(&stubOrderService{}, &stubCartService{})

	body := strings.NewReader(`{"status":"Delivered"}`)
	req := httptest.NewRequest(http.MethodPatch, "/orders/o1/status", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}

func TestOrderStats(t *testing.T) {
	svc := &stubOrderService{stats: domain.OrderStats{Total: 3, Pending: 2, Delivered: 1}}
	router := newOrderRouter(svc, &stubCartService{})

	req := httptest.NewRequest(http.MethodGet, "/orders/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var stats domain.OrderStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats.Total != 3 || stats.Pending != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
