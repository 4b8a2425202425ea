package httpserver

import (
	"context"
	"log"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/willotis/tamarind-drinks-app/internal/domain"
	productrepo "github.com/willotis/tamarind-drinks-app/internal/repository/product"
	ordersvc "github.com/willotis/tamarind-drinks-app/internal/service/order"
)

// Deps carries the services the handlers depend on, narrowed to interfaces so
// tests can stub them.
type Deps struct {
	ProductSvc  ProductService
	CategorySvc CategoryService
	CartSvc     CartService
	OrderSvc    OrderService
	SessionSvc  SessionService
}

type ProductService interface {
	List(ctx context.Context, filter productrepo.ListFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type CartService interface {
	AddItem(ctx context.Context, ownerID, productID, size string, quantity int) (*domain.CartItem, error)
	RestoreItem(ctx context.Context, item domain.CartItem) error
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error
	RemoveItem(ctx context.Context, itemID string) error
	Clear(ctx context.Context, ownerID string) error
	Items(ctx context.Context, ownerID string) ([]domain.CartItem, error)
	Count(ctx context.Context, ownerID string) (int, error)
	Totals(ctx context.Context, ownerID, couponCode string) (domain.PricingResult, error)
}

type OrderService interface {
	Create(ctx context.Context, in ordersvc.CreateInput) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	SetTracking(ctx context.Context, id, trackingNumber string) error
	Cancel(ctx context.Context, id string) error
	Reorder(ctx context.Context, orderID string, cart ordersvc.CartRestorer) error
	ListByOwner(ctx context.Context, ownerID string, filter domain.OrderFilter) ([]domain.Order, error)
	Stats(ctx context.Context) (domain.OrderStats, error)
}

type SessionService interface {
	Issue(ctx context.Context) (token, ownerID string, err error)
	TTLSeconds() int
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if slices.Contains(allowedOrigins, "*") || len(allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/guest-sessions", createGuestSessionHandler(deps.SessionSvc))

	router.GET("/categories", listCategoriesHandler(deps.CategorySvc))
	router.GET("/products", listProductsHandler(deps.ProductSvc))
	router.GET("/products/:id", getProductHandler(deps.ProductSvc))

	owner := router.Group("/owners/:ownerID")
	{
		owner.GET("/cart", getCartHandler(deps.CartSvc))
		owner.GET("/cart/count", cartCountHandler(deps.CartSvc))
		owner.POST("/cart/items", addCartItemHandler(deps.CartSvc))
		owner.PATCH("/cart/items/:itemID", updateCartItemHandler(deps.CartSvc))
		owner.DELETE("/cart/items/:itemID", removeCartItemHandler(deps.CartSvc))
		owner.DELETE("/cart", clearCartHandler(deps.CartSvc))

		owner.POST("/orders", checkoutHandler(deps.CartSvc, deps.OrderSvc))
		owner.GET("/orders", listOrdersHandler(deps.OrderSvc))
	}

	router.GET("/orders/stats", orderStatsHandler(deps.OrderSvc))
	router.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
	router.POST("/orders/:id/cancel", cancelOrderHandler(deps.OrderSvc))
	router.POST("/orders/:id/reorder", reorderHandler(deps.OrderSvc, deps.CartSvc))
	router.PATCH("/orders/:id/status", updateOrderStatusHandler(deps.OrderSvc))
	router.PATCH("/orders/:id/tracking", setTrackingHandler(deps.OrderSvc))

	return router
}
