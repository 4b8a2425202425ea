package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/willotis/tamarind-drinks-app/internal/domain"
	ordersvc "github.com/willotis/tamarind-drinks-app/internal/service/order"
)

type checkoutRequest struct {
	CouponCode     string         `json:"couponCode"`
	Address        domain.Address `json:"address" binding:"required"`
	PaymentMethod  string         `json:"paymentMethod" binding:"required"`
	DeliveryMethod string         `json:"deliveryMethod" binding:"required"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

type trackingRequest struct {
	TrackingNumber string `json:"trackingNumber" binding:"required"`
}

// checkoutHandler prices the owner's cart server-side, snapshots it into an
// order and clears the cart once the order is persisted.
func checkoutHandler(carts CartService, orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.Param("ownerID")
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "address, paymentMethod and deliveryMethod required")
			return
		}

		ctx := c.Request.Context()
		items, err := carts.Items(ctx, ownerID)
		if err != nil {
			writeError(c, err)
			return
		}
		totals, err := carts.Totals(ctx, ownerID, strings.TrimSpace(req.CouponCode))
		if err != nil {
			writeError(c, err)
			return
		}

		order, err := orders.Create(ctx, ordersvc.CreateInput{
			OwnerID:        ownerID,
			Items:          items,
			Pricing:        totals,
			Address:        req.Address,
			PaymentMethod:  req.PaymentMethod,
			DeliveryMethod: req.DeliveryMethod,
		})
		if err != nil {
			if errors.Is(err, domain.ErrEmptyCart) {
				writeError(c, err)
				return
			}
			badRequest(c, err.Error())
			return
		}

		if err := carts.Clear(ctx, ownerID); err != nil {
			// The order exists; a stale cart is recoverable, so report the
			// order anyway.
			c.JSON(http.StatusCreated, gin.H{"order": order, "cartCleared": false})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order": order, "cartCleared": true})
	}
}

func getOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func listOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := domain.OrderFilter(strings.TrimSpace(c.DefaultQuery("filter", string(domain.FilterAll))))
		switch filter {
		case domain.FilterAll, domain.FilterActive, domain.FilterCompleted, domain.FilterCancelled:
		default:
			badRequest(c, "unknown filter")
			return
		}
		orders, err := svc.ListByOwner(c.Request.Context(), c.Param("ownerID"), filter)
		if err != nil {
			writeError(c, err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
	}
}

func cancelOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Cancel(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func reorderHandler(orders OrderService, carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := orders.Reorder(c.Request.Context(), c.Param("id"), carts); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func updateOrderStatusHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "status required")
			return
		}
		status := domain.OrderStatus(strings.ToLower(strings.TrimSpace(req.Status)))
		if !status.Valid() {
			badRequest(c, "unknown status")
			return
		}
		if err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), status); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func setTrackingHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req trackingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "trackingNumber required")
			return
		}
		if err := svc.SetTracking(c.Request.Context(), c.Param("id"), req.TrackingNumber); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func orderStatsHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Stats(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
