package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/willotis/tamarind-drinks-app/internal/domain"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Size      string `json:"size"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	Items       []domain.CartItem    `json:"items"`
	Totals      domain.PricingResult `json:"totals"`
	CouponError string               `json:"couponError,omitempty"`
}

// getCartHandler returns the owner's lines plus totals. An invalid coupon
// still yields the coupon-free totals, with the failure reported alongside.
func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.Param("ownerID")
		coupon := strings.TrimSpace(c.Query("coupon"))

		items, err := svc.Items(c.Request.Context(), ownerID)
		if err != nil {
			writeError(c, err)
			return
		}
		totals, err := svc.Totals(c.Request.Context(), ownerID, coupon)
		resp := cartResponse{Items: items, Totals: totals}
		if resp.Items == nil {
			resp.Items = []domain.CartItem{}
		}
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidCoupon) {
				writeError(c, err)
				return
			}
			resp.CouponError = err.Error()
		}
		c.JSON(http.StatusOK, resp)
	}
}

func cartCountHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := svc.Count(c.Request.Context(), c.Param("ownerID"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

func addCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "productId and quantity required")
			return
		}
		item, err := svc.AddItem(c.Request.Context(), c.Param("ownerID"), req.ProductID, req.Size, req.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(c, err)
				return
			}
			badRequest(c, err.Error())
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func updateCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "quantity required")
			return
		}
		if err := svc.UpdateQuantity(c.Request.Context(), c.Param("itemID"), req.Quantity); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func removeCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.RemoveItem(c.Request.Context(), c.Param("itemID")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func clearCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Clear(c.Request.Context(), c.Param("ownerID")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
