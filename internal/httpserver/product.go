package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/willotis/tamarind-drinks-app/internal/domain"
	productrepo "github.com/willotis/tamarind-drinks-app/internal/repository/product"
)

func listCategoriesHandler(svc CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		if categories == nil {
			categories = []domain.Category{}
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

func listProductsHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := productrepo.ListFilter{
			CategoryID: strings.TrimSpace(c.Query("category")),
			Search:     strings.TrimSpace(c.Query("search")),
			Featured:   c.Query("featured") == "true",
		}
		products, err := svc.List(c.Request.Context(), filter)
		if err != nil {
			writeError(c, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products)})
	}
}

func getProductHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
