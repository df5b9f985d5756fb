package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jkwan/gomall/internal/cache"
	"github.com/jkwan/gomall/internal/listing"
	"github.com/jkwan/gomall/internal/product"
)

const (
	defaultProductLimit = 5
	defaultProductSort  = "created_date"
)

// getProductsHandler godoc
// @Summary  List products
// @Tags     products
// @Produce  json
// @Param    category query string false "FOOD, CAR or E_BOOK"
// @Param    search   query string false "substring match on product name"
// @Param    orderBy  query string false "sort column" default(created_date)
// @Param    sort     query string false "asc or desc"  default(desc)
// @Param    limit    query int    false "page size, max 1000" default(5)
// @Param    offset   query int    false "page start" default(0)
// @Success  200 {object} map[string]interface{}
// @Router   /products [get]
func getProductsHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		qp := product.QueryParams{
			OrderBy: c.DefaultQuery("orderBy", defaultProductSort),
			Sort:    c.DefaultQuery("sort", "desc"),
		}
		if raw, ok := c.GetQuery("category"); ok {
			cat, err := product.ParseCategory(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			qp.Category = &cat
		}
		if raw, ok := c.GetQuery("search"); ok {
			qp.Search = &raw
		}
		var ok bool
		if qp.Limit, ok = queryInt(c, "limit", defaultProductLimit); !ok {
			return
		}
		if qp.Offset, ok = queryInt(c, "offset", 0); !ok {
			return
		}

		items, err := repo.List(c.Request.Context(), qp)
		if err != nil {
			writeListError(c, err)
			return
		}
		total, err := repo.Count(c.Request.Context(), qp)
		if err != nil {
			writeListError(c, err)
			return
		}
		c.JSON(http.StatusOK, page[product.Product]{
			Limit:   qp.Limit,
			Offset:  qp.Offset,
			Total:   total,
			Results: items,
		})
	}
}

func writeListError(c *gin.Context, err error) {
	if errors.Is(err, listing.ErrInvalidQueryParam) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[product] list: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// getProductHandler godoc
// @Summary  Get one product
// @Tags     products
// @Produce  json
// @Param    productId path int true "product id"
// @Success  200 {object} product.Product
// @Failure  404 {object} map[string]string
// @Router   /products/{productId} [get]
func getProductHandler(repo product.Repository, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "productId")
		if !ok {
			return
		}
		if p, hit := pc.Get(c.Request.Context(), id); hit {
			c.JSON(http.StatusOK, p)
			return
		}
		p, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			log.Printf("[product] get %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		pc.Set(c.Request.Context(), p)
		c.JSON(http.StatusOK, p)
	}
}

// createProductHandler godoc
// @Summary  Create a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    product body product.CreateProductRequest true "product"
// @Success  201 {object} product.Product
// @Router   /products [post]
func createProductHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cat, err := product.ParseCategory(req.Category)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		id, err := repo.Create(c.Request.Context(), &product.Product{
			ProductName: req.ProductName,
			Category:    cat,
			ImageURL:    req.ImageURL,
			Price:       req.Price,
			Stock:       req.Stock,
			Description: req.Description,
		})
		if err != nil {
			log.Printf("[product] create: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		created, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			log.Printf("[product] refetch %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// updateProductHandler godoc
// @Summary  Update a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    productId path int true "product id"
// @Param    product body product.CreateProductRequest true "product"
// @Success  200 {object} product.Product
// @Failure  404 {object} map[string]string
// @Router   /products/{productId} [put]
func updateProductHandler(repo product.Repository, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "productId")
		if !ok {
			return
		}
		var req product.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cat, err := product.ParseCategory(req.Category)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		err = repo.Update(c.Request.Context(), &product.Product{
			ProductID:   id,
			ProductName: req.ProductName,
			Category:    cat,
			ImageURL:    req.ImageURL,
			Price:       req.Price,
			Stock:       req.Stock,
			Description: req.Description,
		})
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			log.Printf("[product] update %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		pc.Invalidate(c.Request.Context(), id)
		updated, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			log.Printf("[product] refetch %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// deleteProductHandler godoc
// @Summary  Delete a product
// @Tags     products
// @Param    productId path int true "product id"
// @Success  204
// @Router   /products/{productId} [delete]
func deleteProductHandler(repo product.Repository, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "productId")
		if !ok {
			return
		}
		if err := repo.Delete(c.Request.Context(), id); err != nil {
			log.Printf("[product] delete %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		pc.Invalidate(c.Request.Context(), id)
		c.Status(http.StatusNoContent)
	}
}
