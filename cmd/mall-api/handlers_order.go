package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jkwan/gomall/internal/cache"
	"github.com/jkwan/gomall/internal/listing"
	"github.com/jkwan/gomall/internal/order"
)

const defaultOrderLimit = 10

// createOrderHandler godoc
// @Summary  Place an order
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    userId path int true "buyer id"
// @Param    order body order.CreateOrderRequest true "buy items"
// @Success  201 {object} order.Order
// @Failure  400 {object} map[string]string
// @Router   /users/{userId}/orders [post]
func createOrderHandler(svc orderService, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "userId")
		if !ok {
			return
		}
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		orderID, err := svc.PlaceOrder(c.Request.Context(), userID, req.BuyItemList)
		if err != nil {
			var ise *order.InsufficientStockError
			switch {
			case errors.Is(err, order.ErrUserNotFound),
				errors.Is(err, order.ErrProductNotFound),
				errors.As(err, &ise):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				log.Printf("[order] place for user %d: %v", userID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		ids := make([]int64, 0, len(req.BuyItemList))
		for _, it := range req.BuyItemList {
			ids = append(ids, it.ProductID)
		}
		pc.Invalidate(c.Request.Context(), ids...)

		created, err := svc.GetOrderByID(c.Request.Context(), orderID)
		if err != nil {
			log.Printf("[order] refetch %d: %v", orderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// listOrdersHandler godoc
// @Summary  List a user's orders
// @Tags     orders
// @Produce  json
// @Param    userId path int true "user id"
// @Param    limit  query int false "page size, max 1000" default(10)
// @Param    offset query int false "page start" default(0)
// @Success  200 {object} map[string]interface{}
// @Router   /users/{userId}/orders [get]
func listOrdersHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "userId")
		if !ok {
			return
		}
		qp := order.QueryParams{UserID: &userID}
		if qp.Limit, ok = queryInt(c, "limit", defaultOrderLimit); !ok {
			return
		}
		if qp.Offset, ok = queryInt(c, "offset", 0); !ok {
			return
		}

		orders, total, err := svc.ListOrders(c.Request.Context(), qp)
		if err != nil {
			if errors.Is(err, listing.ErrInvalidQueryParam) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			log.Printf("[order] list for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, page[order.Order]{
			Limit:   qp.Limit,
			Offset:  qp.Offset,
			Total:   total,
			Results: orders,
		})
	}
}
