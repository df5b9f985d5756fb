package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jkwan/gomall/internal/cart"
)

// addCartItemHandler godoc
// @Summary  Add a product to the cart (merges into an existing line)
// @Tags     cart
// @Accept   json
// @Produce  json
// @Param    userId path int true "user id"
// @Param    item body cart.CreateCartItemRequest true "item"
// @Success  201 {object} cart.CartItem
// @Router   /users/{userId}/cart [post]
func addCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "userId")
		if !ok {
			return
		}
		var req cart.CreateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ci, err := svc.AddCartItem(c.Request.Context(), userID, req)
		if err != nil {
			if errors.Is(err, cart.ErrProductNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			log.Printf("[cart] add for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, ci)
	}
}

// getCartItemsHandler godoc
// @Summary  List the user's cart
// @Tags     cart
// @Produce  json
// @Param    userId path int true "user id"
// @Success  200 {array} cart.CartItem
// @Router   /users/{userId}/cart [get]
func getCartItemsHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "userId")
		if !ok {
			return
		}
		items, err := svc.GetCartItems(c.Request.Context(), userID)
		if err != nil {
			log.Printf("[cart] list for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// updateCartItemHandler godoc
// @Summary  Change a cart line's quantity
// @Tags     cart
// @Accept   json
// @Produce  json
// @Param    userId path int true "user id"
// @Param    cartItemId path int true "cart item id"
// @Param    item body cart.UpdateCartItemRequest true "new quantity"
// @Success  200 {object} cart.CartItem
// @Failure  404 {object} map[string]string
// @Router   /users/{userId}/cart/{cartItemId} [put]
func updateCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "userId")
		if !ok {
			return
		}
		cartItemID, ok := pathID(c, "cartItemId")
		if !ok {
			return
		}
		var req cart.UpdateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ci, err := svc.UpdateCartItem(c.Request.Context(), userID, cartItemID, req.Quantity)
		if err != nil {
			if errors.Is(err, cart.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
				return
			}
			log.Printf("[cart] update %d for user %d: %v", cartItemID, userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, ci)
	}
}

// deleteCartItemHandler godoc
// @Summary  Remove one cart line
// @Tags     cart
// @Param    userId path int true "user id"
// @Param    cartItemId path int true "cart item id"
// @Success  204
// @Router   /users/{userId}/cart/{cartItemId} [delete]
func deleteCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "userId")
		if !ok {
			return
		}
		cartItemID, ok := pathID(c, "cartItemId")
		if !ok {
			return
		}
		if err := svc.DeleteCartItem(c.Request.Context(), userID, cartItemID); err != nil {
			if errors.Is(err, cart.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
				return
			}
			log.Printf("[cart] delete %d for user %d: %v", cartItemID, userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// clearCartHandler godoc
// @Summary  Empty the user's cart
// @Tags     cart
// @Param    userId path int true "user id"
// @Success  204
// @Router   /users/{userId}/cart [delete]
func clearCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "userId")
		if !ok {
			return
		}
		if err := svc.ClearCart(c.Request.Context(), userID); err != nil {
			log.Printf("[cart] clear for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
