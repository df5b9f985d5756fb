package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jkwan/gomall/internal/cache"
	"github.com/jkwan/gomall/internal/cart"
	"github.com/jkwan/gomall/internal/httpx"
	"github.com/jkwan/gomall/internal/order"
	"github.com/jkwan/gomall/internal/product"
	"github.com/jkwan/gomall/internal/user"
)

// Consumer-side contracts so handler tests can stub each collaborator.

type orderService interface {
	PlaceOrder(ctx context.Context, userID int64, buyItems []order.BuyItem) (int64, error)
	GetOrderByID(ctx context.Context, orderID int64) (*order.Order, error)
	ListOrders(ctx context.Context, qp order.QueryParams) ([]order.Order, int, error)
}

type userService interface {
	Register(ctx context.Context, req user.RegisterRequest) (*user.User, error)
	Login(ctx context.Context, req user.LoginRequest) (string, *user.User, error)
}

type cartService interface {
	AddCartItem(ctx context.Context, userID int64, req cart.CreateCartItemRequest) (*cart.CartItem, error)
	GetCartItems(ctx context.Context, userID int64) ([]cart.CartItem, error)
	UpdateCartItem(ctx context.Context, userID, cartItemID int64, quantity int) (*cart.CartItem, error)
	DeleteCartItem(ctx context.Context, userID, cartItemID int64) error
	ClearCart(ctx context.Context, userID int64) error
}

type appDeps struct {
	products     product.Repository
	orders       orderService
	users        userService
	carts        cartService
	productCache *cache.ProductCache
	rdb          *redis.Client
	jwtSecret    string
}

// page is the listing envelope shared by product and order listings.
type page[T any] struct {
	Limit   int `json:"limit"`
	Offset  int `json:"offset"`
	Total   int `json:"total"`
	Results []T `json:"results"`
}

func newRouter(d *appDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/products", getProductsHandler(d.products))
	r.GET("/products/:productId", getProductHandler(d.products, d.productCache))
	r.POST("/products", createProductHandler(d.products))
	r.PUT("/products/:productId", updateProductHandler(d.products, d.productCache))
	r.DELETE("/products/:productId", deleteProductHandler(d.products, d.productCache))

	r.POST("/users/register", httpx.RateLimiter(d.rdb), registerHandler(d.users))
	r.POST("/users/login", httpx.RateLimiter(d.rdb), loginHandler(d.users))

	r.POST("/users/:userId/orders", createOrderHandler(d.orders, d.productCache))
	r.GET("/users/:userId/orders", listOrdersHandler(d.orders))

	cartGroup := r.Group("/users/:userId/cart")
	if d.jwtSecret != "" {
		cartGroup.Use(httpx.RequireAuth(d.jwtSecret), requireSameUser())
	}
	cartGroup.POST("", addCartItemHandler(d.carts))
	cartGroup.GET("", getCartItemsHandler(d.carts))
	cartGroup.PUT("/:cartItemId", updateCartItemHandler(d.carts))
	cartGroup.DELETE("/:cartItemId", deleteCartItemHandler(d.carts))
	cartGroup.DELETE("", clearCartHandler(d.carts))

	return r
}

// requireSameUser rejects tokens whose subject differs from the userId
// path segment.
func requireSameUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		pathID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		tokenID, ok := c.Get(httpx.UserIDKey)
		if !ok || tokenID.(int64) != pathID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token does not match user"})
			return
		}
		c.Next()
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.DefaultQuery(name, strconv.Itoa(def))
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}
