package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jkwan/gomall/internal/user"
)

// registerHandler godoc
// @Summary  Register a user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    user body user.RegisterRequest true "credentials"
// @Success  201 {object} user.User
// @Failure  400 {object} map[string]string
// @Router   /users/register [post]
func registerHandler(svc userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		u, err := svc.Register(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, user.ErrAlreadyExist) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
				return
			}
			log.Printf("[user] register: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

// loginHandler godoc
// @Summary  Log in
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    credentials body user.LoginRequest true "credentials"
// @Success  200 {object} map[string]interface{}
// @Failure  400 {object} map[string]string
// @Router   /users/login [post]
func loginHandler(svc userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		token, u, err := svc.Login(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, user.ErrBadCredentials) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email or password"})
				return
			}
			log.Printf("[user] login: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
	}
}
