// Package user provides registration, login and the user directory the
// checkout path validates buyers against.
package user

import "time"

type User struct {
	UserID           int64     `json:"userId"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	CreatedDate      time.Time `json:"createdDate"`
	LastModifiedDate time.Time `json:"lastModifiedDate"`
}

// RegisterRequest payload of POST /users/register.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Email    string `json:"email"    binding:"required,email" example:"buyer@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"secret123"`
}

// LoginRequest payload of POST /users/login.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
