package view

import (
	"time"

	"github.com/kmoo25z/ameriduka/internal/modules/users"
)

type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Phone         *string   `json:"phone,omitempty"`
	Role          string    `json:"role"`
	Picture       *string   `json:"picture,omitempty"`
	LoyaltyPoints int       `json:"loyalty_points"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromUser(u users.User) User {
	return User{
		ID:            u.UserID,
		Email:         u.Email,
		Name:          u.Name,
		Phone:         u.Phone,
		Role:          u.Role,
		Picture:       u.Picture,
		LoyaltyPoints: u.LoyaltyPoints,
		CreatedAt:     u.CreatedAt,
	}
}
