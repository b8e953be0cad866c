package dto

import (
	"time"

	"courier_backend/internal/feature/auth/domain/entity"
)

// ErrorResponse is the uniform error shape of the API.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MessageResponse reports a successful operation.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// LoginResponse carries the post-login redirect target for the client.
type LoginResponse struct {
	Success  bool   `json:"success"`
	Redirect string `json:"redirect"`
}

// UserResponse is the public projection of a user. The password hash
// never leaves the server.
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	LastName  string    `json:"lastName"`
	Document  string    `json:"document,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse projects a user entity for transport.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		LastName:  u.LastName,
		Document:  u.Document,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
