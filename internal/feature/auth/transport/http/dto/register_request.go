// Package dto defines the HTTP request/response shapes for the auth feature.
package dto

// RegisterRequest is the payload for self-registration.
// Email, password, name, last name and document are all mandatory.
// Beyond presence, no format is imposed at the transport layer; the
// usecase owns the acceptance rules.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	LastName string `json:"lastName" binding:"required"`
	Document string `json:"document" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// CreateUserRequest is the admin variant of RegisterRequest; unlike
// self-registration it may set the role.
type CreateUserRequest struct {
	RegisterRequest
	Role string `json:"role" binding:"required,oneof=ADMIN CLIENT"`
}
