package dto

// LoginRequest is the payload for the login endpoints.
// The email is only required to be present: a value that matches no
// account falls into the same generic credentials error as a wrong
// password, so rejecting shapes here would leak which check failed.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
