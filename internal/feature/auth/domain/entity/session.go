package entity

import "time"

// Session is the authenticated-identity claim held by the client
// between login and logout. It is never persisted server-side; it
// travels as a signed cookie and is reconstructed on every request.
type Session struct {
	ID        uint      // Authenticated user ID
	Email     string    // User's email address
	Name      string    // Given name, for display
	LastName  string    // Family name, for display
	Role      Role      // ADMIN or CLIENT
	ExpiresAt time.Time // Absolute expiry of the claim
}

// IsExpired returns true if the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// HomePath returns the landing route for the session's role.
func (s *Session) HomePath() string {
	if s.Role == RoleAdmin {
		return "/admin"
	}
	return "/dashboard"
}
