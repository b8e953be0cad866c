// Package sessioncookie encodes the login session into a signed cookie.
//
// The session claim lives entirely on the client; the server holds no
// session store. Every read verifies the HMAC signature, so a cookie
// forged or altered by the client is treated as absent.
package sessioncookie

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"courier_backend/internal/feature/auth/domain/entity"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

var (
	// ErrNoSession is returned when the request carries no session cookie.
	ErrNoSession = errors.New("no session cookie")

	// ErrInvalidSession is returned when the cookie cannot be verified.
	// Callers treat it as "not logged in", never as a fault.
	ErrInvalidSession = errors.New("invalid session cookie")
)

// sessionClaims is the JWT payload for a login session.
type sessionClaims struct {
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	LastName string      `json:"last_name"`
	Role     entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session cookies.
type Codec struct {
	secret []byte
	secure bool
}

// NewCodec creates a Codec. secure controls the cookie's Secure flag
// and should be true in production.
func NewCodec(secret string, secure bool) *Codec {
	return &Codec{secret: []byte(secret), secure: secure}
}

// Encode serializes and signs a session claim.
func (c *Codec) Encode(s *entity.Session) (string, error) {
	claims := sessionClaims{
		Email:    s.Email,
		Name:     s.Name,
		LastName: s.LastName,
		Role:     s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(s.ID), 10),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies a signed cookie value and reconstructs the session.
// Any parse, signature, or expiry failure yields ErrInvalidSession.
func (c *Codec) Decode(raw string) (*entity.Session, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidSession
	}
	if claims.ExpiresAt == nil {
		return nil, ErrInvalidSession
	}

	return &entity.Session{
		ID:        uint(id),
		Email:     claims.Email,
		Name:      claims.Name,
		LastName:  claims.LastName,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// FromRequest reads and verifies the session cookie of a request.
func (c *Codec) FromRequest(r *http.Request) (*entity.Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, ErrNoSession
	}
	return c.Decode(cookie.Value)
}

// Issue writes the session cookie on the response.
// HttpOnly and SameSite=Lax across the whole site, Secure in production.
func (c *Codec) Issue(g *gin.Context, s *entity.Session) error {
	value, err := c.Encode(s)
	if err != nil {
		return err
	}
	http.SetCookie(g.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear deletes the session cookie unconditionally.
func (c *Codec) Clear(g *gin.Context) {
	http.SetCookie(g.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
