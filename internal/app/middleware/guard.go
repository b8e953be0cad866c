// Package middleware provides the request-time session guard.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"courier_backend/internal/feature/auth/domain/entity"
	"courier_backend/internal/platform/sessioncookie"
)

// ContextSession is the gin context key under which the guard stores
// the verified session of the current request.
const ContextSession = "session"

// publicPaths are reachable without a session. Matching is exact.
var publicPaths = map[string]struct{}{
	"/login":       {},
	"/register":    {},
	"/admin/login": {},
}

// requiredRoles maps a path prefix to the role it demands. Prefixes are
// checked in declaration order; the first match wins.
var requiredRoles = []struct {
	prefix string
	role   entity.Role
}{
	{prefix: "/admin", role: entity.RoleAdmin},
}

// SessionFromContext returns the verified session stored by the guard,
// or nil when the request is unauthenticated.
func SessionFromContext(c *gin.Context) *entity.Session {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil
	}
	session, ok := v.(*entity.Session)
	if !ok {
		return nil
	}
	return session
}

// Guard returns a Gin middleware enforcing the route map:
//
//   - a logged-in user visiting a public path is sent to their home
//   - an anonymous user visiting a protected path is sent to the login
//     page of the area (/admin/login under /admin, /login elsewhere)
//   - a cookie that fails verification is deleted and treated as absent
//   - role-gated prefixes reject sessions of the wrong role
//
// The decision is a pure function of (cookie, path); repeated invocation
// with the same inputs yields the same response. API routes and static
// assets are passed through untouched.
func Guard(codec *sessioncookie.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if isExempt(path) {
			c.Next()
			return
		}

		_, isPublic := publicPaths[path]
		cookie, err := c.Request.Cookie(sessioncookie.CookieName)
		hasCookie := err == nil && cookie.Value != ""

		// Cookie on a public path: send the user to their area, or drop
		// the cookie when it does not verify.
		if hasCookie && isPublic {
			session, err := codec.Decode(cookie.Value)
			if err != nil {
				codec.Clear(c)
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
				return
			}
			c.Redirect(http.StatusFound, session.HomePath())
			c.Abort()
			return
		}

		// No cookie on a protected path: redirect to the area's login.
		if !hasCookie && !isPublic {
			if strings.HasPrefix(path, "/admin") {
				c.Redirect(http.StatusFound, "/admin/login")
			} else {
				c.Redirect(http.StatusFound, "/login")
			}
			c.Abort()
			return
		}

		// Protected path with a cookie: verify it and enforce the role table.
		if hasCookie {
			session, err := codec.Decode(cookie.Value)
			if err != nil {
				codec.Clear(c)
				if strings.HasPrefix(path, "/admin") {
					c.Redirect(http.StatusFound, "/admin/login")
				} else {
					c.Redirect(http.StatusFound, "/login")
				}
				c.Abort()
				return
			}
			for _, rr := range requiredRoles {
				if strings.HasPrefix(path, rr.prefix) && session.Role != rr.role {
					// Wrong role: bounce to the session's own home.
					c.Redirect(http.StatusFound, session.HomePath())
					c.Abort()
					return
				}
			}
			c.Set(ContextSession, session)
		}

		c.Next()
	}
}

// isExempt reports whether the guard skips the path entirely.
// API routes answer with JSON status codes instead of redirects, and
// static assets carry no session semantics.
func isExempt(path string) bool {
	return path == "/api" ||
		strings.HasPrefix(path, "/api/") ||
		strings.HasPrefix(path, "/assets/") ||
		path == "/healthz" ||
		path == "/favicon.ico"
}
