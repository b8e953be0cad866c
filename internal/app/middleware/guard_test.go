package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier_backend/internal/feature/auth/domain/entity"
	"courier_backend/internal/platform/sessioncookie"
)

// guardRouter builds a minimal router with the guard installed and a
// catch-all handler recording whether the request reached it.
func guardRouter(codec *sessioncookie.Codec) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Guard(codec))
	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusOK, "reached")
	})
	return r
}

func sessionCookie(t *testing.T, codec *sessioncookie.Codec, role entity.Role) *http.Cookie {
	t.Helper()
	raw, err := codec.Encode(&entity.Session{
		ID:        1,
		Email:     "u@example.com",
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	return &http.Cookie{Name: sessioncookie.CookieName, Value: raw}
}

func doGet(r *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGuard_AnonymousOnProtected(t *testing.T) {
	codec := sessioncookie.NewCodec("test-secret", false)
	r := guardRouter(codec)

	tests := []struct {
		path string
		want string
	}{
		{path: "/dashboard", want: "/login"},
		{path: "/dashboard/paquetes", want: "/login"},
		{path: "/admin", want: "/admin/login"},
		{path: "/admin/usuarios", want: "/admin/login"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := doGet(r, tt.path, nil)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))
		})
	}
}

func TestGuard_AnonymousOnPublic(t *testing.T) {
	codec := sessioncookie.NewCodec("test-secret", false)
	r := guardRouter(codec)

	for _, path := range []string{"/login", "/register", "/admin/login"} {
		t.Run(path, func(t *testing.T) {
			w := doGet(r, path, nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "reached", w.Body.String())
		})
	}
}

func TestGuard_LoggedInOnPublic(t *testing.T) {
	codec := sessioncookie.NewCodec("test-secret", false)
	r := guardRouter(codec)

	t.Run("client goes home", func(t *testing.T) {
		w := doGet(r, "/login", sessionCookie(t, codec, entity.RoleClient))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	})

	t.Run("admin goes home", func(t *testing.T) {
		w := doGet(r, "/login", sessionCookie(t, codec, entity.RoleAdmin))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/admin", w.Header().Get("Location"))
	})
}

func TestGuard_InvalidCookie(t *testing.T) {
	codec := sessioncookie.NewCodec("test-secret", false)
	r := guardRouter(codec)

	garbage := &http.Cookie{Name: sessioncookie.CookieName, Value: "not-a-token"}

	t.Run("on public path", func(t *testing.T) {
		w := doGet(r, "/login", garbage)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assertCookieCleared(t, w)
	})

	t.Run("on protected path", func(t *testing.T) {
		w := doGet(r, "/dashboard", garbage)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assertCookieCleared(t, w)
	})

	t.Run("on admin path", func(t *testing.T) {
		w := doGet(r, "/admin/usuarios", garbage)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"))
		assertCookieCleared(t, w)
	})

	t.Run("expired session", func(t *testing.T) {
		raw, err := codec.Encode(&entity.Session{
			ID:        1,
			Role:      entity.RoleClient,
			ExpiresAt: time.Now().Add(-time.Minute),
		})
		require.NoError(t, err)
		w := doGet(r, "/dashboard", &http.Cookie{Name: sessioncookie.CookieName, Value: raw})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assertCookieCleared(t, w)
	})
}

func TestGuard_RoleEnforcement(t *testing.T) {
	codec := sessioncookie.NewCodec("test-secret", false)
	r := guardRouter(codec)

	t.Run("client bounced off admin", func(t *testing.T) {
		w := doGet(r, "/admin/usuarios", sessionCookie(t, codec, entity.RoleClient))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	})

	t.Run("admin passes admin", func(t *testing.T) {
		w := doGet(r, "/admin/usuarios", sessionCookie(t, codec, entity.RoleAdmin))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin passes dashboard", func(t *testing.T) {
		// No role table entry for /dashboard, any session is fine
		w := doGet(r, "/dashboard", sessionCookie(t, codec, entity.RoleAdmin))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGuard_ExemptPaths(t *testing.T) {
	codec := sessioncookie.NewCodec("test-secret", false)
	r := guardRouter(codec)

	// The bare group root is exempt like everything below it
	for _, path := range []string{"/api", "/api/liquidations", "/assets/app.css", "/healthz", "/favicon.ico"} {
		t.Run(path, func(t *testing.T) {
			w := doGet(r, path, nil)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestGuard_Idempotent(t *testing.T) {
	codec := sessioncookie.NewCodec("test-secret", false)
	r := guardRouter(codec)
	cookie := sessionCookie(t, codec, entity.RoleClient)

	first := doGet(r, "/admin", cookie)
	second := doGet(r, "/admin", cookie)

	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Header().Get("Location"), second.Header().Get("Location"))
}

func TestGuard_StoresSessionInContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := sessioncookie.NewCodec("test-secret", false)

	var got *entity.Session
	r := gin.New()
	r.Use(Guard(codec))
	r.GET("/dashboard", func(c *gin.Context) {
		got = SessionFromContext(c)
		c.Status(http.StatusOK)
	})

	w := doGet(r, "/dashboard", sessionCookie(t, codec, entity.RoleClient))

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, uint(1), got.ID)
	assert.Equal(t, entity.RoleClient, got.Role)
}

func assertCookieCleared(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == sessioncookie.CookieName {
			assert.Negative(t, c.MaxAge)
			return
		}
	}
	t.Fatal("expected a Set-Cookie deleting the session")
}
