package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func okHandler(t *testing.T, wantSubject string, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		claims, ok := FromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, wantSubject, claims.Subject)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_ValidToken(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"), time.Hour)
	tok, err := tokens.Issue("user-1", "CLIENT")
	require.NoError(t, err)

	called := false
	h := Authenticate(tokens, zap.NewNop().Sugar())(okHandler(t, "user-1", &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_Rejections(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"), time.Hour)
	other := NewTokens([]byte("other-secret"), time.Hour)
	misSigned, err := other.Issue("user-1", "CLIENT")
	require.NoError(t, err)
	expired, err := NewTokens([]byte("test-secret"), -time.Minute).Issue("user-1", "CLIENT")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Token abc"},
		{"garbage token", "Bearer not-a-token"},
		{"wrong secret", "Bearer " + misSigned},
		{"expired", "Bearer " + expired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := Authenticate(tokens, zap.NewNop().Sugar())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next should not be reached")
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("role allowed", func(t *testing.T) {
		h := RequireRole("ADMIN")(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithClaims(req.Context(), Claims{Subject: "u", Role: "ADMIN"}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("role forbidden", func(t *testing.T) {
		h := RequireRole("ADMIN")(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithClaims(req.Context(), Claims{Subject: "u", Role: "CLIENT"}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no claims", func(t *testing.T) {
		h := RequireRole("ADMIN")(next)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalAuthenticate(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"), time.Hour)

	t.Run("anonymous passes through", func(t *testing.T) {
		h := OptionalAuthenticate(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := FromContext(r.Context())
			require.False(t, ok)
			w.WriteHeader(http.StatusOK)
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		tok, err := tokens.Issue("user-2", "CLIENT")
		require.NoError(t, err)
		h := OptionalAuthenticate(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "user-2", Subject(r.Context()))
			w.WriteHeader(http.StatusOK)
		}))
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid token treated as anonymous", func(t *testing.T) {
		h := OptionalAuthenticate(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := FromContext(r.Context())
			require.False(t, ok)
			w.WriteHeader(http.StatusOK)
		}))
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer junk")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hash)
	require.NoError(t, CheckPassword(hash, "secret1"))
	require.Error(t, CheckPassword(hash, "secret2"))
}
