package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop_api/internal/core/models"
	"printshop_api/pkg/logger"
)

func TestSubscriptionKeyAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/catalog", nil)
	require.NoError(t, NewSubscriptionKeyAuth("secret").Authorize(context.Background(), req))
	assert.Equal(t, "secret", req.Header.Get("Subscription-Key"))
}

func TestBasicAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v2/products", nil)
	require.NoError(t, NewBasicAuth("acct-1", "key-1").Authorize(context.Background(), req))
	user, pass, ok := req.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "acct-1", user)
	assert.Equal(t, "key-1", pass)
}

func TestBearerLoginAuth(t *testing.T) {
	newAuth := func(t *testing.T, logins *atomic.Int32, expiresIn int) (*BearerLoginAuth, *time.Time) {
		t.Helper()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logins.Add(1)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"token":     "jwt-1",
				"expiresIn": expiresIn,
			})
		}))
		t.Cleanup(server.Close)

		auth := NewBearerLoginAuth(models.SupplierASColour, "sub-key", "a@b.c", "pw", server.URL, logger.NewNopLogger())
		now := time.Now()
		auth.now = func() time.Time { return now }
		return auth, &now
	}

	t.Run("LoginOnFirstUseOnly", func(t *testing.T) {
		var logins atomic.Int32
		auth, _ := newAuth(t, &logins, 3600)

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/v1/pricing", nil)
			require.NoError(t, auth.Authorize(context.Background(), req))
			assert.Equal(t, "Bearer jwt-1", req.Header.Get("Authorization"))
			assert.Equal(t, "sub-key", req.Header.Get("Subscription-Key"))
		}
		assert.Equal(t, int32(1), logins.Load())
	})

	t.Run("ProactiveRefreshAtWatermark", func(t *testing.T) {
		var logins atomic.Int32
		auth, now := newAuth(t, &logins, 1000)

		req := httptest.NewRequest(http.MethodGet, "/v1/pricing", nil)
		require.NoError(t, auth.Authorize(context.Background(), req))
		require.Equal(t, int32(1), logins.Load())

		// До водяного знака (95% от 1000s) повторного логина нет.
		*now = now.Add(940 * time.Second)
		require.NoError(t, auth.Authorize(context.Background(), req))
		assert.Equal(t, int32(1), logins.Load())

		// После — обновляемся, не дожидаясь истечения токена.
		*now = now.Add(20 * time.Second)
		require.NoError(t, auth.Authorize(context.Background(), req))
		assert.Equal(t, int32(2), logins.Load())
	})

	t.Run("NoCredentialsSkipsLogin", func(t *testing.T) {
		auth := NewBearerLoginAuth(models.SupplierASColour, "sub-key", "", "", "http://unused", logger.NewNopLogger())
		req := httptest.NewRequest(http.MethodGet, "/v1/catalog", nil)
		require.NoError(t, auth.Authorize(context.Background(), req))
		assert.Empty(t, req.Header.Get("Authorization"))
		assert.Equal(t, "sub-key", req.Header.Get("Subscription-Key"))
	})

	t.Run("RejectedLoginIsAuthError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		t.Cleanup(server.Close)

		auth := NewBearerLoginAuth(models.SupplierASColour, "sub-key", "a@b.c", "bad", server.URL, logger.NewNopLogger())
		req := httptest.NewRequest(http.MethodGet, "/v1/pricing", nil)
		err := auth.Authorize(context.Background(), req)
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, http.StatusUnauthorized, authErr.Status)
	})
}
