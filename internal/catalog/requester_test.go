package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/offer-catalog/internal/catalog"
	"github.com/donaldgifford/offer-catalog/internal/catalog/mocks"
)

func TestHTTPRequester_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantErr    bool
		errContain string
		check      func(t *testing.T, n catalog.Node)
	}{
		{
			name: "decodes JSON array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/offers/find", r.URL.Path)
				assert.Equal(t, "40.5", r.URL.Query().Get("latitude"))
				assert.Equal(t, "true", r.URL.Query().Get("sensor"))
				assert.Equal(t, "application/json", r.Header.Get("Accept"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`[{"id": 1}, {"id": 2}]`))
			},
			check: func(t *testing.T, n catalog.Node) {
				t.Helper()
				assert.Len(t, n.Array(), 2)
			},
		},
		{
			name: "empty body yields empty node",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			check: func(t *testing.T, n catalog.Node) {
				t.Helper()
				assert.False(t, n.Exists())
			},
		},
		{
			name: "404 with plain body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte("not found"))
			},
			wantErr:    true,
			errContain: "API error (HTTP 404): not found",
		},
		{
			name: "403 with error code body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"code":"CODE_LIMIT","message":"limit reached"}`))
			},
			wantErr:    true,
			errContain: "API error (HTTP 403, CODE_LIMIT): limit reached",
		},
		{
			name: "invalid JSON",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
			wantErr:    true,
			errContain: "decoding JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			r := catalog.NewHTTPRequester()
			n, err := r.Get(context.Background(), srv.URL+"/offers/find", catalog.Params{
				"latitude": 40.5,
				"sensor":   "true",
			})

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}
			require.NoError(t, err)
			tt.check(t, n)
		})
	}
}

func TestHTTPRequester_Headers(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "app-key", r.Header.Get("API-Token"))
		assert.Equal(t, "user-tok", r.Header.Get("User-Token"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ts := mocks.NewMockTokenSource(t)
	ts.On("UserToken").Return("user-tok", true)

	r := catalog.NewHTTPRequester(
		catalog.WithRequestAPIKey("app-key"),
		catalog.WithUserTokens(ts),
	)
	_, err := r.Get(context.Background(), srv.URL+"/categories", nil)
	require.NoError(t, err)
}

func TestHTTPRequester_NoUserTokenHeaderWhenUnknown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("User-Token"))
		assert.Empty(t, r.Header.Get("API-Token"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ts := mocks.NewMockTokenSource(t)
	ts.On("UserToken").Return("", false)

	r := catalog.NewHTTPRequester(catalog.WithUserTokens(ts))
	_, err := r.Get(context.Background(), srv.URL+"/categories", nil)
	require.NoError(t, err)
}

func TestHTTPRequester_ExistingQueryString(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("v"))
		assert.Equal(t, "x", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	r := catalog.NewHTTPRequester()
	_, err := r.Get(context.Background(), srv.URL+"/search?v=1", catalog.Params{"q": "x"})
	require.NoError(t, err)
}

func TestHTTPRequester_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"id":1}]`))
	}))
	defer srv.Close()

	r := catalog.NewHTTPRequester(catalog.WithRetry(3, time.Millisecond))
	n, err := r.Get(context.Background(), srv.URL+"/offers/find", nil)
	require.NoError(t, err)
	assert.Len(t, n.Array(), 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPRequester_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	r := catalog.NewHTTPRequester(catalog.WithRetry(3, time.Millisecond))
	_, err := r.Get(context.Background(), srv.URL+"/offers/find", nil)

	var apiErr *catalog.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPRequester_GivesUpAfterAttempts(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	r := catalog.NewHTTPRequester(catalog.WithRetry(2, time.Millisecond))
	_, err := r.Get(context.Background(), srv.URL+"/offers/find", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPRequester_ConnectionRefused(t *testing.T) {
	t.Parallel()

	r := catalog.NewHTTPRequester()
	_, err := r.Get(context.Background(), "http://127.0.0.1:1/offers/find", nil) // nothing listening
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending request")
}

func TestHTTPRequester_RateLimitCanceledContext(t *testing.T) {
	t.Parallel()

	r := catalog.NewHTTPRequester(catalog.WithRateLimit(0.001, 1))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	// First call consumes the single burst token.
	_, err := r.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = r.Get(ctx, srv.URL, nil)
	require.Error(t, err)
}
