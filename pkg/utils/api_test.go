package utils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDecodesAndSendsHeaders(t *testing.T) {
	var gotAuth, gotAccept, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}))
	t.Cleanup(server.Close)

	var out struct {
		Name string `json:"name"`
	}
	api := NewAPI(server.URL, "tok", time.Second)
	require.NoError(t, api.Get(context.Background(), "/x", url.Values{"a": {"1"}}, &out))

	assert.Equal(t, "ok", out.Name)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "a=1", gotQuery)
}

func TestGetWithoutToken(t *testing.T) {
	var hasAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	var out map[string]any
	require.NoError(t, NewAPI(server.URL, "", time.Second).Get(context.Background(), "/", nil, &out))
	assert.False(t, hasAuth)
}

func TestGetStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	err := NewAPI(server.URL, "", time.Second).Get(context.Background(), "/p", nil, &struct{}{})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
	assert.Equal(t, "api /p returned status 401", statusErr.Error())
	assert.ErrorIs(t, err, ErrStatus)
}

func TestGetDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	t.Cleanup(server.Close)

	err := NewAPI(server.URL, "", time.Second).Get(context.Background(), "/", nil, &struct{}{})
	assert.ErrorIs(t, err, ErrDecode)
}
