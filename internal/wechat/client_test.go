package wechat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeToSessionSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sns/jscode2session", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-appid", q.Get("appid"))
		assert.Equal(t, "test-secret", q.Get("secret"))
		assert.Equal(t, "code-123", q.Get("js_code"))
		assert.Equal(t, "authorization_code", q.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"openid":"o_abc123","session_key":"sk_456"}`))
	}))
	defer srv.Close()

	client := NewClient("test-appid", "test-secret", srv.URL)
	result, err := client.CodeToSession(context.Background(), "code-123")
	require.NoError(t, err)
	assert.Equal(t, "o_abc123", result.OpenID)
	assert.Equal(t, "sk_456", result.SessionKey)
	assert.Zero(t, result.ErrCode)
}

func TestCodeToSessionProviderRejection(t *testing.T) {
	// The provider reports rejections with HTTP 200 and an errcode body.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errcode":40029,"errmsg":"invalid code"}`))
	}))
	defer srv.Close()

	client := NewClient("test-appid", "test-secret", srv.URL)
	result, err := client.CodeToSession(context.Background(), "bad-code")
	require.NoError(t, err)
	assert.Equal(t, 40029, result.ErrCode)
	assert.Equal(t, "invalid code", result.ErrMsg)
	assert.Empty(t, result.OpenID)
}

func TestCodeToSessionTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient("test-appid", "test-secret", srv.URL)
	_, err := client.CodeToSession(context.Background(), "code")
	assert.Error(t, err)
}
