package client

import (
	"context"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func certToPEM(t *testing.T, der []byte) []byte {
	t.Helper()
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{
			name:    "missing server",
			opts:    []Option{},
			wantErr: true,
		},
		{
			name: "valid config",
			opts: []Option{
				WithServer("https://example.com"),
			},
			wantErr: false,
		},
		{
			name: "with custom user agent",
			opts: []Option{
				WithServer("https://example.com"),
				WithUserAgent("test-agent"),
			},
			wantErr: false,
		},
		{
			name: "with timeout",
			opts: []Option{
				WithServer("https://example.com"),
				WithTimeout(5 * time.Second),
			},
			wantErr: false,
		},
		{
			name: "non-positive timeout",
			opts: []Option{
				WithServer("https://example.com"),
				WithTimeout(0),
			},
			wantErr: true,
		},
		{
			name: "missing CA file",
			opts: []Option{
				WithServer("https://example.com"),
				WithTLSConfig("/nonexistent/ca.pem", false),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, client)
			} else {
				require.NoError(t, err)
				require.NotNil(t, client)
			}
		})
	}
}

func TestClientDo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := r.Header.Get("User-Agent")
		require.Equal(t, "test-agent", ua)

		accept := r.Header.Get("Accept")
		require.Equal(t, "application/json", accept)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client, err := New(
		WithServer(server.URL),
		WithUserAgent("test-agent"),
	)
	require.NoError(t, err)

	var result map[string]string
	err = client.do(context.Background(), http.MethodGet, "/test", nil, &result)
	require.NoError(t, err)
	require.Equal(t, "ok", result["status"])
}

func TestClientDoError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "template not found: bogus"})
	}))
	defer server.Close()

	client, err := New(WithServer(server.URL))
	require.NoError(t, err)

	err = client.do(context.Background(), http.MethodGet, "/missing", nil, nil)
	require.Error(t, err)

	httpErr, ok := err.(*HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	require.Contains(t, httpErr.Message, "template not found")
}

func TestClientDoError_NonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	client, err := New(WithServer(server.URL))
	require.NoError(t, err)

	err = client.do(context.Background(), http.MethodGet, "/anything", nil, nil)
	require.Error(t, err)

	httpErr, ok := err.(*HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Equal(t, "upstream unavailable", httpErr.Message)
}

func TestClientVerboseLogging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var lines []string
	client, err := New(
		WithServer(server.URL),
		WithVerbose(func(format string, args ...any) {
			lines = append(lines, format)
		}),
	)
	require.NoError(t, err)

	require.NoError(t, client.do(context.Background(), http.MethodGet, "/traced", nil, nil))
	assert.Len(t, lines, 2, "one line before the request, one after")
}

func TestWithTLSConfig_ValidCA(t *testing.T) {
	// Self-signed cert from httptest's TLS server works as a CA for itself
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	certPEM := certToPEM(t, server.Certificate().Raw)
	caFile := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(caFile, certPEM, 0o600))

	client, err := New(
		WithServer(server.URL),
		WithTimeout(10*time.Second),
		WithTLSConfig(caFile, false),
	)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, client.http.Timeout, "TLS option leaves the timeout alone")

	require.NoError(t, client.do(context.Background(), http.MethodGet, "/secure", nil, nil))
}

func TestWithTLSConfig_BadCAContent(t *testing.T) {
	caFile := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(caFile, []byte("not a certificate"), 0o600))

	_, err := New(
		WithServer("https://example.com"),
		WithTLSConfig(caFile, false),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse CA file")
}

func TestHTTPError(t *testing.T) {
	err := &HTTPError{
		StatusCode: http.StatusServiceUnavailable,
		Message:    "service unavailable: template backing store",
	}
	require.Equal(t, "request failed (503): service unavailable: template backing store", err.Error())
}
