package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telekom/moodmail/pkg/moodctl/client"
)

func TestTemplatesListCommand(t *testing.T) {
	clearClientEnv(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/notifications/templates", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(client.TemplateListResponse{
			Templates: []string{"moodShared", "reminder", "welcome"},
		})
	}))
	defer server.Close()

	buf := &bytes.Buffer{}
	root := NewRootCommand(Config{OutputWriter: buf})
	root.SetArgs([]string{"templates", "list", "--server", server.URL, "-o", "table"})

	require.NoError(t, root.Execute())

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "moodShared")
	assert.Contains(t, out, "welcome")
}

func TestTemplatesListCommand_JSONOutput(t *testing.T) {
	clearClientEnv(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(client.TemplateListResponse{Templates: []string{"moodShared"}})
	}))
	defer server.Close()

	buf := &bytes.Buffer{}
	root := NewRootCommand(Config{OutputWriter: buf})
	root.SetArgs([]string{"templates", "list", "--server", server.URL, "-o", "json"})

	require.NoError(t, root.Execute())

	var templates []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &templates))
	assert.Equal(t, []string{"moodShared"}, templates)
}

func TestTemplatesClearCacheCommand(t *testing.T) {
	clearClientEnv(t)
	var called bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/notifications/templates/cache", r.URL.Path)
		require.Equal(t, http.MethodDelete, r.Method)
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	buf := &bytes.Buffer{}
	root := NewRootCommand(Config{OutputWriter: buf})
	root.SetArgs([]string{"templates", "clear-cache", "--server", server.URL})

	require.NoError(t, root.Execute())
	assert.True(t, called)
	assert.Contains(t, buf.String(), "template cache cleared")
}

func TestTemplatesCommand_HasSubcommands(t *testing.T) {
	cmd := NewTemplatesCommand()
	require.NotNil(t, cmd)
	assert.Len(t, cmd.Commands(), 2)
}
