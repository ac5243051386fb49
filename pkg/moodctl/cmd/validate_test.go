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

func validateServer(t *testing.T, statusCode int, resp client.ValidateResponse) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/notifications/validate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestValidateCommand_Valid(t *testing.T) {
	clearClientEnv(t)
	server := validateServer(t, http.StatusOK, client.ValidateResponse{Valid: true})
	defer server.Close()

	buf := &bytes.Buffer{}
	root := NewRootCommand(Config{OutputWriter: buf})
	root.SetArgs([]string{
		"validate", "welcome",
		"--server", server.URL,
		"--data", "recipientName=Bob",
		"-o", "table",
	})

	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "template welcome is valid")
}

func TestValidateCommand_InvalidExitsNonZero(t *testing.T) {
	clearClientEnv(t)
	server := validateServer(t, http.StatusNotFound, client.ValidateResponse{
		Valid: false,
		Error: "template not found",
	})
	defer server.Close()

	buf := &bytes.Buffer{}
	root := NewRootCommand(Config{OutputWriter: buf})
	root.SetErr(&bytes.Buffer{})
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{
		"validate", "bogus",
		"--server", server.URL,
		"-o", "table",
	})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template bogus is not usable")
	assert.Contains(t, buf.String(), "template not found")
}

func TestValidateCommand_JSONOutput(t *testing.T) {
	clearClientEnv(t)
	server := validateServer(t, http.StatusOK, client.ValidateResponse{Valid: true})
	defer server.Close()

	buf := &bytes.Buffer{}
	root := NewRootCommand(Config{OutputWriter: buf})
	root.SetArgs([]string{
		"validate", "welcome",
		"--server", server.URL,
		"-o", "json",
	})

	require.NoError(t, root.Execute())

	var resp client.ValidateResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.True(t, resp.Valid)
}

func TestValidateCommand_RequiresTemplateArg(t *testing.T) {
	clearClientEnv(t)
	root := NewRootCommand(Config{OutputWriter: &bytes.Buffer{}})
	root.SetErr(&bytes.Buffer{})
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"validate", "--server", "http://localhost:1"})

	err := root.Execute()
	require.Error(t, err)
}
