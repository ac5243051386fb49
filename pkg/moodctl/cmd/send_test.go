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

func TestSendCommand(t *testing.T) {
	clearClientEnv(t)
	var received client.SendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/notifications/send", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(client.SendResponse{Success: true, MessageID: "<bob@example.com>"})
	}))
	defer server.Close()

	buf := &bytes.Buffer{}
	root := NewRootCommand(Config{OutputWriter: buf})
	root.SetArgs([]string{
		"send",
		"--server", server.URL,
		"--to", "bob@example.com",
		"--to-name", "Bob",
		"--subject", "Welcome aboard",
		"--template", "welcome",
		"--data", "recipientName=Bob",
		"--data", "groupName=weekend-hikers",
		"-o", "table",
	})

	require.NoError(t, root.Execute())

	assert.Equal(t, "bob@example.com", received.To)
	assert.Equal(t, "Bob", received.ToName)
	assert.Equal(t, "welcome", received.Template)
	assert.Equal(t, "weekend-hikers", received.Data["groupName"])

	assert.Contains(t, buf.String(), "sent welcome to bob@example.com")
	assert.Contains(t, buf.String(), "<bob@example.com>")
}

func TestSendCommand_JSONOutput(t *testing.T) {
	clearClientEnv(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(client.SendResponse{Success: true, MessageID: "<bob@example.com>"})
	}))
	defer server.Close()

	buf := &bytes.Buffer{}
	root := NewRootCommand(Config{OutputWriter: buf})
	root.SetArgs([]string{
		"send",
		"--server", server.URL,
		"--to", "bob@example.com",
		"--subject", "Welcome aboard",
		"--template", "welcome",
		"-o", "json",
	})

	require.NoError(t, root.Execute())

	var resp client.SendResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "<bob@example.com>", resp.MessageID)
}

func TestSendCommand_APIError(t *testing.T) {
	clearClientEnv(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "template not found: bogus"})
	}))
	defer server.Close()

	root := NewRootCommand(Config{OutputWriter: &bytes.Buffer{}})
	root.SetErr(&bytes.Buffer{})
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{
		"send",
		"--server", server.URL,
		"--to", "bob@example.com",
		"--subject", "Hello",
		"--template", "bogus",
	})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template not found: bogus")
}

func TestSendCommand_RequiredFlags(t *testing.T) {
	clearClientEnv(t)
	root := NewRootCommand(Config{OutputWriter: &bytes.Buffer{}})
	root.SetErr(&bytes.Buffer{})
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"send", "--server", "http://localhost:1"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}
