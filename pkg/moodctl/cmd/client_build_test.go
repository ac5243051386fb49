package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildClientWithOverrides(t *testing.T) {
	rt := &runtimeState{
		serverOverride:  "https://example.com",
		timeoutOverride: "2s",
	}

	client, err := buildClient(rt)
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestBuildClientRequiresServer(t *testing.T) {
	_, err := buildClient(&runtimeState{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "MOODCTL_SERVER")
}

func TestBuildClientInvalidTimeout(t *testing.T) {
	rt := &runtimeState{
		serverOverride:  "https://example.com",
		timeoutOverride: "soon",
	}

	_, err := buildClient(rt)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid timeout")
}

func TestBuildClientMissingCAFile(t *testing.T) {
	rt := &runtimeState{
		serverOverride: "https://example.com",
		caFile:         "/nonexistent/ca.pem",
	}

	_, err := buildClient(rt)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read CA file")
}
