package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/telekom/moodmail/pkg/moodctl/client"
)

func buildClient(rt *runtimeState) (*client.Client, error) {
	if rt.serverOverride == "" {
		return nil, errors.New("server is required; set --server or MOODCTL_SERVER")
	}
	options := []client.Option{
		client.WithServer(rt.serverOverride),
		client.WithUserAgent("moodctl"),
	}
	if rt.timeoutOverride != "" {
		timeout, err := time.ParseDuration(rt.timeoutOverride)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", rt.timeoutOverride, err)
		}
		options = append(options, client.WithTimeout(timeout))
	}
	options = append(options, client.WithTLSConfig(rt.caFile, rt.insecure))
	// Verbose logging goes to stderr to avoid corrupting JSON output
	if rt.verbose {
		options = append(options, client.WithVerbose(func(format string, args ...any) {
			_, _ = fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
		}))
	}
	return client.New(options...)
}
