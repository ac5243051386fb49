package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type Config struct {
	OutputWriter io.Writer
}

type runtimeState struct {
	serverOverride  string
	timeoutOverride string
	caFile          string
	insecure        bool
	outputFormat    string
	verbose         bool
	writer          io.Writer
}

type runtimeKey struct{}

func DefaultConfig() Config {
	return Config{OutputWriter: os.Stdout}
}

func NewRootCommand(cfg Config) *cobra.Command {
	rt := &runtimeState{writer: cfg.OutputWriter}

	root := &cobra.Command{
		Use:   "moodctl",
		Short: "Moodmail CLI",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if rt.writer == nil {
				rt.writer = os.Stdout
			}
			if rt.serverOverride == "" {
				rt.serverOverride = os.Getenv("MOODCTL_SERVER")
			}
			if rt.timeoutOverride == "" {
				rt.timeoutOverride = os.Getenv("MOODCTL_TIMEOUT")
			}
			if rt.caFile == "" {
				rt.caFile = os.Getenv("MOODCTL_CA_FILE")
			}
			if !rt.insecure {
				rt.insecure = strings.EqualFold(os.Getenv("MOODCTL_INSECURE"), "true")
			}
			if rt.outputFormat == "" {
				rt.outputFormat = os.Getenv("MOODCTL_OUTPUT")
			}
			if !rt.verbose {
				rt.verbose = strings.EqualFold(os.Getenv("MOODCTL_VERBOSE"), "true")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&rt.serverOverride, "server", "", "Moodmail API server URL")
	root.PersistentFlags().StringVar(&rt.timeoutOverride, "timeout", "", "Request timeout, e.g. 10s")
	root.PersistentFlags().StringVar(&rt.caFile, "ca-file", "", "CA certificate bundle for the server")
	root.PersistentFlags().BoolVar(&rt.insecure, "insecure", false, "Skip TLS certificate verification")
	root.PersistentFlags().StringVarP(&rt.outputFormat, "output", "o", "", "Output format: table, json, yaml")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Enable verbose request logging")

	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		NewDispatchCommand(),
		NewSendCommand(),
		NewValidateCommand(),
		NewTemplatesCommand(),
		NewCompletionCommand(),
		NewVersionCommand(),
	)

	return root
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}

func (rt *runtimeState) OutputFormat() string {
	if rt.outputFormat != "" {
		return rt.outputFormat
	}
	return "table"
}

func (rt *runtimeState) Writer() io.Writer {
	if rt.writer != nil {
		return rt.writer
	}
	return os.Stdout
}
