package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telekom/moodmail/pkg/moodctl/output"
)

func NewTemplatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage mail templates",
	}
	cmd.AddCommand(
		newTemplatesListCommand(),
		newTemplatesClearCacheCommand(),
	)
	return cmd
}

func newTemplatesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known template names",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			templates, err := apiClient.Notifications().ListTemplates(context.Background())
			if err != nil {
				return err
			}
			format := output.Format(rt.OutputFormat())
			switch format {
			case output.FormatJSON, output.FormatYAML:
				return output.WriteObject(rt.Writer(), format, templates)
			case output.FormatTable:
				output.WriteTemplateTable(rt.Writer(), templates)
				return nil
			default:
				return fmt.Errorf("unknown output format: %s", format)
			}
		},
	}
}

func newTemplatesClearCacheCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Drop the server-side template cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			if err := apiClient.Notifications().ClearTemplateCache(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(rt.Writer(), "template cache cleared")
			return nil
		},
	}
}
