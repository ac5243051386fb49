package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telekom/moodmail/pkg/moodctl/client"
	"github.com/telekom/moodmail/pkg/moodctl/output"
)

func NewValidateCommand() *cobra.Command {
	var data map[string]string

	cmd := &cobra.Command{
		Use:   "validate TEMPLATE",
		Short: "Check whether a template resolves and renders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			resp, err := apiClient.Notifications().Validate(context.Background(), client.ValidateRequest{
				Template: args[0],
				Data:     data,
			})
			if err != nil {
				return err
			}

			format := output.Format(rt.OutputFormat())
			switch format {
			case output.FormatJSON, output.FormatYAML:
				if err := output.WriteObject(rt.Writer(), format, resp); err != nil {
					return err
				}
			default:
				if resp.Valid {
					_, _ = fmt.Fprintf(rt.Writer(), "template %s is valid\n", args[0])
				} else {
					_, _ = fmt.Fprintf(rt.Writer(), "template %s is not usable: %s\n", args[0], resp.Error)
				}
			}

			if !resp.Valid {
				return fmt.Errorf("template %s is not usable", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringToStringVar(&data, "data", nil, "Template variables as key=value, repeatable")

	return cmd
}
