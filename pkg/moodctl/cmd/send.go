package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telekom/moodmail/pkg/moodctl/client"
	"github.com/telekom/moodmail/pkg/moodctl/output"
)

func NewSendCommand() *cobra.Command {
	var (
		to       string
		toName   string
		subject  string
		template string
		data     map[string]string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a single templated mail",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			resp, err := apiClient.Notifications().Send(context.Background(), client.SendRequest{
				To:       to,
				ToName:   toName,
				Subject:  subject,
				Template: template,
				Data:     data,
			})
			if err != nil {
				return err
			}

			format := output.Format(rt.OutputFormat())
			switch format {
			case output.FormatJSON, output.FormatYAML:
				return output.WriteObject(rt.Writer(), format, resp)
			default:
				_, _ = fmt.Fprintf(rt.Writer(), "sent %s to %s (message id %s)\n", template, to, resp.MessageID)
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipient mail address")
	cmd.Flags().StringVar(&toName, "to-name", "", "Recipient display name")
	cmd.Flags().StringVar(&subject, "subject", "", "Mail subject")
	cmd.Flags().StringVar(&template, "template", "", "Template name")
	cmd.Flags().StringToStringVar(&data, "data", nil, "Template variables as key=value, repeatable")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}
