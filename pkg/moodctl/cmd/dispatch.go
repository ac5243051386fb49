package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/mail"
	"os"

	"github.com/spf13/cobra"

	"github.com/telekom/moodmail/pkg/dispatch"
	"github.com/telekom/moodmail/pkg/moodctl/output"
)

func NewDispatchCommand() *cobra.Command {
	var (
		file    string
		sender  string
		group   string
		rating  float64
		message string
		note    string
		to      []string
	)

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Share a mood with a notification group",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}

			var event dispatch.Event
			if file != "" {
				event, err = readEventFile(file)
				if err != nil {
					return err
				}
			} else {
				event = dispatch.Event{
					SenderName: sender,
					GroupName:  group,
					Rating:     rating,
					Message:    message,
					Note:       note,
				}
				event.Recipients, err = parseRecipients(to)
				if err != nil {
					return err
				}
			}

			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			report, err := apiClient.Notifications().Dispatch(context.Background(), event)
			if err != nil {
				return err
			}

			format := output.Format(rt.OutputFormat())
			switch format {
			case output.FormatJSON, output.FormatYAML:
				if err := output.WriteObject(rt.Writer(), format, report); err != nil {
					return err
				}
			case output.FormatTable:
				output.WriteReportTable(rt.Writer(), report)
			default:
				return fmt.Errorf("unknown output format: %s", format)
			}

			// Non-zero exit for scripting when any delivery failed
			if !report.Success {
				return fmt.Errorf("%d of %d deliveries failed", report.FailedCount, report.SentCount+report.FailedCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the mood event as JSON from a file, - for stdin")
	cmd.Flags().StringVar(&sender, "sender", "", "Display name of the person sharing the mood")
	cmd.Flags().StringVar(&group, "group", "", "Notification group name")
	cmd.Flags().Float64Var(&rating, "rating", 0, "Mood rating between 0 and 10")
	cmd.Flags().StringVar(&message, "message", "", "Mood message")
	cmd.Flags().StringVar(&note, "note", "", "Optional personal note")
	cmd.Flags().StringArrayVar(&to, "to", nil, "Recipient address, repeatable; NAME <addr> carries a display name")

	return cmd
}

func readEventFile(path string) (dispatch.Event, error) {
	var event dispatch.Event

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return event, fmt.Errorf("failed to read event file: %w", err)
	}
	if err := json.Unmarshal(data, &event); err != nil {
		return event, fmt.Errorf("failed to parse event file: %w", err)
	}
	return event, nil
}

func parseRecipients(addrs []string) ([]dispatch.Recipient, error) {
	recipients := make([]dispatch.Recipient, 0, len(addrs))
	for _, raw := range addrs {
		parsed, err := mail.ParseAddress(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid recipient %q: %w", raw, err)
		}
		recipients = append(recipients, dispatch.Recipient{Email: parsed.Address, Name: parsed.Name})
	}
	return recipients, nil
}
