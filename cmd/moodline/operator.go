package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thebtf/moodline/pkg/client"
	"github.com/thebtf/moodline/pkg/models"
)

func newSendPromptCmd() *cobra.Command {
	var req models.SendPromptRequest

	cmd := &cobra.Command{
		Use:   "send-prompt",
		Short: "Send the check-in question",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := apiClient().SendPrompt(cmd.Context(), req)
			if resp != nil {
				if perr := printJSON(cmd.OutOrStdout(), resp); perr != nil {
					return perr
				}
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&req.PhoneNumber, "to", "t", "", "Recipient number (default: configured recipient)")
	cmd.Flags().StringVarP(&req.Channel, "channel", "c", "sms", "Channel: sms or whatsapp")
	return cmd
}

func newTestInboundCmd() *cobra.Command {
	var req models.TestInboundRequest

	cmd := &cobra.Command{
		Use:   "test-inbound",
		Short: "Simulate an inbound check-in without sending a confirmation",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := apiClient().TestInbound(cmd.Context(), req)
			if resp != nil {
				if perr := printJSON(cmd.OutOrStdout(), resp); perr != nil {
					return perr
				}
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&req.Message, "message", "m", "", "Message text (default: sample check-in)")
	cmd.Flags().StringVarP(&req.From, "from", "f", "", "Sender number (default: configured recipient)")
	cmd.Flags().StringVarP(&req.Channel, "channel", "c", "sms", "Channel: sms or whatsapp")
	return cmd
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show worker health",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := apiClient().Health(cmd.Context())
			if resp != nil {
				if perr := printJSON(cmd.OutOrStdout(), resp); perr != nil {
					return perr
				}
			}
			return err
		},
	}
}

func newEntriesCmd() *cobra.Command {
	entriesCmd := &cobra.Command{Use: "entries", Short: "Query stored check-ins"}

	var (
		q        models.EntryQuery
		from, to string
		order    string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List entries in a time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if q.From, err = parseTimeFlag("from", from); err != nil {
				return err
			}
			if q.To, err = parseTimeFlag("to", to); err != nil {
				return err
			}
			switch order {
			case "asc":
				q.Ascending = true
			case "desc":
				q.Ascending = false
			default:
				return fmt.Errorf("--order must be asc or desc")
			}
			resp, err := apiClient().ListEntries(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	listCmd.Flags().StringVar(&from, "from", "", "Inclusive lower bound (RFC3339)")
	listCmd.Flags().StringVar(&to, "to", "", "Exclusive upper bound (RFC3339)")
	listCmd.Flags().StringVar(&order, "order", "desc", "asc or desc")
	listCmd.Flags().IntVarP(&q.Limit, "limit", "n", 0, "Maximum entries (worker default 50)")

	var date string
	dailyCmd := &cobra.Command{
		Use:   "daily",
		Short: "Entries for one local day",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := apiClient().Daily(cmd.Context(), date)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	dailyCmd.Flags().StringVarP(&date, "date", "d", "", "Local date YYYY-MM-DD (default today)")

	var start string
	weeklyCmd := &cobra.Command{
		Use:   "weekly",
		Short: "Entries and per-day stats for seven local days",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := apiClient().Weekly(cmd.Context(), start)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	weeklyCmd.Flags().StringVarP(&start, "start", "s", "", "First local date YYYY-MM-DD (default six days ago)")

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := apiClient().Entry(cmd.Context(), args[0])
			var statusErr *client.StatusError
			if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
				return fmt.Errorf("entry %s not found", args[0])
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entry)
		},
	}

	entriesCmd.AddCommand(listCmd, dailyCmd, weeklyCmd, getCmd)
	return entriesCmd
}
