// Package main is the moodline command: the worker server and an operator
// client for it.
//
//	@title			moodline API
//	@version		1.0
//	@description	Mood check-in ingestion, extraction, and query API.
//	@BasePath		/
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/thebtf/moodline/pkg/client"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	apiFlag     string
	timeoutFlag time.Duration
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "moodline",
		Short:         "Mood check-ins over SMS and WhatsApp",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	apiDefault := client.DefaultBaseURL
	if v := os.Getenv("MOODLINE_API"); v != "" {
		apiDefault = v
	}
	root.PersistentFlags().StringVarP(&apiFlag, "api", "a", apiDefault, "Worker base URL")
	root.PersistentFlags().DurationVar(&timeoutFlag, "timeout", client.DefaultTimeout, "Request timeout")

	root.AddCommand(
		newServeCmd(),
		newSendPromptCmd(),
		newTestInboundCmd(),
		newEntriesCmd(),
		newHealthCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func apiClient() *client.Client {
	return client.New(apiFlag, timeoutFlag)
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
