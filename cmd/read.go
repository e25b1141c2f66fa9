package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/docbridge/docbridge/internal/logging"
	"github.com/docbridge/docbridge/internal/tool"
	"github.com/docbridge/docbridge/internal/tools/docs_tools"
)

func newReadCmd() *cobra.Command {
	var (
		debug              bool
		serviceAccountFile string
		maxRetries         int
		delayAfterError    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "read <document-id>",
		Short: "Read a Google Doc and print its JSON structure",
		Long: `Read the full JSON structure of a Google Doc by document ID and print it
to stdout. The document ID is the long token in the document URL:
https://docs.google.com/document/d/{document_id}/edit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			maxRetries, delayAfterError, err = resolveRetryPolicy(
				maxRetries, cmd.Flags().Changed("max-retries"),
				delayAfterError, cmd.Flags().Changed("delay-after-error"))
			if err != nil {
				return err
			}

			logger := logging.Setup(debug)

			credentialsJSON, err := resolveCredentials(serviceAccountFile)
			if err != nil {
				return err
			}

			param := docs_tools.NewReadParam()
			param.ServiceAccountJSON = credentialsJSON
			param.MaxRetries = maxRetries
			param.DelayAfterError = delayAfterError
			if err := param.Check(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), tool.ExecTimeout())
			defer cancel()

			result := docs_tools.NewReadTool(param, logger).Invoke(ctx, map[string]any{
				"document_id": args[0],
			})
			return printResult(result)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&serviceAccountFile, "service-account-file", "", "Path to a Google service account JSON key file. Can also use GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE env vars.")
	cmd.Flags().IntVar(&maxRetries, "max-retries", tool.DefaultMaxRetries, "Additional attempts after the first failed Google API call. Can also use MAX_RETRIES env var.")
	cmd.Flags().DurationVar(&delayAfterError, "delay-after-error", tool.DefaultDelayAfterError, "Fixed wait between retry attempts. Can also use DELAY_AFTER_ERROR env var (seconds).")

	return cmd
}

// printResult writes the invocation text to stdout and maps the outcome
// onto the process exit status.
func printResult(result tool.Result) error {
	switch result.Outcome {
	case tool.OutcomeSuccess:
		fmt.Println(result.Text)
		return nil
	case tool.OutcomeCanceled:
		return fmt.Errorf("invocation canceled before completion")
	default:
		fmt.Fprintln(os.Stderr, result.Text)
		return fmt.Errorf("%s", result.ErrMsg)
	}
}
