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

func newWriteCmd() *cobra.Command {
	var (
		debug              bool
		serviceAccountFile string
		operationsFile     string
		maxRetries         int
		delayAfterError    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "write <document-id> [operations-json]",
		Short: "Apply batchUpdate operations to a Google Doc",
		Long: `Apply a JSON array of batchUpdate operations to a Google Doc and print
the API response to stdout. Operations are passed inline as the second
argument or read from a file with --operations-file.

Example operations:
  [{"insertText": {"location": {"index": 1}, "text": "Hello World"}}]`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			maxRetries, delayAfterError, err = resolveRetryPolicy(
				maxRetries, cmd.Flags().Changed("max-retries"),
				delayAfterError, cmd.Flags().Changed("delay-after-error"))
			if err != nil {
				return err
			}

			operations := ""
			switch {
			case operationsFile != "":
				data, err := os.ReadFile(operationsFile)
				if err != nil {
					return fmt.Errorf("failed to read operations file: %w", err)
				}
				operations = string(data)
			case len(args) == 2:
				operations = args[1]
			default:
				return fmt.Errorf("operations required: pass them inline or via --operations-file")
			}

			logger := logging.Setup(debug)

			credentialsJSON, err := resolveCredentials(serviceAccountFile)
			if err != nil {
				return err
			}

			param := docs_tools.NewWriteParam()
			param.ServiceAccountJSON = credentialsJSON
			param.MaxRetries = maxRetries
			param.DelayAfterError = delayAfterError
			if err := param.Check(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), tool.ExecTimeout())
			defer cancel()

			result := docs_tools.NewWriteTool(param, logger).Invoke(ctx, map[string]any{
				"document_id": args[0],
				"operations":  operations,
			})
			return printResult(result)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&serviceAccountFile, "service-account-file", "", "Path to a Google service account JSON key file. Can also use GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE env vars.")
	cmd.Flags().StringVar(&operationsFile, "operations-file", "", "Path to a file containing the JSON array of batchUpdate operations")
	cmd.Flags().IntVar(&maxRetries, "max-retries", tool.DefaultMaxRetries, "Additional attempts after the first failed Google API call. Can also use MAX_RETRIES env var.")
	cmd.Flags().DurationVar(&delayAfterError, "delay-after-error", tool.DefaultDelayAfterError, "Fixed wait between retry attempts. Can also use DELAY_AFTER_ERROR env var (seconds).")

	return cmd
}
