package docs_tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/docbridge/docbridge/internal/docs"
	"github.com/docbridge/docbridge/internal/logging"
	"github.com/docbridge/docbridge/internal/tool"
)

// WriteComponentName is the component name used in log lines and error
// text produced by the write tool.
const WriteComponentName = "GoogleDocsWrite"

// BatchUpdater is the remote surface the write tool needs. Satisfied by
// *docs.Client; tests substitute fakes. Operations travel as raw JSON so
// this layer never reshapes them.
type BatchUpdater interface {
	BatchUpdate(ctx context.Context, documentID string, operations []json.RawMessage) (json.RawMessage, error)
}

// WriteInput is the per-invocation input for the write tool.
type WriteInput struct {
	DocumentID string `mapstructure:"document_id"`
	Operations string `mapstructure:"operations"`
}

// NewWriteParam builds the parameter descriptor for the write tool.
func NewWriteParam() tool.Param {
	return tool.Param{
		Meta: tool.Meta{
			Name: "google_docs_write",
			Description: `Write/update content in a Google Doc by document ID using batchUpdate operations.
The document_id can be found in the Google Doc URL: https://docs.google.com/document/d/{document_id}/edit
The operations parameter accepts a JSON array of Google Docs API requests such as insertText, deleteContentRange, replaceAllText, etc.
Example operations:
[
    {"deleteContentRange": {"range": {"startIndex": 1, "endIndex": 10}}},
    {"insertText": {"location": {"index": 1}, "text": "Hello World"}}
]
Returns the response from the batchUpdate API call.`,
			Parameters: map[string]tool.ParamSpec{
				"document_id": {
					Type:        "string",
					Description: "The Google Doc document ID (extracted from the document URL)",
					Required:    true,
				},
				"operations": {
					Type:        "string",
					Description: "JSON array of Google Docs API batchUpdate requests",
					Required:    true,
				},
			},
		},
		MaxRetries:      tool.DefaultMaxRetries,
		DelayAfterError: tool.DefaultDelayAfterError,
	}
}

// WriteInputForm returns the display schema for the write tool's inputs.
func WriteInputForm() tool.InputForm {
	return tool.InputForm{
		"document_id": {Label: "Document ID", Widget: tool.WidgetLine},
		"operations":  {Label: "Operations (JSON)", Widget: tool.WidgetParagraph},
	}
}

// WriteTool applies a batch of edit operations to a Google Doc.
type WriteTool struct {
	param  tool.Param
	runner *tool.Runner
	logger *slog.Logger

	// newClient builds a fresh client per attempt so credential changes
	// are picked up between retries.
	newClient func(ctx context.Context, credentialsJSON string) (BatchUpdater, error)
}

// NewWriteTool creates a write tool from a validated parameter set. A nil
// logger falls back to slog.Default.
func NewWriteTool(param tool.Param, logger *slog.Logger) *WriteTool {
	if logger == nil {
		logger = slog.Default()
	}
	return &WriteTool{
		param:  param,
		runner: tool.NewRunner(param.MaxRetries, param.DelayAfterError, logger),
		logger: logging.WithTool(logger, WriteComponentName),
		newClient: func(ctx context.Context, credentialsJSON string) (BatchUpdater, error) {
			return docs.NewReadWriteClient(ctx, credentialsJSON)
		},
	}
}

// Runner exposes the tool's retry runner for observability wiring.
func (t *WriteTool) Runner() *tool.Runner {
	return t.runner
}

// Param returns the tool's parameter descriptor.
func (t *WriteTool) Param() tool.Param {
	return t.param
}

// Invoke validates the inputs, parses the operations payload, and applies
// the batch under the shared retry and cancellation contract. Validation
// and parse failures are local and never reach the remote API.
func (t *WriteTool) Invoke(ctx context.Context, inputs map[string]any) tool.Result {
	if ctx.Err() != nil {
		t.logger.Debug("invocation canceled before validation")
		return tool.Canceled()
	}

	var in WriteInput
	if err := mapstructure.Decode(inputs, &in); err != nil {
		return tool.Fail(fmt.Sprintf("Error: invalid inputs: %v", err), fmt.Sprintf("invalid inputs: %v", err))
	}

	documentID := strings.TrimSpace(in.DocumentID)
	if documentID == "" {
		return tool.Fail("Error: document_id is required", "document_id is required")
	}

	operations := strings.TrimSpace(in.Operations)
	if operations == "" {
		return tool.Fail("Error: operations is required", "operations is required")
	}

	requests, err := docs.ParseRequests(operations)
	if err != nil {
		if errors.Is(err, docs.ErrNotArray) {
			return tool.Fail("Error: operations must be a JSON array", "operations must be a JSON array")
		}
		cause := errors.Unwrap(err)
		if cause == nil {
			cause = err
		}
		msg := fmt.Sprintf("Invalid JSON in operations: %v", cause)
		return tool.Fail("Error: "+msg, msg)
	}

	t.logger.Info("applying batch update",
		logging.Document(logging.TruncateID(documentID, thoughtIDLimit)),
		slog.Int("operations", len(requests)))

	return t.runner.Run(ctx, WriteComponentName, func(ctx context.Context) (string, error) {
		client, err := t.newClient(ctx, t.param.ServiceAccountJSON)
		if err != nil {
			return "", err
		}

		resp, err := client.BatchUpdate(ctx, documentID, requests)
		if err != nil {
			return "", err
		}

		var body bytes.Buffer
		if err := json.Indent(&body, resp, "", "  "); err != nil {
			return "", fmt.Errorf("failed to serialize response: %w", err)
		}
		return body.String(), nil
	})
}

// Thoughts describes the in-flight activity for display, truncating the
// document ID.
func (t *WriteTool) Thoughts(inputs map[string]any) string {
	docID, _ := inputs["document_id"].(string)
	if docID == "" {
		return "Writing to Google Doc..."
	}
	if len(docID) > thoughtIDLimit {
		docID = docID[:thoughtIDLimit]
	}
	return fmt.Sprintf("Writing to Google Doc: %s...", docID)
}
