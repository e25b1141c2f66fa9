package docs_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mitchellh/mapstructure"
	docsapi "google.golang.org/api/docs/v1"

	"github.com/docbridge/docbridge/internal/docs"
	"github.com/docbridge/docbridge/internal/logging"
	"github.com/docbridge/docbridge/internal/tool"
)

// ReadComponentName is the component name used in log lines and error
// text produced by the read tool.
const ReadComponentName = "GoogleDocsRead"

// thoughtIDLimit bounds how much of a document ID appears in progress
// descriptions.
const thoughtIDLimit = 30

// DocumentGetter is the remote surface the read tool needs. Satisfied by
// *docs.Client; tests substitute fakes.
type DocumentGetter interface {
	GetDocument(ctx context.Context, documentID string) (*docsapi.Document, error)
}

// ReadInput is the per-invocation input for the read tool.
type ReadInput struct {
	DocumentID string `mapstructure:"document_id"`
}

// NewReadParam builds the parameter descriptor for the read tool.
func NewReadParam() tool.Param {
	return tool.Param{
		Meta: tool.Meta{
			Name: "google_docs_read",
			Description: `Read content from a Google Doc by document ID.
The document_id can be found in the Google Doc URL: https://docs.google.com/document/d/{document_id}/edit
Returns the full document JSON structure including body content, styles, and element indices for precise editing.`,
			Parameters: map[string]tool.ParamSpec{
				"document_id": {
					Type:        "string",
					Description: "The Google Doc document ID (extracted from the document URL)",
					Default:     "{sys.query}",
					Required:    true,
				},
			},
		},
		MaxRetries:      tool.DefaultMaxRetries,
		DelayAfterError: tool.DefaultDelayAfterError,
	}
}

// ReadInputForm returns the display schema for the read tool's inputs.
func ReadInputForm() tool.InputForm {
	return tool.InputForm{
		"document_id": {Label: "Document ID", Widget: tool.WidgetLine},
	}
}

// ReadTool reads the full JSON structure of a Google Doc.
type ReadTool struct {
	param  tool.Param
	runner *tool.Runner
	logger *slog.Logger

	// newClient builds a fresh client per attempt so credential changes
	// are picked up between retries.
	newClient func(ctx context.Context, credentialsJSON string) (DocumentGetter, error)
}

// NewReadTool creates a read tool from a validated parameter set. A nil
// logger falls back to slog.Default.
func NewReadTool(param tool.Param, logger *slog.Logger) *ReadTool {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReadTool{
		param:  param,
		runner: tool.NewRunner(param.MaxRetries, param.DelayAfterError, logger),
		logger: logging.WithTool(logger, ReadComponentName),
		newClient: func(ctx context.Context, credentialsJSON string) (DocumentGetter, error) {
			return docs.NewReadOnlyClient(ctx, credentialsJSON)
		},
	}
}

// Runner exposes the tool's retry runner for observability wiring.
func (t *ReadTool) Runner() *tool.Runner {
	return t.runner
}

// Param returns the tool's parameter descriptor.
func (t *ReadTool) Param() tool.Param {
	return t.param
}

// Invoke validates the inputs and fetches the document under the shared
// retry and cancellation contract. Input validation failures are local
// and never reach the remote API.
func (t *ReadTool) Invoke(ctx context.Context, inputs map[string]any) tool.Result {
	if ctx.Err() != nil {
		t.logger.Debug("invocation canceled before validation")
		return tool.Canceled()
	}

	var in ReadInput
	if err := mapstructure.Decode(inputs, &in); err != nil {
		return tool.Fail(fmt.Sprintf("Error: invalid inputs: %v", err), fmt.Sprintf("invalid inputs: %v", err))
	}

	documentID := strings.TrimSpace(in.DocumentID)
	if documentID == "" {
		return tool.Fail("Error: document_id is required", "document_id is required")
	}

	t.logger.Info("reading document", logging.Document(logging.TruncateID(documentID, thoughtIDLimit)))

	return t.runner.Run(ctx, ReadComponentName, func(ctx context.Context) (string, error) {
		client, err := t.newClient(ctx, t.param.ServiceAccountJSON)
		if err != nil {
			return "", err
		}

		doc, err := client.GetDocument(ctx, documentID)
		if err != nil {
			return "", err
		}

		body, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to serialize document: %w", err)
		}
		return string(body), nil
	})
}

// Thoughts describes the in-flight activity for display, truncating the
// document ID.
func (t *ReadTool) Thoughts(inputs map[string]any) string {
	docID, _ := inputs["document_id"].(string)
	if docID == "" {
		return "Reading Google Doc..."
	}
	if len(docID) > thoughtIDLimit {
		docID = docID[:thoughtIDLimit]
	}
	return fmt.Sprintf("Reading Google Doc: %s...", docID)
}
