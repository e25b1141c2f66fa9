package docs_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docbridge/docbridge/internal/instrumentation"
	"github.com/docbridge/docbridge/internal/server"
	"github.com/docbridge/docbridge/internal/tool"
	"github.com/docbridge/docbridge/internal/tools/common"
)

// RegisterDocsTools registers all Google Docs-related tools with the MCP
// server. It fails fast when the server context carries no usable
// credentials, before any tool can be invoked.
func RegisterDocsTools(s *mcpserver.MCPServer, sc *server.ServerContext, logger *slog.Logger) error {
	maxRetries, delayAfterError := sc.RetryPolicy()

	readParam := NewReadParam()
	readParam.ServiceAccountJSON = sc.CredentialsJSON()
	readParam.MaxRetries = maxRetries
	readParam.DelayAfterError = delayAfterError
	if err := readParam.Check(); err != nil {
		return fmt.Errorf("read tool configuration: %w", err)
	}

	writeParam := NewWriteParam()
	writeParam.ServiceAccountJSON = sc.CredentialsJSON()
	writeParam.MaxRetries = maxRetries
	writeParam.DelayAfterError = delayAfterError
	if err := writeParam.Check(); err != nil {
		return fmt.Errorf("write tool configuration: %w", err)
	}

	readTool := NewReadTool(readParam, logger)
	writeTool := NewWriteTool(writeParam, logger)

	// Feed the retry counter when metrics are wired
	if metrics := sc.Metrics(); metrics != nil {
		readTool.Runner().OnRetry = func(ctx context.Context) {
			metrics.RecordToolRetry(ctx, readParam.Meta.Name)
		}
		writeTool.Runner().OnRetry = func(ctx context.Context) {
			metrics.RecordToolRetry(ctx, writeParam.Meta.Name)
		}
	}

	// Read tool
	readMCPTool := mcp.NewTool(readParam.Meta.Name,
		mcp.WithDescription(readParam.Meta.Description),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description(readParam.Meta.Parameters["document_id"].Description),
		),
	)

	s.AddTool(readMCPTool, common.InstrumentedToolHandlerWithService(
		readParam.Meta.Name, instrumentation.ServiceDocs, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ctx, cancel := context.WithTimeout(ctx, tool.ExecTimeout())
			defer cancel()
			return toCallToolResult(readTool.Invoke(ctx, request.GetArguments())), nil
		},
	))

	// Write tool
	writeMCPTool := mcp.NewTool(writeParam.Meta.Name,
		mcp.WithDescription(writeParam.Meta.Description),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description(writeParam.Meta.Parameters["document_id"].Description),
		),
		mcp.WithString("operations",
			mcp.Required(),
			mcp.Description(writeParam.Meta.Parameters["operations"].Description),
		),
	)

	s.AddTool(writeMCPTool, common.InstrumentedToolHandlerWithService(
		writeParam.Meta.Name, instrumentation.ServiceDocs, instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ctx, cancel := context.WithTimeout(ctx, tool.ExecTimeout())
			defer cancel()
			return toCallToolResult(writeTool.Invoke(ctx, request.GetArguments())), nil
		},
	))

	// Metadata tool
	metadataTool := mcp.NewTool("google_docs_metadata",
		mcp.WithDescription("Get Drive metadata about a Google Doc or Drive file"),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc or Drive file"),
		),
	)

	s.AddTool(metadataTool, common.InstrumentedToolHandlerWithService(
		"google_docs_metadata", instrumentation.ServiceDrive, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetMetadata(ctx, request, sc)
		},
	))

	return nil
}

// toCallToolResult converts a tool invocation result into an MCP call
// result. Canceled invocations carry no payload; the caller only learns
// that no result will arrive.
func toCallToolResult(result tool.Result) *mcp.CallToolResult {
	switch result.Outcome {
	case tool.OutcomeSuccess:
		return mcp.NewToolResultText(result.Text)
	case tool.OutcomeCanceled:
		return mcp.NewToolResultError("invocation canceled before completion")
	default:
		return mcp.NewToolResultError(result.Text)
	}
}

func handleGetMetadata(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, ok := args["document_id"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("document_id is required"), nil
	}

	docsClient := sc.ReadClient()
	if docsClient == nil {
		return mcp.NewToolResultError("Failed to create Docs client"), nil
	}

	metadata, err := docsClient.GetFileMetadata(ctx, documentID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get metadata: %v", err)), nil
	}

	jsonBytes, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize metadata: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Document metadata:\n%s", string(jsonBytes))), nil
}
