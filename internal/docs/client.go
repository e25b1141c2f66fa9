package docs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/docbridge/docbridge/internal/google"
)

// Client wraps the Google Docs and Drive API services, authenticated with
// a service-account key. A client is cheap to build; callers that need
// fresh credentials per attempt construct a new one each time.
type Client struct {
	docsService  *docs.Service
	driveService *drive.Service

	// httpClient carries the authenticated transport for calls that
	// bypass the generated bindings.
	httpClient *http.Client
}

// NewReadOnlyClient creates a client scoped to read-only document and
// Drive access. Use this for fetch operations so a leaked token cannot
// mutate documents.
func NewReadOnlyClient(ctx context.Context, credentialsJSON string) (*Client, error) {
	return newClient(ctx, credentialsJSON, google.ReadOnlyScopes)
}

// NewReadWriteClient creates a client scoped to full document and Drive
// access, as required by batchUpdate.
func NewReadWriteClient(ctx context.Context, credentialsJSON string) (*Client, error) {
	return newClient(ctx, credentialsJSON, google.ReadWriteScopes)
}

func newClient(ctx context.Context, credentialsJSON string, scopes []string) (*Client, error) {
	ts, err := google.TokenSourceFromServiceAccount(ctx, credentialsJSON, scopes)
	if err != nil {
		return nil, fmt.Errorf("failed to build service account token source: %w", err)
	}

	httpClient := google.NewHTTPClient(ctx, ts)

	docsService, err := docs.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs service: %w", err)
	}

	driveService, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{
		docsService:  docsService,
		driveService: driveService,
		httpClient:   httpClient,
	}, nil
}

// GetDocument retrieves a Google Doc's full structure by document ID.
// This method automatically fetches all tabs to support documents with
// multiple tabs (introduced Oct 2024).
func (c *Client) GetDocument(ctx context.Context, documentID string) (*docs.Document, error) {
	if documentID == "" {
		return nil, fmt.Errorf("documentID is required")
	}

	// IncludeTabsContent=true returns document.tabs populated for
	// multi-tab docs, or document.body for legacy docs
	doc, err := c.docsService.Documents.Get(documentID).
		IncludeTabsContent(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}

	return doc, nil
}

// BatchUpdate applies an ordered list of edit operations to a document in
// a single remote call; the service applies the batch atomically. The
// operations are forwarded byte for byte rather than through the
// generated request structs, so operation kinds this binding does not
// know about are never truncated on the way out. The response body is
// returned verbatim for the same reason.
func (c *Client) BatchUpdate(ctx context.Context, documentID string, operations []json.RawMessage) (json.RawMessage, error) {
	if documentID == "" {
		return nil, fmt.Errorf("documentID is required")
	}

	body, err := json.Marshal(struct {
		Requests []json.RawMessage `json:"requests"`
	}{Requests: operations})
	if err != nil {
		return nil, fmt.Errorf("failed to encode batch update for document %s: %w", documentID, err)
	}

	endpoint := c.docsService.BasePath + "v1/documents/" + url.PathEscape(documentID) + ":batchUpdate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build batch update request for document %s: %w", documentID, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to batch update document %s: %w", documentID, err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return nil, fmt.Errorf("failed to batch update document %s: %w", documentID, err)
	}

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch update response for document %s: %w", documentID, err)
	}

	return json.RawMessage(out), nil
}

// DocumentMetadata is the subset of Drive file metadata the metadata tool
// reports: identity, type, timestamps, size, and ownership.
type DocumentMetadata struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	MimeType     string  `json:"mimeType"`
	CreatedTime  string  `json:"createdTime"`
	ModifiedTime string  `json:"modifiedTime"`
	Size         int64   `json:"size,omitempty"`
	Owners       []Owner `json:"owners,omitempty"`
}

// Owner identifies a Drive user that owns a document.
type Owner struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

// GetFileMetadata retrieves Drive metadata for any file, including Google
// Docs documents.
func (c *Client) GetFileMetadata(ctx context.Context, fileID string) (*DocumentMetadata, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	file, err := c.driveService.Files.Get(fileID).
		Fields("id, name, mimeType, createdTime, modifiedTime, size, owners").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file metadata %s: %w", fileID, err)
	}

	metadata := &DocumentMetadata{
		ID:           file.Id,
		Name:         file.Name,
		MimeType:     file.MimeType,
		CreatedTime:  file.CreatedTime,
		ModifiedTime: file.ModifiedTime,
		Size:         file.Size,
	}

	for _, owner := range file.Owners {
		metadata.Owners = append(metadata.Owners, Owner{
			DisplayName:  owner.DisplayName,
			EmailAddress: owner.EmailAddress,
		})
	}

	return metadata, nil
}
