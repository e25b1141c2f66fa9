package docs_tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	docsapi "google.golang.org/api/docs/v1"

	"github.com/docbridge/docbridge/internal/tool"
)

type fakeDocumentGetter struct {
	attempts int
	failures int
	err      error
	doc      *docsapi.Document
}

func (f *fakeDocumentGetter) GetDocument(ctx context.Context, documentID string) (*docsapi.Document, error) {
	f.attempts++
	if f.attempts <= f.failures {
		return nil, f.err
	}
	return f.doc, nil
}

func newTestReadTool(t *testing.T, getter *fakeDocumentGetter, maxRetries int) *ReadTool {
	t.Helper()

	param := NewReadParam()
	param.ServiceAccountJSON = `{"type":"service_account"}`
	param.MaxRetries = maxRetries
	param.DelayAfterError = 0
	require.NoError(t, param.Check())

	rt := NewReadTool(param, nil)
	rt.newClient = func(ctx context.Context, credentialsJSON string) (DocumentGetter, error) {
		return getter, nil
	}
	return rt
}

func TestReadTool_MissingDocumentID(t *testing.T) {
	getter := &fakeDocumentGetter{}
	rt := newTestReadTool(t, getter, 2)

	for _, inputs := range []map[string]any{
		{},
		{"document_id": ""},
		{"document_id": "   "},
	} {
		result := rt.Invoke(context.Background(), inputs)

		assert.Equal(t, tool.OutcomeError, result.Outcome)
		assert.Equal(t, "Error: document_id is required", result.Text)
		assert.Equal(t, map[string]any{
			tool.OutputSuccess: false,
			tool.OutputError:   "document_id is required",
		}, result.Outputs())
	}

	assert.Zero(t, getter.attempts, "no remote call may happen on validation failure")
}

func TestReadTool_Success(t *testing.T) {
	doc := &docsapi.Document{
		DocumentId: "doc123",
		Title:      "Quarterly Report",
	}
	getter := &fakeDocumentGetter{doc: doc}
	rt := newTestReadTool(t, getter, 2)

	result := rt.Invoke(context.Background(), map[string]any{"document_id": "doc123"})

	require.Equal(t, tool.OutcomeSuccess, result.Outcome)
	assert.Equal(t, 1, getter.attempts)

	expected, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, string(expected), result.Text)
	assert.Equal(t, map[string]any{tool.OutputSuccess: true}, result.Outputs())
}

func TestReadTool_SuccessAfterRetries(t *testing.T) {
	doc := &docsapi.Document{DocumentId: "doc123"}
	getter := &fakeDocumentGetter{
		doc:      doc,
		failures: 2,
		err:      errors.New("backend unavailable"),
	}
	rt := newTestReadTool(t, getter, 2)

	result := rt.Invoke(context.Background(), map[string]any{"document_id": "doc123"})

	assert.Equal(t, tool.OutcomeSuccess, result.Outcome)
	assert.Equal(t, 3, getter.attempts)
}

func TestReadTool_AllAttemptsFail(t *testing.T) {
	getter := &fakeDocumentGetter{
		failures: 10,
		err:      errors.New("quota exceeded"),
	}
	rt := newTestReadTool(t, getter, 2)

	result := rt.Invoke(context.Background(), map[string]any{"document_id": "doc123"})

	assert.Equal(t, tool.OutcomeError, result.Outcome)
	assert.Equal(t, 3, getter.attempts, "max_retries=2 means exactly 3 attempts")
	assert.Equal(t, "GoogleDocsRead error: quota exceeded", result.Text)
	assert.Equal(t, "quota exceeded", result.ErrMsg)
}

func TestReadTool_ClientConstructionFailureIsRetried(t *testing.T) {
	calls := 0
	param := NewReadParam()
	param.ServiceAccountJSON = `{"type":"service_account"}`
	param.MaxRetries = 1
	param.DelayAfterError = 0

	rt := NewReadTool(param, nil)
	rt.newClient = func(ctx context.Context, credentialsJSON string) (DocumentGetter, error) {
		calls++
		return nil, errors.New("failed to parse service account credentials")
	}

	result := rt.Invoke(context.Background(), map[string]any{"document_id": "doc123"})

	assert.Equal(t, tool.OutcomeError, result.Outcome)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "GoogleDocsRead error: failed to parse service account credentials", result.Text)
}

func TestReadTool_CanceledBeforeAttempt(t *testing.T) {
	getter := &fakeDocumentGetter{}
	rt := newTestReadTool(t, getter, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := rt.Invoke(ctx, map[string]any{"document_id": "doc123"})

	assert.Equal(t, tool.OutcomeCanceled, result.Outcome)
	assert.Zero(t, getter.attempts, "no remote call may happen after cancellation")
	assert.Nil(t, result.Outputs())
	assert.Empty(t, result.Text)
}

func TestReadTool_FreshClientPerAttempt(t *testing.T) {
	clients := 0
	param := NewReadParam()
	param.ServiceAccountJSON = `{"type":"service_account"}`
	param.MaxRetries = 2
	param.DelayAfterError = 0

	getter := &fakeDocumentGetter{
		failures: 2,
		err:      errors.New("backend unavailable"),
		doc:      &docsapi.Document{DocumentId: "doc123"},
	}

	rt := NewReadTool(param, nil)
	rt.newClient = func(ctx context.Context, credentialsJSON string) (DocumentGetter, error) {
		clients++
		return getter, nil
	}

	result := rt.Invoke(context.Background(), map[string]any{"document_id": "doc123"})

	assert.Equal(t, tool.OutcomeSuccess, result.Outcome)
	assert.Equal(t, 3, clients, "each attempt builds its own client")
}

func TestReadTool_Thoughts(t *testing.T) {
	rt := newTestReadTool(t, &fakeDocumentGetter{}, 0)

	longID := "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"
	assert.Equal(t, "Reading Google Doc: "+longID[:30]+"...",
		rt.Thoughts(map[string]any{"document_id": longID}))
	assert.Equal(t, "Reading Google Doc: short...",
		rt.Thoughts(map[string]any{"document_id": "short"}))
	assert.Equal(t, "Reading Google Doc...",
		rt.Thoughts(map[string]any{}))
}
