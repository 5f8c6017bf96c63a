package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_EmptyDSN(t *testing.T) {
	shutdown, err := Init(Config{})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	shutdown()
}

func TestStartSpan_RootSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "AnswerService.Answer", SpanAttributes{
		VideoID:   "vid1",
		Operation: "answer",
	})

	require.NotNil(t, span)
	require.NotNil(t, ctx)
	assert.NotNil(t, span.Context())

	span.SetError(errors.New("boom"))
	span.End()
}

func TestStartSpan_ChildFollowsParentContext(t *testing.T) {
	parentCtx, parent := StartSpan(context.Background(), "IndexService.Build", SpanAttributes{
		VideoID:   "vid1",
		Operation: "build",
	})
	defer parent.End()

	childCtx, child := StartSpan(parentCtx, "EmbeddingClient.GenerateEmbedding", SpanAttributes{})
	defer child.End()

	require.NotNil(t, child)
	assert.NotNil(t, childCtx)
}

func TestSpan_ZeroValueIsSafe(t *testing.T) {
	var span Span
	span.SetError(errors.New("boom"))
	span.End()
	assert.NotNil(t, span.Context())
}

func TestCaptureError_NoHubInContext(t *testing.T) {
	// Must not panic when neither the context nor the process carries an
	// initialized hub.
	CaptureError(context.Background(), errors.New("boom"))
}
