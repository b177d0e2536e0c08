package contextutil_test

import (
	"context"
	"testing"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestExtractMetadata(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "REQ-1")
	ctx = contextutil.WithActor(ctx, "actor-1", "supervisor")

	meta := contextutil.ExtractMetadata(ctx)

	assert.Equal(t, "REQ-1", meta.RequestID)
	assert.Equal(t, "actor-1", meta.ActorID)
	assert.Equal(t, "supervisor", meta.ActorRole)
}

func TestGetLogger_Fallbacks(t *testing.T) {
	t.Run("from context", func(t *testing.T) {
		l := zap.NewExample()
		ctx := contextutil.WithLogger(context.Background(), l)
		assert.Same(t, l, contextutil.GetLogger(ctx, nil))
	})

	t.Run("default", func(t *testing.T) {
		l := zap.NewExample()
		assert.Same(t, l, contextutil.GetLogger(context.Background(), l))
	})

	t.Run("never nil", func(t *testing.T) {
		assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))
	})
}
