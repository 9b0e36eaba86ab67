package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	// No provider or no key means no model capability, not an error.
	client, err := New(ctx, "", "ignored", "ignored", zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, client)

	client, err = New(ctx, "openai", "", "gpt-4o-mini", zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, client)

	_, err = New(ctx, "grok9000", "key", "model", zap.NewNop())
	assert.Error(t, err)
}

func TestNewLogsProviderSelection(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	client, err := New(context.Background(), "openai", "sk-test", "gpt-4o-mini", zap.New(core))
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, "openai", client.Name())

	entries := logs.FilterMessage("using llm provider").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "openai", entries[0].ContextMap()["provider"])
	assert.Equal(t, "gpt-4o-mini", entries[0].ContextMap()["model"])
}
