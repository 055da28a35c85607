package pattern

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeLLM) CompleteWithSystem(ctx context.Context, system, user string) (string, error) {
	return f.Complete(ctx, user)
}

func TestSelectorSelect(t *testing.T) {
	store, root := newTestStore(t)
	writePattern(t, root, "javascript/express/routes/get-users-auth", "route body")
	writePattern(t, root, "javascript/express/queries/create", "query body")

	t.Run("valid suggestion is returned", func(t *testing.T) {
		client := &fakeLLM{response: "ANALYSIS: needs an authenticated list route\nSUGGESTED_PATTERN: javascript/express/routes/get-users-auth"}
		selector := NewSelector(client, store, zap.NewNop())

		key, ok := selector.Select(context.Background(), "list all users")

		require.True(t, ok)
		assert.Equal(t, "javascript/express/routes/get-users-auth", key)
		require.Len(t, client.prompts, 1)
		assert.Contains(t, client.prompts[0], "list all users")
		assert.Contains(t, client.prompts[0], "javascript/express/queries/create")
	})

	t.Run("hallucinated leaf falls back to a category sibling", func(t *testing.T) {
		client := &fakeLLM{response: "SUGGESTED_PATTERN: javascript/express/routes/get-users-fancy"}
		selector := NewSelector(client, store, zap.NewNop())

		key, ok := selector.Select(context.Background(), "list users")

		require.True(t, ok)
		assert.Equal(t, "javascript/express/routes/get-users-auth", key)
	})

	t.Run("NONE means no pattern", func(t *testing.T) {
		client := &fakeLLM{response: "ANALYSIS: nothing fits\nSUGGESTED_PATTERN: NONE"}
		selector := NewSelector(client, store, zap.NewNop())

		_, ok := selector.Select(context.Background(), "write a poem")
		assert.False(t, ok)
	})

	t.Run("call failure degrades to no pattern", func(t *testing.T) {
		client := &fakeLLM{err: errors.New("connection refused")}
		selector := NewSelector(client, store, zap.NewNop())

		_, ok := selector.Select(context.Background(), "list users")
		assert.False(t, ok)
	})

	t.Run("garbled output means no pattern", func(t *testing.T) {
		client := &fakeLLM{response: "I think you want a route for users."}
		selector := NewSelector(client, store, zap.NewNop())

		_, ok := selector.Select(context.Background(), "list users")
		assert.False(t, ok)
	})
}
