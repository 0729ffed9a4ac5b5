package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBroker struct {
	published [][]byte
	err       error
}

func (f *fakeBroker) Publish(_ context.Context, body []byte, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, body)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisher_Emit(t *testing.T) {
	broker := &fakeBroker{}
	p := NewPublisher(broker, discardLogger())

	p.Emit(context.Background(), TypePostCreated, "user-1", "post-1", "")
	p.Emit(context.Background(), TypeSkillSaved, "user-1", "post-1", "skill-1")

	require.Len(t, broker.published, 2)

	var first Event
	require.NoError(t, json.Unmarshal(broker.published[0], &first))
	assert.Equal(t, TypePostCreated, first.Type)
	assert.Equal(t, "user-1", first.UserID)
	assert.Equal(t, "post-1", first.PostID)
	assert.Empty(t, first.SkillID)
	assert.False(t, first.OccurredAt.IsZero())

	var second Event
	require.NoError(t, json.Unmarshal(broker.published[1], &second))
	assert.Equal(t, "skill-1", second.SkillID)
}

func TestPublisher_EmitBrokerFailure(t *testing.T) {
	broker := &fakeBroker{err: errors.New("broker down")}
	p := NewPublisher(broker, discardLogger())

	// Must not panic or propagate; publishing is best-effort.
	p.Emit(context.Background(), TypePostDeleted, "user-1", "post-1", "")
	assert.Empty(t, broker.published)
}

func TestPublisher_NilSafe(t *testing.T) {
	var p *Publisher
	p.Emit(context.Background(), TypePostCreated, "user-1", "post-1", "")

	p = NewPublisher(nil, discardLogger())
	p.Emit(context.Background(), TypePostCreated, "user-1", "post-1", "")
}
