// ABOUTME: Tests for state bootstrap and the in-memory store
// ABOUTME: Covers fresh-state fallback, dangling active ids and failure injection

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitechat/sitechat/internal/session"
)

func TestBootstrap_EmptyStoreYieldsDefaultState(t *testing.T) {
	m := NewMemoryStore()

	state := Bootstrap(context.Background(), m, "", nil)

	require.Equal(t, 1, state.Len())
	conv := state.Active()
	assert.Equal(t, session.DefaultTitle, conv.Title)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, session.DefaultGreeting, conv.Messages[0].Text)
}

func TestBootstrap_CorruptDataYieldsDefaultState(t *testing.T) {
	m := NewMemoryStore()
	m.Raw[keyConversations] = []byte("][ definitely not json")
	m.Raw[keyActiveID] = []byte("whatever")

	state := Bootstrap(context.Background(), m, "", nil)

	require.Equal(t, 1, state.Len())
	assert.Len(t, state.Active().Messages, 1)
}

func TestBootstrap_RestoresSavedState(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	convs := sampleConversations()
	require.NoError(t, m.SaveConversations(ctx, convs))
	require.NoError(t, m.SaveActiveID(ctx, "c1"))

	state := Bootstrap(ctx, m, "", nil)

	require.Equal(t, 2, state.Len())
	assert.Equal(t, "c1", state.ActiveID())
	snap := state.Snapshot()
	assert.Equal(t, convs, snap.Conversations)
}

func TestBootstrap_DanglingActiveIDFallsBackToFirst(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, m.SaveConversations(ctx, sampleConversations()))
	require.NoError(t, m.SaveActiveID(ctx, "deleted-long-ago"))

	state := Bootstrap(ctx, m, "", nil)

	assert.Equal(t, "c2", state.ActiveID(), "mismatched keys resolve to the first conversation")
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	convs := sampleConversations()

	require.NoError(t, m.SaveConversations(ctx, convs))
	loaded, err := m.LoadConversations(ctx)
	require.NoError(t, err)
	assert.Equal(t, convs, loaded)
}

func TestMemoryStore_AbsentReadsAsNotFound(t *testing.T) {
	m := NewMemoryStore()

	_, err := m.LoadConversations(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.LoadActiveID(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_FailureInjection(t *testing.T) {
	m := NewMemoryStore()
	m.SaveErr = assert.AnError

	err := m.SaveConversations(context.Background(), sampleConversations())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, m.SaveCalls)
}
