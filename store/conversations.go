package store

import (
	"context"
	"fmt"

	"github.com/reagentkit/reagent"
)

// ConversationStore snapshots conversation transcripts by ID.
//
// Save serializes the full transcript at the time of the call; Load
// reconstructs a fresh conversation from the stored turns. Tool-call
// correlation IDs and parsed invocations survive the round trip.
type ConversationStore struct {
	adapter Adapter
}

// NewConversationStore creates a store backed by the given adapter.
// If adapter is nil, an in-memory adapter is used.
func NewConversationStore(adapter Adapter) *ConversationStore {
	if adapter == nil {
		adapter = NewMemoryAdapter()
	}
	return &ConversationStore{adapter: adapter}
}

// Save stores a snapshot of the conversation under the given ID,
// replacing any previous snapshot.
func (s *ConversationStore) Save(ctx context.Context, id string, conv *reagent.Conversation) error {
	if id == "" {
		return fmt.Errorf("store: conversation ID must not be empty")
	}

	data, err := conv.MarshalJSON()
	if err != nil {
		return fmt.Errorf("store: failed to serialize conversation %q: %w", id, err)
	}

	return s.adapter.Set(ctx, id, data)
}

// Load reconstructs the conversation stored under the given ID.
// Returns nil, false, nil when no snapshot exists.
func (s *ConversationStore) Load(ctx context.Context, id string) (*reagent.Conversation, bool, error) {
	data, ok, err := s.adapter.Get(ctx, id)
	if err != nil || !ok {
		return nil, false, err
	}

	conv := reagent.NewConversation()
	if err := conv.UnmarshalJSON(data); err != nil {
		return nil, false, fmt.Errorf("store: failed to decode conversation %q: %w", id, err)
	}
	return conv, true, nil
}

// Delete removes the snapshot stored under the given ID, if any.
func (s *ConversationStore) Delete(ctx context.Context, id string) error {
	return s.adapter.Delete(ctx, id)
}

// Has returns true if a snapshot exists for the given ID.
func (s *ConversationStore) Has(ctx context.Context, id string) (bool, error) {
	return s.adapter.Has(ctx, id)
}

// IDs returns the IDs of all stored conversations.
func (s *ConversationStore) IDs(ctx context.Context) ([]string, error) {
	return s.adapter.Keys(ctx)
}

// Len returns the number of stored conversations.
func (s *ConversationStore) Len(ctx context.Context) (int, error) {
	return s.adapter.Len(ctx)
}

// Clear removes all stored conversations.
func (s *ConversationStore) Clear(ctx context.Context) error {
	return s.adapter.Clear(ctx)
}
