// Package settings persists the dashboard's KPI card visibility.
package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openaccounting/oadmin/internal/kv"
	"github.com/openaccounting/oadmin/internal/log"
)

// VisibilityKey is the store key holding card visibility.
const VisibilityKey = "kpi_card_visibility"

// Visibility maps KPI card IDs to whether they are shown.
type Visibility map[string]bool

// DefaultVisibility shows every card.
func DefaultVisibility(cardIDs []string) Visibility {
	v := make(Visibility, len(cardIDs))
	for _, id := range cardIDs {
		v[id] = true
	}
	return v
}

// Visible reports whether card id is shown. Cards absent from v are shown.
func (v Visibility) Visible(id string) bool {
	shown, ok := v[id]
	return !ok || shown
}

// Clone returns an independent copy of v.
func (v Visibility) Clone() Visibility {
	out := make(Visibility, len(v))
	for k, shown := range v {
		out[k] = shown
	}
	return out
}

// Store loads and saves Visibility through a kv.Store.
type Store struct {
	kv     kv.Store
	logger *log.Logger
}

// NewStore wraps a kv.Store.
func NewStore(store kv.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Discard()
	}
	return &Store{kv: store, logger: logger.WithComponent(log.ComponentSettings)}
}

// Load returns the saved visibility. It reports false when nothing usable is
// stored: a missing key, an unreadable store and a corrupt value all count as
// absent.
func (s *Store) Load(ctx context.Context) (Visibility, bool) {
	raw, ok, err := s.kv.Get(ctx, VisibilityKey)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load KPI card visibility settings",
			log.NewFields().WithOperation(log.OpRead).WithError(err).With(log.FieldKey, VisibilityKey).ToSlice()...)
		return nil, false
	}
	if !ok || raw == "" {
		return nil, false
	}

	var v Visibility
	if err := json.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		s.logger.WarnContext(ctx, "ignoring corrupt KPI card visibility settings",
			log.NewFields().WithOperation(log.OpParse).WithError(err).With(log.FieldKey, VisibilityKey).ToSlice()...)
		return nil, false
	}
	return v, true
}

// LoadOrDefault returns the saved visibility, or every card shown.
func (s *Store) LoadOrDefault(ctx context.Context, cardIDs []string) Visibility {
	if v, ok := s.Load(ctx); ok {
		return v
	}
	return DefaultVisibility(cardIDs)
}

// Save stores v.
func (s *Store) Save(ctx context.Context, v Visibility) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding visibility: %w", err)
	}
	if err := s.kv.Set(ctx, VisibilityKey, string(data)); err != nil {
		return fmt.Errorf("saving visibility: %w", err)
	}
	return nil
}

// Reset removes any saved visibility.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.kv.Delete(ctx, VisibilityKey); err != nil {
		return fmt.Errorf("resetting visibility: %w", err)
	}
	return nil
}
