package prefs

import (
	"context"
	"fmt"
	"sync"
)

// Store persists preferences per visitor id.
type Store interface {
	// Load returns the stored preferences and whether any were stored.
	Load(ctx context.Context, id string) (Preferences, bool, error)
	Save(ctx context.Context, id string, p Preferences) error
}

// MemoryStore keeps preferences in a map. The zero value is ready to use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Preferences
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]Preferences)}
}

func (m *MemoryStore) Load(_ context.Context, id string) (Preferences, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.data[id]
	return p, ok, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, p Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string]Preferences)
	}
	m.data[id] = p
	return nil
}

// Service is the read/write contract for preferences. It is passed to the
// handlers that need it; nothing reads preferences from package state.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get returns the visitor's stored preferences, or fallback when none were
// stored yet. fallback is normalized first.
func (s *Service) Get(ctx context.Context, id string, fallback Preferences) (Preferences, error) {
	p, ok, err := s.store.Load(ctx, id)
	if err != nil {
		return fallback.Normalize(), fmt.Errorf("load preferences %s: %w", id, err)
	}
	if !ok {
		return fallback.Normalize(), nil
	}
	return p.Normalize(), nil
}

// Set stores p for the visitor.
func (s *Service) Set(ctx context.Context, id string, p Preferences) (Preferences, error) {
	p = p.Normalize()
	if err := s.store.Save(ctx, id, p); err != nil {
		return p, fmt.Errorf("save preferences %s: %w", id, err)
	}
	return p, nil
}

// ToggleTheme flips the theme, persists it and returns the new preferences.
func (s *Service) ToggleTheme(ctx context.Context, id string, current Preferences) (Preferences, error) {
	p, err := s.Get(ctx, id, current)
	if err != nil {
		return p, err
	}
	p.Theme = p.Theme.Toggle()
	return s.Set(ctx, id, p)
}

// ToggleLanguage flips the language, persists it and returns the new
// preferences.
func (s *Service) ToggleLanguage(ctx context.Context, id string, current Preferences) (Preferences, error) {
	p, err := s.Get(ctx, id, current)
	if err != nil {
		return p, err
	}
	p.Language = p.Language.Toggle()
	return s.Set(ctx, id, p)
}
