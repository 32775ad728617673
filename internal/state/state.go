// Package state persists user preferences: favorites, the selected schedule
// day, dark mode and the notification opt-in.
package state

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// State is the persisted document.
type State struct {
	Favorites     []string `json:"favorites"`
	CurrentDay    string   `json:"currentDay,omitempty"`
	DarkMode      bool     `json:"darkMode"`
	Notifications bool     `json:"notifications"`
}

func (s State) clone() State {
	s.Favorites = slices.Clone(s.Favorites)
	return s
}

// ErrNotFound is returned by a Store that has nothing persisted yet.
var ErrNotFound = errors.New("state not found")

type Store interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, s *State) error
}

// Settings is a partial update; nil fields are left unchanged.
type Settings struct {
	CurrentDay    *string `json:"currentDay,omitempty"`
	DarkMode      *bool   `json:"darkMode,omitempty"`
	Notifications *bool   `json:"notifications,omitempty"`
}

// Manager owns the in-memory state and writes every change through to its
// Store. A failed save leaves the in-memory state unchanged.
type Manager struct {
	mu    sync.RWMutex
	store Store
	state State
}

// NewManager loads the persisted state. A missing document starts empty.
func NewManager(ctx context.Context, store Store) (*Manager, error) {
	m := &Manager{store: store}

	loaded, err := store.Load(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("failed to load state: %w", err)
	case loaded != nil:
		m.state = loaded.clone()
	}
	return m, nil
}

// Refresh reloads the persisted state so changes written by another process
// become visible. A failed load keeps the current state.
func (m *Manager) Refresh(ctx context.Context) error {
	loaded, err := m.store.Load(ctx)
	next := State{}
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return fmt.Errorf("failed to reload state: %w", err)
	case loaded != nil:
		next = loaded.clone()
	}

	m.mu.Lock()
	m.state = next
	m.mu.Unlock()
	return nil
}

func (m *Manager) update(ctx context.Context, mutate func(*State)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.state.clone()
	mutate(&next)
	if err := m.store.Save(ctx, &next); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	m.state = next
	return nil
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.clone()
}

// ToggleFavorite adds id if absent and removes it otherwise. It reports
// whether id is a favorite afterwards.
func (m *Manager) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	var added bool
	err := m.update(ctx, func(s *State) {
		if i := slices.Index(s.Favorites, id); i >= 0 {
			s.Favorites = slices.Delete(s.Favorites, i, i+1)
			added = false
			return
		}
		s.Favorites = append(s.Favorites, id)
		added = true
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

func (m *Manager) IsFavorite(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Contains(m.state.Favorites, id)
}

// Favorites returns the favorite ids in insertion order.
func (m *Manager) Favorites() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.state.Favorites)
}

func (m *Manager) CurrentDay() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.CurrentDay
}

func (m *Manager) SetCurrentDay(ctx context.Context, day string) error {
	return m.update(ctx, func(s *State) { s.CurrentDay = day })
}

func (m *Manager) DarkMode() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.DarkMode
}

func (m *Manager) SetDarkMode(ctx context.Context, enabled bool) error {
	return m.update(ctx, func(s *State) { s.DarkMode = enabled })
}

func (m *Manager) Notifications() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Notifications
}

func (m *Manager) SetNotifications(ctx context.Context, enabled bool) error {
	return m.update(ctx, func(s *State) { s.Notifications = enabled })
}

// ApplySettings writes every non-nil field of patch in one save.
func (m *Manager) ApplySettings(ctx context.Context, patch Settings) error {
	return m.update(ctx, func(s *State) {
		if patch.CurrentDay != nil {
			s.CurrentDay = *patch.CurrentDay
		}
		if patch.DarkMode != nil {
			s.DarkMode = *patch.DarkMode
		}
		if patch.Notifications != nil {
			s.Notifications = *patch.Notifications
		}
	})
}

// ClearPreferences resets dark mode, notifications and the selected day.
// Favorites are kept.
func (m *Manager) ClearPreferences(ctx context.Context) error {
	return m.update(ctx, func(s *State) {
		s.CurrentDay = ""
		s.DarkMode = false
		s.Notifications = false
	})
}
