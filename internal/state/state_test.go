package state

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

type memoryStore struct {
	mu      sync.Mutex
	state   *State
	saves   int
	saveErr error
	loadErr error
}

func (m *memoryStore) Load(ctx context.Context) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.state == nil {
		return nil, ErrNotFound
	}
	s := m.state.clone()
	return &s, nil
}

func (m *memoryStore) Save(ctx context.Context, s *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	c := s.clone()
	m.state = &c
	m.saves++
	return nil
}

func newTestManager(t *testing.T, store Store) *Manager {
	t.Helper()
	m, err := NewManager(context.Background(), store)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	return m
}

func TestManager_ToggleFavorite(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}
	m := newTestManager(t, store)

	added, err := m.ToggleFavorite(ctx, "one-piece")
	if err != nil || !added {
		t.Fatalf("Expected add, got added=%v err=%v", added, err)
	}
	if _, err := m.ToggleFavorite(ctx, "bleach"); err != nil {
		t.Fatal(err)
	}
	if !m.IsFavorite("one-piece") {
		t.Errorf("Expected one-piece to be a favorite")
	}
	if got := m.Favorites(); !reflect.DeepEqual(got, []string{"one-piece", "bleach"}) {
		t.Errorf("Expected insertion order, got %v", got)
	}

	added, err = m.ToggleFavorite(ctx, "one-piece")
	if err != nil || added {
		t.Fatalf("Expected removal, got added=%v err=%v", added, err)
	}
	if m.IsFavorite("one-piece") {
		t.Errorf("Expected one-piece to be removed")
	}
	if got := store.state.Favorites; !reflect.DeepEqual(got, []string{"bleach"}) {
		t.Errorf("Expected persisted [bleach], got %v", got)
	}
	if store.saves != 3 {
		t.Errorf("Expected 3 saves, got %d", store.saves)
	}
}

func TestManager_FavoritesHaveSetSemantics(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, &memoryStore{})

	for i := 0; i < 4; i++ {
		if _, err := m.ToggleFavorite(ctx, "x"); err != nil {
			t.Fatal(err)
		}
	}
	if got := m.Favorites(); len(got) != 0 {
		t.Errorf("Expected even number of toggles to leave no favorite, got %v", got)
	}
}

func TestManager_ClearPreferencesKeepsFavorites(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{state: &State{
		Favorites:     []string{"a"},
		CurrentDay:    "kamis",
		DarkMode:      true,
		Notifications: true,
	}}
	m := newTestManager(t, store)

	if err := m.ClearPreferences(ctx); err != nil {
		t.Fatal(err)
	}

	expected := State{Favorites: []string{"a"}}
	if got := m.Snapshot(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}
}

func TestManager_ApplySettings(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, &memoryStore{})

	day := "sabtu"
	on := true
	if err := m.ApplySettings(ctx, Settings{CurrentDay: &day, Notifications: &on}); err != nil {
		t.Fatal(err)
	}
	if m.CurrentDay() != "sabtu" || !m.Notifications() || m.DarkMode() {
		t.Errorf("Unexpected state: %+v", m.Snapshot())
	}

	if err := m.SetDarkMode(ctx, true); err != nil {
		t.Fatal(err)
	}
	if err := m.SetNotifications(ctx, false); err != nil {
		t.Fatal(err)
	}
	if err := m.SetCurrentDay(ctx, "minggu"); err != nil {
		t.Fatal(err)
	}
	if m.CurrentDay() != "minggu" || m.Notifications() || !m.DarkMode() {
		t.Errorf("Unexpected state: %+v", m.Snapshot())
	}
}

func TestManager_FailedSaveLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{saveErr: errors.New("disk full")}
	m := newTestManager(t, store)

	if _, err := m.ToggleFavorite(ctx, "x"); err == nil {
		t.Fatal("Expected save error")
	}
	if m.IsFavorite("x") {
		t.Errorf("Expected in-memory state to be unchanged after failed save")
	}
}

func TestManager_Refresh(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}
	m := newTestManager(t, store)

	store.mu.Lock()
	store.state = &State{Favorites: []string{"bleach"}, Notifications: true}
	store.mu.Unlock()

	if err := m.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	if !m.Notifications() || !m.IsFavorite("bleach") {
		t.Errorf("Expected refreshed state, got %+v", m.Snapshot())
	}

	store.mu.Lock()
	store.loadErr = errors.New("broken")
	store.mu.Unlock()

	if err := m.Refresh(ctx); err == nil {
		t.Fatal("Expected reload error")
	}
	if !m.Notifications() {
		t.Errorf("Expected state to be kept after a failed reload")
	}
}

func TestNewManager_LoadError(t *testing.T) {
	_, err := NewManager(context.Background(), &memoryStore{loadErr: errors.New("broken")})
	if err == nil {
		t.Fatal("Expected load error")
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	store := NewFileStore(path)

	if _, err := store.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for missing file, got %v", err)
	}

	m := newTestManager(t, store)
	if _, err := m.ToggleFavorite(ctx, "naruto"); err != nil {
		t.Fatal(err)
	}
	if err := m.SetDarkMode(ctx, true); err != nil {
		t.Fatal(err)
	}

	reloaded := newTestManager(t, NewFileStore(path))
	if !reloaded.IsFavorite("naruto") || !reloaded.DarkMode() {
		t.Errorf("Expected state to survive reload, got %+v", reloaded.Snapshot())
	}

	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".state-*"))
	if len(matches) != 0 {
		t.Errorf("Expected temp files to be cleaned up, got %v", matches)
	}
}

type mockObjectClient struct {
	objects map[string][]byte
	getErr  error
}

func (m *mockObjectClient) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.objects[bucket+"/"+key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return data, nil
}

func (m *mockObjectClient) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if contentType != "application/json" {
		return errors.New("unexpected content type " + contentType)
	}
	m.objects[bucket+"/"+key] = append([]byte(nil), data...)
	return nil
}

func TestObjectStore(t *testing.T) {
	ctx := context.Background()
	client := &mockObjectClient{objects: map[string][]byte{}}
	store := &ObjectStore{Client: client, Bucket: "animeschedule", Key: "state.json"}

	if _, err := store.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	m := newTestManager(t, store)
	if err := m.SetCurrentDay(ctx, "rabu"); err != nil {
		t.Fatal(err)
	}
	if _, ok := client.objects["animeschedule/state.json"]; !ok {
		t.Fatal("Expected object to be written")
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.CurrentDay != "rabu" {
		t.Errorf("Expected rabu, got %q", loaded.CurrentDay)
	}

	client.getErr = errors.New("connection refused")
	if _, err := store.Load(ctx); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Expected wrapped transport error, got %v", err)
	}
}
