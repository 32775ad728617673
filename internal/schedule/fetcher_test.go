package schedule

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"animeschedule/internal/models"
)

type mockScheduleSource struct {
	days  []models.ScheduleDay
	err   error
	calls int
}

func (m *mockScheduleSource) Schedule(ctx context.Context) ([]models.ScheduleDay, error) {
	m.calls++
	return m.days, m.err
}

func TestHTTPScheduleFetcher_FetchSchedule(t *testing.T) {
	source := &mockScheduleSource{days: sampleDays()}
	fetcher := NewScheduleFetcher("", source)

	days, err := fetcher.FetchSchedule(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if source.calls != 1 {
		t.Errorf("expected 1 call, got %d", source.calls)
	}
}

func TestHTTPScheduleFetcher_Error(t *testing.T) {
	sentinel := errors.New("boom")
	fetcher := &HTTPScheduleFetcher{Source: &mockScheduleSource{err: sentinel}}

	_, err := fetcher.FetchSchedule(context.Background())
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel error, got %v", err)
	}
}

func TestFileScheduleFetcher_FetchSchedule(t *testing.T) {
	dir := t.TempDir()

	t.Run("BarePayload", func(t *testing.T) {
		path := filepath.Join(dir, "bare.json")
		body := `{"days":[{"day":"Friday","animeList":[{"animeId":"x","title":"X","estimation":"0d 1h 0m","genres":"Action, Drama"}]}]}`
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}

		fetcher := NewScheduleFetcher(path, nil)
		days, err := fetcher.FetchSchedule(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(days) != 1 || days[0].Day != "Friday" {
			t.Fatalf("unexpected days: %+v", days)
		}
		if len(days[0].AnimeList[0].Genres) != 2 {
			t.Errorf("expected 2 genres, got %v", days[0].AnimeList[0].Genres)
		}
	})

	t.Run("Envelope", func(t *testing.T) {
		path := filepath.Join(dir, "envelope.json")
		body := `{"status":"success","data":{"days":[{"day":"Monday","animeList":[]},{"day":"Tuesday","animeList":[]}]}}`
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}

		days, err := (&FileScheduleFetcher{FilePath: path}).FetchSchedule(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(days) != 2 {
			t.Fatalf("expected 2 days, got %d", len(days))
		}
	})

	t.Run("FailedEnvelope", func(t *testing.T) {
		path := filepath.Join(dir, "failed.json")
		if err := os.WriteFile(path, []byte(`{"status":"error","message":"nope"}`), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := FetchScheduleFromFile(path); err == nil {
			t.Fatal("expected error for failed envelope")
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := FetchScheduleFromFile(filepath.Join(dir, "missing.json")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := FetchScheduleFromFile(path); err == nil {
			t.Fatal("expected error for invalid JSON")
		}
	})
}
