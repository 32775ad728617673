package debounce

import (
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu     sync.Mutex
	values []int
}

func (r *recorder) record(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.values...)
}

func TestDebouncer_OnlyLastValueFires(t *testing.T) {
	rec := &recorder{}
	d := New(50*time.Millisecond, rec.record)
	defer d.Stop()

	for i := 1; i <= 10; i++ {
		d.Trigger(i)
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 {
		t.Fatalf("Expected 1 call, got %d (%v)", len(got), got)
	}
	if got[0] != 10 {
		t.Errorf("Expected last value 10, got %d", got[0])
	}
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	rec := &recorder{}
	d := New(20*time.Millisecond, rec.record)
	defer d.Stop()

	d.Trigger(1)
	time.Sleep(100 * time.Millisecond)
	d.Trigger(2)
	time.Sleep(100 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("Expected [1 2], got %v", got)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	rec := &recorder{}
	d := New(30*time.Millisecond, rec.record)

	d.Trigger(1)
	d.Stop()
	d.Trigger(2)
	time.Sleep(100 * time.Millisecond)

	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("Expected no calls after Stop, got %v", got)
	}
}

func TestDebouncer_CancelKeepsDebouncerUsable(t *testing.T) {
	rec := &recorder{}
	d := New(30*time.Millisecond, rec.record)
	defer d.Stop()

	d.Trigger(1)
	d.Cancel()
	time.Sleep(80 * time.Millisecond)
	d.Trigger(2)
	time.Sleep(100 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("Expected [2], got %v", got)
	}
}

func TestNew_DefaultDelay(t *testing.T) {
	d := New(0, func(int) {})
	if d.delay != DefaultDelay {
		t.Errorf("Expected %v, got %v", DefaultDelay, d.delay)
	}
}
