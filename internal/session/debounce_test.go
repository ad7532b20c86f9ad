package session

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// TestDebouncerCollapsesBurst verifies rapid triggers run the function once
func TestDebouncerCollapsesBurst(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var runs atomic.Int32
	for i := 0; i < 10; i++ {
		d.Trigger(func() { runs.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	// Nothing should have run during the burst
	if got := runs.Load(); got != 0 {
		t.Errorf("Expected 0 runs during burst, got %d", got)
	}

	time.Sleep(100 * time.Millisecond)

	if got := runs.Load(); got != 1 {
		t.Errorf("Expected exactly 1 run after quiet period, got %d", got)
	}
}

// TestDebouncerRunsLatestFunction verifies the last trigger wins
func TestDebouncerRunsLatestFunction(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var mu sync.Mutex
	var got string
	d.Trigger(func() {
		mu.Lock()
		got = "first"
		mu.Unlock()
	})
	d.Trigger(func() {
		mu.Lock()
		got = "second"
		mu.Unlock()
	})

	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if got != "second" {
		t.Errorf("Expected 'second' to run, got %q", got)
	}
}

// TestDebouncerCancel verifies canceled functions never run
func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var runs atomic.Int32
	d.Trigger(func() { runs.Add(1) })

	if !d.Pending() {
		t.Error("Expected pending function after trigger")
	}

	d.Cancel()

	if d.Pending() {
		t.Error("Expected no pending function after cancel")
	}

	time.Sleep(50 * time.Millisecond)
	if got := runs.Load(); got != 0 {
		t.Errorf("Expected 0 runs after cancel, got %d", got)
	}
}

// TestDebouncerFlush verifies flush runs immediately and exactly once
func TestDebouncerFlush(t *testing.T) {
	d := NewDebouncer(time.Hour) // Would never fire on its own

	var runs atomic.Int32
	d.Trigger(func() { runs.Add(1) })

	d.Flush()
	if got := runs.Load(); got != 1 {
		t.Fatalf("Expected 1 run after flush, got %d", got)
	}

	// Flush with nothing pending is a no-op
	d.Flush()
	time.Sleep(20 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Errorf("Expected no extra runs, got %d", got)
	}
}
