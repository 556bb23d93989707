package engine

import (
	"testing"
	"time"
)

func TestRingBufferAdd(t *testing.T) {
	rb := NewRingBuffer[CountSample](5)
	for i := 0; i < 3; i++ {
		rb.Add(CountSample{Timestamp: time.Now(), Active: i})
	}
	if rb.Len() != 3 {
		t.Errorf("expected len 3, got %d", rb.Len())
	}
}

func TestRingBufferWrap(t *testing.T) {
	rb := NewRingBuffer[CountSample](3)
	for i := 0; i < 5; i++ {
		rb.Add(CountSample{Active: i})
	}
	if rb.Len() != 3 {
		t.Errorf("expected len 3, got %d", rb.Len())
	}
	items := rb.All()
	if items[0].Active != 2 {
		t.Errorf("expected oldest item Active=2, got %d", items[0].Active)
	}
	if items[2].Active != 4 {
		t.Errorf("expected newest item Active=4, got %d", items[2].Active)
	}
}

func TestRingBufferEmpty(t *testing.T) {
	rb := NewRingBuffer[CountSample](10)
	if rb.Len() != 0 {
		t.Error("new ring buffer should be empty")
	}
	items := rb.All()
	if len(items) != 0 {
		t.Error("All() on empty buffer should return empty slice")
	}
}

func TestRingBufferLast(t *testing.T) {
	rb := NewRingBuffer[CountSample](5)
	rb.Add(CountSample{Active: 1})
	rb.Add(CountSample{Active: 2})
	rb.Add(CountSample{Active: 3})
	last, ok := rb.Last()
	if !ok {
		t.Fatal("Last() should return true for non-empty buffer")
	}
	if last.Active != 3 {
		t.Errorf("expected Active=3, got %d", last.Active)
	}
}

func TestRingBufferClear(t *testing.T) {
	rb := NewRingBuffer[CountSample](4)
	rb.Add(CountSample{Active: 1})
	rb.Add(CountSample{Active: 2})

	rb.Clear()

	if rb.Len() != 0 {
		t.Errorf("expected len 0 after Clear, got %d", rb.Len())
	}
	if _, ok := rb.Last(); ok {
		t.Error("Last() should report empty after Clear")
	}

	// The buffer is reusable after clearing.
	rb.Add(CountSample{Active: 7})
	if last, _ := rb.Last(); last.Active != 7 {
		t.Errorf("expected Active=7 after refill, got %d", last.Active)
	}
}
