package liveness

import (
	"sync"
	"testing"
	"time"
)

func TestMinutesSince(t *testing.T) {
	tr := NewTracker()
	tr.RecordSuccessAt(100)

	if got := tr.MinutesSince(106); got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
	if got := tr.MinutesSince(106); got != 6 {
		t.Fatalf("expected deterministic 6, got %d", got)
	}
}

func TestMinutesSince_NeverRecorded(t *testing.T) {
	var tr Tracker
	if got := tr.MinutesSince(10); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}

func TestMinutesSince_ClockBackwards(t *testing.T) {
	tr := NewTracker()
	tr.RecordSuccessAt(100)

	if got := tr.MinutesSince(98); got != -2 {
		t.Fatalf("expected -2, got %d", got)
	}
}

func TestRecordSuccessAt_Overwrites(t *testing.T) {
	tr := NewTracker()
	tr.RecordSuccessAt(200)
	tr.RecordSuccessAt(150)

	if tr.Last() != 150 {
		t.Fatalf("expected 150, got %d", tr.Last())
	}
}

func TestTracker_ConcurrentAccess(t *testing.T) {
	tr := NewTracker()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := int64(1); i <= 1000; i++ {
			tr.RecordSuccessAt(i)
		}
	}()
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				if age := tr.MinutesSince(1000); age < 0 || age > 1000 {
					t.Errorf("observed out of range age %d", age)
					return
				}
			}
		}()
	}
	wg.Wait()

	if tr.Last() != 1000 {
		t.Fatalf("expected 1000, got %d", tr.Last())
	}
}

func TestMinute(t *testing.T) {
	if got := Minute(time.Unix(10*60+59, 0)); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}
