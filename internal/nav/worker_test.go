package nav

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestWorker_SerializesJobs(t *testing.T) {
	w := newWorker()
	defer w.close()

	var mu sync.Mutex
	var order []string
	job := func(name string) func(context.Context) error {
		return func(context.Context) error {
			mu.Lock()
			order = append(order, name+":start")
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			mu.Lock()
			order = append(order, name+":end")
			mu.Unlock()
			return nil
		}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); w.do(context.Background(), job("a")) }()
	go func() { defer wg.Done(); w.do(context.Background(), job("b")) }()
	wg.Wait()

	if len(order) != 4 {
		t.Fatalf("expected 4 entries, got %v", order)
	}
	// A start must be followed by its own end before the other job starts.
	first := order[0][:1]
	if order[1] != first+":end" {
		t.Errorf("jobs interleaved: %v", order)
	}
}

func TestWorker_DoJoinsJob(t *testing.T) {
	w := newWorker()
	defer w.close()

	ran := false
	err := w.do(context.Background(), func(context.Context) error {
		time.Sleep(2 * time.Millisecond)
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Error("do returned before the job finished")
	}
}

func TestWorker_CanceledAdmission(t *testing.T) {
	w := newWorker()
	defer w.close()

	// Occupy the worker so the next submission has to wait.
	release := make(chan struct{})
	go w.do(context.Background(), func(context.Context) error {
		<-release
		return nil
	})
	time.Sleep(2 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ran := false
	err := w.do(ctx, func(context.Context) error {
		ran = true
		return nil
	})
	close(release)

	if err == nil {
		t.Fatal("expected admission error")
	}
	if ran {
		t.Error("job ran despite canceled admission")
	}
}

func TestWorker_CloseIsIdempotent(t *testing.T) {
	w := newWorker()
	w.close()
	w.close()
}
