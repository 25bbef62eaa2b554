package workerpool

import (
	"fmt"
	"testing"
)

func TestPoolRunsSubmittedJobs(t *testing.T) {
	pool := NewPool(2, 4)
	pool.Start()

	done := make(chan Result, 1)
	pool.Submit(Job{
		Run:  func() (any, error) { return 42, nil },
		Done: done,
	})
	pool.Shutdown()

	res := <-done
	if res.Err != nil || res.Value.(int) != 42 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestMapPreservesOrderAndErrors(t *testing.T) {
	fns := make([]func() (int, error), 10)
	for i := range fns {
		i := i
		fns[i] = func() (int, error) {
			if i == 3 {
				return 0, fmt.Errorf("boom %d", i)
			}
			return i * i, nil
		}
	}

	values, errs := Map(3, fns)
	for i := range fns {
		if i == 3 {
			if errs[i] == nil {
				t.Errorf("index %d: expected error, got nil", i)
			}
			continue
		}
		if errs[i] != nil {
			t.Errorf("index %d: unexpected error %v", i, errs[i])
		}
		if values[i] != i*i {
			t.Errorf("index %d: got %d, want %d", i, values[i], i*i)
		}
	}
}
