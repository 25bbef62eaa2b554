package workerpool

// Map runs fns concurrently across a pool of workers workers and returns
// each function's result in the same order as fns, once all have completed.
// A non-positive workers count runs everything on a single worker.
func Map[T any](workers int, fns []func() (T, error)) ([]T, []error) {
	values := make([]T, len(fns))
	errs := make([]error, len(fns))
	if len(fns) == 0 {
		return values, errs
	}

	pool := NewPool(workers, len(fns))
	pool.Start()

	dones := make([]chan Result, len(fns))
	for i, fn := range fns {
		fn := fn
		done := make(chan Result, 1)
		dones[i] = done
		pool.Submit(Job{
			Run:  func() (any, error) { return fn() },
			Done: done,
		})
	}
	pool.Shutdown()

	for i, done := range dones {
		res := <-done
		if res.Err != nil {
			errs[i] = res.Err
			continue
		}
		if v, ok := res.Value.(T); ok {
			values[i] = v
		}
	}
	return values, errs
}
