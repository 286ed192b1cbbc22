// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"sync"
	"sync/atomic"

	dErrors "leasegate/pkg/domain-errors"
)

// ConcurrentResult tracks outcomes of concurrent signing attempts in tests.
type ConcurrentResult struct {
	Successes     int32
	AlreadySigned int32
	Errors        int32
}

// Total returns the total number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.AlreadySigned + r.Errors
}

// RunConcurrent executes fn in parallel goroutines and buckets the results.
// It replaces the usual WaitGroup-plus-atomic-counters boilerplate in
// concurrency tests; AlreadySigned is split out because the signing
// idempotency guard is the outcome those tests care about.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var successes, alreadySigned, errs atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			err := fn(idx)
			switch {
			case err == nil:
				successes.Add(1)
			case dErrors.HasCode(err, dErrors.CodeAlreadySigned):
				alreadySigned.Add(1)
			default:
				errs.Add(1)
			}
		}(i)
	}

	wg.Wait()

	return &ConcurrentResult{
		Successes:     successes.Load(),
		AlreadySigned: alreadySigned.Load(),
		Errors:        errs.Load(),
	}
}
