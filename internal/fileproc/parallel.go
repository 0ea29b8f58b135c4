// Package fileproc runs per-file analysis jobs concurrently. Batch analysis
// is network-bound (each file is one provider round trip), so the default
// worker count is small and fixed rather than CPU-scaled.
package fileproc

import (
	"context"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// DefaultWorkers bounds concurrent provider requests during batch analysis.
const DefaultWorkers = 4

// ProcessingError records a failure for one file.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ProcessingErrors collects failures across a batch.
type ProcessingErrors struct {
	Errors []ProcessingError
	mu     sync.Mutex
}

// Add appends an error to the collection (thread-safe).
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors returns true if any errors were collected.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d files failed (first: %v)", len(e.Errors), e.Errors[0])
}

// ProgressFunc is called after each file finishes, success or not.
type ProgressFunc func()

// ForEachFile processes files in parallel with the default worker count,
// skipping failed files silently.
func ForEachFile[T any](ctx context.Context, files []string, fn func(context.Context, string) (T, error)) []T {
	results, _ := ForEachFileN(ctx, files, DefaultWorkers, fn, nil)
	return results
}

// ForEachFileN processes files in parallel with a bounded worker count,
// collecting per-file errors. Results arrive in arbitrary order. A canceled
// context stops new work; files already in flight record the context error.
func ForEachFileN[T any](
	ctx context.Context,
	files []string,
	maxWorkers int,
	fn func(context.Context, string) (T, error),
	onProgress ProgressFunc,
) ([]T, *ProcessingErrors) {
	if len(files) == 0 {
		return nil, nil
	}
	if maxWorkers <= 0 {
		maxWorkers = DefaultWorkers
	}

	results := make([]T, 0, len(files))
	errs := &ProcessingErrors{}
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(maxWorkers).WithContext(ctx)
	for _, path := range files {
		p.Go(func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				errs.Add(path, ctx.Err())
				if onProgress != nil {
					onProgress()
				}
				return ctx.Err()
			default:
			}

			result, err := fn(ctx, path)
			if onProgress != nil {
				onProgress()
			}
			if err != nil {
				errs.Add(path, err)
				// A failed file does not stop the batch.
				return nil
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	_ = p.Wait() // context errors are already in errs

	if !errs.HasErrors() {
		return results, nil
	}
	return results, errs
}
