package starlark

import (
	"context"
	"sync"

	"go.starlark.net/starlark"
	"golang.org/x/sync/errgroup"
)

// ThreadPool manages a pool of Starlark threads for parallel evaluation.
type ThreadPool struct {
	mu      sync.Mutex
	threads []*starlark.Thread
	maxSize int
	printFn func(*starlark.Thread, string)
}

// NewThreadPool creates a new thread pool with the specified maximum size.
// printFn receives the output of the Starlark print builtin; nil discards it.
func NewThreadPool(maxSize int, printFn func(*starlark.Thread, string)) *ThreadPool {
	if maxSize <= 0 {
		maxSize = 10 // default pool size
	}
	if printFn == nil {
		printFn = func(*starlark.Thread, string) {}
	}
	return &ThreadPool{
		threads: make([]*starlark.Thread, 0, maxSize),
		maxSize: maxSize,
		printFn: printFn,
	}
}

// Get retrieves a thread from the pool or creates a new one.
// The thread name is used for error reporting.
func (p *ThreadPool) Get(name string) *starlark.Thread {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.threads) > 0 {
		thread := p.threads[len(p.threads)-1]
		p.threads = p.threads[:len(p.threads)-1]
		thread.Name = name
		return thread
	}

	return &starlark.Thread{Name: name, Print: p.printFn}
}

// Put returns a thread to the pool for reuse.
// If the pool is full, the thread is discarded. Cancelled threads must not be
// returned.
func (p *ThreadPool) Put(thread *starlark.Thread) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.threads) < p.maxSize {
		thread.Name = ""
		p.threads = append(p.threads, thread)
	}
}

// Size returns the current number of threads in the pool.
func (p *ThreadPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.threads)
}

// Task is one named program in a batch.
type Task struct {
	Name   string // used for error reporting
	Source string
}

// TaskResult is the outcome of one task. Exactly one of Result and Err is set.
type TaskResult struct {
	Name   string
	Result *Result
	Err    error
}

// EvalAll evaluates tasks concurrently, at most Options.Concurrency at a time.
// Per-task failures are reported in the results; the returned error is only
// set when ctx is done before every task has run.
func (w *Walker) EvalAll(ctx context.Context, tasks []Task) ([]TaskResult, error) {
	results := make([]TaskResult, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.limit)

	for i, task := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := w.Eval(gctx, task.Name, task.Source)
			results[i] = TaskResult{Name: task.Name, Result: res, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
