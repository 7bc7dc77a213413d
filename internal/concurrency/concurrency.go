// Package concurrency holds the pool helper shared by the parallel code
// paths of this module.
package concurrency

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// NewPool builds a context pool running at most maxGoroutines tasks at once.
// The first task error cancels the remaining tasks and is what Wait returns.
func NewPool(ctx context.Context, maxGoroutines int) *pool.ContextPool {
	return pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(maxGoroutines)
}
