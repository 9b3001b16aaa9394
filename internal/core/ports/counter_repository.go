package ports

import "context"

// CounterRepository hands out gap-tolerant, strictly increasing sequence
// values. Next is a single atomic increment; two callers never get the same value.
type CounterRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
