// Package resilience provides the execution primitives used when invoking
// probes: bounded fan-out and per-call deadlines.
//
// # Pools
//
// A Pool runs n indexed tasks. Sequential runs them one after another on the
// calling goroutine; a bounded pool fans them out over at most Size
// goroutines, independent of n:
//
//	pool := resilience.NewBoundedPool(4)
//	results := make([]string, len(items))
//	pool.Run(ctx, len(items), func(ctx context.Context, i int) {
//	    results[i] = process(ctx, items[i])
//	})
//
// Tasks write into their own index, so output order never depends on
// completion order.
//
// # Timeouts
//
// Call runs a function under a deadline and returns ErrTimeout when the
// deadline fires first:
//
//	v, err := resilience.Call(ctx, 2*time.Second, func(ctx context.Context) (int, error) {
//	    return slowLookup(ctx)
//	})
package resilience
