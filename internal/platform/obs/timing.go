package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const (
	RequestIDKey ctxKey = "req_id"
	RunIDKey     ctxKey = "run_id"
)

// WithRunID tags ctx so timing lines from one update run can be correlated.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

func RunID(ctx context.Context) string {
	id, _ := ctx.Value(RunIDKey).(string)
	return id
}

// Time logs the duration of an operation, and its error if any, when the
// returned func is deferred.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	id := RunID(ctx)
	if id == "" {
		id, _ = ctx.Value(RequestIDKey).(string)
	}

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("run_id=%s op=%s dur=%dms err=%v", id, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("run_id=%s op=%s dur=%dms", id, name, dur.Milliseconds())
	}
}
