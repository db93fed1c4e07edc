package hashcache

import (
	"context"
	"time"

	"github.com/goforj/hashcache/hashcore"
)

// Observer is notified once per completed Cache operation: the operation
// name, the raw key (empty for clear and len), whether it hit, any error,
// the elapsed time and the backend driver. Callbacks run synchronously on
// the calling goroutine, so implementations should return quickly.
type Observer interface {
	OnCacheOp(ctx context.Context, op string, key string, hit bool, err error, dur time.Duration, driver hashcore.Driver)
}

// ObserverFunc lets a plain function serve as an Observer.
type ObserverFunc func(ctx context.Context, op string, key string, hit bool, err error, dur time.Duration, driver hashcore.Driver)

func (f ObserverFunc) OnCacheOp(ctx context.Context, op string, key string, hit bool, err error, dur time.Duration, driver hashcore.Driver) {
	if f == nil {
		return
	}
	f(ctx, op, key, hit, err, dur, driver)
}
