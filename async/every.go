// Package async schedules the periodic maintenance of a dAPI server node,
// such as database backups and service health checks.
package async

import (
	"context"
	"reflect"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "async")

// RunEvery calls task once per period on a background goroutine until ctx is
// done. The first call happens one period after RunEvery returns. A non
// positive period schedules nothing.
func RunEvery(ctx context.Context, period time.Duration, task func()) {
	if period <= 0 {
		return
	}
	taskLog := log.WithField("task", taskName(task))
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				taskLog.Debug("Stopping periodic task")
				return
			case <-ticker.C:
				taskLog.Trace("Running periodic task")
				task()
			}
		}
	}()
}

func taskName(task func()) string {
	if fn := runtime.FuncForPC(reflect.ValueOf(task).Pointer()); fn != nil {
		return fn.Name()
	}
	return "unknown"
}
