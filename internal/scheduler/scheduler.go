package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type Task func(ctx context.Context) error

// Every runs task on each tick until ctx is done. With runNow the first run
// happens immediately instead of after one interval. Task errors are logged
// and do not stop the loop.
func Every(ctx context.Context, log zerolog.Logger, interval time.Duration, name string, runNow bool, task Task) {
	if interval <= 0 {
		log.Warn().Str("task", name).Msg("scheduler disabled: interval must be positive")
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	run := func() {
		if err := task(ctx); err != nil {
			log.Error().Err(err).Str("task", name).Msg("scheduled task failed")
		}
	}

	if runNow {
		run()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
