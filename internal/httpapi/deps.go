package httpapi

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"jobinsight-engine/internal/analysis"
	"jobinsight-engine/internal/collect"
	"jobinsight-engine/internal/config"
	"jobinsight-engine/internal/events"
)

type Deps struct {
	Log zerolog.Logger
	Hub *events.Hub

	Analysis *analysis.Service

	// Atomic stores
	CfgVal        *atomic.Value // stores config.Config
	CollectStatus *collect.Tracker

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Refresh re-collects and reloads the dataset (inject for testability).
	Refresh func(ctx context.Context) error

	// ShutdownToken guards POST /shutdown; empty disables the route.
	ShutdownToken string
	Shutdown      func()
}
