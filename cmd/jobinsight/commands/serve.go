package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"jobinsight-engine/internal/analysis"
	"jobinsight-engine/internal/collect"
	"jobinsight-engine/internal/events"
	"jobinsight-engine/internal/httpapi"
	"jobinsight-engine/internal/llm"
	"jobinsight-engine/internal/logging"
	"jobinsight-engine/internal/scheduler"
	"jobinsight-engine/internal/store"
)

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ServeAction runs the HTTP API on localhost until the context is cancelled
// or POST /shutdown is called.
func ServeAction(ctx context.Context, cmd *cli.Command) error {
	app, err := NewAppContext(cmd)
	if err != nil {
		return err
	}
	log := app.Log
	cfg := app.Config

	var cfgVal atomic.Value // stores config.Config
	cfgVal.Store(cfg)

	var gen llm.Generator
	if g, err := app.Generator(ctx); err != nil {
		log.Warn().Err(err).Msg("llm disabled; /analyze routes will return 503")
	} else {
		gen = g
	}

	svc := analysis.New(app.LoadDataset(ctx), gen, logging.Component(log, "analysis"))
	hub := events.NewHub()
	tracker := collect.NewTracker()

	var refresh func(context.Context) error
	if c, err := app.Collector(); err != nil {
		log.Warn().Err(err).Msg("collect disabled")
	} else {
		r := &collect.Refresher{
			Client:  c,
			Path:    app.DataPath,
			Tracker: tracker,
			Hub:     hub,
			OnLoad:  func(st *store.Store) { svc.Swap(st) },
			Log:     logging.Component(log, "refresh"),
		}
		refresh = r.Refresh
	}

	token, err := randomToken(16)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := &http.Server{
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv.Handler = httpapi.Handler(httpapi.Deps{
		Log:           logging.Component(log, "http"),
		Hub:           hub,
		Analysis:      svc,
		CfgVal:        &cfgVal,
		CollectStatus: tracker,
		UserCfgPath:   app.UserCfgPath,
		LoadCfg:       app.LoadConfig,
		Refresh:       refresh,
		ShutdownToken: token,
		Shutdown:      cancel,
	})

	log.Info().
		Str("addr", "http://"+addr).
		Str("data", app.DataPath).
		Int("records", svc.Dataset().Len()).
		Str("shutdown_token", token).
		Msg("engine listening")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		return srv.Shutdown(shutdownCtx)
	})
	if mins := cfg.Collect.RefreshMinutes; mins > 0 && refresh != nil {
		g.Go(func() error {
			scheduler.Every(gctx, logging.Component(log, "scheduler"), time.Duration(mins)*time.Minute, "collect", false, refresh)
			return nil
		})
	}

	err = g.Wait()
	log.Info().Msg("engine stopped")
	return err
}
