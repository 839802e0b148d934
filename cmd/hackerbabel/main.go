package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/hackerbabel/internal/config"
	"github.com/pribylovaa/hackerbabel/internal/hackernews"
	"github.com/pribylovaa/hackerbabel/internal/metrics"
	"github.com/pribylovaa/hackerbabel/internal/queue"
	"github.com/pribylovaa/hackerbabel/internal/service"
	hbmongo "github.com/pribylovaa/hackerbabel/internal/storage/mongo"
	"github.com/pribylovaa/hackerbabel/internal/unbabel"
	"github.com/pribylovaa/hackerbabel/pkg/log"
)

// Константы окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	lg := setupLogger(cfg.Env)
	slog.SetDefault(lg)
	lg.Info("starting hackerbabel", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	rootCtx = log.Into(rootCtx, lg)

	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	store, err := hbmongo.New(dbCtx, cfg)
	dbCancel()
	if err != nil {
		lg.Error("mongo_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}
	lg.Info("mongo_connected")

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	jobs := queue.New()
	svc := service.New(store, hackernews.New(cfg), unbabel.New(cfg), jobs, m, *cfg)
	lg.Info("service_initialized")

	// In-flight задачи не персистентны: всё, что было в очереди на момент
	// прошлого останова, потеряно и будет заново выведено Poller-ом.
	lg.Warn("in_flight_jobs_not_persisted",
		slog.String("recovery", "poller re-derives outstanding work from storage on each tick"),
	)

	// HTTP readiness/liveness/metrics
	var ready int32 // 0 — not ready; 1 — ready
	httpAddr := cfg.HTTP.Addr()

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		lg.Info("http_listen_start", "addr", httpAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}()

	// Два независимых цикла: Poller и Dispatcher. Общаются только через
	// очередь и сторадж; останов — по общему rootCtx.
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := svc.StartPoller(rootCtx); err != nil {
			lg.Error("poller_failed", slog.String("err", err.Error()))
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := svc.StartDispatcher(rootCtx); err != nil {
			lg.Error("dispatcher_failed", slog.String("err", err.Error()))
		}
	}()

	atomic.StoreInt32(&ready, 1)

	<-rootCtx.Done()
	lg.Info("shutdown_requested")
	atomic.StoreInt32(&ready, 0)

	// Циклы уважают ctx; даём им ограниченное время на выход.
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		lg.Info("loops_stopped")
	case <-time.After(15 * time.Second):
		lg.Warn("loops_stop_timeout")
	}

	_ = httpSrv.Shutdown(context.Background())

	rootCancel()
	_ = store.Close(context.Background())

	lg.Info("service_stopped")
	os.Exit(0)
}

// setupLogger — текстовый лог для local, JSON для dev/prod.
func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
