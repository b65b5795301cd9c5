package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"meeting-notes/internal/app"
	"meeting-notes/internal/httputil"
	"meeting-notes/internal/metrics"
	"meeting-notes/internal/notify"
	"meeting-notes/internal/summarize"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := app.Build(ctx)
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.Port),
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("server stopped", "err", err)
		os.Exit(1)
	}
	deps.Log.Info("server stopped")
}

func newRouter(deps app.Deps) *chi.Mux {
	r := httputil.NewRouter(deps.Log, deps.Config.RequestTimeout)

	r.Post("/summarize", summarizeHandler(deps))
	r.Post("/notify", notifyHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	return r
}

func summarizeHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req summarize.Request
		if err := httputil.DecodeJSON(r, &req); err != nil {
			deps.Metrics.ObserveRequest(metrics.OpSummarize, err)
			httputil.Fail(deps.Log, w, summarize.MsgGenerateFailed, err, http.StatusInternalServerError)
			return
		}

		resp, err := deps.Summarizer.Summarize(r.Context(), req)
		deps.Metrics.ObserveRequest(metrics.OpSummarize, err)
		if err != nil {
			httputil.FailErr(deps.Log, w, err, summarize.MsgGenerateFailed)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}

func notifyHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req notify.Request
		if err := httputil.DecodeJSON(r, &req); err != nil {
			deps.Metrics.ObserveRequest(metrics.OpNotify, err)
			httputil.Fail(deps.Log, w, notify.MsgSendFailed, err, http.StatusInternalServerError)
			return
		}

		resp, err := deps.Notifier.Notify(r.Context(), req)
		deps.Metrics.ObserveRequest(metrics.OpNotify, err)
		if err != nil {
			httputil.FailErr(deps.Log, w, err, notify.MsgSendFailed)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}
