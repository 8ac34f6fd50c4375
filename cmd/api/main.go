// Package main is the entry point for the attendance API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/ropiclub/attendance/internal/config"
	"github.com/ropiclub/attendance/internal/handler"
	"github.com/ropiclub/attendance/internal/middleware"
	"github.com/ropiclub/attendance/internal/schedule"
	"github.com/ropiclub/attendance/internal/service"
	"github.com/ropiclub/attendance/internal/session"
	"github.com/ropiclub/attendance/internal/sheets"
)

// maxBodySize caps event payloads; the largest legitimate body is one JSON
// event of a few hundred bytes.
const maxBodySize = 16 << 10 // 16 KiB

func main() {
	// --- Config -----------------------------------------------------------
	// A local .env is a development convenience; in deployment the process
	// environment is authoritative and the file is absent.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Row store --------------------------------------------------------
	// The gateway dials lazily, so a missing credentials file does not stop
	// the server from starting: the form renders in disconnected mode and
	// recovers once the connection succeeds.
	gateway := sheets.Open(sheets.Config{
		SpreadsheetID:   cfg.SpreadsheetID,
		Worksheet:       cfg.Worksheet,
		CounterCell:     cfg.CounterCell,
		CredentialsJSON: cfg.CredentialsJSON,
		CredentialsFile: cfg.CredentialsFile,
		HandleTTL:       cfg.ConnectionTTL,
		CounterTTL:      cfg.CounterTTL,
	}, logger)

	warmCtx, warmCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if gateway.Connected(warmCtx) {
		slog.Info("row store reachable", "spreadsheet", cfg.SpreadsheetID, "worksheet", cfg.Worksheet)
	} else {
		slog.Warn("row store not reachable at startup, continuing in disconnected mode")
	}
	warmCancel()

	// --- Application ------------------------------------------------------
	gen := schedule.New(cfg.EventWeekday, cfg.PastDates, cfg.FutureDates, cfg.Location, time.Now)
	sessions := session.NewStore(cfg.Roster, cfg.SessionTTL, gen.DefaultDate)
	submissions := service.NewSubmissionService(gateway, logger)
	srv := handler.NewServer(submissions, gateway, sessions, gen, cfg.Roster)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
