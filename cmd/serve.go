package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vigia/internal/detect"
	"vigia/internal/server"
	"vigia/internal/stats"
)

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	listen := fs.String("listen", "", "Listen address (overrides config)")
	seed := fs.Uint64("seed", 0, "Simulation seed, 0 seeds from the clock")
	debug := fs.Bool("debug", false, "Enable debug logging")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: vigia serve [--listen ADDR] [--seed N] [--debug]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg := loadOrDefaultConfig()
	if *listen != "" {
		cfg.Serve.ListenAddr = *listen
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	rec := stats.NewRecorder()
	rec.Start()
	defer rec.Stop()

	det := detect.New(detect.Config{
		FrameInterval: cfg.Serve.FrameInterval,
		ExpireAfter:   cfg.Serve.ExpireAfter,
		MinConfidence: cfg.Serve.MinConfidence,
		Tracker: detect.TrackerConfig{
			MaxDisappeared: cfg.Serve.MaxDisappeared,
			MaxDistance:    cfg.Serve.MaxDistance,
			MinOverlap:     cfg.Serve.MinOverlap,
		},
	}, detect.NewSimulatedSource(*seed), rec, log)

	srv := &http.Server{
		Addr:         cfg.Serve.ListenAddr,
		Handler:      server.New(det, rec, log).Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("backend listening", "addr", cfg.Serve.ListenAddr, "seed", *seed)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
		return
	}

	det.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", "err", err)
		os.Exit(1)
	}
}
