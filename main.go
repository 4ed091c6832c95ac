// Ultimate Tic-Tac-Toe website - serves the board UI and the analysis engine.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/engine"
	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/server"
	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/storage"
)

var (
	addr     = flag.String("addr", ":8080", "listen address")
	assets   = flag.String("assets", "./web", "directory of static UI assets")
	maxDepth = flag.Int("max-depth", engine.DefaultMaxDepth, "search depth ceiling")
	noCache  = flag.Bool("no-cache", false, "disable the persistent analysis cache")
	dataDir  = flag.String("data-dir", "", "database directory (default: platform data dir)")
)

func main() {
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	var store *storage.Storage
	if !*noCache {
		var err error
		if *dataDir != "" {
			store, err = storage.Open(*dataDir)
		} else {
			store, err = storage.OpenDefault()
		}
		if err != nil {
			log.Warn().Err(err).Msg("storage unavailable, continuing without cache")
			store = nil
		} else {
			defer store.Close()
		}
	}

	opts := []engine.Option{engine.WithMaxDepth(*maxDepth)}
	if store != nil {
		opts = append(opts, engine.WithCache(store))
	}
	eng := engine.New(opts...)

	srv := &http.Server{
		Addr:    *addr,
		Handler: server.New(eng, store, *assets, log).Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", *addr).Int("maxDepth", *maxDepth).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("stopped")
}
