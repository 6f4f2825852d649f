package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"pokebattle/animation"
	"pokebattle/api"
	"pokebattle/cache"
	"pokebattle/config"
	"pokebattle/data"
	"pokebattle/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "pokebattle", cfg.OTelEndpoint)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}

	store := cache.New(cfg.CacheDir)
	pokeapi := data.NewClient(cfg.PokeAPIURL, cfg.HTTPTimeout, store)

	var src data.Source = pokeapi
	if cfg.PokedexPath != "" {
		dex, err := data.LoadPokedex(cfg.PokedexPath)
		if err != nil {
			log.Fatalf("loading pokedex: %v", err)
		}
		log.Printf("loaded %d species from %s", len(dex), cfg.PokedexPath)
		src = data.MultiSource{dex, pokeapi}
	}

	renderer := animation.NewRenderer(pokeapi, store, cfg.TempDir)
	handler := api.NewHandler(src, renderer, cfg.TempDir, cfg.LiveTick)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
		// Rendering fetches sprites and encodes a few dozen frames.
		WriteTimeout: 2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server listening on http://localhost%s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("shutdown signal received")
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("telemetry shutdown error: %v", err)
	}
	log.Println("server stopped")
}
