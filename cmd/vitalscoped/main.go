// Command vitalscoped is the vitalscope dashboard service. It serves the
// REST API the dashboard UI consumes and optionally re-analyzes a
// configured URL on a fixed interval.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitalscope/vitalscope/internal/api"
	"github.com/vitalscope/vitalscope/internal/audit"
	"github.com/vitalscope/vitalscope/internal/monitor"
	"github.com/vitalscope/vitalscope/internal/persist"
	"github.com/vitalscope/vitalscope/internal/store"
	"github.com/vitalscope/vitalscope/pkg/config"
)

func main() {
	port := envOrDefault("PORT", "8080")
	apiKey := os.Getenv("VITALSCOPE_API_KEY")

	cfgPath := os.Getenv("VITALSCOPE_CONFIG")
	if cfgPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfgPath = config.FindConfigFile(cwd)
		}
	}
	cfg := config.DefaultConfig()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			log.Fatalf("load config %s: %v", cfgPath, err)
		}
		cfg = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := persist.FromStorageConfig(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("open storage backend: %v", err)
	}

	st := store.New(repo)
	st.Hydrate(ctx)
	if st.SeedSampleData(ctx) {
		log.Println("no prior data; seeded demonstration dataset")
	}

	client := audit.NewClient(cfg.Audit.Endpoint, cfg.Audit.APIKey)
	strategy := audit.Strategy(cfg.Audit.Strategy)

	mux := http.NewServeMux()
	api.NewHandler(st, client, strategy).RegisterRoutes(mux)

	handler := api.CORS(api.APIKeyAuth(apiKey)(mux))
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	if cfg.Monitor.URL != "" {
		interval := time.Duration(cfg.Monitor.IntervalSeconds) * time.Second
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		m := monitor.New(client, st, cfg.Monitor.URL, strategy, interval)
		m.DiscardStale = cfg.Monitor.DiscardStale
		go m.Run(ctx)
	}

	go func() {
		log.Printf("starting vitalscoped on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
