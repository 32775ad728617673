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

	"animeschedule/config"
	"animeschedule/internal/api"
	"animeschedule/internal/apiclient"
	"animeschedule/internal/livewatch"
	"animeschedule/internal/notification"
	"animeschedule/internal/router"
	"animeschedule/internal/schedule"
	"animeschedule/internal/state"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	cfg := config.LoadConfig()
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := apiclient.NewClientFromConfig(cfg)

	store, err := state.NewStoreFromConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create state store: %v", err)
	}
	prefs, err := state.NewManager(ctx, store)
	if err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}

	loc := cfg.Location()
	table := router.NewTable(client, prefs, router.Options{
		Ongoing:  router.OngoingMode(cfg.OngoingRoute),
		Location: loc,
	})

	var live api.LiveReporter
	if cfg.LiveWatchInServer {
		notifications := notification.NewService(cfg)
		defer notifications.Close()

		watcher := livewatch.NewWatcher(
			schedule.NewScheduleFetcher(cfg.ScheduleFile, client),
			prefs,
			notifications,
			livewatch.Options{Location: loc, Interval: cfg.MessageInterval()},
		)
		go func() {
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Live watcher stopped: %v", err)
			}
		}()
		live = watcher
	} else {
		log.Println("Live watch disabled in server, expecting the worker to run it")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.NewServer(client, prefs, table, live).Router(),
	}

	go func() {
		log.Printf("Server listening on :%s (upstream %s)", cfg.Port, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
