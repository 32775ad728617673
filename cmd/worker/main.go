package main

import (
	"context"
	"log"

	"animeschedule/config"
	"animeschedule/internal/apiclient"
	"animeschedule/internal/livewatch"
	"animeschedule/internal/notification"
	"animeschedule/internal/schedule"
	"animeschedule/internal/state"
	"animeschedule/internal/tasks"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	cfg := config.LoadConfig()
	redisOpt := tasks.RedisOpt(cfg)

	client := asynq.NewClient(redisOpt)
	defer client.Close()

	fetcher := schedule.NewScheduleFetcher(cfg.ScheduleFile, apiclient.NewClientFromConfig(cfg))

	store, err := state.NewStoreFromConfig(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to create state store: %v", err)
	}
	prefs, err := state.NewManager(context.Background(), store)
	if err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}

	notifications := notification.NewService(cfg)
	defer notifications.Close()

	watcher := livewatch.NewWatcher(fetcher, prefs, notifications, livewatch.Options{
		Location: cfg.Location(),
		Interval: cfg.MessageInterval(),
	})

	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeAnimeReminder, tasks.NewReminderHandler(cfg, client, fetcher))
	mux.Handle(tasks.TypeScheduleLiveCheck, tasks.NewLiveCheckHandler(watcher))

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Location: cfg.Location()})
	cronSpec := "@every " + cfg.MessageInterval().String()
	entryID, err := scheduler.Register(cronSpec, tasks.NewLiveCheckTask(), asynq.Unique(cfg.MessageInterval()))
	if err != nil {
		log.Fatalf("Failed to register live check: %v", err)
	}
	log.Printf("Registered live check %s (%s)", entryID, cronSpec)

	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Shutdown()

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
	})

	log.Printf("Worker connected to Redis at %s", cfg.RedisAddress)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("Worker stopped: %v", err)
	}
}
