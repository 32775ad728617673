package main

import (
	"context"
	"flag"
	"log"
	"time"

	"animeschedule/config"
	"animeschedule/internal/apiclient"
	"animeschedule/internal/queue"
	"animeschedule/internal/schedule"
	"animeschedule/internal/scheduler"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(0)

	backend := flag.String("queue", "cloudtasks", "Reminder queue backend (cloudtasks or redis)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Create schedule fetcher (file-based or HTTP)
	fetcher := schedule.NewScheduleFetcher(cfg.ScheduleFile, apiclient.NewClientFromConfig(cfg))

	var taskQueue queue.ReminderQueue
	switch *backend {
	case "redis":
		taskQueue = queue.NewAsynqQueue(cfg)
	case "cloudtasks":
		q, err := queue.NewCloudTasksQueue(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to create task queue: %v", err)
		}
		taskQueue = q
	default:
		log.Fatalf("Unknown queue backend %q", *backend)
	}
	defer taskQueue.Close()

	s := scheduler.New(fetcher, taskQueue, cfg.ReminderWindow(), cfg.SchedulerNotify)
	summary, err := s.Run(ctx, time.Now().In(cfg.Location()))
	if err != nil {
		log.Fatalf("Scheduler failed: %v", err)
	}

	log.Printf("Scheduler completed: %d scheduled, %d skipped, %d failed of %d entries",
		summary.Scheduled, summary.Skipped, summary.Failed, summary.Total)
}
