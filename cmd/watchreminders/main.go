package main

import (
	"context"
	"log"
	"net/http"

	"animeschedule/config"
	"animeschedule/internal/apiclient"
	"animeschedule/internal/handlers"
	"animeschedule/internal/notification"
	"animeschedule/internal/queue"
	"animeschedule/internal/schedule"
	"animeschedule/internal/services"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	cfg := config.LoadConfig()

	taskQueue, err := queue.NewCloudTasksQueue(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to create task queue: %v", err)
	}
	defer taskQueue.Close()

	fetcher := schedule.NewScheduleFetcher(cfg.ScheduleFile, apiclient.NewClientFromConfig(cfg))

	handler := func(w http.ResponseWriter, r *http.Request) {
		// one notifier per request so the send finishes before the function returns
		notifications := notification.NewService(cfg)
		defer notifications.Close()

		h := &handlers.ReminderHTTPHandler{
			Processor: &services.ReminderProcessor{
				Fetcher:  fetcher,
				Notifier: notifications,
				Location: cfg.Location(),
			},
			Queue:    taskQueue,
			Interval: cfg.MessageInterval(),
		}
		h.ServeHTTP(w, r)
	}

	funcframework.RegisterHTTPFunction("/", handler)
	if err := funcframework.Start(cfg.Port); err != nil {
		log.Fatalf("Failed to start function: %v", err)
	}
}
