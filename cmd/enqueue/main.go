package main

import (
	"encoding/json"
	"flag"
	"log"
	"time"

	"animeschedule/config"
	"animeschedule/internal/models"
	"animeschedule/internal/schedule"
	"animeschedule/internal/tasks"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	animeID := flag.String("anime", "", "Anime ID to remind about (required)")
	title := flag.String("title", "", "Title shown in the reminder")
	day := flag.String("day", "", "Schedule day of the release (defaults to today)")
	window := flag.Duration("window", 30*time.Minute, "Max execution duration")
	delay := flag.Duration("delay", 0, "Delay before first execution")
	notify := flag.Bool("notify", true, "Send Discord notifications")
	flag.Parse()

	if *animeID == "" {
		log.Fatal("--anime flag is required")
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	cfg := config.LoadConfig()

	client := asynq.NewClient(tasks.RedisOpt(cfg))
	defer client.Close()

	now := time.Now().In(cfg.Location())
	bucket, ok := schedule.ParseDayBucket(*day)
	if !ok {
		bucket = schedule.BucketForWeekday(now.Weekday())
	}

	airingAt := now.Add(*delay)
	executionEnd := airingAt.Add(*window).Format(time.RFC3339)
	payload := models.Payload{
		Reminder:     models.Reminder{AnimeID: *animeID, Title: *title, Day: string(bucket)},
		AiringAt:     airingAt.Truncate(time.Minute).Format(time.RFC3339),
		ExecutionEnd: &executionEnd,
		ShouldNotify: notify,
	}

	task, err := tasks.NewReminderTask(payload)
	if err != nil {
		log.Fatalf("Failed to create task: %v", err)
	}

	opts := []asynq.Option{asynq.TaskID(tasks.ReminderTaskID(payload))}
	if *delay > 0 {
		opts = append(opts, asynq.ProcessIn(*delay))
	}

	info, err := client.Enqueue(task, opts...)
	if err != nil {
		log.Fatalf("Failed to enqueue task: %v", err)
	}

	payloadJSON, _ := json.MarshalIndent(payload, "", "  ")
	log.Printf("Task enqueued successfully:")
	log.Printf("  ID:       %s", info.ID)
	log.Printf("  Queue:    %s", info.Queue)
	log.Printf("  Anime:    %s", *animeID)
	log.Printf("  Payload:  %s", payloadJSON)
	if *delay > 0 {
		log.Printf("  Delay:    %v", *delay)
	}
}
