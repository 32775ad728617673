package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"animeschedule/internal/models"
	"animeschedule/internal/services"
)

// Rescheduler enqueues the next check of a pending reminder.
type Rescheduler interface {
	Enqueue(ctx context.Context, payload models.Payload, deliverAt time.Time) error
}

// ReminderProcessor is satisfied by *services.ReminderProcessor.
type ReminderProcessor interface {
	Process(ctx context.Context, payload models.Payload, now time.Time) (services.ProcessResult, error)
}

// ReminderHTTPHandler is the Cloud Tasks HTTP target for reminder jobs.
type ReminderHTTPHandler struct {
	Processor ReminderProcessor
	Queue     Rescheduler
	Interval  time.Duration
	Now       func() time.Time
}

func (h *ReminderHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	payload, err := parseRequestPayload(r)
	if err != nil {
		log.Printf("Rejecting reminder request: %v", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}

	skip, err := services.ShouldSkipExecution(payload, now)
	if err != nil {
		http.Error(w, "Invalid execution_end format", http.StatusBadRequest)
		return
	}
	if skip {
		w.WriteHeader(http.StatusOK)
		return
	}

	result, err := h.Processor.Process(r.Context(), payload, now)
	if err != nil {
		log.Printf("Failed to process reminder for %s: %v", payload.Reminder.AnimeID, err)
		http.Error(w, "Failed to process reminder", http.StatusBadGateway)
		return
	}

	log.Printf("Reminder %s status: %s, should reschedule: %v", payload.Reminder.AnimeID, result.Status, result.ShouldReschedule)

	if result.ShouldReschedule {
		next := now.Add(h.Interval)
		if err := h.Queue.Enqueue(r.Context(), payload, next); err != nil {
			log.Printf("Failed to schedule next check: %v", err)
			http.Error(w, "Failed to schedule next check", http.StatusInternalServerError)
			return
		}
		log.Printf("Successfully scheduled next check for %s at %s", payload.Reminder.AnimeID, next.Format(time.RFC3339))
	}

	w.WriteHeader(http.StatusOK)
}

func parseRequestPayload(r *http.Request) (models.Payload, error) {
	var payload models.Payload

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return payload, fmt.Errorf("failed to read request body: %w", err)
	}

	log.Printf("Raw body: %s", body)

	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, fmt.Errorf("invalid request payload: %w", err)
	}
	if payload.Reminder.AnimeID == "" {
		return payload, fmt.Errorf("reminder animeId is required")
	}

	return payload, nil
}
