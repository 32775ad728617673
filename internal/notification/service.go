package notification

import (
	"context"
	"log"
	"sync"
	"time"

	"animeschedule/config"
)

const sendTimeout = 30 * time.Second

type Service struct {
	notifiers    []Notifier
	shouldNotify bool
	wg           sync.WaitGroup
}

func NewService(cfg *config.Config) *Service {
	return NewServiceWithNotificationFlag(cfg, true)
}

func NewServiceWithNotificationFlag(cfg *config.Config, shouldNotify bool) *Service {
	service := &Service{
		notifiers:    []Notifier{},
		shouldNotify: shouldNotify,
	}

	service.discoverNotifiers(cfg)
	return service
}

// NewServiceWithNotifiers builds a service over explicit notifiers.
func NewServiceWithNotifiers(shouldNotify bool, notifiers ...Notifier) *Service {
	return &Service{notifiers: notifiers, shouldNotify: shouldNotify}
}

func (s *Service) discoverNotifiers(cfg *config.Config) {
	if discordNotifier := s.tryCreateDiscordNotifier(cfg); discordNotifier != nil {
		s.notifiers = append(s.notifiers, discordNotifier)
	}
}

func (s *Service) tryCreateDiscordNotifier(cfg *config.Config) Notifier {
	nc, err := LoadDiscordConfig(cfg)
	if err != nil {
		log.Printf("Discord notifier config not found or invalid: %v", err)
		return nil
	}

	notifier, err := NewDiscordNotifier(nc)
	if err != nil {
		log.Printf("Failed to create Discord notifier: %v", err)
		return nil
	}

	log.Printf("Discord notifier created successfully")
	return notifier
}

// Enabled reports whether Notify will reach at least one notifier.
func (s *Service) Enabled() bool {
	return s.shouldNotify && len(s.notifiers) > 0
}

// Notify fans req out to every notifier asynchronously.
func (s *Service) Notify(req NotificationRequest) {
	if !s.shouldNotify {
		log.Printf("Notifications disabled for this service instance, skipping %s notification for %s", req.Kind, req.AnimeID)
		return
	}

	if len(s.notifiers) == 0 {
		log.Printf("No notifiers configured, skipping notification")
		return
	}

	for i, notifier := range s.notifiers {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.sendToNotifier(notifier, req, i)
		}()
	}
}

func (s *Service) sendToNotifier(notifier Notifier, req NotificationRequest, index int) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	message := notifier.FormatMessage(req)
	resultChan, err := notifier.SendNotification(ctx, message)
	if err != nil {
		log.Printf("Notifier %d failed to send notification: %v", index, err)
		return
	}

	select {
	case result := <-resultChan:
		if !result.Success {
			log.Printf("Notifier %d notification failed: %v", index, result.Error)
		} else {
			log.Printf("Notifier %d notification sent successfully: %s", index, result.ID)
		}
	case <-ctx.Done():
		log.Printf("Notifier %d notification timed out", index)
	}
}

// Close waits for in-flight sends, then shuts down every notifier.
func (s *Service) Close() error {
	s.wg.Wait()

	var lastErr error
	for _, notifier := range s.notifiers {
		if err := notifier.Close(); err != nil {
			log.Printf("Error closing notifier: %v", err)
			lastErr = err
		}
	}
	return lastErr
}
