package notification

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"animeschedule/config"
)

const (
	configKeyToken   = "DISCORD_BOT_TOKEN"
	configKeyChannel = "DISCORD_CHANNEL_ID"
)

// messageSender is the subset of *discordgo.Session used for sending.
type messageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	Close() error
}

type DiscordNotifier struct {
	session   messageSender
	channelID string
	now       func() time.Time
}

func NewDiscordNotifier(config NotifierConfig) (*DiscordNotifier, error) {
	token, exists := config.Config[configKeyToken]
	if !exists || token == "" {
		return nil, fmt.Errorf("%s not found in config", configKeyToken)
	}
	channelID := config.Config[configKeyChannel]
	if channelID == "" {
		return nil, fmt.Errorf("%s not found in config", configKeyChannel)
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
		now:       time.Now,
	}, nil
}

// SendNotification sends a single message to the configured channel.
func (d *DiscordNotifier) SendNotification(ctx context.Context, message string) (<-chan NotificationResult, error) {
	resultChan := make(chan NotificationResult, 1)
	notificationID := uuid.New().String()

	go func() {
		defer close(resultChan)

		result := NotificationResult{
			ID:        notificationID,
			Timestamp: d.now(),
		}

		log.Printf("Sending Discord message: %s", message)

		_, err := d.session.ChannelMessageSend(d.channelID, message, discordgo.WithContext(ctx))
		if err != nil {
			result.Error = fmt.Errorf("failed to send Discord message: %w", err)
			result.Success = false
		} else {
			result.Success = true
			log.Printf("Discord notification sent successfully: %s", notificationID)
		}

		resultChan <- result
	}()

	return resultChan, nil
}

func (d *DiscordNotifier) Close() error {
	if d.session != nil {
		return d.session.Close()
	}
	return nil
}

// FormatMessage renders req as a Discord message.
func (d *DiscordNotifier) FormatMessage(req NotificationRequest) string {
	var b strings.Builder

	switch req.Kind {
	case KindLive:
		b.WriteString("📺 " + req.Title + " sedang tayang")
		if req.TimeText != "" {
			b.WriteString(" (" + req.TimeText + ")")
		}
	default:
		b.WriteString("⏰ Pengingat: " + req.Title)
		if req.TimeText != "" {
			b.WriteString(" tayang " + req.TimeText)
		}
	}
	b.WriteString("\n")

	if req.Day != "" {
		b.WriteString("📅 " + req.Day + "\n")
	}
	if genres, ok := req.Data["genres"]; ok && genres != "" {
		b.WriteString("🏷️ " + genres + "\n")
	}
	if score, ok := req.Data["score"]; ok && score != "" {
		b.WriteString("⭐ " + score + "\n")
	}

	now := time.Now
	if d.now != nil {
		now = d.now
	}
	b.WriteString("\n*Notification sent at " + now().Format("15:04:05 MST") + "*")
	return b.String()
}

// LoadDiscordConfig reads the bot token and channel from cfg.
func LoadDiscordConfig(cfg *config.Config) (NotifierConfig, error) {
	nc := NotifierConfig{
		Config: make(map[string]string),
	}

	if cfg.DiscordBotToken == "" {
		return nc, fmt.Errorf("%s environment variable is required", configKeyToken)
	}
	if cfg.DiscordChannelID == "" {
		return nc, fmt.Errorf("%s environment variable is required", configKeyChannel)
	}

	nc.Config[configKeyToken] = cfg.DiscordBotToken
	nc.Config[configKeyChannel] = cfg.DiscordChannelID
	return nc, nil
}
