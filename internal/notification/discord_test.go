package notification

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"animeschedule/config"
)

type formatMessageTestCase struct {
	name            string
	req             NotificationRequest
	expectedContain []string
	expectedMissing []string
}

func TestDiscordNotifier_FormatMessage(t *testing.T) {
	testCases := []formatMessageTestCase{
		{
			name: "LiveWithTime",
			req: NotificationRequest{
				Kind:     KindLive,
				AnimeID:  "one-piece",
				Title:    "One Piece",
				TimeText: "02:15",
				Day:      "Rabu",
			},
			expectedContain: []string{"📺 One Piece sedang tayang (02:15)", "📅 Rabu", "*Notification sent at"},
			expectedMissing: []string{"⏰", "⭐"},
		},
		{
			name: "ReminderWithDetails",
			req: NotificationRequest{
				Kind:     KindReminder,
				Title:    "Frieren",
				TimeText: "H-1 5:00",
				Data:     map[string]string{"genres": "Adventure, Fantasy", "score": "9.1"},
			},
			expectedContain: []string{"⏰ Pengingat: Frieren tayang H-1 5:00", "🏷️ Adventure, Fantasy", "⭐ 9.1"},
			expectedMissing: []string{"📺", "📅"},
		},
		{
			name:            "LiveWithoutTime",
			req:             NotificationRequest{Kind: KindLive, Title: "Bleach"},
			expectedContain: []string{"📺 Bleach sedang tayang\n"},
			expectedMissing: []string{"()"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			discordNotifier := &DiscordNotifier{}

			message := discordNotifier.FormatMessage(tc.req)

			for _, s := range tc.expectedContain {
				if !strings.Contains(message, s) {
					t.Errorf("Expected message to contain '%s', got: %s", s, message)
				}
			}
			for _, s := range tc.expectedMissing {
				if strings.Contains(message, s) {
					t.Errorf("Expected message not to contain '%s', got: %s", s, message)
				}
			}
		})
	}
}

type mockSender struct {
	channelID string
	content   string
	err       error
	closed    bool
}

func (m *mockSender) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.channelID = channelID
	m.content = content
	if m.err != nil {
		return nil, m.err
	}
	return &discordgo.Message{ID: "1", Content: content}, nil
}

func (m *mockSender) Close() error {
	m.closed = true
	return nil
}

func TestDiscordNotifier_SendNotification(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		sender := &mockSender{}
		notifier := &DiscordNotifier{session: sender, channelID: "123", now: time.Now}

		resultChan, err := notifier.SendNotification(context.Background(), "hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		result := <-resultChan
		if !result.Success || result.ID == "" {
			t.Errorf("Expected success with an id, got %+v", result)
		}
		if sender.channelID != "123" || sender.content != "hello" {
			t.Errorf("Unexpected send: channel=%s content=%s", sender.channelID, sender.content)
		}
	})

	t.Run("Failure", func(t *testing.T) {
		sender := &mockSender{err: errors.New("rate limited")}
		notifier := &DiscordNotifier{session: sender, channelID: "123", now: time.Now}

		resultChan, _ := notifier.SendNotification(context.Background(), "hello")
		result := <-resultChan
		if result.Success || result.Error == nil {
			t.Errorf("Expected failure, got %+v", result)
		}
	})

	t.Run("Close", func(t *testing.T) {
		sender := &mockSender{}
		notifier := &DiscordNotifier{session: sender}
		if err := notifier.Close(); err != nil || !sender.closed {
			t.Errorf("Expected session to be closed, err=%v", err)
		}
	})
}

func TestLoadDiscordConfig(t *testing.T) {
	if _, err := LoadDiscordConfig(&config.Config{}); err == nil {
		t.Error("Expected error without token")
	}
	if _, err := LoadDiscordConfig(&config.Config{DiscordBotToken: "t"}); err == nil {
		t.Error("Expected error without channel")
	}

	nc, err := LoadDiscordConfig(&config.Config{DiscordBotToken: "t", DiscordChannelID: "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nc.Config["DISCORD_BOT_TOKEN"] != "t" || nc.Config["DISCORD_CHANNEL_ID"] != "c" {
		t.Errorf("Unexpected config: %v", nc.Config)
	}

	notifier, err := NewDiscordNotifier(nc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notifier.channelID != "c" {
		t.Errorf("Expected channel c, got %s", notifier.channelID)
	}
}
