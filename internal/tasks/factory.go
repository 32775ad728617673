// internal/tasks/factory.go
package tasks

import (
	"context"
	"log"

	"animeschedule/config"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	"github.com/hibiken/asynq"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func NewCloudTasksClient(ctx context.Context, cfg *config.Config) (CloudTasksClient, error) {
	if cfg.UseEmulator && cfg.CloudTasksAddress != "" {
		log.Printf("Using local Cloud Tasks emulator at %s", cfg.CloudTasksAddress)
		// Connect to emulator using plaintext (no TLS)
		conn, err := grpc.NewClient(
			cfg.CloudTasksAddress,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			return nil, err
		}
		client, err := cloudtasks.NewClient(ctx, option.WithGRPCConn(conn))
		if err != nil {
			return nil, err
		}
		return &gcpTasksClient{client: client}, nil
	}

	// Production client with default credentials
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &gcpTasksClient{client: client}, nil
}

// RedisOpt is the asynq connection shared by the client, server and scheduler.
func RedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}
