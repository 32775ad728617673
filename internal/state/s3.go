package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"animeschedule/config"
)

// ErrObjectNotFound is returned by an ObjectClient for a missing key.
var ErrObjectNotFound = errors.New("object not found")

// ObjectClient is the byte-level object API ObjectStore needs.
type ObjectClient interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error
}

// ObjectStore keeps the state as a single JSON object in an S3-compatible bucket.
type ObjectStore struct {
	Client ObjectClient
	Bucket string
	Key    string
}

func (o *ObjectStore) Load(ctx context.Context) (*State, error) {
	data, err := o.Client.GetObject(ctx, o.Bucket, o.Key)
	if errors.Is(err, ErrObjectNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get state object %s/%s: %w", o.Bucket, o.Key, err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse state object: %w", err)
	}
	return &s, nil
}

func (o *ObjectStore) Save(ctx context.Context, s *State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := o.Client.PutObject(ctx, o.Bucket, o.Key, data, "application/json"); err != nil {
		return fmt.Errorf("failed to put state object %s/%s: %w", o.Bucket, o.Key, err)
	}
	return nil
}

// MinioClient adapts a minio client to ObjectClient.
type MinioClient struct {
	client *minio.Client
}

func NewMinioClient(endpoint, accessKey, secretKey string, useSSL bool) (*MinioClient, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}
	return &MinioClient{client: client}, nil
}

func (m *MinioClient) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	if _, err := obj.Stat(); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return io.ReadAll(obj)
}

func (m *MinioClient) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := m.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

// EnsureBucket creates bucket when it does not exist yet.
func (m *MinioClient) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	log.Printf("Creating state bucket %s", bucket)
	if err := m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}

// NewStoreFromConfig builds the Store selected by STATE_BACKEND.
func NewStoreFromConfig(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StateBackend {
	case "", "file":
		log.Printf("Using file state store at %s", cfg.StateFile)
		return NewFileStore(cfg.StateFile), nil
	case "s3":
		client, err := NewMinioClient(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3UseSSL)
		if err != nil {
			return nil, err
		}
		if err := client.EnsureBucket(ctx, cfg.S3Bucket); err != nil {
			return nil, err
		}
		log.Printf("Using object state store at %s/%s", cfg.S3Bucket, cfg.S3StateKey)
		return &ObjectStore{Client: client, Bucket: cfg.S3Bucket, Key: cfg.S3StateKey}, nil
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.StateBackend)
	}
}
