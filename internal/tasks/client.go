package tasks

import (
	"context"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
)

// CloudTasksClient is the subset of the Cloud Tasks API the reminder queue
// calls. Tests substitute a fake.
type CloudTasksClient interface {
	CreateTask(ctx context.Context, req *taskspb.CreateTaskRequest) (*taskspb.Task, error)
	Close() error
}

type gcpTasksClient struct {
	client *cloudtasks.Client
}

var _ CloudTasksClient = (*gcpTasksClient)(nil)

func (g *gcpTasksClient) CreateTask(ctx context.Context, req *taskspb.CreateTaskRequest) (*taskspb.Task, error) {
	return g.client.CreateTask(ctx, req)
}

func (g *gcpTasksClient) Close() error {
	return g.client.Close()
}
