package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"animeschedule/config"
	"animeschedule/internal/models"
	"animeschedule/internal/tasks"

	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"github.com/hibiken/asynq"
)

var (
	_ ReminderQueue = (*CloudTasksQueue)(nil)
	_ ReminderQueue = (*AsynqQueue)(nil)
)

type mockCloudTasksClient struct {
	requests []*taskspb.CreateTaskRequest
	err      error
	closed   bool
}

func (m *mockCloudTasksClient) CreateTask(ctx context.Context, req *taskspb.CreateTaskRequest) (*taskspb.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.requests = append(m.requests, req)
	return req.Task, nil
}

func (m *mockCloudTasksClient) Close() error {
	m.closed = true
	return nil
}

func testPayload() models.Payload {
	return models.Payload{
		Reminder: models.Reminder{AnimeID: "frieren", Title: "Frieren", Day: "jumat"},
		AiringAt: "2025-01-17T15:00:00Z",
	}
}

func TestCloudTasksQueue_Enqueue(t *testing.T) {
	cfg := &config.Config{
		ProjectID:      "proj",
		LocationID:     "asia-southeast2",
		QueueID:        "reminders",
		HandlerAddress: "https://example.com/reminder",
	}
	client := &mockCloudTasksClient{}
	q := NewCloudTasksQueueWithClient(client, cfg)

	deliverAt := time.Date(2025, 1, 17, 15, 0, 0, 0, time.UTC)
	if err := q.Enqueue(context.Background(), testPayload(), deliverAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(client.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(client.requests))
	}
	req := client.requests[0]
	if req.Parent != "projects/proj/locations/asia-southeast2/queues/reminders" {
		t.Errorf("unexpected parent %q", req.Parent)
	}
	if !req.Task.ScheduleTime.AsTime().Equal(deliverAt) {
		t.Errorf("unexpected schedule time %v", req.Task.ScheduleTime.AsTime())
	}

	httpReq := req.Task.GetHttpRequest()
	if httpReq.Url != cfg.HandlerAddress || httpReq.HttpMethod != taskspb.HttpMethod_POST {
		t.Errorf("unexpected http target %s %s", httpReq.HttpMethod, httpReq.Url)
	}

	var body models.Payload
	if err := json.Unmarshal(httpReq.Body, &body); err != nil {
		t.Fatalf("body is not a payload: %v", err)
	}
	if body.Reminder.AnimeID != "frieren" {
		t.Errorf("unexpected body %+v", body)
	}

	if err := q.Close(); err != nil || !client.closed {
		t.Errorf("expected client to be closed")
	}
}

func TestCloudTasksQueue_EnqueueError(t *testing.T) {
	q := NewCloudTasksQueueWithClient(&mockCloudTasksClient{err: errors.New("permission denied")}, &config.Config{})
	if err := q.Enqueue(context.Background(), testPayload(), time.Now()); err == nil {
		t.Fatal("expected error")
	}
}

type mockAsynqClient struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (m *mockAsynqClient) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.tasks = append(m.tasks, task)
	m.opts = append(m.opts, opts)
	return &asynq.TaskInfo{ID: "id-1", Queue: "default"}, nil
}

func (m *mockAsynqClient) Close() error { return nil }

func TestAsynqQueue_Enqueue(t *testing.T) {
	client := &mockAsynqClient{}
	q := &AsynqQueue{client: client}

	deliverAt := time.Date(2025, 1, 17, 15, 0, 0, 0, time.UTC)
	if err := q.Enqueue(context.Background(), testPayload(), deliverAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.tasks) != 1 || client.tasks[0].Type() != tasks.TypeAnimeReminder {
		t.Fatalf("expected one reminder task, got %v", client.tasks)
	}

	var sawProcessAt, sawTaskID bool
	for _, opt := range client.opts[0] {
		switch opt.Type() {
		case asynq.ProcessAtOpt:
			sawProcessAt = opt.Value().(time.Time).Equal(deliverAt)
		case asynq.TaskIDOpt:
			sawTaskID = opt.Value().(string) == tasks.ReminderTaskID(testPayload())
		}
	}
	if !sawProcessAt || !sawTaskID {
		t.Errorf("expected ProcessAt and TaskID options, got %v", client.opts[0])
	}
}

func TestAsynqQueue_DuplicateIsNotAnError(t *testing.T) {
	q := &AsynqQueue{client: &mockAsynqClient{err: asynq.ErrTaskIDConflict}}
	if err := q.Enqueue(context.Background(), testPayload(), time.Now()); err != nil {
		t.Errorf("expected duplicate reminder to be ignored, got %v", err)
	}
}

func TestAsynqQueue_EnqueueError(t *testing.T) {
	q := &AsynqQueue{client: &mockAsynqClient{err: errors.New("redis down")}}
	if err := q.Enqueue(context.Background(), testPayload(), time.Now()); err == nil {
		t.Fatal("expected error")
	}
}
