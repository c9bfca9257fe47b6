package async

import (
	"context"
	"errors"
	"time"
)

// ErrQueueClosed is returned when a job is enqueued after Shutdown.
var ErrQueueClosed = errors.New("queue is shutting down")

// Job asks for one document to be processed.
type Job struct {
	Path        string
	SubmittedAt time.Time
	RunID       string // generated when empty
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
