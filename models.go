package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/portfolioparser/internal/database"
	"github.com/muhammadolammi/portfolioparser/internal/resume"
)

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Repository is the subset of database.Queries the service needs.
type Repository interface {
	CreateUpload(ctx context.Context, arg database.CreateUploadParams) (database.Upload, error)
	GetUpload(ctx context.Context, id uuid.UUID) (database.Upload, error)
	GetUploadByStoredName(ctx context.Context, storedName string) (database.Upload, error)
	CreateParseJob(ctx context.Context, arg database.CreateParseJobParams) (database.ParseJob, error)
	GetParseJob(ctx context.Context, id uuid.UUID) (database.ParseJob, error)
	UpdateParseJobStatus(ctx context.Context, arg database.UpdateParseJobStatusParams) error
	CompleteParseJob(ctx context.Context, arg database.CompleteParseJobParams) error
	FailParseJob(ctx context.Context, arg database.FailParseJobParams) error
}

type ResultCache interface {
	Get(ctx context.Context, hash string) (resume.PortfolioData, error)
	Set(ctx context.Context, hash string, data resume.PortfolioData) error
}

type Publisher interface {
	PublishJob(job ParseJobMessage) error
	PublishUpdate(update ParseUpdate) error
}

// ParseJobMessage is the body of a message on the parse_jobs queue.
type ParseJobMessage struct {
	JobID    uuid.UUID `json:"job_id"`
	UploadID uuid.UUID `json:"upload_id"`
}

// ParseUpdate is published to the parse_updates exchange on every status change.
type ParseUpdate struct {
	JobID     uuid.UUID `json:"job_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type ParseRequest struct {
	FileName string `json:"fileName"`
}

type UploadResponse struct {
	Message  string `json:"message"`
	FileName string `json:"fileName"`
}

type ParseJobResponse struct {
	JobID  uuid.UUID       `json:"jobId"`
	Status string          `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type GenerateResponse struct {
	WebsiteURL string `json:"websiteUrl"`
	Message    string `json:"message"`
}
