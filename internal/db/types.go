package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents one extraction run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	SourceURL   string     `json:"source_url"`
	Locale      string     `json:"locale"`
	Status      string     `json:"status"`
	TextLength  int        `json:"text_length"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Run status constants
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Artifact step constants for known artifact types
const (
	StepCaptureText     = "capture_text"
	StepCaptureHTML     = "capture_html"
	StepClassifiedLines = "classified_lines"
	StepProfile         = "profile"
)
