// Package model defines the core data types shared across samplerev.
package model

import "time"

// SampleStatus is the lifecycle state of a sample on the backend.
type SampleStatus string

const (
	SampleActive   SampleStatus = "active"
	SampleDeleted  SampleStatus = "deleted"
	SampleArchived SampleStatus = "archived"
)

// AnnotationStatus describes whether a sample has a linked annotation.
type AnnotationStatus string

const (
	AnnotationNone     AnnotationStatus = "none"
	AnnotationLinked   AnnotationStatus = "linked"
	AnnotationConflict AnnotationStatus = "conflict"
	AnnotationError    AnnotationStatus = "error"
)

// ReviewVerdict is the stored triage verdict for a sample.
type ReviewVerdict string

const (
	VerdictKept    ReviewVerdict = "kept"
	VerdictSkipped ReviewVerdict = "skipped"
)

// Sample is a reviewable object stored in a MinIO bucket.
type Sample struct {
	ID               string           `json:"id"`
	ObjectKey        string           `json:"object_key"`
	Bucket           string           `json:"bucket"`
	FileName         string           `json:"file_name"`
	FileSize         int64            `json:"file_size"`
	ContentType      string           `json:"content_type,omitempty"`
	Status           SampleStatus     `json:"status"`
	AnnotationStatus AnnotationStatus `json:"annotation_status"`
	// Annotation holds the raw annotation payload (class counts, boxes)
	// when the listing endpoint is asked to expand it.
	Annotation map[string]any `json:"annotation,omitempty"`
	Tags       []string       `json:"tags,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Dataset is a named collection of samples.
type Dataset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SampleCount int       `json:"sample_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MinIOInstance is a registered object-store endpoint samples are
// imported from.
type MinIOInstance struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Endpoint    string    `json:"endpoint"`
	Secure      bool      `json:"secure"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ImportTaskStatus is the state of an asynchronous CSV import.
type ImportTaskStatus string

const (
	ImportPending   ImportTaskStatus = "pending"
	ImportRunning   ImportTaskStatus = "running"
	ImportCompleted ImportTaskStatus = "completed"
	ImportFailed    ImportTaskStatus = "failed"
)

// Terminal reports whether the task will make no further progress.
func (s ImportTaskStatus) Terminal() bool {
	return s == ImportCompleted || s == ImportFailed
}

// ImportTask tracks a server-side CSV import.
type ImportTask struct {
	ID                string           `json:"id"`
	Bucket            string           `json:"bucket,omitempty"`
	Status            ImportTaskStatus `json:"status"`
	TotalRows         int              `json:"total_rows"`
	Progress          int              `json:"progress"`
	Created           int              `json:"created"`
	Skipped           int              `json:"skipped"`
	Errors            int              `json:"errors"`
	AnnotationsLinked int              `json:"annotations_linked"`
	TagsCreated       int              `json:"tags_created"`
	ErrorDetails      []string         `json:"error_details,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	CompletedAt       *time.Time       `json:"completed_at,omitempty"`
}
