// Package translation contains the domain model for deferred content
// translation: the persisted job state machine and per-field records.
package translation

import (
	"time"

	"github.com/google/uuid"
)

// ContentType identifies what a translation job refers to
type ContentType string

const (
	ContentRecipe     ContentType = "recipe"
	ContentNewsletter ContentType = "newsletter"
)

// Valid reports whether the content type is known
func (c ContentType) Valid() bool {
	return c == ContentRecipe || c == ContentNewsletter
}

// Priority orders pending jobs. It is advisory only.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// JobStatus is the translation job state machine:
// pending -> processing -> completed | failed
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// DefaultMaxRetries is recorded on new jobs. Nothing in the pipeline
// re-drives a failed job automatically; retry is a manual re-dispatch.
const DefaultMaxRetries = 3

// Job represents one persisted unit of deferred translation work.
// It is created pending by content owners and mutated only by the
// translation processor.
type Job struct {
	id             uuid.UUID
	contentType    ContentType
	contentID      uuid.UUID
	targetLanguage string
	priority       Priority
	status         JobStatus
	retryCount     int
	maxRetries     int
	errorMessage   string
	fieldCount     int
	processedAt    *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// NewJob creates a pending translation job
func NewJob(contentType ContentType, contentID uuid.UUID, targetLanguage string, priority Priority) (*Job, error) {
	if !contentType.Valid() {
		return nil, ErrInvalidContentType
	}
	if contentID == uuid.Nil {
		return nil, ErrMissingContentID
	}
	if targetLanguage == "" {
		return nil, ErrMissingTargetLanguage
	}
	if priority == "" {
		priority = PriorityNormal
	}

	now := time.Now().UTC()
	return &Job{
		id:             uuid.New(),
		contentType:    contentType,
		contentID:      contentID,
		targetLanguage: targetLanguage,
		priority:       priority,
		status:         JobPending,
		maxRetries:     DefaultMaxRetries,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ID returns the job identifier
func (j *Job) ID() uuid.UUID { return j.id }

// ContentType returns what kind of content the job translates
func (j *Job) ContentType() ContentType { return j.contentType }

// ContentID returns the translated content's identifier
func (j *Job) ContentID() uuid.UUID { return j.contentID }

// TargetLanguage returns the translation target language code
func (j *Job) TargetLanguage() string { return j.targetLanguage }

// Priority returns the job priority
func (j *Job) Priority() Priority { return j.priority }

// Status returns the current job status
func (j *Job) Status() JobStatus { return j.status }

// RetryCount returns how many times the job has been retried
func (j *Job) RetryCount() int { return j.retryCount }

// MaxRetries returns the configured retry ceiling
func (j *Job) MaxRetries() int { return j.maxRetries }

// ErrorMessage returns the failure message, if the job failed
func (j *Job) ErrorMessage() string { return j.errorMessage }

// FieldCount returns how many fields were translated on completion
func (j *Job) FieldCount() int { return j.fieldCount }

// ProcessedAt returns when processing finished, if it has
func (j *Job) ProcessedAt() *time.Time { return j.processedAt }

// CreatedAt returns when the job was enqueued
func (j *Job) CreatedAt() time.Time { return j.createdAt }

// UpdatedAt returns when the job last changed state
func (j *Job) UpdatedAt() time.Time { return j.updatedAt }

// Start transitions pending -> processing
func (j *Job) Start() error {
	if j.status != JobPending {
		return ErrNotPending
	}
	j.status = JobProcessing
	j.touch()
	return nil
}

// Complete transitions processing -> completed, recording how many
// fields were translated
func (j *Job) Complete(translatedFields int) error {
	if j.status != JobProcessing {
		return ErrNotProcessing
	}
	now := time.Now().UTC()
	j.status = JobCompleted
	j.fieldCount = translatedFields
	j.processedAt = &now
	j.errorMessage = ""
	j.touch()
	return nil
}

// Fail transitions processing -> failed with the captured error message
func (j *Job) Fail(message string) error {
	if j.status != JobProcessing {
		return ErrNotProcessing
	}
	now := time.Now().UTC()
	j.status = JobFailed
	j.errorMessage = message
	j.processedAt = &now
	j.touch()
	return nil
}

func (j *Job) touch() {
	j.updatedAt = time.Now().UTC()
}

// JobSnapshot is a flat view of a Job used by persistence mappers
type JobSnapshot struct {
	ID             uuid.UUID
	ContentType    ContentType
	ContentID      uuid.UUID
	TargetLanguage string
	Priority       Priority
	Status         JobStatus
	RetryCount     int
	MaxRetries     int
	ErrorMessage   string
	FieldCount     int
	ProcessedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ToSnapshot returns a flat copy of the job's state
func (j *Job) ToSnapshot() JobSnapshot {
	return JobSnapshot{
		ID:             j.id,
		ContentType:    j.contentType,
		ContentID:      j.contentID,
		TargetLanguage: j.targetLanguage,
		Priority:       j.priority,
		Status:         j.status,
		RetryCount:     j.retryCount,
		MaxRetries:     j.maxRetries,
		ErrorMessage:   j.errorMessage,
		FieldCount:     j.fieldCount,
		ProcessedAt:    j.processedAt,
		CreatedAt:      j.createdAt,
		UpdatedAt:      j.updatedAt,
	}
}

// ReconstituteJob rebuilds a Job from a persisted snapshot
func ReconstituteJob(s JobSnapshot) *Job {
	return &Job{
		id:             s.ID,
		contentType:    s.ContentType,
		contentID:      s.ContentID,
		targetLanguage: s.TargetLanguage,
		priority:       s.Priority,
		status:         s.Status,
		retryCount:     s.RetryCount,
		maxRetries:     s.MaxRetries,
		errorMessage:   s.ErrorMessage,
		fieldCount:     s.FieldCount,
		processedAt:    s.ProcessedAt,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
	}
}
