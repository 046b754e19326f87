package tasks

import "time"

// Status is the lifecycle state of a correction task.
type Status string

const (
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusSubmitted  Status = "submitted"
	StatusApproved   Status = "approved"
)

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusAssigned, StatusInProgress, StatusSubmitted, StatusApproved:
		return true
	}
	return false
}

// Label returns a human-readable name for the status.
func (s Status) Label() string {
	switch s {
	case StatusAssigned:
		return "Assigned"
	case StatusInProgress:
		return "In Progress"
	case StatusSubmitted:
		return "Submitted"
	case StatusApproved:
		return "Approved"
	}
	return string(s)
}

// Source records how a task entered the system.
type Source string

const (
	SourceUpload Source = "upload"
	SourceSystem Source = "system"
)

// Valid reports whether s is a known task source.
func (s Source) Valid() bool {
	switch s {
	case SourceUpload, SourceSystem:
		return true
	}
	return false
}

// Task is a single OCR correction unit: a page image, the raw machine
// text extracted from it, and the human-corrected version.
type Task struct {
	ID            string     `json:"id"`
	ImageURL      string     `json:"imageUrl"`
	OCRText       string     `json:"ocrText"`
	CorrectedText string     `json:"correctedText,omitempty"`
	AssignedTo    string     `json:"assignedTo,omitempty"`
	Status        Status     `json:"status"`
	Source        Source     `json:"source"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	SubmittedAt   *time.Time `json:"submittedAt,omitempty"`
}
