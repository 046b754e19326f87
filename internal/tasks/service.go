package tasks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"odialipi-backend/internal/shared/storage/object"
	"odialipi-backend/internal/shared/telemetry"
	"odialipi-backend/internal/vision"
)

// Service owns the upload-to-task flow: store the image, run text
// extraction, and create the task already assigned to the uploader.
type Service struct {
	Repo           Repo
	Store          object.ObjectStore
	Vision         vision.Client
	VisionTimeout  time.Duration
	MaxUploadBytes int64
}

// CreateFromUpload stores an uploaded page image, extracts its text, and
// creates an in_progress task owned by the uploader. If extraction fails
// the stored image is removed so no orphan blob remains.
func (s *Service) CreateFromUpload(ctx context.Context, userID, fileName string, r io.Reader) (*Task, error) {
	maxBytes := s.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, ErrInvalidInput
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrUnsupportedType
	}

	storageKey, _, _, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	timeout := s.VisionTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	extractCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ocrText, err := s.Vision.Extract(extractCtx, data, mimeType)
	if err != nil {
		if delErr := s.Store.Delete(context.WithoutCancel(ctx), storageKey); delErr != nil {
			telemetry.Error("upload cleanup failed", map[string]any{
				"storage_key": storageKey,
				"error":       delErr.Error(),
			})
		}
		return nil, err
	}

	now := nowUTC()
	task := &Task{
		ID:         uuid.NewString(),
		ImageURL:   "/uploads/" + storageKey,
		OCRText:    ocrText,
		AssignedTo: userID,
		Status:     StatusInProgress,
		Source:     SourceUpload,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	telemetry.Info("task created from upload", map[string]any{
		"task_id":   task.ID,
		"user_id":   userID,
		"mime_type": mimeType,
	})
	return task, nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
