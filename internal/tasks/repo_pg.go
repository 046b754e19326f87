package tasks

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const taskColumns = `id, image_url, ocr_text, corrected_text, assigned_to, status, source, created_at, updated_at, submitted_at`

// Create inserts a new task.
func (r *PGRepo) Create(ctx context.Context, t *Task) error {
	const query = `
INSERT INTO ocr_tasks (
    id,
    image_url,
    ocr_text,
    corrected_text,
    assigned_to,
    status,
    source,
    created_at,
    updated_at,
    submitted_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	var assignedTo sql.NullString
	if t.AssignedTo != "" {
		assignedTo = sql.NullString{String: t.AssignedTo, Valid: true}
	}
	var submittedAt sql.NullTime
	if t.SubmittedAt != nil {
		submittedAt = sql.NullTime{Time: *t.SubmittedAt, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		t.ID,
		t.ImageURL,
		t.OCRText,
		t.CorrectedText,
		assignedTo,
		string(t.Status),
		string(t.Source),
		t.CreatedAt,
		t.UpdatedAt,
		submittedAt,
	)
	return err
}

// GetForUser fetches a task owned by the given user.
func (r *PGRepo) GetForUser(ctx context.Context, userID, taskID string) (*Task, error) {
	const query = `
SELECT ` + taskColumns + `
FROM ocr_tasks
WHERE id = $1 AND assigned_to = $2
LIMIT 1`

	t, err := scanTask(r.DB.QueryRowContext(ctx, query, taskID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// ClaimNext assigns the oldest claimable task to userID in a single
// statement. FOR UPDATE SKIP LOCKED guarantees two concurrent callers
// never win the same row.
func (r *PGRepo) ClaimNext(ctx context.Context, userID string, now time.Time) (*Task, error) {
	const query = `
UPDATE ocr_tasks
SET assigned_to = $1, status = 'in_progress', updated_at = $2
WHERE id = (
    SELECT id FROM ocr_tasks
    WHERE status = 'assigned' AND (assigned_to IS NULL OR assigned_to = $1)
    ORDER BY created_at
    LIMIT 1
    FOR UPDATE SKIP LOCKED
)
RETURNING ` + taskColumns

	t, err := scanTask(r.DB.QueryRowContext(ctx, query, userID, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoTaskAvailable
		}
		return nil, err
	}
	return t, nil
}

// Submit stores the corrected text and moves the task to submitted. The
// status guard in the WHERE clause makes a second submit a no-op; the
// follow-up lookup distinguishes "already submitted" from "not yours".
func (r *PGRepo) Submit(ctx context.Context, userID, taskID, correctedText string, now time.Time) (*Task, error) {
	const query = `
UPDATE ocr_tasks
SET corrected_text = $1, status = 'submitted', updated_at = $2, submitted_at = COALESCE(submitted_at, $2)
WHERE id = $3 AND assigned_to = $4 AND status = 'in_progress'
RETURNING ` + taskColumns

	t, err := scanTask(r.DB.QueryRowContext(ctx, query, correctedText, now, taskID, userID))
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	existing, getErr := r.GetForUser(ctx, userID, taskID)
	if getErr != nil {
		return nil, ErrNotFound
	}
	if existing.Status == StatusSubmitted || existing.Status == StatusApproved {
		return nil, ErrAlreadySubmitted
	}
	return nil, ErrNotFound
}

// ListByUser lists a user's tasks newest-first with pagination, returning
// the page and the total matching count.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, f ListFilter) ([]*Task, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	args := []any{userID}
	where := `assigned_to = $1`
	if f.Status != "" {
		where += ` AND status = $2`
		args = append(args, string(f.Status))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM ocr_tasks WHERE ` + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
SELECT ` + taskColumns + `
FROM ocr_tasks
WHERE ` + where + `
ORDER BY updated_at DESC`
	if f.Status != "" {
		query += `
LIMIT $3 OFFSET $4`
	} else {
		query += `
LIMIT $2 OFFSET $3`
	}
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

// Recent returns the user's most recently updated tasks.
func (r *PGRepo) Recent(ctx context.Context, userID string, limit int) ([]*Task, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `
SELECT ` + taskColumns + `
FROM ocr_tasks
WHERE assigned_to = $1
ORDER BY updated_at DESC
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CountsByUser aggregates the user's tasks by status in one query.
func (r *PGRepo) CountsByUser(ctx context.Context, userID string) (Counts, error) {
	const query = `
SELECT
    COUNT(*),
    COUNT(*) FILTER (WHERE status = 'in_progress'),
    COUNT(*) FILTER (WHERE status = 'submitted'),
    COUNT(*) FILTER (WHERE status = 'approved')
FROM ocr_tasks
WHERE assigned_to = $1`

	var c Counts
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&c.Assigned, &c.InProgress, &c.Submitted, &c.Approved)
	if err != nil {
		return Counts{}, err
	}
	return c, nil
}

// CountUpdatedSince counts the user's tasks touched at or after cutoff.
func (r *PGRepo) CountUpdatedSince(ctx context.Context, userID string, cutoff time.Time) (int, error) {
	const query = `
SELECT COUNT(*)
FROM ocr_tasks
WHERE assigned_to = $1 AND updated_at >= $2`

	var n int
	if err := r.DB.QueryRowContext(ctx, query, userID, cutoff).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// MonthlyProgress buckets the user's tasks by the calendar month they
// were created in.
func (r *PGRepo) MonthlyProgress(ctx context.Context, userID string, since time.Time) ([]MonthBucket, error) {
	const query = `
SELECT
    EXTRACT(YEAR FROM created_at)::int,
    EXTRACT(MONTH FROM created_at)::int,
    COUNT(*),
    COUNT(*) FILTER (WHERE status = 'submitted'),
    COUNT(*) FILTER (WHERE status = 'approved')
FROM ocr_tasks
WHERE assigned_to = $1 AND created_at >= $2
GROUP BY 1, 2
ORDER BY 1, 2`

	rows, err := r.DB.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthBucket
	for rows.Next() {
		var b MonthBucket
		if err := rows.Scan(&b.Year, &b.Month, &b.Total, &b.Submitted, &b.Approved); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	var t Task
	var correctedText sql.NullString
	var assignedTo sql.NullString
	var status, source string
	var submittedAt sql.NullTime
	err := row.Scan(
		&t.ID,
		&t.ImageURL,
		&t.OCRText,
		&correctedText,
		&assignedTo,
		&status,
		&source,
		&t.CreatedAt,
		&t.UpdatedAt,
		&submittedAt,
	)
	if err != nil {
		return nil, err
	}
	if correctedText.Valid {
		t.CorrectedText = correctedText.String
	}
	if assignedTo.Valid {
		t.AssignedTo = assignedTo.String
	}
	t.Status = Status(status)
	t.Source = Source(source)
	if submittedAt.Valid {
		at := submittedAt.Time
		t.SubmittedAt = &at
	}
	return &t, nil
}

var _ Repo = (*PGRepo)(nil)
