package reports

import (
	"context"
	"math"
	"time"

	"odialipi-backend/internal/tasks"
)

// Service computes per-user contribution statistics from the task store.
type Service struct {
	Tasks tasks.Repo
	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

// Stats is the full per-user overview shown on the stats page.
type Stats struct {
	tasks.Counts
	// CompletionRate is submitted over assigned, as a whole percentage.
	CompletionRate int `json:"completionRate"`
	// AccuracyRate is approved over submitted, as a whole percentage.
	AccuracyRate int `json:"accuracyRate"`
	// RecentActivity counts tasks touched in the trailing seven days.
	RecentActivity int `json:"recentActivity"`
}

// HomeStats is the compact subset rendered on the landing page.
type HomeStats struct {
	Assigned  int `json:"assigned"`
	Submitted int `json:"submitted"`
	Approved  int `json:"approved"`
}

// Overview returns the user's full statistics.
func (s *Service) Overview(ctx context.Context, userID string) (Stats, error) {
	counts, err := s.Tasks.CountsByUser(ctx, userID)
	if err != nil {
		return Stats{}, err
	}

	cutoff := s.now().Add(-7 * 24 * time.Hour)
	recent, err := s.Tasks.CountUpdatedSince(ctx, userID, cutoff)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		Counts:         counts,
		CompletionRate: ratePct(counts.Submitted, counts.Assigned),
		AccuracyRate:   ratePct(counts.Approved, counts.Submitted),
		RecentActivity: recent,
	}, nil
}

// Home returns the landing-page subset of the user's statistics.
func (s *Service) Home(ctx context.Context, userID string) (HomeStats, error) {
	counts, err := s.Tasks.CountsByUser(ctx, userID)
	if err != nil {
		return HomeStats{}, err
	}
	return HomeStats{
		Assigned:  counts.Assigned,
		Submitted: counts.Submitted,
		Approved:  counts.Approved,
	}, nil
}

// MonthlyProgress returns per-month activity buckets for the trailing
// window. months defaults to six when out of range.
func (s *Service) MonthlyProgress(ctx context.Context, userID string, months int) ([]tasks.MonthBucket, error) {
	if months < 1 || months > 24 {
		months = 6
	}
	since := s.now().AddDate(0, -months, 0)
	buckets, err := s.Tasks.MonthlyProgress(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	if buckets == nil {
		buckets = []tasks.MonthBucket{}
	}
	return buckets, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// ratePct returns num/den as a rounded whole percentage, 0 when den is 0.
func ratePct(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(den) * 100))
}
