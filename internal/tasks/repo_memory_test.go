package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func seedPoolTask(t *testing.T, repo *MemoryRepo, id string, createdAt time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), &Task{
		ID:        id,
		ImageURL:  "/uploads/" + id + ".png",
		OCRText:   "ଅସଂଶୋଧିତ",
		Status:    StatusAssigned,
		Source:    SourceSystem,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("seed task %s: %v", id, err)
	}
}

func TestClaimNextOldestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedPoolTask(t, repo, "t2", base.Add(time.Minute))
	seedPoolTask(t, repo, "t1", base)
	seedPoolTask(t, repo, "t3", base.Add(2*time.Minute))

	ctx := context.Background()
	now := base.Add(time.Hour)

	for i, want := range []string{"t1", "t2", "t3"} {
		got, err := repo.ClaimNext(ctx, fmt.Sprintf("user-%d", i), now)
		if err != nil {
			t.Fatalf("claim %d: %v", i, err)
		}
		if got.ID != want {
			t.Errorf("claim %d = %s, want %s", i, got.ID, want)
		}
		if got.Status != StatusInProgress {
			t.Errorf("claim %d status = %s", i, got.Status)
		}
	}

	if _, err := repo.ClaimNext(ctx, "user-x", now); !errors.Is(err, ErrNoTaskAvailable) {
		t.Errorf("empty pool err = %v, want ErrNoTaskAvailable", err)
	}
}

func TestClaimNextExclusive(t *testing.T) {
	const workers = 20
	const pool = 5

	repo := NewMemoryRepo()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < pool; i++ {
		seedPoolTask(t, repo, fmt.Sprintf("t%d", i), base.Add(time.Duration(i)*time.Second))
	}

	var mu sync.Mutex
	winners := map[string]string{}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", w)
			task, err := repo.ClaimNext(context.Background(), userID, base.Add(time.Hour))
			if err != nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if prev, taken := winners[task.ID]; taken {
				t.Errorf("task %s claimed by both %s and %s", task.ID, prev, userID)
			}
			winners[task.ID] = userID
		}(w)
	}
	wg.Wait()

	if len(winners) != pool {
		t.Errorf("claimed %d tasks, want %d", len(winners), pool)
	}
}

func TestClaimNextSkipsOtherUsersTasks(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	// a pool task already earmarked for alice keeps its assigned status
	err := repo.Create(ctx, &Task{
		ID:         "earmarked",
		Status:     StatusAssigned,
		AssignedTo: "alice",
		Source:     SourceSystem,
		CreatedAt:  base,
		UpdatedAt:  base,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := repo.ClaimNext(ctx, "bob", base); !errors.Is(err, ErrNoTaskAvailable) {
		t.Fatalf("bob claim err = %v, want ErrNoTaskAvailable", err)
	}

	got, err := repo.ClaimNext(ctx, "alice", base)
	if err != nil {
		t.Fatalf("alice claim: %v", err)
	}
	if got.ID != "earmarked" {
		t.Errorf("alice claimed %s", got.ID)
	}
}

func TestSubmitLifecycle(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedPoolTask(t, repo, "t1", base)

	claimed, err := repo.ClaimNext(ctx, "alice", base)
	if err != nil {
		t.Fatal(err)
	}

	submitAt := base.Add(10 * time.Minute)
	got, err := repo.Submit(ctx, "alice", claimed.ID, "ସଂଶୋଧିତ ପାଠ୍ୟ", submitAt)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Status != StatusSubmitted {
		t.Errorf("status = %s", got.Status)
	}
	if got.CorrectedText != "ସଂଶୋଧିତ ପାଠ୍ୟ" {
		t.Errorf("corrected text = %q", got.CorrectedText)
	}
	if got.SubmittedAt == nil || !got.SubmittedAt.Equal(submitAt) {
		t.Errorf("submittedAt = %v", got.SubmittedAt)
	}

	// second submit is rejected and the stored text stays unchanged
	_, err = repo.Submit(ctx, "alice", claimed.ID, "ଅନ୍ୟ ପାଠ୍ୟ", submitAt.Add(time.Minute))
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("double submit err = %v, want ErrAlreadySubmitted", err)
	}
	after, err := repo.GetForUser(ctx, "alice", claimed.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.CorrectedText != "ସଂଶୋଧିତ ପାଠ୍ୟ" {
		t.Errorf("text changed on rejected submit: %q", after.CorrectedText)
	}
	if !after.SubmittedAt.Equal(submitAt) {
		t.Errorf("submittedAt changed on rejected submit: %v", after.SubmittedAt)
	}
}

func TestSubmitOwnershipHiding(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedPoolTask(t, repo, "t1", base)

	if _, err := repo.ClaimNext(ctx, "alice", base); err != nil {
		t.Fatal(err)
	}

	// someone else's task and a nonexistent task are indistinguishable
	_, errOther := repo.Submit(ctx, "bob", "t1", "x", base)
	_, errMissing := repo.Submit(ctx, "bob", "no-such-task", "x", base)
	if !errors.Is(errOther, ErrNotFound) || !errors.Is(errMissing, ErrNotFound) {
		t.Errorf("errs = %v / %v, both should be ErrNotFound", errOther, errMissing)
	}
}

func TestGetForUser(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedPoolTask(t, repo, "t1", base)
	if _, err := repo.ClaimNext(ctx, "alice", base); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.GetForUser(ctx, "alice", "t1"); err != nil {
		t.Errorf("owner get: %v", err)
	}
	if _, err := repo.GetForUser(ctx, "bob", "t1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("non-owner get err = %v, want ErrNotFound", err)
	}
}

func TestListByUserPagination(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		err := repo.Create(ctx, &Task{
			ID:         fmt.Sprintf("t%d", i),
			AssignedTo: "alice",
			Status:     StatusSubmitted,
			Source:     SourceSystem,
			CreatedAt:  base,
			UpdatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	page1, total, err := repo.ListByUser(ctx, "alice", ListFilter{Page: 1, Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if total != 7 || len(page1) != 3 {
		t.Fatalf("page1 len=%d total=%d", len(page1), total)
	}
	if page1[0].ID != "t6" {
		t.Errorf("newest first, got %s", page1[0].ID)
	}

	page3, _, err := repo.ListByUser(ctx, "alice", ListFilter{Page: 3, Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(page3) != 1 || page3[0].ID != "t0" {
		t.Errorf("page3 = %+v", page3)
	}

	empty, total, err := repo.ListByUser(ctx, "alice", ListFilter{Page: 9, Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 || total != 7 {
		t.Errorf("past-end page len=%d total=%d", len(empty), total)
	}
}

func TestCountsAndRates(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	statuses := []Status{
		StatusInProgress, StatusInProgress,
		StatusSubmitted, StatusSubmitted, StatusSubmitted,
		StatusApproved, StatusApproved,
	}
	for i, st := range statuses {
		err := repo.Create(ctx, &Task{
			ID:         fmt.Sprintf("t%d", i),
			AssignedTo: "alice",
			Status:     st,
			Source:     SourceSystem,
			CreatedAt:  base,
			UpdatedAt:  base,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	c, err := repo.CountsByUser(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	// counts are strict by current status: approval moves a task out of
	// the submitted tally instead of double-counting it
	want := Counts{Assigned: 7, InProgress: 2, Submitted: 3, Approved: 2}
	if c != want {
		t.Errorf("counts = %+v, want %+v", c, want)
	}
}

func TestMonthlyProgressBuckets(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	add := func(id string, created, updated time.Time, st Status) {
		err := repo.Create(ctx, &Task{
			ID:         id,
			AssignedTo: "alice",
			Status:     st,
			Source:     SourceSystem,
			CreatedAt:  created,
			UpdatedAt:  updated,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	jan5 := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	jan20 := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	mar2 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// jan1 was created in January and submitted in March; it belongs to
	// the January bucket regardless of when it was last touched
	add("jan1", jan5, mar2, StatusSubmitted)
	add("jan2", jan20, jan20, StatusApproved)
	add("mar1", mar2, mar2, StatusInProgress)
	add("old", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), mar2, StatusSubmitted)

	buckets, err := repo.MonthlyProgress(ctx, "alice", time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if len(buckets) != 2 {
		t.Fatalf("buckets = %+v", buckets)
	}
	jan := buckets[0]
	if jan.Year != 2026 || jan.Month != 1 || jan.Total != 2 || jan.Submitted != 1 || jan.Approved != 1 {
		t.Errorf("jan bucket = %+v", jan)
	}
	mar := buckets[1]
	if mar.Month != 3 || mar.Total != 1 || mar.Submitted != 0 {
		t.Errorf("mar bucket = %+v", mar)
	}
}
