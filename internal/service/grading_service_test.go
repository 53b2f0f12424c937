package service

import (
	"context"
	"course_backend/internal/config"
	"course_backend/internal/model"
	"course_backend/internal/util"
	"course_backend/pkg/lock"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

type gradingFixture struct {
	store   *fakeStore
	grader  *GradingService
	test    model.Test
	correct []uint // 每题的正确选项
	wrong   []uint // 每题的错误选项
	qs      []model.Question
}

func newGradingFixture(t *testing.T, pass, questions int) *gradingFixture {
	t.Helper()
	st := newFakeStore()
	f := &gradingFixture{
		store:  st,
		grader: NewGradingService(st, lock.NewKeyedMutex(), &StorageService{}, 60),
		test:   st.addTest(pass),
	}
	for i := 0; i < questions; i++ {
		q := st.addQuestion(f.test.ID, model.MultipleChoice)
		f.qs = append(f.qs, q)
		f.correct = append(f.correct, st.addKey(q.ID, true).ID)
		f.wrong = append(f.wrong, st.addKey(q.ID, false).ID)
	}
	return f
}

// answer 按 pattern 为每题作答，true 选正确项
func (f *gradingFixture) answer(attemptID uint, pattern ...bool) {
	for i, ok := range pattern {
		id := f.wrong[i]
		if ok {
			id = f.correct[i]
		}
		f.store.addAnswer(attemptID, f.qs[i].ID, &id, nil)
	}
}

func TestGradeThreeOfFourPasses(t *testing.T) {
	f := newGradingFixture(t, 60, 4)
	a := f.store.addAttempt(1, f.test.ID)
	f.answer(a.ID, true, true, true, false)

	got, err := f.grader.Grade(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if *got.Score != 75 || !*got.Passed {
		t.Fatalf("score=%d passed=%v, want 75/true", *got.Score, *got.Passed)
	}
}

func TestGradeHalfFails(t *testing.T) {
	f := newGradingFixture(t, 60, 4)
	a := f.store.addAttempt(1, f.test.ID)
	f.answer(a.ID, true, false, true, false)

	got, err := f.grader.Grade(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if *got.Score != 50 || *got.Passed {
		t.Fatalf("score=%d passed=%v, want 50/false", *got.Score, *got.Passed)
	}
}

func TestGradeNoAnswers(t *testing.T) {
	f := newGradingFixture(t, 60, 2)
	a := f.store.addAttempt(1, f.test.ID)

	_, err := f.grader.Grade(context.Background(), a.ID)
	if !errors.Is(err, util.ErrInvalidState) {
		t.Fatalf("err = %v, want invalid state", err)
	}

	stored, _ := f.store.attempt(a.ID)
	if stored.Score != nil || stored.Passed != nil {
		t.Fatalf("attempt modified on failure: %+v", stored)
	}
}

func TestGradeUnknownAttempt(t *testing.T) {
	f := newGradingFixture(t, 60, 1)

	_, err := f.grader.Grade(context.Background(), 9999)
	if !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if f.store.resultWrites != 0 {
		t.Fatalf("unexpected writes: %d", f.store.resultWrites)
	}
}

func TestGradeUnknownAnswerCountsIncorrect(t *testing.T) {
	f := newGradingFixture(t, 60, 2)
	a := f.store.addAttempt(1, f.test.ID)
	missing := uint(424242)
	f.store.addAnswer(a.ID, f.qs[0].ID, &missing, nil)
	f.store.addAnswer(a.ID, f.qs[1].ID, &f.correct[1], nil)

	got, err := f.grader.Grade(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if *got.Score != 50 {
		t.Fatalf("score = %d, want 50", *got.Score)
	}
}

func TestGradeKeyOfOtherQuestionCountsIncorrect(t *testing.T) {
	f := newGradingFixture(t, 50, 2)
	a := f.store.addAttempt(1, f.test.ID)
	// 第一题选择了第二题的正确选项
	f.store.addAnswer(a.ID, f.qs[0].ID, &f.correct[1], nil)

	got, err := f.grader.Grade(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if *got.Score != 0 || *got.Passed {
		t.Fatalf("score=%d passed=%v, want 0/false", *got.Score, *got.Passed)
	}
}

func TestGradeIdempotent(t *testing.T) {
	f := newGradingFixture(t, 70, 3)
	a := f.store.addAttempt(1, f.test.ID)
	f.answer(a.ID, true, true, false)

	first, err := f.grader.Grade(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("first Grade: %v", err)
	}
	second, err := f.grader.Grade(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("second Grade: %v", err)
	}
	if *first.Score != *second.Score || *first.Passed != *second.Passed {
		t.Fatalf("regrade changed result: %d/%v -> %d/%v", *first.Score, *first.Passed, *second.Score, *second.Passed)
	}
	if *second.Score != 67 || *second.Passed {
		t.Fatalf("score=%d passed=%v, want 67/false", *second.Score, *second.Passed)
	}
}

func TestGradeUsesTestThreshold(t *testing.T) {
	tests := []struct {
		pass int
		want bool
	}{
		{0, true},
		{75, true},
		{76, false},
		{100, false},
	}
	for _, tt := range tests {
		f := newGradingFixture(t, tt.pass, 4)
		a := f.store.addAttempt(1, f.test.ID)
		f.answer(a.ID, true, true, true, false)

		got, err := f.grader.Grade(context.Background(), a.ID)
		if err != nil {
			t.Fatalf("pass=%d: %v", tt.pass, err)
		}
		if *got.Passed != tt.want {
			t.Errorf("pass=%d: passed=%v, want %v", tt.pass, *got.Passed, tt.want)
		}
	}
}

func TestGradeFallbackThresholdWhenTestMissing(t *testing.T) {
	f := newGradingFixture(t, 10, 4)
	a := f.store.addAttempt(1, f.test.ID+1000)
	f.answer(a.ID, true, true, true, false)

	got, err := f.grader.Grade(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !*got.Passed {
		t.Fatal("75 should pass default threshold 60")
	}

	f.grader.SetDefaultPassPercentage(80)
	got, err = f.grader.Grade(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if *got.Passed {
		t.Fatal("75 should fail reloaded threshold 80")
	}
}

func TestGradeEssayManualAward(t *testing.T) {
	f := newGradingFixture(t, 50, 1)
	essay := f.store.addQuestion(f.test.ID, model.Essay)
	a := f.store.addAttempt(1, f.test.ID)
	f.answer(a.ID, false)
	sa := f.store.addAnswer(a.ID, essay.ID, nil, nil)

	got, err := f.grader.Grade(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if *got.Score != 0 {
		t.Fatalf("unreviewed essay scored %d, want 0", *got.Score)
	}

	if err := f.store.SetPointsAwarded(context.Background(), sa.ID, 3); err != nil {
		t.Fatalf("SetPointsAwarded: %v", err)
	}
	got, err = f.grader.Grade(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if *got.Score != 50 || !*got.Passed {
		t.Fatalf("score=%d passed=%v, want 50/true", *got.Score, *got.Passed)
	}
}

func TestGradeStoreErrorLeavesAttemptUnchanged(t *testing.T) {
	f := newGradingFixture(t, 60, 2)
	a := f.store.addAttempt(1, f.test.ID)
	f.answer(a.ID, true, true)
	f.store.findKeyErr = errors.New("connection reset")

	if _, err := f.grader.Grade(context.Background(), a.ID); err == nil {
		t.Fatal("expected error")
	}
	stored, _ := f.store.attempt(a.ID)
	if stored.Score != nil || f.store.resultWrites != 0 {
		t.Fatalf("attempt modified on failure: %+v", stored)
	}
}

func TestGradeConcurrentCallsAgree(t *testing.T) {
	f := newGradingFixture(t, 60, 4)
	a := f.store.addAttempt(1, f.test.ID)
	f.answer(a.ID, true, true, true, false)

	var wg sync.WaitGroup
	results := make([]int, 16)
	errs := make([]error, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := f.grader.Grade(context.Background(), a.ID)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = *got.Score
		}(i)
	}
	wg.Wait()

	for i := range results {
		if errs[i] != nil {
			t.Fatalf("goroutine %d: %v", i, errs[i])
		}
		if results[i] != 75 {
			t.Fatalf("goroutine %d: score %d, want 75", i, results[i])
		}
	}
	if f.store.resultWrites != 16 {
		t.Fatalf("result writes = %d, want 16", f.store.resultWrites)
	}
}

func TestGradeHonoursCancelledContext(t *testing.T) {
	f := newGradingFixture(t, 60, 1)
	a := f.store.addAttempt(1, f.test.ID)
	f.answer(a.ID, true)

	locker := f.grader.Locker
	unlock, err := locker.Lock(context.Background(), attemptLockKey(a.ID))
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.grader.Grade(ctx, a.ID); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context canceled", err)
	}
}

func TestSweepUngraded(t *testing.T) {
	f := newGradingFixture(t, 60, 2)
	ready := f.store.addAttempt(1, f.test.ID)
	f.answer(ready.ID, true, true)
	f.store.addAttempt(2, f.test.ID) // 无答案，跳过

	n, err := f.grader.SweepUngraded(context.Background(), 10)
	if err != nil {
		t.Fatalf("SweepUngraded: %v", err)
	}
	if n != 1 {
		t.Fatalf("graded %d, want 1", n)
	}
	stored, _ := f.store.attempt(ready.ID)
	if stored.Score == nil || *stored.Score != 100 {
		t.Fatalf("sweep did not grade attempt: %+v", stored)
	}

	n, _ = f.grader.SweepUngraded(context.Background(), 10)
	if n != 0 {
		t.Fatalf("second sweep graded %d, want 0", n)
	}
}

func TestGradeArchivesReport(t *testing.T) {
	dir := t.TempDir()
	archive, err := NewStorageService(&config.StorageConfig{Type: util.StorageLocal, LocalPath: dir})
	if err != nil {
		t.Fatalf("NewStorageService: %v", err)
	}

	f := newGradingFixture(t, 60, 2)
	f.grader.Archive = archive
	a := f.store.addAttempt(1, f.test.ID)
	missing := uint(999)
	f.store.addAnswer(a.ID, f.qs[0].ID, &f.correct[0], nil)
	f.store.addAnswer(a.ID, f.qs[1].ID, &missing, nil)

	if _, err := f.grader.Grade(context.Background(), a.ID); err != nil {
		t.Fatalf("Grade: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, util.GradeReportPrefix, "*", "*.json"))
	if len(matches) != 1 {
		t.Fatalf("archived reports = %d, want 1", len(matches))
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var report GradeReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.AttemptID != a.ID || report.Score != 50 || report.ThresholdSource != ThresholdFromTest {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(report.Verdicts) != 2 || report.Verdicts[1].Reason != VerdictKeyMissing {
		t.Fatalf("unexpected verdicts %+v", report.Verdicts)
	}
}
