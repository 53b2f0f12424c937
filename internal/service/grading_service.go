package service

import (
	"context"
	"course_backend/internal/model"
	"course_backend/internal/util"
	"course_backend/pkg/lock"
	"course_backend/pkg/logger"
	"course_backend/pkg/monitoring"
	"course_backend/pkg/tracing"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func attemptLockKey(id uint) string {
	return fmt.Sprintf("attempt:%d", id)
}

type GradingService struct {
	Store   GradingStore
	Locker  lock.Locker
	Archive *StorageService

	defaultPass atomic.Int32
}

func NewGradingService(store GradingStore, locker lock.Locker, archive *StorageService, defaultPass int) *GradingService {
	s := &GradingService{Store: store, Locker: locker, Archive: archive}
	s.defaultPass.Store(int32(defaultPass))
	return s
}

// SetDefaultPassPercentage 配置热更新时调用
func (s *GradingService) SetDefaultPassPercentage(p int) {
	s.defaultPass.Store(int32(p))
}

func (s *GradingService) DefaultPassPercentage() int {
	return int(s.defaultPass.Load())
}

// Grade 对一次作答评分：统计答对题数、计算百分制得分并按试卷及格线判定。
// 同一作答的评分串行执行，答案不变时重复评分结果一致。
func (s *GradingService) Grade(ctx context.Context, attemptID uint) (*model.Attempt, error) {
	ctx, span := tracing.Tracer.Start(ctx, "GradingService.Grade",
		trace.WithAttributes(attribute.Int64("attempt.id", int64(attemptID))))
	defer span.End()

	unlock, err := s.Locker.Lock(ctx, attemptLockKey(attemptID))
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("lock attempt %d: %w", attemptID, err)
	}
	defer unlock()

	var (
		graded *model.Attempt
		report *GradeReport
	)
	err = s.Store.Transaction(ctx, func(ctx context.Context) error {
		attempt, err := s.Store.FindAttemptForUpdate(ctx, attemptID)
		if err != nil {
			return err
		}

		answers, err := s.Store.ListSubmittedAnswers(ctx, attemptID)
		if err != nil {
			return fmt.Errorf("list submitted answers: %w", err)
		}
		if len(answers) == 0 {
			return util.ErrNoAnswersSubmitted
		}

		verdicts := make([]AnswerVerdict, 0, len(answers))
		correct := 0
		for i := range answers {
			v, err := s.judge(ctx, &answers[i])
			if err != nil {
				return err
			}
			if v.Correct {
				correct++
			}
			verdicts = append(verdicts, v)
		}

		threshold, source, err := s.threshold(ctx, attempt.TestID)
		if err != nil {
			return err
		}

		score := ScorePercent(correct, len(answers))
		passed := IsPassed(score, threshold)
		if err := s.Store.UpdateAttemptResult(ctx, attempt.ID, score, passed); err != nil {
			return fmt.Errorf("update attempt result: %w", err)
		}

		graded, err = s.Store.FindAttempt(ctx, attempt.ID)
		if err != nil {
			return err
		}

		report = &GradeReport{
			AttemptID:       attempt.ID,
			TestID:          attempt.TestID,
			StudentID:       attempt.StudentID,
			Score:           score,
			Passed:          passed,
			Threshold:       threshold,
			ThresholdSource: source,
			Correct:         correct,
			Total:           len(answers),
			Verdicts:        verdicts,
			GradedAt:        time.Now(),
		}
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		if errors.Is(err, util.ErrInvalidState) || errors.Is(err, util.ErrNotFound) {
			monitoring.GradingTotal.WithLabelValues("rejected").Inc()
		} else {
			monitoring.GradingTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("grade.score", report.Score),
		attribute.Bool("grade.passed", report.Passed),
	)
	monitoring.ObserveGrade(report.Score, report.Passed)
	logger.Ctx(ctx).Info("Attempt graded",
		zap.Uint("attemptId", report.AttemptID),
		zap.Uint("testId", report.TestID),
		zap.Int("correct", report.Correct),
		zap.Int("total", report.Total),
		zap.Int("score", report.Score),
		zap.Int("threshold", report.Threshold),
		zap.Bool("passed", report.Passed),
	)
	s.archiveReport(ctx, report)

	return graded, nil
}

// judge 答案键中不存在的选项判为错误而非报错
func (s *GradingService) judge(ctx context.Context, a *model.SubmittedAnswer) (AnswerVerdict, error) {
	v := AnswerVerdict{SubmittedAnswerID: a.ID, QuestionID: a.QuestionID, AnswerID: a.AnswerID}

	if a.AnswerID == nil {
		v.Correct = AnswerCorrect(a, nil)
		v.Reason = VerdictManualPending
		if v.Correct {
			v.Reason = VerdictManualAwarded
		}
		return v, nil
	}

	key, err := s.Store.FindAnswerKeyForQuestion(ctx, a.QuestionID, *a.AnswerID)
	switch {
	case errors.Is(err, util.ErrNotFound):
		key = nil
	case err != nil:
		return v, fmt.Errorf("find answer key: %w", err)
	}

	v.Correct = AnswerCorrect(a, key)
	switch {
	case key == nil:
		v.Reason = VerdictKeyMissing
	case v.Correct:
		v.Reason = VerdictKeyCorrect
	default:
		v.Reason = VerdictKeyIncorrect
	}
	return v, nil
}

// threshold 以试卷的及格线为准，试卷记录缺失时使用配置的默认值
func (s *GradingService) threshold(ctx context.Context, testID uint) (int, string, error) {
	test, err := s.Store.FindTest(ctx, testID)
	if err == nil {
		return test.PassPercentage, ThresholdFromTest, nil
	}
	if !errors.Is(err, util.ErrNotFound) {
		return 0, "", fmt.Errorf("find test: %w", err)
	}

	p := s.DefaultPassPercentage()
	logger.Ctx(ctx).Warn("Test record missing, using default pass percentage",
		zap.Uint("testId", testID),
		zap.Int("passPercentage", p),
	)
	return p, ThresholdFromFallback, nil
}

// SweepUngraded 为已完成但未评分的作答补评分，返回成功评分数
func (s *GradingService) SweepUngraded(ctx context.Context, batch int) (int, error) {
	attempts, err := s.Store.ListUngradedCompleted(ctx, batch)
	if err != nil {
		return 0, err
	}

	graded := 0
	for _, a := range attempts {
		if ctx.Err() != nil {
			return graded, ctx.Err()
		}
		if _, err := s.Grade(ctx, a.ID); err != nil {
			if errors.Is(err, util.ErrInvalidState) || errors.Is(err, util.ErrNotFound) {
				continue
			}
			logger.Ctx(ctx).Error("Sweep failed to grade attempt", zap.Uint("attemptId", a.ID), zap.Error(err))
			continue
		}
		graded++
		monitoring.SweepGraded.Inc()
	}
	return graded, nil
}
