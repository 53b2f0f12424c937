package service

import (
	"context"
	"course_backend/internal/model"
	"course_backend/internal/util"
	"course_backend/pkg/lock"
	"course_backend/pkg/logger"
	"errors"
	"time"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

type AttemptService struct {
	Store  AttemptStore
	Locker lock.Locker
	Grader *GradingService
}

func NewAttemptService(store AttemptStore, locker lock.Locker, grader *GradingService) *AttemptService {
	return &AttemptService{Store: store, Locker: locker, Grader: grader}
}

type SubmittedAnswerReq struct {
	QuestionID  uint    `json:"questionId" binding:"required"`
	AnswerID    *uint   `json:"answerId"`
	EssayAnswer *string `json:"essayAnswer"`
}

type CreateAttemptReq struct {
	StudentID   uint                 `json:"studentId" binding:"required"`
	TestID      uint                 `json:"testId" binding:"required"`
	StartedAt   time.Time            `json:"startedAt" binding:"required"`
	CompletedAt *time.Time           `json:"completedAt"`
	TotalTime   *int                 `json:"totalTime" binding:"omitempty,min=0"`
	Answers     []SubmittedAnswerReq `json:"answers" binding:"omitempty,dive"`
}

// AmendAttemptReq 管理员修正，整体覆盖
type AmendAttemptReq struct {
	StudentID   uint       `json:"studentId" binding:"required"`
	TestID      uint       `json:"testId" binding:"required"`
	StartedAt   time.Time  `json:"startedAt" binding:"required"`
	CompletedAt *time.Time `json:"completedAt"`
	Score       *int       `json:"score" binding:"omitempty,min=0,max=100"`
	Passed      *bool      `json:"passed"`
	TotalTime   *int       `json:"totalTime" binding:"omitempty,min=0"`
}

type SubmitAnswersReq struct {
	Answers []SubmittedAnswerReq `json:"answers" binding:"required,min=1,dive"`
}

type AwardPointsReq struct {
	Points *int `json:"points" binding:"required,min=0"`
}

// CreateAttempt 保存作答及随附答案后立即评分。
// 没有答案时作答已保存，返回 InvalidState。
func (s *AttemptService) CreateAttempt(ctx context.Context, studentID, testID uint, req CreateAttemptReq) (*model.Attempt, error) {
	if req.StudentID != studentID || req.TestID != testID {
		return nil, util.ErrAttemptMismatch
	}
	if err := validateStruct(&req); err != nil {
		return nil, err
	}

	attempt := &model.Attempt{
		StudentID:   req.StudentID,
		TestID:      req.TestID,
		StartedAt:   req.StartedAt,
		CompletedAt: req.CompletedAt,
		TotalTime:   req.TotalTime,
	}

	err := s.Store.Transaction(ctx, func(ctx context.Context) error {
		if err := s.Store.CreateAttempt(ctx, attempt); err != nil {
			return err
		}
		return s.saveAnswers(ctx, attempt, req.Answers)
	})
	if err != nil {
		return nil, err
	}

	graded, err := s.Grader.Grade(ctx, attempt.ID)
	if err != nil {
		if errors.Is(err, util.ErrInvalidState) {
			logger.Ctx(ctx).Info("Attempt created without answers", zap.Uint("attemptId", attempt.ID))
		}
		return attempt, err
	}
	return graded, nil
}

func (s *AttemptService) GetAttempt(ctx context.Context, id uint) (*model.Attempt, error) {
	return s.Store.FindAttempt(ctx, id)
}

func (s *AttemptService) ListAttempts(ctx context.Context, studentID, testID uint) ([]model.Attempt, error) {
	return s.Store.ListAttempts(ctx, studentID, testID)
}

// AmendAttempt 覆盖所有可写字段，不重新评分
func (s *AttemptService) AmendAttempt(ctx context.Context, id uint, req AmendAttemptReq) (*model.Attempt, error) {
	if err := validateStruct(&req); err != nil {
		return nil, err
	}

	unlock, err := s.Locker.Lock(ctx, attemptLockKey(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var attempt *model.Attempt
	err = s.Store.Transaction(ctx, func(ctx context.Context) error {
		a, err := s.Store.FindAttemptForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := copier.Copy(a, &req); err != nil {
			return err
		}
		if err := s.Store.SaveAttempt(ctx, a); err != nil {
			return err
		}
		attempt = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

// DeleteAttempt 同一事务内软删除作答及其全部答案
func (s *AttemptService) DeleteAttempt(ctx context.Context, id uint) error {
	unlock, err := s.Locker.Lock(ctx, attemptLockKey(id))
	if err != nil {
		return err
	}
	defer unlock()

	return s.Store.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.Store.FindAttemptForUpdate(ctx, id); err != nil {
			return err
		}
		if err := s.Store.DeleteSubmittedAnswersByAttempt(ctx, id); err != nil {
			return err
		}
		return s.Store.DeleteAttempt(ctx, id)
	})
}

// SubmitAnswers 每题保留最后一次提交，已评分的作答不再接受答案
func (s *AttemptService) SubmitAnswers(ctx context.Context, attemptID uint, req SubmitAnswersReq) ([]model.SubmittedAnswer, error) {
	if err := validateStruct(&req); err != nil {
		return nil, err
	}

	unlock, err := s.Locker.Lock(ctx, attemptLockKey(attemptID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var answers []model.SubmittedAnswer
	err = s.Store.Transaction(ctx, func(ctx context.Context) error {
		attempt, err := s.Store.FindAttemptForUpdate(ctx, attemptID)
		if err != nil {
			return err
		}
		if attempt.Graded() {
			return util.ErrAttemptGraded
		}
		if err := s.saveAnswers(ctx, attempt, req.Answers); err != nil {
			return err
		}
		answers, err = s.Store.ListSubmittedAnswers(ctx, attemptID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (s *AttemptService) ListAnswers(ctx context.Context, attemptID uint) ([]model.SubmittedAnswer, error) {
	if _, err := s.Store.FindAttempt(ctx, attemptID); err != nil {
		return nil, err
	}
	return s.Store.ListSubmittedAnswers(ctx, attemptID)
}

// AwardPoints 人工评阅主观题，需再次评分才会反映到成绩
func (s *AttemptService) AwardPoints(ctx context.Context, answerID uint, req AwardPointsReq) (*model.SubmittedAnswer, error) {
	if err := validateStruct(&req); err != nil {
		return nil, err
	}

	answer, err := s.Store.FindSubmittedAnswer(ctx, answerID)
	if err != nil {
		return nil, err
	}
	if answer.AnswerID != nil {
		return nil, util.ErrAnswerNotManual
	}

	unlock, err := s.Locker.Lock(ctx, attemptLockKey(answer.AttemptID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := s.Store.SetPointsAwarded(ctx, answerID, *req.Points); err != nil {
		return nil, err
	}
	return s.Store.FindSubmittedAnswer(ctx, answerID)
}

// saveAnswers 题目必须属于作答对应的试卷；选项是否存在于答案键留到评分时判定
func (s *AttemptService) saveAnswers(ctx context.Context, attempt *model.Attempt, reqs []SubmittedAnswerReq) error {
	for _, r := range reqs {
		if r.AnswerID == nil && r.EssayAnswer == nil {
			return util.ErrEmptyAnswer
		}

		q, err := s.Store.FindQuestion(ctx, r.QuestionID)
		if errors.Is(err, util.ErrNotFound) {
			return util.ErrQuestionNotInTest
		}
		if err != nil {
			return err
		}
		if q.TestID != attempt.TestID {
			return util.ErrQuestionNotInTest
		}

		answer := &model.SubmittedAnswer{
			AttemptID:   attempt.ID,
			QuestionID:  r.QuestionID,
			AnswerID:    r.AnswerID,
			EssayAnswer: r.EssayAnswer,
		}
		if err := s.Store.UpsertSubmittedAnswer(ctx, answer); err != nil {
			return err
		}
	}
	return nil
}
