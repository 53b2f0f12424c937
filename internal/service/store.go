package service

import (
	"context"
	"course_backend/internal/model"
)

// Transactor fn 内通过 ctx 发起的存储调用处于同一事务
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// GradingStore 评分所需的存储操作
type GradingStore interface {
	Transactor
	FindAttempt(ctx context.Context, id uint) (*model.Attempt, error)
	FindAttemptForUpdate(ctx context.Context, id uint) (*model.Attempt, error)
	UpdateAttemptResult(ctx context.Context, id uint, score int, passed bool) error
	ListUngradedCompleted(ctx context.Context, limit int) ([]model.Attempt, error)
	ListSubmittedAnswers(ctx context.Context, attemptID uint) ([]model.SubmittedAnswer, error)
	FindAnswerKeyForQuestion(ctx context.Context, questionID, answerID uint) (*model.AnswerKeyEntry, error)
	FindTest(ctx context.Context, id uint) (*model.Test, error)
}

// AttemptStore 作答生命周期所需的存储操作
type AttemptStore interface {
	Transactor
	CreateAttempt(ctx context.Context, attempt *model.Attempt) error
	FindAttempt(ctx context.Context, id uint) (*model.Attempt, error)
	FindAttemptForUpdate(ctx context.Context, id uint) (*model.Attempt, error)
	SaveAttempt(ctx context.Context, attempt *model.Attempt) error
	DeleteAttempt(ctx context.Context, id uint) error
	ListAttempts(ctx context.Context, studentID, testID uint) ([]model.Attempt, error)

	ListSubmittedAnswers(ctx context.Context, attemptID uint) ([]model.SubmittedAnswer, error)
	FindSubmittedAnswer(ctx context.Context, id uint) (*model.SubmittedAnswer, error)
	UpsertSubmittedAnswer(ctx context.Context, answer *model.SubmittedAnswer) error
	SetPointsAwarded(ctx context.Context, id uint, points int) error
	DeleteSubmittedAnswersByAttempt(ctx context.Context, attemptID uint) error

	FindQuestion(ctx context.Context, id uint) (*model.Question, error)
}

// AssessmentStore 试卷、题目与答案键的存储操作
type AssessmentStore interface {
	Transactor
	CreateTest(ctx context.Context, test *model.Test) error
	FindTest(ctx context.Context, id uint) (*model.Test, error)
	SaveTest(ctx context.Context, test *model.Test) error
	DeleteTest(ctx context.Context, id uint) error
	ListTests(ctx context.Context, courseID uint) ([]model.Test, error)

	CreateQuestion(ctx context.Context, q *model.Question) error
	FindQuestion(ctx context.Context, id uint) (*model.Question, error)
	SaveQuestion(ctx context.Context, q *model.Question) error
	DeleteQuestion(ctx context.Context, id uint) error
	ListQuestions(ctx context.Context, testID uint) ([]model.Question, error)

	CreateAnswerKey(ctx context.Context, entry *model.AnswerKeyEntry) error
	FindAnswerKey(ctx context.Context, id uint) (*model.AnswerKeyEntry, error)
	SaveAnswerKey(ctx context.Context, entry *model.AnswerKeyEntry) error
	DeleteAnswerKey(ctx context.Context, id uint) error
	ListAnswerKeys(ctx context.Context, questionID uint) ([]model.AnswerKeyEntry, error)

	CountAttemptsByTest(ctx context.Context, testID uint) (int64, error)
}
