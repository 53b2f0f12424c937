package repository

import (
	"context"
	"course_backend/internal/model"
	"course_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type SubmittedAnswerRepository struct {
	DB *gorm.DB
}

func NewSubmittedAnswerRepository(db *gorm.DB) *SubmittedAnswerRepository {
	return &SubmittedAnswerRepository{DB: db}
}

func (r *SubmittedAnswerRepository) ListSubmittedAnswers(ctx context.Context, attemptID uint) ([]model.SubmittedAnswer, error) {
	var answers []model.SubmittedAnswer
	err := conn(ctx, r.DB).Where("attempt_id = ?", attemptID).Order("id asc").Find(&answers).Error
	return answers, err
}

func (r *SubmittedAnswerRepository) FindSubmittedAnswer(ctx context.Context, id uint) (*model.SubmittedAnswer, error) {
	var a model.SubmittedAnswer
	if err := conn(ctx, r.DB).First(&a, id).Error; err != nil {
		return nil, notFound(err, util.ErrSubmittedAnswerNotFound)
	}
	return &a, nil
}

// UpsertSubmittedAnswer 同一题重复提交时覆盖原答案并清除人工得分
func (r *SubmittedAnswerRepository) UpsertSubmittedAnswer(ctx context.Context, answer *model.SubmittedAnswer) error {
	return inTx(ctx, r.DB, func(tx *gorm.DB) error {
		var existing model.SubmittedAnswer
		err := tx.Where("attempt_id = ? AND question_id = ?", answer.AttemptID, answer.QuestionID).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(answer).Error
		}
		if err != nil {
			return err
		}

		existing.AnswerID = answer.AnswerID
		existing.EssayAnswer = answer.EssayAnswer
		existing.PointsAwarded = nil
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*answer = existing
		return nil
	})
}

func (r *SubmittedAnswerRepository) SetPointsAwarded(ctx context.Context, id uint, points int) error {
	return conn(ctx, r.DB).Model(&model.SubmittedAnswer{}).Where("id = ?", id).Update("points_awarded", points).Error
}

func (r *SubmittedAnswerRepository) DeleteSubmittedAnswersByAttempt(ctx context.Context, attemptID uint) error {
	return conn(ctx, r.DB).Where("attempt_id = ?", attemptID).Delete(&model.SubmittedAnswer{}).Error
}
