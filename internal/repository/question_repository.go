package repository

import (
	"context"
	"course_backend/internal/model"
	"course_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) CreateQuestion(ctx context.Context, q *model.Question) error {
	return conn(ctx, r.DB).Create(q).Error
}

func (r *QuestionRepository) FindQuestion(ctx context.Context, id uint) (*model.Question, error) {
	var q model.Question
	if err := conn(ctx, r.DB).First(&q, id).Error; err != nil {
		return nil, notFound(err, util.ErrQuestionNotFound)
	}
	return &q, nil
}

func (r *QuestionRepository) SaveQuestion(ctx context.Context, q *model.Question) error {
	return conn(ctx, r.DB).Save(q).Error
}

func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id uint) error {
	return inTx(ctx, r.DB, func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.AnswerKeyEntry{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Question{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrQuestionNotFound
		}
		return nil
	})
}

func (r *QuestionRepository) ListQuestions(ctx context.Context, testID uint) ([]model.Question, error) {
	var qs []model.Question
	err := conn(ctx, r.DB).Where("test_id = ?", testID).Order("sequence asc, id asc").Find(&qs).Error
	return qs, err
}
