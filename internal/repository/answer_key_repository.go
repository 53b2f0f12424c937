package repository

import (
	"context"
	"course_backend/internal/model"
	"course_backend/internal/util"

	"gorm.io/gorm"
)

type AnswerKeyRepository struct {
	DB *gorm.DB
}

func NewAnswerKeyRepository(db *gorm.DB) *AnswerKeyRepository {
	return &AnswerKeyRepository{DB: db}
}

func (r *AnswerKeyRepository) CreateAnswerKey(ctx context.Context, entry *model.AnswerKeyEntry) error {
	return conn(ctx, r.DB).Create(entry).Error
}

func (r *AnswerKeyRepository) FindAnswerKey(ctx context.Context, id uint) (*model.AnswerKeyEntry, error) {
	var e model.AnswerKeyEntry
	if err := conn(ctx, r.DB).First(&e, id).Error; err != nil {
		return nil, notFound(err, util.ErrAnswerKeyNotFound)
	}
	return &e, nil
}

// FindAnswerKeyForQuestion 按 (questionId, answerId) 定位答案键
func (r *AnswerKeyRepository) FindAnswerKeyForQuestion(ctx context.Context, questionID, answerID uint) (*model.AnswerKeyEntry, error) {
	var e model.AnswerKeyEntry
	err := conn(ctx, r.DB).Where("id = ? AND question_id = ?", answerID, questionID).First(&e).Error
	if err != nil {
		return nil, notFound(err, util.ErrAnswerKeyNotFound)
	}
	return &e, nil
}

func (r *AnswerKeyRepository) SaveAnswerKey(ctx context.Context, entry *model.AnswerKeyEntry) error {
	return conn(ctx, r.DB).Save(entry).Error
}

func (r *AnswerKeyRepository) DeleteAnswerKey(ctx context.Context, id uint) error {
	res := conn(ctx, r.DB).Delete(&model.AnswerKeyEntry{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrAnswerKeyNotFound
	}
	return nil
}

func (r *AnswerKeyRepository) ListAnswerKeys(ctx context.Context, questionID uint) ([]model.AnswerKeyEntry, error) {
	var entries []model.AnswerKeyEntry
	err := conn(ctx, r.DB).Where("question_id = ?", questionID).Order("id asc").Find(&entries).Error
	return entries, err
}
