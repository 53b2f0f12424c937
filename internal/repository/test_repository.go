package repository

import (
	"context"
	"course_backend/internal/model"
	"course_backend/internal/util"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) CreateTest(ctx context.Context, test *model.Test) error {
	return conn(ctx, r.DB).Create(test).Error
}

func (r *TestRepository) FindTest(ctx context.Context, id uint) (*model.Test, error) {
	var t model.Test
	if err := conn(ctx, r.DB).First(&t, id).Error; err != nil {
		return nil, notFound(err, util.ErrTestNotFound)
	}
	return &t, nil
}

func (r *TestRepository) SaveTest(ctx context.Context, test *model.Test) error {
	return conn(ctx, r.DB).Save(test).Error
}

// DeleteTest 级联删除题目及答案键
func (r *TestRepository) DeleteTest(ctx context.Context, id uint) error {
	return inTx(ctx, r.DB, func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("test_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.AnswerKeyEntry{}).Error; err != nil {
				return err
			}
			if err := tx.Where("test_id = ?", id).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&model.Test{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrTestNotFound
		}
		return nil
	})
}

// ListTests courseID 为 0 时不过滤
func (r *TestRepository) ListTests(ctx context.Context, courseID uint) ([]model.Test, error) {
	var tests []model.Test
	q := conn(ctx, r.DB).Order("id asc")
	if courseID > 0 {
		q = q.Where("course_id = ?", courseID)
	}
	err := q.Find(&tests).Error
	return tests, err
}
