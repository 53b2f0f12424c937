package repository

import (
	"context"
	"course_backend/internal/model"
	"course_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) CreateAttempt(ctx context.Context, attempt *model.Attempt) error {
	return conn(ctx, r.DB).Create(attempt).Error
}

func (r *AttemptRepository) FindAttempt(ctx context.Context, id uint) (*model.Attempt, error) {
	var a model.Attempt
	if err := conn(ctx, r.DB).First(&a, id).Error; err != nil {
		return nil, notFound(err, util.ErrAttemptNotFound)
	}
	return &a, nil
}

// FindAttemptForUpdate 行锁，需在事务中调用
func (r *AttemptRepository) FindAttemptForUpdate(ctx context.Context, id uint) (*model.Attempt, error) {
	var a model.Attempt
	err := conn(ctx, r.DB).Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, id).Error
	if err != nil {
		return nil, notFound(err, util.ErrAttemptNotFound)
	}
	return &a, nil
}

// SaveAttempt 整体覆盖，空指针字段写为 NULL
func (r *AttemptRepository) SaveAttempt(ctx context.Context, attempt *model.Attempt) error {
	return conn(ctx, r.DB).Save(attempt).Error
}

func (r *AttemptRepository) UpdateAttemptResult(ctx context.Context, id uint, score int, passed bool) error {
	return conn(ctx, r.DB).Model(&model.Attempt{}).Where("id = ?", id).Updates(map[string]interface{}{
		"score":  score,
		"passed": passed,
	}).Error
}

func (r *AttemptRepository) DeleteAttempt(ctx context.Context, id uint) error {
	res := conn(ctx, r.DB).Delete(&model.Attempt{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrAttemptNotFound
	}
	return nil
}

// ListAttempts 按学生与测试过滤，按 id 升序
func (r *AttemptRepository) ListAttempts(ctx context.Context, studentID, testID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := conn(ctx, r.DB).
		Where("student_id = ? AND test_id = ?", studentID, testID).
		Order("id asc").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) CountAttemptsByTest(ctx context.Context, testID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.DB).Model(&model.Attempt{}).Where("test_id = ?", testID).Count(&count).Error
	return count, err
}

// ListUngradedCompleted 已提交、未评分且有作答记录的尝试
func (r *AttemptRepository) ListUngradedCompleted(ctx context.Context, limit int) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := conn(ctx, r.DB).
		Where("completed_at IS NOT NULL AND score IS NULL").
		Where("EXISTS (SELECT 1 FROM student_answers sa WHERE sa.attempt_id = test_attempts.id AND sa.deleted_at IS NULL)").
		Order("id asc").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}
