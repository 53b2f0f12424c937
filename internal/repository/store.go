package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type txKey struct{}

// conn 优先使用 ctx 中的事务
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// inTx 已在事务中则直接复用，否则开启新事务
func inTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(tx)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

// Store 聚合各仓储并提供跨仓储事务
type Store struct {
	DB *gorm.DB

	*AttemptRepository
	*SubmittedAnswerRepository
	*TestRepository
	*QuestionRepository
	*AnswerKeyRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		DB:                        db,
		AttemptRepository:         NewAttemptRepository(db),
		SubmittedAnswerRepository: NewSubmittedAnswerRepository(db),
		TestRepository:            NewTestRepository(db),
		QuestionRepository:        NewQuestionRepository(db),
		AnswerKeyRepository:       NewAnswerKeyRepository(db),
	}
}

// Transaction fn 内通过 ctx 调用的仓储方法共享同一事务，嵌套调用并入外层事务
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
