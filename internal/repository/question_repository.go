//go:generate mockery --name QuestionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"leetcode_srs/internal/middleware"
	"leetcode_srs/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository interface {
	FindBySlug(ctx context.Context, db *gorm.DB, titleSlug string) (*model.Question, error)
	// Upsert は slug をキーとした冪等な insert-or-fetch。
	// 既存レコードが勝った場合は question の内容をDB側の値で上書きして返す。
	Upsert(ctx context.Context, db *gorm.DB, question *model.Question) error
}

type gormQuestionRepository struct{}

func NewGormQuestionRepository() QuestionRepository {
	return &gormQuestionRepository{}
}

func (r *gormQuestionRepository) FindBySlug(ctx context.Context, db *gorm.DB, titleSlug string) (*model.Question, error) {
	logger := middleware.GetLogger(ctx)
	var question model.Question

	result := db.WithContext(ctx).Where("title_slug = ?", titleSlug).First(&question)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error(
			"Error finding question by slug in DB",
			"error", result.Error,
			"title_slug", titleSlug,
		)
		return nil, fmt.Errorf("gormQuestionRepository.FindBySlug: %w", result.Error)
	}
	return &question, nil
}

func (r *gormQuestionRepository) Upsert(ctx context.Context, db *gorm.DB, question *model.Question) error {
	logger := middleware.GetLogger(ctx)

	// 同じ slug の並行作成は先勝ち。ON CONFLICT DO NOTHING で
	// ユニーク制約違反を発生させずに吸収する
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "title_slug"}},
		DoNothing: true,
	}).Create(question)
	if result.Error != nil {
		logger.Error(
			"Error upserting question in DB",
			"error", result.Error,
			"title_slug", question.TitleSlug,
		)
		return fmt.Errorf("gormQuestionRepository.Upsert: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// 先行トランザクションが作成済み。DB上の値を正とする
		logger.Debug("Question already exists, reloading", "title_slug", question.TitleSlug)
		reload := db.WithContext(ctx).Where("title_slug = ?", question.TitleSlug).First(question)
		if reload.Error != nil {
			return fmt.Errorf("gormQuestionRepository.Upsert reload: %w", reload.Error)
		}
	}

	return nil
}
