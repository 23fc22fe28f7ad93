//go:generate mockery --name StudyItemRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leetcode_srs/internal/middleware"
	"leetcode_srs/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type StudyItemRepository interface {
	Create(ctx context.Context, tx *gorm.DB, item *model.StudyItem) error // トランザクション対応
	Update(ctx context.Context, tx *gorm.DB, item *model.StudyItem) error // トランザクション対応
	FindByID(ctx context.Context, db *gorm.DB, studyItemID uuid.UUID) (*model.StudyItem, error)
	FindByUserAndQuestion(ctx context.Context, db *gorm.DB, userID uuid.UUID, titleSlug string) (*model.StudyItem, error)
	FindAllByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.StudyItem, error)
	// FindAllDue は next_review_at が非NULLかつ asOf 以前のレコードを返す。読み取り専用
	FindAllDue(ctx context.Context, db *gorm.DB, asOf time.Time) ([]*model.StudyItem, error)
	FindDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, asOf time.Time) ([]*model.StudyItem, error)
}

type gormStudyItemRepository struct{}

func NewGormStudyItemRepository() StudyItemRepository {
	return &gormStudyItemRepository{}
}

func (r *gormStudyItemRepository) Create(ctx context.Context, tx *gorm.DB, item *model.StudyItem) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Create(item)
	if result.Error != nil {
		// (user_id, question_slug) の複合ユニーク制約違反。
		// 同一ペアの並行作成が競合したケースで、次回の同期で解消する
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn(
				"Duplicate key error on create study item",
				"error", result.Error,
				"user_id", item.UserID.String(),
				"question_slug", item.QuestionSlug,
			)
			return model.ErrConflict
		}

		logger.Error(
			"Error creating study item in DB",
			"error", result.Error,
			"question_slug", item.QuestionSlug,
		)
		return fmt.Errorf("gormStudyItemRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormStudyItemRepository) Update(ctx context.Context, tx *gorm.DB, item *model.StudyItem) error {
	logger := middleware.GetLogger(ctx)

	// read-modify-write のwrite側。オブジェクト全体を単一のreplaceとして保存する
	result := tx.WithContext(ctx).Save(item)
	if result.Error != nil {
		logger.Error(
			"Error updating study item in DB",
			"error", result.Error,
			"study_item_id", item.StudyItemID.String(),
		)
		return fmt.Errorf("gormStudyItemRepository.Update: %w", result.Error)
	}
	return nil
}

func (r *gormStudyItemRepository) FindByID(ctx context.Context, db *gorm.DB, studyItemID uuid.UUID) (*model.StudyItem, error) {
	logger := middleware.GetLogger(ctx)
	var item model.StudyItem

	result := db.WithContext(ctx).Preload("Question").Where("study_item_id = ?", studyItemID).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error(
			"Error finding study item by ID in DB",
			"error", result.Error,
			"study_item_id", studyItemID.String(),
		)
		return nil, fmt.Errorf("gormStudyItemRepository.FindByID: %w", result.Error)
	}
	return &item, nil
}

func (r *gormStudyItemRepository) FindByUserAndQuestion(ctx context.Context, db *gorm.DB, userID uuid.UUID, titleSlug string) (*model.StudyItem, error) {
	logger := middleware.GetLogger(ctx)
	var item model.StudyItem

	result := db.WithContext(ctx).Where("user_id = ? AND question_slug = ?", userID, titleSlug).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error(
			"Error finding study item by user and question in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"question_slug", titleSlug,
		)
		return nil, fmt.Errorf("gormStudyItemRepository.FindByUserAndQuestion: %w", result.Error)
	}
	return &item, nil
}

func (r *gormStudyItemRepository) FindAllByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.StudyItem, error) {
	logger := middleware.GetLogger(ctx)
	var items []*model.StudyItem

	result := db.WithContext(ctx).Where("user_id = ?", userID).Find(&items)
	if result.Error != nil {
		logger.Error(
			"Error finding study items by user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormStudyItemRepository.FindAllByUser: %w", result.Error)
	}
	return items, nil
}

func (r *gormStudyItemRepository) FindAllDue(ctx context.Context, db *gorm.DB, asOf time.Time) ([]*model.StudyItem, error) {
	logger := middleware.GetLogger(ctx)
	var items []*model.StudyItem

	// 通知用に Question と User を一緒に取得する
	result := db.WithContext(ctx).
		Preload("Question").
		Preload("User").
		Where("next_review_at IS NOT NULL AND next_review_at <= ?", asOf).
		Find(&items)
	if result.Error != nil {
		logger.Error("Error finding due study items in DB", "error", result.Error)
		return nil, fmt.Errorf("gormStudyItemRepository.FindAllDue: %w", result.Error)
	}
	return items, nil
}

func (r *gormStudyItemRepository) FindDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, asOf time.Time) ([]*model.StudyItem, error) {
	logger := middleware.GetLogger(ctx)
	var items []*model.StudyItem

	result := db.WithContext(ctx).
		Preload("Question").
		Where("user_id = ? AND next_review_at IS NOT NULL AND next_review_at <= ?", userID, asOf).
		Order("next_review_at ASC").
		Find(&items)
	if result.Error != nil {
		logger.Error(
			"Error finding due study items by user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormStudyItemRepository.FindDueByUser: %w", result.Error)
	}
	return items, nil
}
