//go:generate mockery --name ReviewService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"time"

	"leetcode_srs/internal/middleware"
	"leetcode_srs/internal/model"
	"leetcode_srs/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewService は学習者が明示的に申告した復習結果を処理します。
// 同期経由の暗黙レビューと違い、品質シグナルは学習者自身が与え、
// last_reviewed_at には現在時刻を記録します。
type ReviewService interface {
	SubmitReview(ctx context.Context, studyItemID uuid.UUID, quality int) (*model.StudyItem, error)
	GetDueItems(ctx context.Context, userID uuid.UUID) ([]*model.StudyItem, error)
}

type reviewService struct {
	db       *gorm.DB
	itemRepo repository.StudyItemRepository
}

func NewReviewService(db *gorm.DB, itemRepo repository.StudyItemRepository) ReviewService {
	return &reviewService{
		db:       db,
		itemRepo: itemRepo,
	}
}

func (s *reviewService) SubmitReview(ctx context.Context, studyItemID uuid.UUID, quality int) (*model.StudyItem, error) {
	logger := middleware.GetLogger(ctx).With("study_item_id", studyItemID.String())

	// 外部入力の品質はレコードに触る前に検証する
	if err := ValidateQuality(quality); err != nil {
		return nil, err
	}

	var updated *model.StudyItem

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.itemRepo.FindByID(ctx, tx, studyItemID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("STUDY_ITEM_NOT_FOUND", "指定された復習レコードが見つかりません。", "study_item_id", model.ErrNotFound)
			}
			logger.Error("Error finding study item in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "復習レコードの取得に失敗しました。", "", err)
		}

		now := time.Now().UTC()
		update := CalculateNextReview(item.EaseFactor, item.IntervalDays, item.Repetitions, quality, now)
		applySchedule(item, update, now)

		if err := s.itemRepo.Update(ctx, tx, item); err != nil {
			logger.Error("Error updating study item", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "復習レコードの更新に失敗しました。", "", err)
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Review processed",
		"quality", quality,
		"repetitions", updated.Repetitions,
		"interval_days", updated.IntervalDays,
	)
	return updated, nil
}

func (s *reviewService) GetDueItems(ctx context.Context, userID uuid.UUID) ([]*model.StudyItem, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String())

	items, err := s.itemRepo.FindDueByUser(ctx, s.db, userID, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to find due study items", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習対象の取得に失敗しました。", "", err)
	}

	logger.Info("Retrieved due study items", "count", len(items))
	return items, nil
}
