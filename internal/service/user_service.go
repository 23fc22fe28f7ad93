//go:generate mockery --name UserService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"

	"leetcode_srs/internal/middleware"
	"leetcode_srs/internal/model"
	"leetcode_srs/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService は管理API向けのユーザー操作です。
// コアの同期処理からユーザーは読み取り専用で、作成とリセットはここだけが行います。
type UserService interface {
	CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
	// ResetProgress はユーザーの全復習レコードを初期値に戻し、件数を返します
	ResetProgress(ctx context.Context, userID uuid.UUID) (int, error)
}

type userService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	itemRepo repository.StudyItemRepository
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepository, itemRepo repository.StudyItemRepository) UserService {
	return &userService{
		db:       db,
		userRepo: userRepo,
		itemRepo: itemRepo,
	}
}

func (s *userService) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	logger := middleware.GetLogger(ctx)

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	user := &model.User{
		UserID:           uuid.New(),
		Email:            req.Email,
		LeetCodeUsername: req.LeetCodeUsername,
		Timezone:         timezone,
	}

	if err := s.userRepo.Create(ctx, s.db, user); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("EMAIL_CONFLICT", "このメールアドレスは既に登録されています。", "email", model.ErrConflict)
		}
		logger.Error("Error creating user", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザーの作成に失敗しました。", "", err)
	}

	logger.Info("User created",
		"user_id", user.UserID.String(),
		"leetcode_username", user.LeetCodeUsername,
	)
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "指定されたユーザーが見つかりません。", "user_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザーの取得に失敗しました。", "", err)
	}
	return user, nil
}

func (s *userService) ResetProgress(ctx context.Context, userID uuid.UUID) (int, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String())

	count := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(ctx, tx, userID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("USER_NOT_FOUND", "指定されたユーザーが見つかりません。", "user_id", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザーの取得に失敗しました。", "", err)
		}

		items, err := s.itemRepo.FindAllByUser(ctx, tx, userID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "復習レコードの取得に失敗しました。", "", err)
		}

		// スケジューラと同じ初期値に戻す。レコード自体は削除しない
		for _, item := range items {
			item.EaseFactor = model.DefaultEaseFactor
			item.IntervalDays = model.DefaultIntervalDays
			item.Repetitions = model.DefaultRepetitions
			item.LastReviewedAt = nil
			item.NextReviewAt = nil
			if err := s.itemRepo.Update(ctx, tx, item); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "復習レコードのリセットに失敗しました。", "", err)
			}
		}

		count = len(items)
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info("Progress reset", "reset_count", count)
	return count, nil
}
