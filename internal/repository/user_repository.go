//go:generate mockery --name UserRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"leetcode_srs/internal/middleware"
	"leetcode_srs/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *model.User) error
	FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.User, error)
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) Create(ctx context.Context, db *gorm.DB, user *model.User) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(user)
	if result.Error != nil {
		// email のユニーク制約違反は Conflict として返す
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn(
				"Duplicate key error on create user",
				"error", result.Error,
				"email", user.Email,
			)
			return model.ErrConflict
		}

		logger.Error(
			"Error creating user in DB",
			"error", result.Error,
			"leetcode_username", user.LeetCodeUsername,
		)
		return fmt.Errorf("gormUserRepository.Create: %w", result.Error)
	}

	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User

	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error(
			"Error finding user by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormUserRepository.FindByID: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var users []*model.User

	result := db.WithContext(ctx).Order("created_at ASC").Find(&users)
	if result.Error != nil {
		logger.Error("Error finding all users in DB", "error", result.Error)
		return nil, fmt.Errorf("gormUserRepository.FindAll: %w", result.Error)
	}
	return users, nil
}
