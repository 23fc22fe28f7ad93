// internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// User は同期対象の学習者を表します。
// アカウントは管理APIで登録され、コアの同期処理からは読み取り専用。
type User struct {
	UserID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Email            string    `gorm:"unique;not null" json:"email"`
	LeetCodeUsername string    `gorm:"not null" json:"leetcode_username"` // 提出フィードの照会キー
	Timezone         string    `gorm:"not null;default:UTC" json:"timezone"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// CreateUserRequest はユーザー登録APIのリクエストボディ (DTO)
type CreateUserRequest struct {
	Email            string `json:"email" validate:"required,email"`
	LeetCodeUsername string `json:"leetcode_username" validate:"required,min=1,max=100"`
	Timezone         string `json:"timezone" validate:"omitempty,max=64"`
}

// UserResponse はクライアントに返すユーザー情報
type UserResponse struct {
	UserID           uuid.UUID `json:"user_id"`
	Email            string    `json:"email"`
	LeetCodeUsername string    `json:"leetcode_username"`
	Timezone         string    `json:"timezone"`
	CreatedAt        time.Time `json:"created_at"`
}
