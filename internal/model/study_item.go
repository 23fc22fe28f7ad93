// internal/model/study_item.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// SM-2 スケジュールの初期値。管理APIのリセット操作でも同じ値に戻す。
const (
	DefaultEaseFactor   = 2.5
	DefaultIntervalDays = 0
	DefaultRepetitions  = 0
)

// StudyItem は (ユーザー, 問題) ごとの復習スケジュール状態を表します。
// 複合ユニークインデックスにより同一ペアのレコードは常に1件。
type StudyItem struct {
	StudyItemID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"study_item_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_user_question,unique" json:"user_id"`
	QuestionSlug string    `gorm:"not null;index:idx_user_question,unique" json:"question_slug"`

	// SM-2 の状態
	EaseFactor   float64 `gorm:"not null;default:2.5" json:"ease_factor"`
	IntervalDays int     `gorm:"not null;default:0" json:"interval_days"`
	Repetitions  int     `gorm:"not null;default:0" json:"repetitions"`

	// 初回レビューまではどちらも NULL
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
	NextReviewAt   *time.Time `gorm:"index" json:"next_review_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 関連 (Preload用)
	Question *Question `gorm:"foreignKey:QuestionSlug;references:TitleSlug" json:"question,omitempty"`
	User     *User     `gorm:"foreignKey:UserID;references:UserID" json:"-"`
}

func (StudyItem) TableName() string {
	return "study_items"
}
