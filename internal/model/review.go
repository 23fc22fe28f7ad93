// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// SubmitReviewRequest は明示的な復習結果送信リクエストのDTO。
// Quality は SM-2 の品質シグナル (0〜5)。範囲チェックはサービス層でも行う。
type SubmitReviewRequest struct {
	Quality *int `json:"quality" validate:"required,min=0,max=5"`
}

// StudyItemResponse は復習レコードのレスポンスDTO
type StudyItemResponse struct {
	StudyItemID    uuid.UUID  `json:"study_item_id"`
	QuestionSlug   string     `json:"question_slug"`
	EaseFactor     float64    `json:"ease_factor"`
	IntervalDays   int        `json:"interval_days"`
	Repetitions    int        `json:"repetitions"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
	NextReviewAt   *time.Time `json:"next_review_at"`
}

// DueItemResponse は復習期限が到来した問題のレスポンスDTO
type DueItemResponse struct {
	StudyItemID  uuid.UUID  `json:"study_item_id"`
	TitleSlug    string     `json:"title_slug"`
	Title        string     `json:"title"`
	Difficulty   string     `json:"difficulty"`
	URL          string     `json:"url"`
	Repetitions  int        `json:"repetitions"`
	NextReviewAt *time.Time `json:"next_review_at"`
}

// NewStudyItemResponse はエンティティからレスポンスDTOへ変換します
func NewStudyItemResponse(item *StudyItem) *StudyItemResponse {
	return &StudyItemResponse{
		StudyItemID:    item.StudyItemID,
		QuestionSlug:   item.QuestionSlug,
		EaseFactor:     item.EaseFactor,
		IntervalDays:   item.IntervalDays,
		Repetitions:    item.Repetitions,
		LastReviewedAt: item.LastReviewedAt,
		NextReviewAt:   item.NextReviewAt,
	}
}
