// internal/service/scheduler.go
package service

import (
	"math"
	"time"

	"leetcode_srs/internal/model"
)

// SM-2 アルゴリズムの定数
const (
	// MinEaseFactor を下回ると復習間隔が縮み続けるため、ここで下げ止める
	MinEaseFactor = 1.3
	// ImplicitQuality は外部で観測されたAC提出に割り当てる品質。
	// 人間の自己評価がないため「やや苦労したが正解」として扱う
	ImplicitQuality = 4
)

// ScheduleUpdate は CalculateNextReview の計算結果。
// 呼び出し側がレコードへ単一のreplaceとして適用する
type ScheduleUpdate struct {
	EaseFactor   float64
	IntervalDays int
	Repetitions  int
	NextReviewAt time.Time
}

// ValidateQuality は外部から渡された品質シグナルの範囲チェックを行います
func ValidateQuality(quality int) error {
	if quality < 0 || quality > 5 {
		return model.NewAppError(
			"INVALID_QUALITY",
			"回答品質は0〜5の整数で指定してください。",
			"quality",
			model.ErrInvalidInput,
		)
	}
	return nil
}

// CalculateNextReview は SM-2 で次回復習スケジュールを計算します。
// 純粋関数で副作用を持たず、quality は検証済みであることを前提とします。
// next_review_at は now + 間隔日数 (暦日ベース、UTC運用)。
func CalculateNextReview(easeFactor float64, intervalDays, repetitions, quality int, now time.Time) ScheduleUpdate {
	newEase := easeFactor
	newInterval := intervalDays
	newRepetitions := repetitions

	if quality < 3 {
		// 思い出せなかった場合は振り出しに戻す。EFは変更しない
		newRepetitions = 0
		newInterval = 1
	} else {
		// EF' = EF + (0.1 - (5-q) * (0.08 + (5-q) * 0.02))
		q := float64(quality)
		newEase = easeFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
		if newEase < MinEaseFactor {
			newEase = MinEaseFactor
		}

		newRepetitions++

		switch newRepetitions {
		case 1:
			newInterval = 1
		case 2:
			newInterval = 6
		default:
			newInterval = int(math.Round(float64(intervalDays) * newEase))
		}
	}

	return ScheduleUpdate{
		EaseFactor:   newEase,
		IntervalDays: newInterval,
		Repetitions:  newRepetitions,
		NextReviewAt: now.AddDate(0, 0, newInterval),
	}
}

// applySchedule は計算結果をレコードへ反映します。フィールドを個別に
// いじらず、常にこの1箇所を通すことで不変条件を守る
func applySchedule(item *model.StudyItem, update ScheduleUpdate, reviewedAt time.Time) {
	item.EaseFactor = update.EaseFactor
	item.IntervalDays = update.IntervalDays
	item.Repetitions = update.Repetitions
	item.LastReviewedAt = &reviewedAt
	next := update.NextReviewAt
	item.NextReviewAt = &next
}
