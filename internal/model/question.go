// internal/model/question.go
package model

import "time"

// Difficulty はLeetCode側の難易度ラベル (Easy/Medium/Hard)。
// カタログから取得できなかったスケルトン問題には Unknown を入れる。
const DifficultyUnknown = "Unknown"

// Question はLeetCodeの問題メタデータを表します。
// title_slug を自然キーとし、同期処理中に初回遭遇時に遅延作成されます。
type Question struct {
	TitleSlug  string    `gorm:"primaryKey" json:"title_slug"`
	Title      string    `gorm:"not null" json:"title"`
	Difficulty string    `json:"difficulty"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}

// QuestionURL は slug から問題ページのURLを組み立てます
func QuestionURL(titleSlug string) string {
	return "https://leetcode.com/problems/" + titleSlug
}
