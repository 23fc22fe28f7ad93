//go:generate mockery --name ReminderService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"leetcode_srs/internal/middleware"
	"leetcode_srs/internal/model"
	"leetcode_srs/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderService は復習期限が到来した問題をユーザーごとにまとめてメール通知します。
// 外部の日次トリガーから呼ばれる想定で、自身はタイマーを持ちません。
type ReminderService interface {
	SendDailyReminders(ctx context.Context) error
}

type reminderService struct {
	db       *gorm.DB
	itemRepo repository.StudyItemRepository
	mailer   Mailer
}

func NewReminderService(db *gorm.DB, itemRepo repository.StudyItemRepository, mailer Mailer) ReminderService {
	return &reminderService{
		db:       db,
		itemRepo: itemRepo,
		mailer:   mailer,
	}
}

func (s *reminderService) SendDailyReminders(ctx context.Context) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("Starting daily reminder job")

	dueItems, err := s.itemRepo.FindAllDue(ctx, s.db, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to find due study items", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "復習対象の取得に失敗しました。", "", err)
	}

	if len(dueItems) == 0 {
		logger.Info("No items due for review today")
		return nil
	}

	// ユーザー単位にグルーピング。User がPreloadされていないレコードは通知できないのでスキップ
	itemsByUser := make(map[uuid.UUID][]*model.StudyItem)
	usersByID := make(map[uuid.UUID]*model.User)
	for _, item := range dueItems {
		if item.User == nil {
			logger.Warn("Due study item has no preloaded user, skipping", "study_item_id", item.StudyItemID.String())
			continue
		}
		itemsByUser[item.UserID] = append(itemsByUser[item.UserID], item)
		usersByID[item.UserID] = item.User
	}

	// 1ユーザーへの送信失敗は他のユーザーへの通知を妨げない
	failed := 0
	for userID, items := range itemsByUser {
		user := usersByID[userID]
		subject := fmt.Sprintf("Time to Code: %d Problems Due Today", len(items))
		body := buildReminderBody(user, items)

		if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
			logger.Error("Failed to send reminder email",
				"error", err,
				"user_id", userID.String(),
				"email", user.Email,
			)
			failed++
			continue
		}
		logger.Info("Sent reminder email",
			"user_id", userID.String(),
			"due_count", len(items),
		)
	}

	logger.Info("Daily reminder job completed",
		"users_notified", len(itemsByUser)-failed,
		"users_failed", failed,
		"due_items", len(dueItems),
	)
	return nil
}

func buildReminderBody(user *model.User, items []*model.StudyItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hello, %s!\r\n\r\n", user.LeetCodeUsername)
	fmt.Fprintf(&b, "You have %d problems due for review today:\r\n\r\n", len(items))

	for _, item := range items {
		if item.Question == nil {
			fmt.Fprintf(&b, "- %s\r\n", item.QuestionSlug)
			continue
		}
		fmt.Fprintf(&b, "- %s (%s)\r\n", item.Question.Title, item.Question.URL)
	}

	b.WriteString("\r\nHappy Coding!\r\n")
	return b.String()
}
