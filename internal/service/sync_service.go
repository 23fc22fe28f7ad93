//go:generate mockery --name SyncService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"leetcode_srs/internal/config"
	"leetcode_srs/internal/leetcode"
	"leetcode_srs/internal/middleware"
	"leetcode_srs/internal/model"
	"leetcode_srs/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// SyncService は提出フィードを復習レコードへ取り込む同期処理です。
// SyncAllUsers は定期トリガーから、SyncUserByID は管理APIから呼ばれます。
type SyncService interface {
	SyncAllUsers(ctx context.Context) error
	SyncUser(ctx context.Context, user *model.User) error
	SyncUserByID(ctx context.Context, userID uuid.UUID) error
}

type syncService struct {
	db           *gorm.DB
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
	itemRepo     repository.StudyItemRepository
	lcClient     leetcode.Client
	cfg          *config.Config
}

func NewSyncService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	questionRepo repository.QuestionRepository,
	itemRepo repository.StudyItemRepository,
	lcClient leetcode.Client,
	cfg *config.Config,
) SyncService {
	return &syncService{
		db:           db,
		userRepo:     userRepo,
		questionRepo: questionRepo,
		itemRepo:     itemRepo,
		lcClient:     lcClient,
		cfg:          cfg,
	}
}

// SyncAllUsers は全ユーザーを同期します。ユーザー間に共有状態はないため
// 設定された同時実行数まで並列に処理し、個々の失敗はログに残して先へ進みます。
func (s *syncService) SyncAllUsers(ctx context.Context) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("Starting LeetCode sync for all users")

	users, err := s.userRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list users for sync", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "同期対象ユーザーの取得に失敗しました。", "", err)
	}

	var failed atomic.Int64

	g := &errgroup.Group{}
	g.SetLimit(s.cfg.App.SyncConcurrency)

	for _, user := range users {
		// キャンセルされたら新しいユーザーの処理は開始しない。
		// 実行中のユーザーは自分のctxで打ち切られる
		if ctx.Err() != nil {
			logger.Warn("Sync cancelled, skipping remaining users", "error", ctx.Err())
			break
		}

		user := user
		g.Go(func() error {
			if err := s.SyncUser(ctx, user); err != nil {
				// 1ユーザーの失敗で他を止めない。次の周期でリカバリされる
				logger.Error("Failed to sync user",
					"error", err,
					"user_id", user.UserID.String(),
					"leetcode_username", user.LeetCodeUsername,
				)
				failed.Add(1)
			}
			return nil
		})
	}

	g.Wait()

	logger.Info("LeetCode sync completed",
		"total_users", len(users),
		"failed_users", failed.Load(),
	)
	return nil
}

func (s *syncService) SyncUserByID(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("USER_NOT_FOUND", "指定されたユーザーが見つかりません。", "user_id", model.ErrNotFound)
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザーの取得に失敗しました。", "", err)
	}
	return s.SyncUser(ctx, user)
}

// SyncUser は1ユーザー分の提出フィードを取り込みます。
// イベントはタイムスタンプ昇順に並べてから適用するため、フィードの並び順に
// 依存せず「新しい提出のみ進める」チェックと整合します。
func (s *syncService) SyncUser(ctx context.Context, user *model.User) error {
	logger := middleware.GetLogger(ctx).With(
		"user_id", user.UserID.String(),
		"leetcode_username", user.LeetCodeUsername,
	)
	logger.Info("Syncing user submissions")

	submissions, err := s.lcClient.GetRecentSubmissions(ctx, user.LeetCodeUsername)
	if err != nil {
		return model.NewAppError("UPSTREAM_UNAVAILABLE", "提出履歴の取得に失敗しました。", "", err)
	}

	// タイムスタンプを先にパースし、不正なイベントはここで除外する
	type parsedSubmission struct {
		sub leetcode.Submission
		at  time.Time
	}
	events := make([]parsedSubmission, 0, len(submissions))
	skipped := 0
	for _, sub := range submissions {
		if sub.TitleSlug == "" {
			logger.Warn("Submission has no titleSlug, skipping", "submission_id", sub.ID)
			skipped++
			continue
		}
		epoch, perr := strconv.ParseInt(sub.Timestamp, 10, 64)
		if perr != nil {
			logger.Warn("Submission has invalid timestamp, skipping",
				"submission_id", sub.ID,
				"timestamp", sub.Timestamp,
			)
			skipped++
			continue
		}
		events = append(events, parsedSubmission{sub: sub, at: time.Unix(epoch, 0).UTC()})
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].at.Before(events[j].at)
	})

	// イベント単位で独立に処理する。1件の失敗は残りの処理を妨げない
	failed := 0
	for _, ev := range events {
		if err := s.processSubmission(ctx, user, ev.sub, ev.at); err != nil {
			logger.Error("Error processing submission",
				"error", err,
				"submission_id", ev.sub.ID,
				"title_slug", ev.sub.TitleSlug,
			)
			failed++
		}
	}

	logger.Info("User sync completed",
		"submissions", len(submissions),
		"skipped", skipped,
		"failed", failed,
	)
	return nil
}

// processSubmission は提出1件を復習レコードへ反映します。
// 初見の問題は品質4の暗黙レビューとして新規作成、既知の問題は提出時刻が
// 記録済みの最終レビューより厳密に新しい場合のみ進めます (古い提出はno-op)。
func (s *syncService) processSubmission(ctx context.Context, user *model.User, sub leetcode.Submission, submittedAt time.Time) error {
	logger := middleware.GetLogger(ctx)

	question, err := s.resolveQuestion(ctx, sub.TitleSlug, sub.Title)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.itemRepo.FindByUserAndQuestion(ctx, tx, user.UserID, question.TitleSlug)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return err
		}

		now := time.Now().UTC()

		if errors.Is(err, model.ErrNotFound) {
			// 初めて観測した問題。ベースライン状態から暗黙レビューを適用する
			update := CalculateNextReview(model.DefaultEaseFactor, model.DefaultIntervalDays, model.DefaultRepetitions, ImplicitQuality, now)
			newItem := &model.StudyItem{
				StudyItemID:  uuid.New(),
				UserID:       user.UserID,
				QuestionSlug: question.TitleSlug,
			}
			applySchedule(newItem, update, submittedAt)
			if createErr := s.itemRepo.Create(ctx, tx, newItem); createErr != nil {
				return createErr
			}
			logger.Info("Created new study item",
				"user_id", user.UserID.String(),
				"title_slug", question.TitleSlug,
			)
			return nil
		}

		// 重複ウィンドウでのフィード再取得により古い提出が再来することがある。
		// 提出時刻が厳密に新しい場合のみ進める
		if item.LastReviewedAt != nil && !submittedAt.After(*item.LastReviewedAt) {
			logger.Debug("Submission not newer than last review, skipping",
				"title_slug", question.TitleSlug,
				"submitted_at", submittedAt,
			)
			return nil
		}

		update := CalculateNextReview(item.EaseFactor, item.IntervalDays, item.Repetitions, ImplicitQuality, now)
		applySchedule(item, update, submittedAt)
		if updateErr := s.itemRepo.Update(ctx, tx, item); updateErr != nil {
			return updateErr
		}
		logger.Info("Advanced study item",
			"user_id", user.UserID.String(),
			"title_slug", question.TitleSlug,
			"repetitions", item.Repetitions,
		)
		return nil
	})
}

// resolveQuestion は問題を遅延解決します。DBに無ければカタログAPIから取得し、
// それも失敗した場合はイベント自身の情報でスケルトンを作ります。
// 作成は slug キーの冪等なupsertなので並行解決でも重複しません。
func (s *syncService) resolveQuestion(ctx context.Context, titleSlug, fallbackTitle string) (*model.Question, error) {
	logger := middleware.GetLogger(ctx)

	question, err := s.questionRepo.FindBySlug(ctx, s.db, titleSlug)
	if err == nil {
		return question, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	question = &model.Question{
		TitleSlug: titleSlug,
		URL:       model.QuestionURL(titleSlug),
	}

	details, derr := s.lcClient.GetQuestionDetails(ctx, titleSlug)
	if derr != nil || details == nil {
		if derr != nil {
			logger.Warn("Failed to fetch question details, creating skeleton",
				"error", derr,
				"title_slug", titleSlug,
			)
		}
		question.Title = fallbackTitle
		question.Difficulty = model.DifficultyUnknown
	} else {
		question.Title = details.Title
		question.Difficulty = details.Difficulty
	}

	if err := s.questionRepo.Upsert(ctx, s.db, question); err != nil {
		return nil, err
	}
	return question, nil
}
