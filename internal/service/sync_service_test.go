// internal/service/sync_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"leetcode_srs/internal/config"
	"leetcode_srs/internal/leetcode"
	lcmocks "leetcode_srs/internal/leetcode/mocks"
	"leetcode_srs/internal/model"
	"leetcode_srs/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 同期サービスのテストはリポジトリを実体で動かし、LeetCodeクライアントだけをモックする。
// 「フィードの並び順に依存しない」「古い提出はno-op」といった性質はDBの状態遷移そのものを
// 検証しないと意味がないため。
func setupTestDBSync(t *testing.T) *gorm.DB {
	// SyncAllUsers が users テーブル全件を読むため、テスト間でDBを共有しない
	dsn := fmt.Sprintf("file:sync_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database for sync service testing: %v", err)
	}
	err = db.AutoMigrate(&model.User{}, &model.Question{}, &model.StudyItem{})
	if err != nil {
		t.Fatalf("failed to migrate database for sync service testing: %v", err)
	}
	return db
}

func newSyncTestService(db *gorm.DB, lcClient leetcode.Client) (SyncService, repository.StudyItemRepository, repository.UserRepository) {
	userRepo := repository.NewGormUserRepository()
	questionRepo := repository.NewGormQuestionRepository()
	itemRepo := repository.NewGormStudyItemRepository()
	cfg := &config.Config{
		App: config.AppConfig{SyncConcurrency: 2},
	}
	return NewSyncService(db, userRepo, questionRepo, itemRepo, lcClient, cfg), itemRepo, userRepo
}

func createSyncTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	user := &model.User{
		UserID:           uuid.New(),
		Email:            fmt.Sprintf("%s-%s@example.com", username, uuid.NewString()[:8]),
		LeetCodeUsername: username,
		Timezone:         "UTC",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func epoch(ts time.Time) string {
	return strconv.FormatInt(ts.Unix(), 10)
}

func TestSyncService_SyncUser_OrderIndependence(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	// 同じ2件の提出をフィード順だけ変えて流し、最終状態が一致することを確認する
	orders := []struct {
		name string
		subs []leetcode.Submission
	}{
		{
			name: "正常系: 古い順のフィード",
			subs: []leetcode.Submission{
				{ID: "1", Title: "Two Sum", TitleSlug: "order-a", Timestamp: epoch(t1)},
				{ID: "2", Title: "Two Sum", TitleSlug: "order-a", Timestamp: epoch(t2)},
			},
		},
		{
			name: "正常系: 新しい順のフィード",
			subs: []leetcode.Submission{
				{ID: "2", Title: "Two Sum", TitleSlug: "order-b", Timestamp: epoch(t2)},
				{ID: "1", Title: "Two Sum", TitleSlug: "order-b", Timestamp: epoch(t1)},
			},
		},
	}

	for _, tt := range orders {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDBSync(t)
			user := createSyncTestUser(t, db, "order_user")
			slug := tt.subs[0].TitleSlug

			mockClient := lcmocks.NewClient(t)
			mockClient.On("GetRecentSubmissions", ctx, user.LeetCodeUsername).Return(tt.subs, nil).Once()
			mockClient.On("GetQuestionDetails", ctx, slug).
				Return(&leetcode.QuestionDetail{Title: "Two Sum", TitleSlug: slug, Difficulty: "Easy"}, nil).Once()

			svc, itemRepo, _ := newSyncTestService(db, mockClient)
			require.NoError(t, svc.SyncUser(ctx, user))

			item, err := itemRepo.FindByUserAndQuestion(ctx, db, user.UserID, slug)
			require.NoError(t, err)
			assert.Equal(t, 2, item.Repetitions)
			assert.Equal(t, 6, item.IntervalDays)
			require.NotNil(t, item.LastReviewedAt)
			assert.True(t, item.LastReviewedAt.Equal(t2))
		})
	}
}

func TestSyncService_SyncUser_Idempotent(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	db := setupTestDBSync(t)
	user := createSyncTestUser(t, db, "idem_user")
	slug := "idem-question"

	subs := []leetcode.Submission{
		{ID: "1", Title: "Idem", TitleSlug: slug, Timestamp: epoch(t1)},
	}

	mockClient := lcmocks.NewClient(t)
	mockClient.On("GetRecentSubmissions", ctx, user.LeetCodeUsername).Return(subs, nil).Twice()
	mockClient.On("GetQuestionDetails", ctx, slug).
		Return(&leetcode.QuestionDetail{Title: "Idem", TitleSlug: slug, Difficulty: "Medium"}, nil).Once()

	svc, itemRepo, _ := newSyncTestService(db, mockClient)

	// 同じフィードを2回取り込んでも状態は変わらない
	require.NoError(t, svc.SyncUser(ctx, user))
	require.NoError(t, svc.SyncUser(ctx, user))

	item, err := itemRepo.FindByUserAndQuestion(ctx, db, user.UserID, slug)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Repetitions)
	assert.Equal(t, 1, item.IntervalDays)
	require.NotNil(t, item.LastReviewedAt)
	assert.True(t, item.LastReviewedAt.Equal(t1))
}

func TestSyncService_SyncUser_StaleSubmissionIsNoOp(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	db := setupTestDBSync(t)
	user := createSyncTestUser(t, db, "stale_user")
	slug := "stale-question"

	mockClient := lcmocks.NewClient(t)
	mockClient.On("GetRecentSubmissions", ctx, user.LeetCodeUsername).
		Return([]leetcode.Submission{{ID: "2", Title: "Stale", TitleSlug: slug, Timestamp: epoch(t2)}}, nil).Once()
	mockClient.On("GetRecentSubmissions", ctx, user.LeetCodeUsername).
		Return([]leetcode.Submission{{ID: "1", Title: "Stale", TitleSlug: slug, Timestamp: epoch(t1)}}, nil).Once()
	mockClient.On("GetQuestionDetails", ctx, slug).
		Return(&leetcode.QuestionDetail{Title: "Stale", TitleSlug: slug, Difficulty: "Hard"}, nil).Once()

	svc, itemRepo, _ := newSyncTestService(db, mockClient)

	// 新しい提出を先に取り込み、その後で古い提出だけのフィードが来ても巻き戻らない
	require.NoError(t, svc.SyncUser(ctx, user))
	require.NoError(t, svc.SyncUser(ctx, user))

	item, err := itemRepo.FindByUserAndQuestion(ctx, db, user.UserID, slug)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Repetitions)
	require.NotNil(t, item.LastReviewedAt)
	assert.True(t, item.LastReviewedAt.Equal(t2))
}

func TestSyncService_SyncUser_SkipsMalformedEvents(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	db := setupTestDBSync(t)
	user := createSyncTestUser(t, db, "skip_user")
	slug := "valid-question"

	subs := []leetcode.Submission{
		{ID: "1", Title: "No Slug", TitleSlug: "", Timestamp: epoch(t1)},
		{ID: "2", Title: "Bad Timestamp", TitleSlug: "bad-ts-question", Timestamp: "not-a-number"},
		{ID: "3", Title: "Valid", TitleSlug: slug, Timestamp: epoch(t1)},
	}

	mockClient := lcmocks.NewClient(t)
	mockClient.On("GetRecentSubmissions", ctx, user.LeetCodeUsername).Return(subs, nil).Once()
	mockClient.On("GetQuestionDetails", ctx, slug).
		Return(&leetcode.QuestionDetail{Title: "Valid", TitleSlug: slug, Difficulty: "Easy"}, nil).Once()

	svc, itemRepo, _ := newSyncTestService(db, mockClient)
	require.NoError(t, svc.SyncUser(ctx, user))

	// 有効な1件だけが取り込まれる
	item, err := itemRepo.FindByUserAndQuestion(ctx, db, user.UserID, slug)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Repetitions)

	_, err = itemRepo.FindByUserAndQuestion(ctx, db, user.UserID, "bad-ts-question")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestSyncService_SyncUser_SkeletonQuestionOnCatalogFailure(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	db := setupTestDBSync(t)
	user := createSyncTestUser(t, db, "skeleton_user")
	slug := "skeleton-question"

	mockClient := lcmocks.NewClient(t)
	mockClient.On("GetRecentSubmissions", ctx, user.LeetCodeUsername).
		Return([]leetcode.Submission{{ID: "1", Title: "Skeleton Title", TitleSlug: slug, Timestamp: epoch(t1)}}, nil).Once()
	mockClient.On("GetQuestionDetails", ctx, slug).
		Return(nil, fmt.Errorf("catalog down: %w", model.ErrUpstreamUnavailable)).Once()

	svc, itemRepo, _ := newSyncTestService(db, mockClient)
	require.NoError(t, svc.SyncUser(ctx, user))

	// カタログ取得に失敗しても、イベント自身の情報でスケルトンを作って取り込みは続行する
	var question model.Question
	require.NoError(t, db.Where("title_slug = ?", slug).First(&question).Error)
	assert.Equal(t, "Skeleton Title", question.Title)
	assert.Equal(t, model.DifficultyUnknown, question.Difficulty)
	assert.Equal(t, model.QuestionURL(slug), question.URL)

	item, err := itemRepo.FindByUserAndQuestion(ctx, db, user.UserID, slug)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Repetitions)
}

func TestSyncService_SyncUser_FeedFailure(t *testing.T) {
	ctx := context.Background()

	db := setupTestDBSync(t)
	user := createSyncTestUser(t, db, "feed_fail_user")

	mockClient := lcmocks.NewClient(t)
	mockClient.On("GetRecentSubmissions", ctx, user.LeetCodeUsername).
		Return(nil, fmt.Errorf("leetcode: request failed: %w", model.ErrUpstreamUnavailable)).Once()

	svc, _, _ := newSyncTestService(db, mockClient)
	err := svc.SyncUser(ctx, user)

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUpstreamUnavailable))
}

func TestSyncService_SyncAllUsers_FailureIsolation(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	db := setupTestDBSync(t)
	userOK := createSyncTestUser(t, db, "iso_ok_user")
	userNG := createSyncTestUser(t, db, "iso_ng_user")
	slug := "isolation-question"

	mockClient := lcmocks.NewClient(t)
	mockClient.On("GetRecentSubmissions", ctx, userOK.LeetCodeUsername).
		Return([]leetcode.Submission{{ID: "1", Title: "Iso", TitleSlug: slug, Timestamp: epoch(t1)}}, nil).Once()
	mockClient.On("GetRecentSubmissions", ctx, userNG.LeetCodeUsername).
		Return(nil, fmt.Errorf("leetcode: request failed: %w", model.ErrUpstreamUnavailable)).Once()
	mockClient.On("GetQuestionDetails", ctx, slug).
		Return(&leetcode.QuestionDetail{Title: "Iso", TitleSlug: slug, Difficulty: "Easy"}, nil).Once()

	svc, itemRepo, _ := newSyncTestService(db, mockClient)

	// 1ユーザーの失敗があっても全体としてはエラーにならず、他ユーザーは取り込まれる
	require.NoError(t, svc.SyncAllUsers(ctx))

	item, err := itemRepo.FindByUserAndQuestion(ctx, db, userOK.UserID, slug)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Repetitions)
}

func TestSyncService_SyncUserByID_NotFound(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBSync(t)

	mockClient := lcmocks.NewClient(t)
	svc, _, _ := newSyncTestService(db, mockClient)

	err := svc.SyncUserByID(ctx, uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}
