// internal/handlers/admin_handler_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"leetcode_srs/internal/model"
	svcmocks "leetcode_srs/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminTestMocks struct {
	userService     *svcmocks.UserService
	syncService     *svcmocks.SyncService
	reminderService *svcmocks.ReminderService
}

func newAdminTestRouter(t *testing.T) (*chi.Mux, adminTestMocks) {
	m := adminTestMocks{
		userService:     svcmocks.NewUserService(t),
		syncService:     svcmocks.NewSyncService(t),
		reminderService: svcmocks.NewReminderService(t),
	}
	h := NewAdminHandler(m.userService, m.syncService, m.reminderService)

	r := chi.NewRouter()
	r.Post("/api/v1/users", h.CreateUser)
	r.Get("/api/v1/users/{user_id}", h.GetUser)
	r.Post("/api/v1/sync", h.SyncAll)
	r.Post("/api/v1/sync/{user_id}", h.SyncUser)
	r.Post("/api/v1/reset/{user_id}", h.ResetProgress)
	r.Post("/api/v1/reminders", h.SendReminders)
	return r, m
}

func TestAdminHandler_CreateUser(t *testing.T) {
	t.Run("正常系: 201と作成されたユーザーを返す", func(t *testing.T) {
		router, m := newAdminTestRouter(t)

		created := &model.User{
			UserID:           uuid.New(),
			Email:            "alice@example.com",
			LeetCodeUsername: "alice",
			Timezone:         "UTC",
		}
		m.userService.On("CreateUser", mock.Anything, mock.MatchedBy(func(req *model.CreateUserRequest) bool {
			return req.Email == "alice@example.com" && req.LeetCodeUsername == "alice"
		})).Return(created, nil).Once()

		body := bytes.NewBufferString(`{"email": "alice@example.com", "leetcode_username": "alice"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp model.UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, created.UserID, resp.UserID)
		assert.Equal(t, "alice", resp.LeetCodeUsername)
	})

	t.Run("異常系: 不正なメールアドレスは400", func(t *testing.T) {
		router, m := newAdminTestRouter(t)

		body := bytes.NewBufferString(`{"email": "not-an-email", "leetcode_username": "alice"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		m.userService.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("異常系: 未知のフィールドは400", func(t *testing.T) {
		router, m := newAdminTestRouter(t)

		body := bytes.NewBufferString(`{"email": "a@example.com", "leetcode_username": "a", "unknown_field": true}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		m.userService.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("異常系: メールアドレス重複は409", func(t *testing.T) {
		router, m := newAdminTestRouter(t)

		m.userService.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, model.NewAppError("EMAIL_CONFLICT", "このメールアドレスは既に登録されています。", "email", model.ErrConflict)).Once()

		body := bytes.NewBufferString(`{"email": "dup@example.com", "leetcode_username": "dup"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)

		var errResp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "EMAIL_CONFLICT", errResp.Error.Code)
	})
}

func TestAdminHandler_GetUser(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: ユーザー情報を返す", func(t *testing.T) {
		router, m := newAdminTestRouter(t)

		m.userService.On("GetUser", mock.Anything, userID).Return(&model.User{
			UserID:           userID,
			Email:            "alice@example.com",
			LeetCodeUsername: "alice",
			Timezone:         "UTC",
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp model.UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, userID, resp.UserID)
	})

	t.Run("異常系: 存在しないユーザーは404", func(t *testing.T) {
		router, m := newAdminTestRouter(t)

		m.userService.On("GetUser", mock.Anything, userID).
			Return(nil, model.NewAppError("USER_NOT_FOUND", "指定されたユーザーが見つかりません。", "user_id", model.ErrNotFound)).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminHandler_SyncAll(t *testing.T) {
	t.Run("正常系: 202を返す", func(t *testing.T) {
		router, m := newAdminTestRouter(t)

		m.syncService.On("SyncAllUsers", mock.Anything).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
	})

	t.Run("異常系: 同期失敗は500", func(t *testing.T) {
		router, m := newAdminTestRouter(t)

		m.syncService.On("SyncAllUsers", mock.Anything).Return(errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestAdminHandler_SyncUser(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: 200を返す", func(t *testing.T) {
		router, m := newAdminTestRouter(t)

		m.syncService.On("SyncUserByID", mock.Anything, userID).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/"+userID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("異常系: 存在しないユーザーは404", func(t *testing.T) {
		router, m := newAdminTestRouter(t)

		m.syncService.On("SyncUserByID", mock.Anything, userID).
			Return(model.NewAppError("USER_NOT_FOUND", "指定されたユーザーが見つかりません。", "user_id", model.ErrNotFound)).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/"+userID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("異常系: フィード取得失敗は502", func(t *testing.T) {
		router, m := newAdminTestRouter(t)

		m.syncService.On("SyncUserByID", mock.Anything, userID).
			Return(model.NewAppError("UPSTREAM_UNAVAILABLE", "提出履歴の取得に失敗しました。", "", model.ErrUpstreamUnavailable)).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/"+userID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("異常系: 不正なUUIDは400", func(t *testing.T) {
		router, m := newAdminTestRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		m.syncService.AssertNotCalled(t, "SyncUserByID", mock.Anything, mock.Anything)
	})
}

func TestAdminHandler_ResetProgress(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: リセット件数を返す", func(t *testing.T) {
		router, m := newAdminTestRouter(t)

		m.userService.On("ResetProgress", mock.Anything, userID).Return(3, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/reset/"+userID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"reset_count": 3}`, rec.Body.String())
	})

	t.Run("異常系: 存在しないユーザーは404", func(t *testing.T) {
		router, m := newAdminTestRouter(t)

		m.userService.On("ResetProgress", mock.Anything, userID).
			Return(0, model.NewAppError("USER_NOT_FOUND", "指定されたユーザーが見つかりません。", "user_id", model.ErrNotFound)).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/reset/"+userID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminHandler_SendReminders(t *testing.T) {
	t.Run("正常系: 202を返す", func(t *testing.T) {
		router, m := newAdminTestRouter(t)

		m.reminderService.On("SendDailyReminders", mock.Anything).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/reminders", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
	})
}
