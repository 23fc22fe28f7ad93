// internal/handlers/review_handler_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leetcode_srs/internal/model"
	svcmocks "leetcode_srs/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReviewTestRouter(h *ReviewHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/api/v1/reviews/{study_item_id}", h.SubmitReview)
	r.Get("/api/v1/users/{user_id}/due", h.GetDueItems)
	return r
}

func TestReviewHandler_SubmitReview(t *testing.T) {
	studyItemID := uuid.New()

	t.Run("正常系: 200と更新後のレコードを返す", func(t *testing.T) {
		mockSvc := svcmocks.NewReviewService(t)
		router := newReviewTestRouter(NewReviewHandler(mockSvc))

		reviewed := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		next := reviewed.AddDate(0, 0, 6)
		updated := &model.StudyItem{
			StudyItemID:    studyItemID,
			QuestionSlug:   "two-sum",
			EaseFactor:     2.6,
			IntervalDays:   6,
			Repetitions:    2,
			LastReviewedAt: &reviewed,
			NextReviewAt:   &next,
		}
		mockSvc.On("SubmitReview", mock.Anything, studyItemID, 5).Return(updated, nil).Once()

		body := bytes.NewBufferString(`{"quality": 5}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/"+studyItemID.String(), body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp model.StudyItemResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, studyItemID, resp.StudyItemID)
		assert.Equal(t, 6, resp.IntervalDays)
		assert.Equal(t, 2, resp.Repetitions)
	})

	t.Run("異常系: 不正なUUIDは400", func(t *testing.T) {
		mockSvc := svcmocks.NewReviewService(t)
		router := newReviewTestRouter(NewReviewHandler(mockSvc))

		body := bytes.NewBufferString(`{"quality": 5}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/not-a-uuid", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertNotCalled(t, "SubmitReview", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: qualityフィールド欠落は400", func(t *testing.T) {
		mockSvc := svcmocks.NewReviewService(t)
		router := newReviewTestRouter(NewReviewHandler(mockSvc))

		body := bytes.NewBufferString(`{}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/"+studyItemID.String(), body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var errResp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "VALIDATION_ERROR", errResp.Error.Code)
	})

	t.Run("異常系: quality範囲外は400", func(t *testing.T) {
		mockSvc := svcmocks.NewReviewService(t)
		router := newReviewTestRouter(NewReviewHandler(mockSvc))

		body := bytes.NewBufferString(`{"quality": 9}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/"+studyItemID.String(), body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertNotCalled(t, "SubmitReview", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: レコードが存在しない場合は404", func(t *testing.T) {
		mockSvc := svcmocks.NewReviewService(t)
		router := newReviewTestRouter(NewReviewHandler(mockSvc))

		mockSvc.On("SubmitReview", mock.Anything, studyItemID, 3).
			Return(nil, model.NewAppError("STUDY_ITEM_NOT_FOUND", "指定された復習レコードが見つかりません。", "study_item_id", model.ErrNotFound)).Once()

		body := bytes.NewBufferString(`{"quality": 3}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/"+studyItemID.String(), body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var errResp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "STUDY_ITEM_NOT_FOUND", errResp.Error.Code)
	})
}

func TestReviewHandler_GetDueItems(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: 期限到来レコードの一覧を返す", func(t *testing.T) {
		mockSvc := svcmocks.NewReviewService(t)
		router := newReviewTestRouter(NewReviewHandler(mockSvc))

		next := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		items := []*model.StudyItem{
			{
				StudyItemID:  uuid.New(),
				UserID:       userID,
				QuestionSlug: "two-sum",
				Repetitions:  2,
				NextReviewAt: &next,
				Question: &model.Question{
					TitleSlug:  "two-sum",
					Title:      "Two Sum",
					Difficulty: "Easy",
					URL:        model.QuestionURL("two-sum"),
				},
			},
			{
				// Question未解決のレコードでもslugで返す
				StudyItemID:  uuid.New(),
				UserID:       userID,
				QuestionSlug: "mystery-question",
				Repetitions:  1,
				NextReviewAt: &next,
			},
		}
		mockSvc.On("GetDueItems", mock.Anything, userID).Return(items, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID.String()+"/due", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp []*model.DueItemResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, "Two Sum", resp[0].Title)
		assert.Equal(t, "mystery-question", resp[1].TitleSlug)
		assert.Empty(t, resp[1].Title)
	})

	t.Run("正常系: 0件でも空配列を返す", func(t *testing.T) {
		mockSvc := svcmocks.NewReviewService(t)
		router := newReviewTestRouter(NewReviewHandler(mockSvc))

		mockSvc.On("GetDueItems", mock.Anything, userID).Return([]*model.StudyItem{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID.String()+"/due", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("異常系: 不正なUUIDは400", func(t *testing.T) {
		mockSvc := svcmocks.NewReviewService(t)
		router := newReviewTestRouter(NewReviewHandler(mockSvc))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/not-a-uuid/due", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
