// internal/handlers/review_handler.go
package handlers

import (
	"errors"
	"net/http"

	"leetcode_srs/internal/middleware"
	"leetcode_srs/internal/model"
	"leetcode_srs/internal/service"
	"leetcode_srs/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	service service.ReviewService
}

func NewReviewHandler(s service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: s}
}

// SubmitReview は POST /api/v1/reviews/{study_item_id} を処理します
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	studyItemIDStr := chi.URLParam(r, "study_item_id")
	studyItemID, err := uuid.Parse(studyItemIDStr)
	if err != nil {
		webutil.HandleError(w, model.NewAppError("INVALID_STUDY_ITEM_ID", "復習レコードIDの形式が不正です。", "study_item_id", model.ErrInvalidInput))
		return
	}

	var req model.SubmitReviewRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		webutil.HandleError(w, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が不正です。", "", model.ErrInvalidInput))
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for SubmitReview request", "error", err.Error())
			webutil.HandleError(w, webutil.NewValidationErrorResponse(validationErrors))
			return
		}
		logger.Error("Unexpected error during validation", "error", err)
		webutil.HandleError(w, model.ErrInternalServer)
		return
	}

	item, err := h.service.SubmitReview(r.Context(), studyItemID, *req.Quality)
	if err != nil {
		logger.Error("Error submitting review",
			"error", err,
			"study_item_id", studyItemIDStr,
		)
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.NewStudyItemResponse(item))
}

// GetDueItems は GET /api/v1/users/{user_id}/due を処理します
func (h *ReviewHandler) GetDueItems(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userIDStr := chi.URLParam(r, "user_id")
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		webutil.HandleError(w, model.NewAppError("INVALID_USER_ID", "ユーザーIDの形式が不正です。", "user_id", model.ErrInvalidInput))
		return
	}

	items, err := h.service.GetDueItems(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting due items", "error", err, "user_id", userIDStr)
		webutil.HandleError(w, err)
		return
	}

	responses := make([]*model.DueItemResponse, 0, len(items))
	for _, item := range items {
		resp := &model.DueItemResponse{
			StudyItemID:  item.StudyItemID,
			TitleSlug:    item.QuestionSlug,
			Repetitions:  item.Repetitions,
			NextReviewAt: item.NextReviewAt,
		}
		if item.Question != nil {
			resp.Title = item.Question.Title
			resp.Difficulty = item.Question.Difficulty
			resp.URL = item.Question.URL
		}
		responses = append(responses, resp)
	}

	webutil.RespondWithJSON(w, http.StatusOK, responses)
}
