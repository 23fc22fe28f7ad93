// internal/handlers/admin_handler.go
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

// AdminHandler はユーザー登録・同期・リセットなどの運用系エンドポイントをまとめます。
// 認証はリバースプロキシ側で行う前提で、ここでは扱いません。
type AdminHandler struct {
	userService     service.UserService
	syncService     service.SyncService
	reminderService service.ReminderService
}

func NewAdminHandler(
	userService service.UserService,
	syncService service.SyncService,
	reminderService service.ReminderService,
) *AdminHandler {
	return &AdminHandler{
		userService:     userService,
		syncService:     syncService,
		reminderService: reminderService,
	}
}

// CreateUser は POST /api/v1/users を処理します
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.CreateUserRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		webutil.HandleError(w, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が不正です。", "", model.ErrInvalidInput))
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for CreateUser request", "error", err.Error())
			webutil.HandleError(w, webutil.NewValidationErrorResponse(validationErrors))
			return
		}
		logger.Error("Unexpected error during validation", "error", err)
		webutil.HandleError(w, model.ErrInternalServer)
		return
	}

	user, err := h.userService.CreateUser(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating user", "error", err, "email", req.Email)
		webutil.HandleError(w, err)
		return
	}

	resp := model.UserResponse{
		UserID:           user.UserID,
		Email:            user.Email,
		LeetCodeUsername: user.LeetCodeUsername,
		Timezone:         user.Timezone,
		CreatedAt:        user.CreatedAt,
	}
	webutil.RespondWithJSON(w, http.StatusCreated, resp)
}

// GetUser は GET /api/v1/users/{user_id} を処理します
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userIDStr := chi.URLParam(r, "user_id")
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		webutil.HandleError(w, model.NewAppError("INVALID_USER_ID", "ユーザーIDの形式が不正です。", "user_id", model.ErrInvalidInput))
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting user", "error", err, "user_id", userIDStr)
		webutil.HandleError(w, err)
		return
	}

	resp := model.UserResponse{
		UserID:           user.UserID,
		Email:            user.Email,
		LeetCodeUsername: user.LeetCodeUsername,
		Timezone:         user.Timezone,
		CreatedAt:        user.CreatedAt,
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// SyncAll は POST /api/v1/sync を処理します。全ユーザーの同期を実行します
func (h *AdminHandler) SyncAll(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	if err := h.syncService.SyncAllUsers(r.Context()); err != nil {
		logger.Error("Error syncing all users", "error", err)
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusAccepted, map[string]string{"status": "sync completed"})
}

// SyncUser は POST /api/v1/sync/{user_id} を処理します
func (h *AdminHandler) SyncUser(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userIDStr := chi.URLParam(r, "user_id")
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		webutil.HandleError(w, model.NewAppError("INVALID_USER_ID", "ユーザーIDの形式が不正です。", "user_id", model.ErrInvalidInput))
		return
	}

	if err := h.syncService.SyncUserByID(r.Context(), userID); err != nil {
		logger.Error("Error syncing user", "error", err, "user_id", userIDStr)
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "sync completed"})
}

// ResetProgress は POST /api/v1/reset/{user_id} を処理します
func (h *AdminHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userIDStr := chi.URLParam(r, "user_id")
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		webutil.HandleError(w, model.NewAppError("INVALID_USER_ID", "ユーザーIDの形式が不正です。", "user_id", model.ErrInvalidInput))
		return
	}

	count, err := h.userService.ResetProgress(r.Context(), userID)
	if err != nil {
		logger.Error("Error resetting progress", "error", err, "user_id", userIDStr)
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]int{"reset_count": count})
}

// SendReminders は POST /api/v1/reminders を処理します。リマインダー送信を即時実行します
func (h *AdminHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	if err := h.reminderService.SendDailyReminders(r.Context()); err != nil {
		logger.Error("Error sending reminders", "error", err)
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusAccepted, map[string]string{"status": "reminders sent"})
}
