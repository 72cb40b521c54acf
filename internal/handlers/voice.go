package handlers

import (
	"VoiceKeeper/internal/config"
	"VoiceKeeper/internal/middleware"
	"VoiceKeeper/internal/service"
	"VoiceKeeper/internal/voice"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// VoiceHandler — эндпоинты регистрации и проверки голоса.
type VoiceHandler struct {
	VoiceService *service.VoiceService
	Logger       *zap.SugaredLogger
	Config       *config.Config
}

func NewVoiceHandler(voiceService *service.VoiceService, logger *zap.SugaredLogger, cfg *config.Config) *VoiceHandler {
	return &VoiceHandler{VoiceService: voiceService, Logger: logger, Config: cfg}
}

type audioRequest struct {
	Audio     string   `json:"audio"`
	Tolerance *float64 `json:"tolerance,omitempty"`
}

type enrollResponse struct {
	ID         string    `json:"id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type statusResponse struct {
	Enrolled   bool       `json:"enrolled"`
	EnrolledAt *time.Time `json:"enrolled_at,omitempty"`
}

// Enroll сохраняет голосовой шаблон текущего пользователя
func (h *VoiceHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	vp, err := h.VoiceService.Enroll(r.Context(), userID, req.Audio)
	if err != nil {
		h.writeError(w, "Enroll", userID, err)
		return
	}

	writeJSON(w, http.StatusCreated, enrollResponse{ID: vp.ID, EnrolledAt: vp.CreatedAt})
}

// Verify сравнивает образец с сохранённым шаблоном
func (h *VoiceHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	if req.Tolerance != nil && (*req.Tolerance < 0 || *req.Tolerance > 1) {
		http.Error(w, "tolerance must be within [0, 1]", http.StatusBadRequest)
		return
	}

	res, err := h.VoiceService.Verify(r.Context(), userID, req.Audio, req.Tolerance)
	if err != nil {
		h.writeError(w, "Verify", userID, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Detect — эвристика наличия голоса, авторизация не нужна
func (h *VoiceHandler) Detect(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.VoiceService.Detect(req.Audio))
}

// Status сообщает, зарегистрирован ли голос
func (h *VoiceHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	vp, err := h.VoiceService.Status(r.Context(), userID)
	if errors.Is(err, service.ErrNotEnrolled) {
		writeJSON(w, http.StatusOK, statusResponse{Enrolled: false})
		return
	}
	if err != nil {
		h.writeError(w, "Status", userID, err)
		return
	}
	at := vp.CreatedAt
	writeJSON(w, http.StatusOK, statusResponse{Enrolled: true, EnrolledAt: &at})
}

// Forget удаляет шаблон
func (h *VoiceHandler) Forget(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.VoiceService.Forget(r.Context(), userID); err != nil {
		h.writeError(w, "Forget", userID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode читает тело с ограничением размера. Base64 раздувает аудио на треть,
// плюс запас на JSON-обёртку.
func (h *VoiceHandler) decode(w http.ResponseWriter, r *http.Request) (audioRequest, bool) {
	var req audioRequest
	if h.Config.AudioMaxMB > 0 {
		maxBody := int64(h.Config.AudioMaxMB)*1024*1024*4/3 + 1024*1024
		r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Logger.Warnw("request body too large", "limit", tooLarge.Limit)
			http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
			return req, false
		}
		h.Logger.Warnw("invalid request body", "path", r.URL.Path, "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return req, false
	}
	if req.Audio == "" {
		http.Error(w, "audio is required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

// writeError переводит ошибки сервиса и движка в HTTP-статусы.
func (h *VoiceHandler) writeError(w http.ResponseWriter, op string, userID int64, err error) {
	var (
		decErr    *voice.DecodeError
		extErr    *voice.ExtractionError
		cryptoErr *voice.CryptoError
	)
	switch {
	case errors.Is(err, service.ErrAudioTooLarge):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, service.ErrNotEnrolled):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrNoVoice):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, service.ErrTemplateStale):
		h.Logger.Errorw(op+": stale voiceprint", "user_id", userID, "error", err)
		http.Error(w, "voiceprint must be re-enrolled", http.StatusConflict)
	case errors.As(err, &decErr), errors.As(err, &extErr):
		h.Logger.Warnw(op+": bad audio", "user_id", userID, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &cryptoErr):
		h.Logger.Errorw(op+": template crypto failure", "user_id", userID, "op", cryptoErr.Op, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	default:
		h.Logger.Errorw(op+": service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
