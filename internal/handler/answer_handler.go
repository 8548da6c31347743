package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vinash85/polypLabeler/internal/middleware"
	"github.com/vinash85/polypLabeler/internal/service"
	"github.com/vinash85/polypLabeler/internal/validation"
)

type AnswerHandler struct {
	labelingService service.LabelingService
	validator       *validation.Validator
}

func NewAnswerHandler(labelingService service.LabelingService, validator *validation.Validator) *AnswerHandler {
	return &AnswerHandler{
		labelingService: labelingService,
		validator:       validator,
	}
}

type answerRequest struct {
	Image  string `json:"image" validate:"required,image_key"`
	Answer string `json:"answer" validate:"required"`
}

// Answers handles /api/answers: GET lists answered item keys, POST submits a
// new answer, PUT changes an existing one.
func (h *AnswerHandler) Answers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listAnswered(w, r)
	case http.MethodPost:
		h.submitAnswer(w, r)
	case http.MethodPut:
		h.changeAnswer(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// GetAnswer handles GET /api/answers/{image}
func (h *AnswerHandler) GetAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	user, err := middleware.GetUserFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	image := strings.TrimPrefix(r.URL.Path, "/api/answers/")
	if image == "" || strings.Contains(image, "/") {
		writeError(w, http.StatusBadRequest, "image name is required")
		return
	}

	answer, err := h.labelingService.GetAnswer(r.Context(), user, image)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"image":  image,
		"answer": answer,
	})
}

func (h *AnswerHandler) listAnswered(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	answered, err := h.labelingService.ListAnswered(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"answered": answered})
}

func (h *AnswerHandler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.labelingService.SubmitAnswer(r.Context(), user, req.Image, req.Answer); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (h *AnswerHandler) changeAnswer(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.labelingService.ChangeAnswer(r.Context(), user, req.Image, req.Answer); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
