package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/vinash85/polypLabeler/internal/service"
)

type QuestionHandler struct {
	labelingService service.LabelingService
}

func NewQuestionHandler(labelingService service.LabelingService) *QuestionHandler {
	return &QuestionHandler{
		labelingService: labelingService,
	}
}

// GetQuestion handles GET /api/questions/{index}
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/api/questions/")
	if raw == "" || strings.Contains(raw, "/") {
		writeError(w, http.StatusBadRequest, "question index is required")
		return
	}

	index, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "question index must be an integer")
		return
	}

	item, err := h.labelingService.GetQuestion(index)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Count handles GET /api/questions/count
func (h *QuestionHandler) Count(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": h.labelingService.QuestionCount()})
}
