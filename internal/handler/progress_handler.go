package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vinash85/polypLabeler/internal/middleware"
	"github.com/vinash85/polypLabeler/internal/service"
)

type ProgressHandler struct {
	labelingService service.LabelingService
}

func NewProgressHandler(labelingService service.LabelingService) *ProgressHandler {
	return &ProgressHandler{
		labelingService: labelingService,
	}
}

// Progress handles /api/progress: GET returns the user's progress counter,
// PUT overwrites it (clients use this to jump to a specific item index).
func (h *ProgressHandler) Progress(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	switch r.Method {
	case http.MethodGet:
		progress, err := h.labelingService.Progress(r.Context(), user)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int32{"progress": progress})

	case http.MethodPut:
		var req struct {
			Progress int32 `json:"progress"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := h.labelingService.SetProgress(r.Context(), user, req.Progress); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
