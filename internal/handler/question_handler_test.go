package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vinash85/polypLabeler/internal/models"
	"github.com/vinash85/polypLabeler/internal/service"
)

func TestGetQuestion(t *testing.T) {
	t.Run("valid index", func(t *testing.T) {
		svc := &mockLabelingService{
			getQuestionFunc: func(index int) (models.QuestionItem, error) {
				if index != 3 {
					t.Errorf("expected index 3, got %d", index)
				}
				return models.QuestionItem{Image: "d.png", Question: "Q4", Options: []string{"X", "Y"}}, nil
			},
		}
		h := NewQuestionHandler(svc)

		rec := httptest.NewRecorder()
		h.GetQuestion(rec, httptest.NewRequest(http.MethodGet, "/api/questions/3", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var item models.QuestionItem
		if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if item.Image != "d.png" || len(item.Options) != 2 {
			t.Errorf("unexpected item: %+v", item)
		}
	})

	t.Run("past the end", func(t *testing.T) {
		svc := &mockLabelingService{
			getQuestionFunc: func(index int) (models.QuestionItem, error) {
				return models.QuestionItem{}, service.ErrQuestionNotFound
			},
		}
		h := NewQuestionHandler(svc)

		rec := httptest.NewRecorder()
		h.GetQuestion(rec, httptest.NewRequest(http.MethodGet, "/api/questions/99", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("non-numeric index", func(t *testing.T) {
		h := NewQuestionHandler(&mockLabelingService{})

		rec := httptest.NewRecorder()
		h.GetQuestion(rec, httptest.NewRequest(http.MethodGet, "/api/questions/abc", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestQuestionCount(t *testing.T) {
	svc := &mockLabelingService{
		questionCountFunc: func() int { return 42 },
	}
	h := NewQuestionHandler(svc)

	rec := httptest.NewRecorder()
	h.Count(rec, httptest.NewRequest(http.MethodGet, "/api/questions/count", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["count"] != 42 {
		t.Errorf("expected count 42, got %d", resp["count"])
	}
}
