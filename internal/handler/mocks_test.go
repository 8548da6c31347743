package handler

import (
	"context"

	"github.com/vinash85/polypLabeler/internal/models"
)

// mockLabelingService implements service.LabelingService with pluggable
// behavior per test.
type mockLabelingService struct {
	getQuestionFunc     func(index int) (models.QuestionItem, error)
	questionCountFunc   func() int
	submitAnswerFunc    func(ctx context.Context, user *models.User, itemKey, answer string) error
	changeAnswerFunc    func(ctx context.Context, user *models.User, itemKey, newAnswer string) error
	listAnsweredFunc    func(ctx context.Context, user *models.User) ([]string, error)
	getAnswerFunc       func(ctx context.Context, user *models.User, itemKey string) (string, error)
	progressFunc        func(ctx context.Context, user *models.User) (int32, error)
	setProgressFunc     func(ctx context.Context, user *models.User, value int32) error
	advanceProgressFunc func(ctx context.Context, user *models.User) error
}

func (m *mockLabelingService) GetQuestion(index int) (models.QuestionItem, error) {
	return m.getQuestionFunc(index)
}

func (m *mockLabelingService) QuestionCount() int {
	return m.questionCountFunc()
}

func (m *mockLabelingService) SubmitAnswer(ctx context.Context, user *models.User, itemKey, answer string) error {
	return m.submitAnswerFunc(ctx, user, itemKey, answer)
}

func (m *mockLabelingService) ChangeAnswer(ctx context.Context, user *models.User, itemKey, newAnswer string) error {
	return m.changeAnswerFunc(ctx, user, itemKey, newAnswer)
}

func (m *mockLabelingService) ListAnswered(ctx context.Context, user *models.User) ([]string, error) {
	return m.listAnsweredFunc(ctx, user)
}

func (m *mockLabelingService) GetAnswer(ctx context.Context, user *models.User, itemKey string) (string, error) {
	return m.getAnswerFunc(ctx, user, itemKey)
}

func (m *mockLabelingService) Progress(ctx context.Context, user *models.User) (int32, error) {
	return m.progressFunc(ctx, user)
}

func (m *mockLabelingService) SetProgress(ctx context.Context, user *models.User, value int32) error {
	return m.setProgressFunc(ctx, user, value)
}

func (m *mockLabelingService) AdvanceProgress(ctx context.Context, user *models.User) error {
	return m.advanceProgressFunc(ctx, user)
}
