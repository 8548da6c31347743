package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vinash85/polypLabeler/internal/catalog"
	"github.com/vinash85/polypLabeler/internal/models"
	"github.com/vinash85/polypLabeler/internal/repository"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrAlreadyAnswered  = errors.New("item already answered")
	ErrInvalidAnswer    = errors.New("answer is not one of the item's options")
	ErrInvalidProgress  = errors.New("progress must not be negative")
)

// LabelingService orchestrates the question catalog, the per-user answer
// store and the progress tracker.
//
// Submissions are validated against the item's option set and rejected for
// already-answered items; revisions go through ChangeAnswer. Progress is
// permissive upward (it may exceed the catalog length, matching how clients
// use it to mark the run complete) but never negative.
type LabelingService interface {
	GetQuestion(index int) (models.QuestionItem, error)
	QuestionCount() int

	SubmitAnswer(ctx context.Context, user *models.User, itemKey, answer string) error
	ChangeAnswer(ctx context.Context, user *models.User, itemKey, newAnswer string) error
	ListAnswered(ctx context.Context, user *models.User) ([]string, error)
	GetAnswer(ctx context.Context, user *models.User, itemKey string) (string, error)

	Progress(ctx context.Context, user *models.User) (int32, error)
	SetProgress(ctx context.Context, user *models.User, value int32) error
	AdvanceProgress(ctx context.Context, user *models.User) error
}

type labelingService struct {
	catalog    *catalog.Catalog
	answerRepo repository.AnswerRepository
	userRepo   repository.UserRepository
}

func NewLabelingService(
	cat *catalog.Catalog,
	answerRepo repository.AnswerRepository,
	userRepo repository.UserRepository,
) LabelingService {
	return &labelingService{
		catalog:    cat,
		answerRepo: answerRepo,
		userRepo:   userRepo,
	}
}

func (s *labelingService) GetQuestion(index int) (models.QuestionItem, error) {
	item, err := s.catalog.Get(index)
	if errors.Is(err, catalog.ErrNotFound) {
		return models.QuestionItem{}, ErrQuestionNotFound
	}
	return item, err
}

func (s *labelingService) QuestionCount() int {
	return s.catalog.Len()
}

func (s *labelingService) SubmitAnswer(ctx context.Context, user *models.User, itemKey, answer string) error {
	item, err := s.catalog.FindByImage(itemKey)
	if errors.Is(err, catalog.ErrNotFound) {
		return ErrQuestionNotFound
	}
	if err != nil {
		return err
	}

	if !item.HasOption(answer) {
		return fmt.Errorf("%w: %q", ErrInvalidAnswer, answer)
	}

	// The store itself does no duplicate check; the uniqueness invariant
	// is enforced here so the file never grows a second row for a key.
	_, err = s.answerRepo.GetAnswer(ctx, user.Username, itemKey)
	if err == nil {
		return ErrAlreadyAnswered
	}
	if !errors.Is(err, repository.ErrAnswerNotFound) {
		return err
	}

	if err := s.answerRepo.Append(ctx, user.Username, itemKey, answer); err != nil {
		return err
	}

	return s.userRepo.AdvanceProgress(ctx, user.ID)
}

func (s *labelingService) ChangeAnswer(ctx context.Context, user *models.User, itemKey, newAnswer string) error {
	item, err := s.catalog.FindByImage(itemKey)
	if errors.Is(err, catalog.ErrNotFound) {
		return ErrQuestionNotFound
	}
	if err != nil {
		return err
	}

	if !item.HasOption(newAnswer) {
		return fmt.Errorf("%w: %q", ErrInvalidAnswer, newAnswer)
	}

	err = s.answerRepo.ChangeAnswer(ctx, user.Username, itemKey, newAnswer)
	if errors.Is(err, repository.ErrAnswerNotFound) {
		return ErrAnswerNotFound
	}
	return err
}

func (s *labelingService) ListAnswered(ctx context.Context, user *models.User) ([]string, error) {
	return s.answerRepo.ListAnswered(ctx, user.Username)
}

func (s *labelingService) GetAnswer(ctx context.Context, user *models.User, itemKey string) (string, error) {
	answer, err := s.answerRepo.GetAnswer(ctx, user.Username, itemKey)
	if errors.Is(err, repository.ErrAnswerNotFound) {
		return "", ErrAnswerNotFound
	}
	return answer, err
}

func (s *labelingService) Progress(ctx context.Context, user *models.User) (int32, error) {
	return s.userRepo.GetProgress(ctx, user.ID)
}

func (s *labelingService) SetProgress(ctx context.Context, user *models.User, value int32) error {
	if value < 0 {
		return ErrInvalidProgress
	}
	return s.userRepo.SetProgress(ctx, user.ID, value)
}

func (s *labelingService) AdvanceProgress(ctx context.Context, user *models.User) error {
	return s.userRepo.AdvanceProgress(ctx, user.ID)
}
