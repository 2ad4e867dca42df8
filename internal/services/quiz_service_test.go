package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quiz-backend/internal/dto"
	"quiz-backend/internal/models"
	"quiz-backend/internal/store/memory"

	"github.com/google/uuid"
)

type quizFixture struct {
	store    *memory.Store
	service  *QuizService
	user     *models.User
	category *models.Category
}

func newQuizFixture(t *testing.T) *quizFixture {
	t.Helper()
	ctx := context.Background()
	st := memory.New()

	user := &models.User{ID: uuid.New(), Username: "alice", Email: "a@example.com", PasswordHash: "x", Role: models.UserRoleUser}
	if err := st.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	service := NewQuizService(st)
	category, err := service.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Science", Description: "Physics and more"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	return &quizFixture{store: st, service: service, user: user, category: category}
}

func (f *quizFixture) addQuestion(t *testing.T, correct string, points int) *models.Question {
	t.Helper()
	q, err := f.service.CreateQuestion(context.Background(), &dto.CreateQuestionRequest{
		CategoryID:    f.category.ID,
		QuestionText:  "Q?",
		OptionA:       "one",
		OptionB:       "two",
		OptionC:       "three",
		OptionD:       "four",
		CorrectAnswer: correct,
		Points:        &points,
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	return q
}

func TestSubmitQuiz_ScoresAndRecords(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t)
	q1 := f.addQuestion(t, "b", 2)
	q2 := f.addQuestion(t, "d", 1)

	resp, err := f.service.SubmitQuiz(ctx, f.user.ID, &dto.SubmitQuizRequest{
		CategoryID: f.category.ID,
		Answers:    map[string]string{q1.ID.String(): "b", q2.ID.String(): "a"},
		TimeTaken:  42,
	})
	if err != nil {
		t.Fatalf("SubmitQuiz failed: %v", err)
	}
	if resp.Score != 2 || resp.TotalQuestions != 2 || resp.Percentage != 100 {
		t.Errorf("unexpected response %+v", resp)
	}

	results, err := f.store.ListUserResults(ctx, f.user.ID)
	if err != nil {
		t.Fatalf("ListUserResults failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.UserID != f.user.ID || r.CategoryID != f.category.ID || r.Score != 2 || r.TotalQuestions != 2 || r.TimeTaken != 42 {
		t.Errorf("unexpected result row %+v", r)
	}
}

func TestSubmitQuiz_UnknownQuestionInflatesTotal(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t)
	q := f.addQuestion(t, "a", 3)

	resp, err := f.service.SubmitQuiz(ctx, f.user.ID, &dto.SubmitQuizRequest{
		CategoryID: f.category.ID,
		Answers:    map[string]string{q.ID.String(): "a", uuid.NewString(): "a"},
	})
	if err != nil {
		t.Fatalf("SubmitQuiz failed: %v", err)
	}
	if resp.Score != 3 || resp.TotalQuestions != 2 || resp.Percentage != 150 {
		t.Errorf("expected score 3 of 2 questions (150%%), got %+v", resp)
	}
}

func TestSubmitQuiz_RepeatedQuestionScoresOnce(t *testing.T) {
	f := newQuizFixture(t)
	q := f.addQuestion(t, "a", 5)
	id := q.ID.String()

	resp, err := f.service.SubmitQuiz(context.Background(), f.user.ID, &dto.SubmitQuizRequest{
		CategoryID: f.category.ID,
		Answers: map[string]string{
			id:                              "a",
			strings.ToUpper(id):             "a",
			"{" + id + "}":                  "a",
			"urn:uuid:" + id:                "a",
			strings.ReplaceAll(id, "-", ""): "a",
		},
	})
	if err != nil {
		t.Fatalf("SubmitQuiz failed: %v", err)
	}
	if resp.Score != 5 || resp.TotalQuestions != 5 {
		t.Errorf("expected score 5 of 5 answers, got %+v", resp)
	}
}

func TestSubmitQuiz_EmptyAnswers(t *testing.T) {
	f := newQuizFixture(t)

	resp, err := f.service.SubmitQuiz(context.Background(), f.user.ID, &dto.SubmitQuizRequest{
		CategoryID: f.category.ID,
		Answers:    map[string]string{},
	})
	if err != nil {
		t.Fatalf("SubmitQuiz failed: %v", err)
	}
	if *resp != (dto.SubmitQuizResponse{}) {
		t.Errorf("expected zero response, got %+v", resp)
	}
}

func TestSubmitQuiz_Validation(t *testing.T) {
	f := newQuizFixture(t)

	tests := []struct {
		name string
		req  dto.SubmitQuizRequest
	}{
		{"missing category", dto.SubmitQuizRequest{Answers: map[string]string{}}},
		{"missing answers", dto.SubmitQuizRequest{CategoryID: f.category.ID}},
		{"negative time", dto.SubmitQuizRequest{CategoryID: f.category.ID, Answers: map[string]string{}, TimeTaken: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var verr *ValidationError
			if _, err := f.service.SubmitQuiz(context.Background(), f.user.ID, &tc.req); !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestSubmitQuiz_UnknownCategory(t *testing.T) {
	f := newQuizFixture(t)

	_, err := f.service.SubmitQuiz(context.Background(), f.user.ID, &dto.SubmitQuizRequest{
		CategoryID: uuid.New(),
		Answers:    map[string]string{},
	})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

type failingResults struct {
	*memory.Store
}

func (failingResults) CreateResult(context.Context, *models.Result) error {
	return errors.New("insert failed")
}

func TestSubmitQuiz_ResultInsertFailureIsSurfaced(t *testing.T) {
	f := newQuizFixture(t)
	q := f.addQuestion(t, "a", 1)
	service := NewQuizService(failingResults{f.store})

	resp, err := service.SubmitQuiz(context.Background(), f.user.ID, &dto.SubmitQuizRequest{
		CategoryID: f.category.ID,
		Answers:    map[string]string{q.ID.String(): "a"},
	})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if resp != nil {
		t.Errorf("expected no score on failure, got %+v", resp)
	}
}

func TestCreateQuestion(t *testing.T) {
	f := newQuizFixture(t)

	q, err := f.service.CreateQuestion(context.Background(), &dto.CreateQuestionRequest{
		CategoryID:    f.category.ID,
		QuestionText:  "Capital of France?",
		OptionA:       "Paris",
		OptionB:       "Rome",
		OptionC:       "Madrid",
		OptionD:       "Berlin",
		CorrectAnswer: " A ",
	})
	if err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}
	if q.CorrectAnswer != "a" {
		t.Errorf("expected normalised answer a, got %q", q.CorrectAnswer)
	}
	if q.Points != models.DefaultQuestionPoints {
		t.Errorf("expected default points, got %d", q.Points)
	}
}

func TestCreateQuestion_Rejects(t *testing.T) {
	f := newQuizFixture(t)
	zero := 0

	valid := func() dto.CreateQuestionRequest {
		return dto.CreateQuestionRequest{
			CategoryID:    f.category.ID,
			QuestionText:  "Q?",
			OptionA:       "1",
			OptionB:       "2",
			OptionC:       "3",
			OptionD:       "4",
			CorrectAnswer: "a",
		}
	}

	tests := []struct {
		name   string
		mutate func(*dto.CreateQuestionRequest)
		want   error
	}{
		{"bad answer", func(r *dto.CreateQuestionRequest) { r.CorrectAnswer = "e" }, nil},
		{"zero points", func(r *dto.CreateQuestionRequest) { r.Points = &zero }, nil},
		{"duplicate options", func(r *dto.CreateQuestionRequest) { r.OptionD = "1" }, nil},
		{"missing text", func(r *dto.CreateQuestionRequest) { r.QuestionText = "" }, nil},
		{"missing category", func(r *dto.CreateQuestionRequest) { r.CategoryID = uuid.Nil }, nil},
		{"unknown category", func(r *dto.CreateQuestionRequest) { r.CategoryID = uuid.New() }, ErrCategoryNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid()
			tc.mutate(&req)
			_, err := f.service.CreateQuestion(context.Background(), &req)
			if tc.want != nil {
				if !errors.Is(err, tc.want) {
					t.Fatalf("expected %v, got %v", tc.want, err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestCreateCategory_Duplicate(t *testing.T) {
	f := newQuizFixture(t)

	_, err := f.service.CreateCategory(context.Background(), &dto.CreateCategoryRequest{Name: "Science"})
	if !errors.Is(err, ErrDuplicateEntity) {
		t.Fatalf("expected ErrDuplicateEntity, got %v", err)
	}
}

func TestListQuestions_HidesAnswers(t *testing.T) {
	f := newQuizFixture(t)
	f.addQuestion(t, "c", 1)

	questions, err := f.service.ListQuestions(context.Background(), f.category.ID)
	if err != nil {
		t.Fatalf("ListQuestions failed: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].OptionC != "three" {
		t.Errorf("unexpected question %+v", questions[0])
	}
}
