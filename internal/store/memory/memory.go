// Package memory is an in-process store backend for local runs and tests.
// It enforces the same uniqueness and reference rules as the SQL schema.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"quiz-backend/internal/models"
	"quiz-backend/internal/store"

	"github.com/google/uuid"
)

type Store struct {
	now func() time.Time

	mu         sync.RWMutex
	users      map[uuid.UUID]models.User
	categories map[uuid.UUID]models.Category
	questions  map[uuid.UUID]models.Question
	results    []models.Result
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock allows deterministic timestamps in tests.
func NewWithClock(now func() time.Time) *Store {
	return &Store{
		now:        now,
		users:      make(map[uuid.UUID]models.User),
		categories: make(map[uuid.UUID]models.Category),
		questions:  make(map[uuid.UUID]models.Question),
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	if _, ok := s.users[user.ID]; ok {
		return store.ErrDuplicate
	}

	now := s.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *Store) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var byEmail *models.User
	for _, u := range s.users {
		if u.Username == login {
			return &u, nil
		}
		if u.Email == login && byEmail == nil {
			match := u
			byEmail = &match
		}
	}
	if byEmail != nil {
		return byEmail, nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) SetUserRole(_ context.Context, username string, role models.UserRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, u := range s.users {
		if u.Username == username {
			u.Role = role
			u.UpdatedAt = s.now()
			s.users[id] = u
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) ListCategories(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (s *Store) GetCategory(_ context.Context, id uuid.UUID) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (s *Store) CreateCategory(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.Name == category.Name {
			return store.ErrDuplicate
		}
	}
	category.CreatedAt = s.now()
	s.categories[category.ID] = *category
	return nil
}

func (s *Store) ListQuestions(_ context.Context, categoryID uuid.UUID) ([]models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	questions := []models.Question{}
	for _, q := range s.questions {
		if q.CategoryID == categoryID {
			questions = append(questions, q)
		}
	}
	sort.Slice(questions, func(i, j int) bool {
		if !questions[i].CreatedAt.Equal(questions[j].CreatedAt) {
			return questions[i].CreatedAt.Before(questions[j].CreatedAt)
		}
		return strings.Compare(questions[i].ID.String(), questions[j].ID.String()) < 0
	})
	return questions, nil
}

func (s *Store) CreateQuestion(_ context.Context, question *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[question.CategoryID]; !ok {
		return store.ErrReference
	}
	question.CreatedAt = s.now()
	s.questions[question.ID] = *question
	return nil
}

func (s *Store) AnswerKeys(_ context.Context, questionIDs []uuid.UUID) (map[uuid.UUID]models.AnswerKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make(map[uuid.UUID]models.AnswerKey, len(questionIDs))
	for _, id := range questionIDs {
		if q, ok := s.questions[id]; ok {
			keys[id] = models.AnswerKey{
				QuestionID:    q.ID,
				CorrectAnswer: q.CorrectAnswer,
				Points:        q.Points,
			}
		}
	}
	return keys, nil
}

func (s *Store) CreateResult(_ context.Context, result *models.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[result.UserID]; !ok {
		return store.ErrReference
	}
	if _, ok := s.categories[result.CategoryID]; !ok {
		return store.ErrReference
	}
	if result.CompletedAt.IsZero() {
		result.CompletedAt = s.now()
	}
	s.results = append(s.results, *result)
	return nil
}

func (s *Store) ListUserResults(_ context.Context, userID uuid.UUID) ([]models.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []models.Result{}
	for _, r := range s.results {
		if r.UserID == userID {
			results = append(results, r)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompletedAt.After(results[j].CompletedAt)
	})
	return results, nil
}
