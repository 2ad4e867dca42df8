package postgres

import (
	"context"

	"quiz-backend/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	query := "select id, name, description, created_at from categories order by name"

	if err := s.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, translate(err, "list categories")
	}
	return categories, nil
}

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	query := "select id, name, description, created_at from categories where id = $1"

	if err := s.db.GetContext(ctx, &category, query, id); err != nil {
		return nil, translate(err, "get category")
	}
	return &category, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
		insert into categories (id, name, description)
		values ($1, $2, $3)
		returning created_at
	`
	row := s.db.QueryRowxContext(ctx, query, category.ID, category.Name, category.Description)
	if err := row.Scan(&category.CreatedAt); err != nil {
		return translate(err, "create category")
	}
	return nil
}

func (s *Store) ListQuestions(ctx context.Context, categoryID uuid.UUID) ([]models.Question, error) {
	questions := []models.Question{}
	query := `
		select id, category_id, question_text, option_a, option_b, option_c, option_d,
		       correct_answer, points, created_at
		from questions
		where category_id = $1
		order by created_at, id
	`
	if err := s.db.SelectContext(ctx, &questions, query, categoryID); err != nil {
		return nil, translate(err, "list questions")
	}
	return questions, nil
}

func (s *Store) CreateQuestion(ctx context.Context, q *models.Question) error {
	query := `
		insert into questions (id, category_id, question_text, option_a, option_b, option_c, option_d, correct_answer, points)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		returning created_at
	`
	row := s.db.QueryRowxContext(ctx, query,
		q.ID, q.CategoryID, q.QuestionText,
		q.OptionA, q.OptionB, q.OptionC, q.OptionD,
		q.CorrectAnswer, q.Points,
	)
	if err := row.Scan(&q.CreatedAt); err != nil {
		return translate(err, "create question")
	}
	return nil
}

func (s *Store) AnswerKeys(ctx context.Context, questionIDs []uuid.UUID) (map[uuid.UUID]models.AnswerKey, error) {
	keys := make(map[uuid.UUID]models.AnswerKey, len(questionIDs))
	if len(questionIDs) == 0 {
		return keys, nil
	}

	ids := make([]string, len(questionIDs))
	for i, id := range questionIDs {
		ids[i] = id.String()
	}

	var rows []models.AnswerKey
	query := "select id, correct_answer, points from questions where id = any($1::uuid[])"
	if err := s.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return nil, translate(err, "load answer keys")
	}

	for _, k := range rows {
		keys[k.QuestionID] = k
	}
	return keys, nil
}
