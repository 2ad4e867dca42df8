package postgres

import (
	"context"

	"quiz-backend/internal/models"

	"github.com/google/uuid"
)

func (s *Store) CreateResult(ctx context.Context, r *models.Result) error {
	query := `
		insert into results (id, user_id, category_id, score, total_questions, time_taken)
		values ($1, $2, $3, $4, $5, $6)
		returning completed_at
	`
	row := s.db.QueryRowxContext(ctx, query, r.ID, r.UserID, r.CategoryID, r.Score, r.TotalQuestions, r.TimeTaken)
	if err := row.Scan(&r.CompletedAt); err != nil {
		return translate(err, "create result")
	}
	return nil
}

func (s *Store) ListUserResults(ctx context.Context, userID uuid.UUID) ([]models.Result, error) {
	results := []models.Result{}
	query := `
		select id, user_id, category_id, score, total_questions, time_taken, completed_at
		from results
		where user_id = $1
		order by completed_at desc
	`
	if err := s.db.SelectContext(ctx, &results, query, userID); err != nil {
		return nil, translate(err, "list user results")
	}
	return results, nil
}

// Leaderboard reduces every user's attempts field by field: the best score and
// the largest question count, the fastest time and the latest completion.
func (s *Store) Leaderboard(ctx context.Context, categoryID uuid.UUID, limit int) ([]models.LeaderboardEntry, error) {
	entries := []models.LeaderboardEntry{}
	query := `
		select
			u.username,
			max(r.score) as score,
			max(r.total_questions) as total_questions,
			min(r.time_taken) as time_taken,
			max(r.completed_at) as completed_at
		from results r
		join users u on r.user_id = u.id
		where r.category_id = $1
		group by r.user_id, u.username
		order by score desc, time_taken asc, u.username asc
		limit $2
	`
	if err := s.db.SelectContext(ctx, &entries, query, categoryID, limit); err != nil {
		return nil, translate(err, "leaderboard")
	}
	return entries, nil
}
