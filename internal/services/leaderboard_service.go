package services

import (
	"context"

	"quiz-backend/internal/models"
	"quiz-backend/internal/store"

	"github.com/google/uuid"
)

const (
	DefaultLeaderboardLimit = 20
	MaxLeaderboardLimit     = 100
)

type LeaderboardService struct {
	quizzes store.QuizStore
}

func NewLeaderboardService(quizzes store.QuizStore) *LeaderboardService {
	return &LeaderboardService{quizzes: quizzes}
}

// Top ranks users of a category by best score, then fastest time. Each call
// reads the store again.
func (s *LeaderboardService) Top(ctx context.Context, categoryID uuid.UUID, limit int) ([]models.LeaderboardEntry, error) {
	var v validator
	v.check(limit >= 1 && limit <= MaxLeaderboardLimit, "limit must be between 1 and 100")
	if err := v.err(); err != nil {
		return nil, err
	}

	entries, err := s.quizzes.Leaderboard(ctx, categoryID, limit)
	if err != nil {
		return nil, unavailable("leaderboard", err)
	}
	return entries, nil
}
