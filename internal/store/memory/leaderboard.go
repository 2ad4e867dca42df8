package memory

import (
	"context"
	"sort"

	"quiz-backend/internal/models"

	"github.com/google/uuid"
)

// Leaderboard mirrors the SQL aggregation: per user, MAX(score),
// MAX(total_questions), MIN(time_taken) and MAX(completed_at), each taken
// independently of the others.
func (s *Store) Leaderboard(_ context.Context, categoryID uuid.UUID, limit int) ([]models.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byUser := make(map[uuid.UUID]*models.LeaderboardEntry)
	for _, r := range s.results {
		if r.CategoryID != categoryID {
			continue
		}
		user, ok := s.users[r.UserID]
		if !ok {
			continue
		}

		e, seen := byUser[r.UserID]
		if !seen {
			byUser[r.UserID] = &models.LeaderboardEntry{
				Username:       user.Username,
				Score:          r.Score,
				TotalQuestions: r.TotalQuestions,
				TimeTaken:      r.TimeTaken,
				CompletedAt:    r.CompletedAt,
			}
			continue
		}

		e.Score = max(e.Score, r.Score)
		e.TotalQuestions = max(e.TotalQuestions, r.TotalQuestions)
		e.TimeTaken = min(e.TimeTaken, r.TimeTaken)
		if r.CompletedAt.After(e.CompletedAt) {
			e.CompletedAt = r.CompletedAt
		}
	}

	entries := make([]models.LeaderboardEntry, 0, len(byUser))
	for _, e := range byUser {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].TimeTaken != entries[j].TimeTaken {
			return entries[i].TimeTaken < entries[j].TimeTaken
		}
		return entries[i].Username < entries[j].Username
	})

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
