package services

import (
	"quiz-backend/internal/models"

	"github.com/google/uuid"
)

// Tally is the outcome of scoring one submission.
type Tally struct {
	Score          int
	TotalQuestions int
	Percentage     float64
}

// ScoreAnswers adds up the points of every correctly answered question.
// Answers whose id is malformed, unknown or not in canonical form score
// nothing but still count toward TotalQuestions, which is always the number
// of submitted answers. A question scores at most once.
func ScoreAnswers(answers map[string]string, keys map[uuid.UUID]models.AnswerKey) Tally {
	score := 0
	for rawID, submitted := range answers {
		id, ok := canonicalID(rawID)
		if !ok {
			continue
		}
		key, ok := keys[id]
		if !ok {
			continue
		}
		if submitted == key.CorrectAnswer {
			score += key.Points
		}
	}

	total := len(answers)
	return Tally{
		Score:          score,
		TotalQuestions: total,
		Percentage:     Percentage(score, total),
	}
}

// Percentage returns score/total*100, or 0 when nothing was submitted.
func Percentage(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}

// questionIDs returns the canonical ids among the submitted answers.
func questionIDs(answers map[string]string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(answers))
	for rawID := range answers {
		if id, ok := canonicalID(rawID); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// canonicalID parses rawID and accepts it only in the lower-case hyphenated
// form, so each question has exactly one key that can match it.
func canonicalID(rawID string) (uuid.UUID, bool) {
	id, err := uuid.Parse(rawID)
	if err != nil || id.String() != rawID {
		return uuid.Nil, false
	}
	return id, true
}
