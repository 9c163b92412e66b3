package quiz

import "math"

// Result is the final scoring of a session.
type Result struct {
	// Accuracy is the fraction of answered questions that were correct.
	Accuracy float64 `json:"accuracy"`

	// AverageDifficulty is the mean of the difficulty-at-time values in
	// the history, rounded to one decimal place.
	AverageDifficulty float64 `json:"average_difficulty"`

	// Score is the composite placement score, 0-100.
	Score int `json:"score"`
}

// Score weights: difficulty contributes up to 80 points, correctness up
// to 20. Fixed for compatibility with previously issued scores.
const (
	difficultyWeight = 8
	correctWeight    = 2
	maxScore         = 100
)

// Result computes the final score from the session's answer history.
func (e *Engine) Result(s *Session) (*Result, error) {
	if len(s.History) == 0 {
		return nil, ErrEmptyHistory
	}

	correctCount := 0
	difficultySum := 0
	for _, rec := range s.History {
		difficultySum += rec.Difficulty
		if rec.Correct {
			correctCount++
		}
	}

	n := len(s.History)
	avgDifficulty := roundTo1(float64(difficultySum) / float64(n))

	raw := avgDifficulty*difficultyWeight + float64(correctCount*correctWeight)
	score := int(math.Round(raw))
	if score > maxScore {
		score = maxScore
	}

	return &Result{
		Accuracy:          float64(correctCount) / float64(n),
		AverageDifficulty: avgDifficulty,
		Score:             score,
	}, nil
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
