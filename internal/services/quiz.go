package services

import (
	"fmt"
	"log"

	"github.com/arnold/defi-academy-api/internal/catalog"
	"github.com/arnold/defi-academy-api/internal/database"
	"github.com/arnold/defi-academy-api/internal/models"
	"github.com/google/uuid"
)

// QuizResult is what a learner sees after submitting answers. PointsAwarded
// is zero on a retake even when the score passes again.
type QuizResult struct {
	Score         int  `json:"score"` // percent correct
	Passed        bool `json:"passed"`
	Perfect       bool `json:"perfect"`
	PointsAwarded int  `json:"pointsAwarded"`
}

// SubmitQuiz grades answers against the module's answer key. A passing score
// awards quiz_passed (or quiz_perfect at 100%) once per quiz and completes
// the module through the normal progress path.
func SubmitQuiz(userID uuid.UUID, courseID, moduleIndex int, answers []int) (QuizResult, error) {
	if _, ok := catalog.ByID(courseID); !ok {
		return QuizResult{}, ErrCourseNotFound
	}
	quiz := catalog.QuizFor(courseID, moduleIndex)
	if quiz == nil {
		return QuizResult{}, ErrInvalidModule
	}

	correct := 0
	for i, want := range quiz.AnswerKey {
		if i < len(answers) && answers[i] == want {
			correct++
		}
	}
	score := correct * 100 / len(quiz.AnswerKey)

	result := QuizResult{
		Score:   score,
		Passed:  score >= quiz.PassPercent,
		Perfect: score == 100,
	}
	if !result.Passed {
		return result, nil
	}

	actionType := models.ActionQuizPassed
	if result.Perfect {
		actionType = models.ActionQuizPerfect
	}
	actionID := fmt.Sprintf("quiz_%d_%d", courseID, moduleIndex)

	// A quiz pays out once, period. The unique index only covers one action
	// type, so a pass followed by a perfect retake needs this extra check.
	var prior int64
	database.DB.Model(&models.PointTransaction{}).
		Where("user_id = ? AND action_id = ?", userID, actionID).
		Count(&prior)
	if prior == 0 {
		award, err := AwardPoints(userID, actionType, &actionID, map[string]interface{}{"score": score})
		if err != nil {
			log.Printf("points: %s for %s failed: %v", actionType, actionID, err)
		} else {
			result.PointsAwarded = award.PointsAwarded
		}
	}

	// Passing the quiz also counts as finishing the module.
	if _, err := CompleteModule(userID, courseID, moduleIndex); err != nil {
		return result, err
	}

	return result, nil
}
