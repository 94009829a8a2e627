package services

import (
	"errors"
	"fmt"

	"ladderquiz/models"

	"gorm.io/gorm"
)

// QuestionPool supplies one bank question per difficulty level for a fresh
// game. GameService depends on this contract, not on the table layout.
type QuestionPool interface {
	DrawOnePerLevel(tx *gorm.DB, levels int) ([]models.Question, error)
}

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

type ImportQuestionRequest struct {
	Level   int    `json:"level" binding:"min=0,max=14"`
	Text    string `json:"text" binding:"required"`
	Answer1 string `json:"answer1" binding:"required"`
	Answer2 string `json:"answer2" binding:"required"`
	Answer3 string `json:"answer3" binding:"required"`
	Answer4 string `json:"answer4" binding:"required"`
	Correct int    `json:"correct" binding:"required,min=1,max=4"`
}

// DrawOnePerLevel picks one random question for each level 0..levels-1
// within the given transaction. Returns ErrInvalidLevelDraw if some level
// has no questions at all.
func (s *QuestionService) DrawOnePerLevel(tx *gorm.DB, levels int) ([]models.Question, error) {
	questions := make([]models.Question, 0, levels)
	for level := 0; level < levels; level++ {
		var q models.Question
		err := tx.Where("level = ?", level).Order(randomOrder(tx)).First(&q).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("no question for level %d: %w", level, ErrInvalidLevelDraw)
			}
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// ImportQuestions loads a batch of questions into the bank. Used by seeding
// scripts; there is no HTTP authoring surface.
func (s *QuestionService) ImportQuestions(reqs []ImportQuestionRequest) (int, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, req := range reqs {
		question := models.Question{
			Level:   req.Level,
			Text:    req.Text,
			Answer1: req.Answer1,
			Answer2: req.Answer2,
			Answer3: req.Answer3,
			Answer4: req.Answer4,
			Correct: req.Correct,
		}

		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	return len(reqs), nil
}

// randomOrder returns the random-sort expression for the connected dialect.
// Postgres and SQLite both spell it RANDOM(); MySQL would need RAND().
func randomOrder(tx *gorm.DB) string {
	if tx.Dialector.Name() == "mysql" {
		return "RAND()"
	}
	return "RANDOM()"
}
