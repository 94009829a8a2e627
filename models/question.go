package models

import (
	"time"

	"gorm.io/gorm"
)

// Question is a single bank entry: text, four answers in their original
// order, and which of those four is correct. Level is the difficulty rung
// (0..14) the question is eligible for.
type Question struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Level     int            `json:"level" gorm:"not null;index"`
	Text      string         `json:"text" gorm:"not null"`
	Answer1   string         `json:"answer1" gorm:"not null"`
	Answer2   string         `json:"answer2" gorm:"not null"`
	Answer3   string         `json:"answer3" gorm:"not null"`
	Answer4   string         `json:"answer4" gorm:"not null"`
	Correct   int            `json:"-" gorm:"not null"` // 1..4, position of the correct answer
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Answers returns the four answer texts indexed by original position 1..4.
func (q *Question) Answers() map[int]string {
	return map[int]string{
		1: q.Answer1,
		2: q.Answer2,
		3: q.Answer3,
		4: q.Answer4,
	}
}
