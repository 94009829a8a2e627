package services

import (
	"errors"
	"testing"

	"ladderquiz/models"
)

func TestDrawOnePerLevel(t *testing.T) {
	db := setupTestDB(t)
	seedQuestions(t, db, models.LevelCount)
	seedQuestions(t, db, models.LevelCount) // two candidates per level
	svc := NewQuestionService(db)

	questions, err := svc.DrawOnePerLevel(db, models.LevelCount)
	if err != nil {
		t.Fatalf("DrawOnePerLevel: %v", err)
	}
	if len(questions) != models.LevelCount {
		t.Fatalf("drew %d questions, want %d", len(questions), models.LevelCount)
	}
	for i, q := range questions {
		if q.Level != i {
			t.Fatalf("question %d has level %d", i, q.Level)
		}
	}
}

func TestDrawOnePerLevelMissingLevel(t *testing.T) {
	db := setupTestDB(t)
	seedQuestions(t, db, 10) // levels 10..14 empty
	svc := NewQuestionService(db)

	if _, err := svc.DrawOnePerLevel(db, models.LevelCount); !errors.Is(err, ErrInvalidLevelDraw) {
		t.Fatalf("got %v, want ErrInvalidLevelDraw", err)
	}
}

func TestImportQuestions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewQuestionService(db)

	n, err := svc.ImportQuestions([]ImportQuestionRequest{
		{Level: 0, Text: "q1", Answer1: "a", Answer2: "b", Answer3: "c", Answer4: "d", Correct: 1},
		{Level: 0, Text: "q2", Answer1: "a", Answer2: "b", Answer3: "c", Answer4: "d", Correct: 3},
	})
	if err != nil {
		t.Fatalf("ImportQuestions: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported %d, want 2", n)
	}

	var count int64
	db.Model(&models.Question{}).Count(&count)
	if count != 2 {
		t.Fatalf("bank holds %d questions, want 2", count)
	}
}
