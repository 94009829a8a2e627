package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ladderquiz/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// GameService orchestrates the game engine against the database: it draws
// questions, applies the state machine, enforces ownership and the
// one-active-game-per-user rule, and credits prizes to the winner's balance.
type GameService struct {
	db    *gorm.DB
	redis *redis.Client
	pool  QuestionPool
}

func NewGameService(db *gorm.DB, redisClient *redis.Client, pool QuestionPool) *GameService {
	return &GameService{
		db:    db,
		redis: redisClient,
		pool:  pool,
	}
}

type AnswerRequest struct {
	Letter string `json:"letter" binding:"required,oneof=a b c d"`
}

type HelpRequest struct {
	HelpType string `json:"help_type" binding:"required"`
}

// CreateGameForUser starts a fresh 15-question game. If the user already has
// an unfinished game, that game is returned together with
// ErrGameAlreadyInProgress and nothing is created. A Redis claim is taken as
// a fast path; the partial unique index on (user_id) WHERE finished_at IS
// NULL is the hard guarantee against a double create.
func (s *GameService) CreateGameForUser(userID uint) (*models.Game, error) {
	if s.redis != nil {
		ok, err := s.redis.SetNX(context.Background(),
			activeGameKey(userID), "1", models.TimeoutDuration).Result()
		if err != nil {
			log.Printf("Redis claim failed for user %d: %v", userID, err)
		} else if !ok {
			// Someone holds the claim; hand back their game if it exists.
			// A stale claim with no game behind it falls through to the DB.
			if existing, err := s.activeGame(userID); err == nil {
				return existing, ErrGameAlreadyInProgress
			}
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var existing models.Game
	err := tx.Where("user_id = ? AND finished_at IS NULL", userID).First(&existing).Error
	if err == nil {
		tx.Rollback()
		game, err := s.GetGame(existing.ID, userID)
		if err != nil {
			return nil, err
		}
		return game, ErrGameAlreadyInProgress
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return nil, err
	}

	questions, err := s.pool.DrawOnePerLevel(tx, models.LevelCount)
	if err != nil {
		tx.Rollback()
		s.releaseClaim(userID)
		return nil, err
	}

	game := models.Game{UserID: userID}
	if err := tx.Create(&game).Error; err != nil {
		tx.Rollback()
		// Losing the unique-index race means the winner's game exists now.
		if winner, lookupErr := s.activeGame(userID); lookupErr == nil {
			return winner, ErrGameAlreadyInProgress
		}
		s.releaseClaim(userID)
		return nil, err
	}

	for _, q := range questions {
		gq := models.NewGameQuestion(q)
		gq.GameID = game.ID
		if err := tx.Omit("Question").Create(&gq).Error; err != nil {
			tx.Rollback()
			s.releaseClaim(userID)
			return nil, err
		}
		game.GameQuestions = append(game.GameQuestions, gq)
	}

	if err := tx.Commit().Error; err != nil {
		s.releaseClaim(userID)
		return nil, err
	}

	log.Printf("Game %d created for user %d", game.ID, userID)
	return &game, nil
}

// GetGame loads a game with its questions, enforcing ownership.
func (s *GameService) GetGame(gameID, userID uint) (*models.Game, error) {
	var game models.Game
	err := s.db.
		Preload("GameQuestions", func(db *gorm.DB) *gorm.DB {
			return db.Order("game_questions.level")
		}).
		Preload("GameQuestions.Question").
		First(&game, gameID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if game.UserID != userID {
		return nil, ErrNotOwner
	}

	return &game, nil
}

// Answer submits one answer key for the game's current question and reports
// whether it was correct. A submission past the timeout fails the game as a
// timeout without looking at the key. Wrong answers and timeouts are normal
// outcomes, not errors.
func (s *GameService) Answer(gameID, userID uint, key string) (bool, *models.Game, error) {
	game, err := s.GetGame(gameID, userID)
	if err != nil {
		return false, nil, err
	}
	if game.Finished() {
		return false, game, models.ErrGameFinished
	}

	prevLevel := game.CurrentLevel
	correct := game.AnswerCurrentQuestion(key, time.Now())

	if err := s.persistTransition(game, prevLevel); err != nil {
		return false, game, err
	}

	if game.Finished() {
		s.settle(game)
	}

	return correct, game, nil
}

// TakeMoney ends the game voluntarily with the payout for the last level
// answered. If the session has silently expired, the game is closed as a
// timeout instead and models.ErrGameFinished is returned.
func (s *GameService) TakeMoney(gameID, userID uint) (*models.Game, error) {
	game, err := s.GetGame(gameID, userID)
	if err != nil {
		return nil, err
	}
	if game.Finished() {
		return game, models.ErrGameFinished
	}

	prevLevel := game.CurrentLevel
	if game.ExpireIfTimedOut(time.Now()) {
		if err := s.persistTransition(game, prevLevel); err != nil {
			return game, err
		}
		s.settle(game)
		return game, models.ErrGameFinished
	}

	if err := game.TakeMoney(time.Now()); err != nil {
		return game, err
	}
	if err := s.persistTransition(game, prevLevel); err != nil {
		return game, err
	}
	s.settle(game)

	return game, nil
}

// UseHelp spends a one-shot hint on the current question.
func (s *GameService) UseHelp(gameID, userID uint, kind string) (*models.Game, error) {
	game, err := s.GetGame(gameID, userID)
	if err != nil {
		return nil, err
	}
	if game.Finished() {
		return game, models.ErrGameFinished
	}

	prevLevel := game.CurrentLevel
	if game.ExpireIfTimedOut(time.Now()) {
		if err := s.persistTransition(game, prevLevel); err != nil {
			return game, err
		}
		s.settle(game)
		return game, models.ErrGameFinished
	}

	gq := game.CurrentGameQuestion()
	if err := game.UseHelp(kind); err != nil {
		return game, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	res := tx.Model(&models.Game{}).
		Where("id = ? AND current_level = ? AND finished_at IS NULL", game.ID, prevLevel).
		Updates(map[string]interface{}{
			"audience_used":    game.AudienceUsed,
			"fifty_fifty_used": game.FiftyFiftyUsed,
			"friend_call_used": game.FriendCallUsed,
		})
	if res.Error != nil {
		tx.Rollback()
		return game, res.Error
	}
	if res.RowsAffected != 1 {
		tx.Rollback()
		return game, ErrGameConflict
	}

	// Struct-based update so the help column goes through the JSON
	// serializer; a bare column update would hand the struct to
	// database/sql unserialized.
	if err := tx.Model(gq).
		Select("help").
		Updates(models.GameQuestion{Help: gq.Help}).Error; err != nil {
		tx.Rollback()
		return game, err
	}

	if err := tx.Commit().Error; err != nil {
		return game, err
	}

	return game, nil
}

// persistTransition writes the state machine's result back with an
// optimistic guard on the level the transition started from. A lost race
// surfaces as ErrGameConflict instead of silently overwriting.
func (s *GameService) persistTransition(game *models.Game, prevLevel int) error {
	res := s.db.Model(&models.Game{}).
		Where("id = ? AND current_level = ? AND finished_at IS NULL", game.ID, prevLevel).
		Updates(map[string]interface{}{
			"current_level": game.CurrentLevel,
			"prize":         game.Prize,
			"is_failed":     game.IsFailed,
			"finished_at":   game.FinishedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrGameConflict
	}
	return nil
}

// settle runs the end-of-game side effects: prize credit and claim release.
// A failed credit is surfaced in the log but does not undo the already
// committed termination; the game state stays authoritative.
func (s *GameService) settle(game *models.Game) {
	if game.Prize > 0 {
		err := s.db.Model(&models.User{}).
			Where("id = ?", game.UserID).
			Update("balance", gorm.Expr("balance + ?", game.Prize)).Error
		if err != nil {
			log.Printf("Failed to credit prize %d to user %d for game %d: %v",
				game.Prize, game.UserID, game.ID, err)
		}
	}
	s.releaseClaim(game.UserID)
}

func (s *GameService) activeGame(userID uint) (*models.Game, error) {
	var game models.Game
	err := s.db.Where("user_id = ? AND finished_at IS NULL", userID).First(&game).Error
	if err != nil {
		return nil, err
	}
	return s.GetGame(game.ID, userID)
}

func (s *GameService) releaseClaim(userID uint) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(context.Background(), activeGameKey(userID)).Err(); err != nil {
		log.Printf("Failed to release game claim for user %d: %v", userID, err)
	}
}

func activeGameKey(userID uint) string {
	return fmt.Sprintf("activegame:%d", userID)
}
