package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"ladderquiz/models"
	"ladderquiz/services"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	gameService *services.GameService
}

func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// GameView is the player-facing projection of a game. It deliberately
// carries only the shuffled variants of the current question, never the
// bank question's correct-answer position.
type GameView struct {
	ID             uint          `json:"id"`
	Status         string        `json:"status"`
	CurrentLevel   int           `json:"current_level"`
	Prize          int           `json:"prize"`
	AudienceUsed   bool          `json:"audience_help_used"`
	FiftyFiftyUsed bool          `json:"fifty_fifty_used"`
	FriendCallUsed bool          `json:"friend_call_used"`
	CreatedAt      time.Time     `json:"created_at"`
	FinishedAt     *time.Time    `json:"finished_at,omitempty"`
	PrizeLadder    []int         `json:"prize_ladder"`
	Question       *QuestionView `json:"question,omitempty"`
}

type QuestionView struct {
	Level    int               `json:"level"`
	Text     string            `json:"text"`
	Variants map[string]string `json:"variants"`
	Help     models.HelpHash   `json:"help"`
}

func NewGameView(game *models.Game) *GameView {
	view := &GameView{
		ID:             game.ID,
		Status:         game.Status(),
		CurrentLevel:   game.CurrentLevel,
		Prize:          game.Prize,
		AudienceUsed:   game.AudienceUsed,
		FiftyFiftyUsed: game.FiftyFiftyUsed,
		FriendCallUsed: game.FriendCallUsed,
		CreatedAt:      game.CreatedAt,
		FinishedAt:     game.FinishedAt,
		PrizeLadder:    models.PrizeLadder[:],
	}

	if gq := game.CurrentGameQuestion(); gq != nil && !game.Finished() {
		view.Question = &QuestionView{
			Level:    gq.Level,
			Text:     gq.Text(),
			Variants: gq.Variants(),
			Help:     gq.HelpHash(),
		}
	}

	return view
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	game, err := h.gameService.CreateGameForUser(userID.(uint))
	if err != nil {
		if errors.Is(err, services.ErrGameAlreadyInProgress) {
			c.JSON(http.StatusOK, gin.H{
				"game":    NewGameView(game),
				"message": "Finish your current game first",
			})
			return
		}
		if errors.Is(err, services.ErrInvalidLevelDraw) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"game": NewGameView(game)})
}

func (h *GameHandler) GetGame(c *gin.Context) {
	userID, gameID, ok := h.gameParams(c)
	if !ok {
		return
	}

	game, err := h.gameService.GetGame(gameID, userID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"game": NewGameView(game)})
}

func (h *GameHandler) Answer(c *gin.Context) {
	userID, gameID, ok := h.gameParams(c)
	if !ok {
		return
	}

	var req services.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	correct, game, err := h.gameService.Answer(gameID, userID, req.Letter)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"correct": correct, "game": NewGameView(game)})
}

func (h *GameHandler) TakeMoney(c *gin.Context) {
	userID, gameID, ok := h.gameParams(c)
	if !ok {
		return
	}

	game, err := h.gameService.TakeMoney(gameID, userID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"game": NewGameView(game), "prize": game.Prize})
}

func (h *GameHandler) Help(c *gin.Context) {
	userID, gameID, ok := h.gameParams(c)
	if !ok {
		return
	}

	var req services.HelpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.gameService.UseHelp(gameID, userID, req.HelpType)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"game": NewGameView(game)})
}

func (h *GameHandler) gameParams(c *gin.Context) (userID, gameID uint, ok bool) {
	rawUserID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, 0, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game id"})
		return 0, 0, false
	}

	return rawUserID.(uint), uint(id), true
}

func (h *GameHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrGameFinished):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrHintAlreadyUsed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUnknownHintKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrGameConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
