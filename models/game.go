package models

import (
	"time"

	"gorm.io/gorm"
)

// Game statuses. Only in_progress is non-terminal. Status is derived from
// the persisted fields on every read, never stored.
const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusFail       = "fail"
	StatusMoney      = "money"
	StatusTimeout    = "timeout"
)

// Hint kinds accepted by UseHelp.
const (
	HelpAudience   = "audience_help"
	HelpFiftyFifty = "fifty_fifty"
	HelpFriendCall = "friend_call"
)

// LevelCount is the number of questions in a game.
const LevelCount = 15

// TimeoutDuration is how long a game may stay in progress. An expired game
// is only noticed the next time it is touched; there are no timers.
const TimeoutDuration = 35 * time.Minute

// Game is one player's run up the prize ladder. CurrentLevel is the index
// of the question being played, 0..15; 15 means every question was answered
// correctly. FinishedAt is set exactly when the game leaves in_progress.
type Game struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	UserID         uint           `json:"user_id" gorm:"not null;index"`
	CurrentLevel   int            `json:"current_level" gorm:"not null;default:0"`
	Prize          int            `json:"prize" gorm:"not null;default:0"`
	IsFailed       bool           `json:"is_failed" gorm:"not null;default:false"`
	AudienceUsed   bool           `json:"audience_help_used" gorm:"not null;default:false"`
	FiftyFiftyUsed bool           `json:"fifty_fifty_used" gorm:"not null;default:false"`
	FriendCallUsed bool           `json:"friend_call_used" gorm:"not null;default:false"`
	FinishedAt     *time.Time     `json:"finished_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	User          User           `json:"user,omitempty"`
	GameQuestions []GameQuestion `json:"game_questions,omitempty" gorm:"foreignKey:GameID"`
}

// Finished reports whether the game has reached a terminal state.
func (g *Game) Finished() bool {
	return g.FinishedAt != nil
}

// TimedOut reports whether an in-progress game has outlived its session.
func (g *Game) TimedOut(now time.Time) bool {
	return !g.Finished() && now.Sub(g.CreatedAt) > TimeoutDuration
}

// Status derives the game state from the persisted facts.
func (g *Game) Status() string {
	if !g.Finished() {
		return StatusInProgress
	}
	if g.IsFailed {
		if g.FinishedAt.Sub(g.CreatedAt) > TimeoutDuration {
			return StatusTimeout
		}
		return StatusFail
	}
	if g.Prize == MaxAmount() {
		return StatusWon
	}
	return StatusMoney
}

// CurrentGameQuestion returns the question being played, or nil once all 15
// levels are cleared.
func (g *Game) CurrentGameQuestion() *GameQuestion {
	return g.gameQuestionAt(g.CurrentLevel)
}

// PreviousGameQuestion returns the last answered question, or nil at level 0.
func (g *Game) PreviousGameQuestion() *GameQuestion {
	return g.gameQuestionAt(g.CurrentLevel - 1)
}

// PreviousLevel is CurrentLevel-1; -1 before the first answer.
func (g *Game) PreviousLevel() int {
	return g.CurrentLevel - 1
}

func (g *Game) gameQuestionAt(level int) *GameQuestion {
	for i := range g.GameQuestions {
		if g.GameQuestions[i].Level == level {
			return &g.GameQuestions[i]
		}
	}
	return nil
}

// AnswerCurrentQuestion applies one answer to the state machine and reports
// whether play continues with a correct answer. Timeout is checked first:
// an expired game fails with the fallback prize and the submitted key is
// never evaluated. A wrong answer fails with the fallback for the level the
// player had reached before answering. The 15th correct answer wins the
// grand prize. Terminal games are left untouched.
func (g *Game) AnswerCurrentQuestion(key string, now time.Time) bool {
	if g.Finished() {
		return false
	}

	if g.ExpireIfTimedOut(now) {
		return false
	}

	if !g.CurrentGameQuestion().AnswerCorrect(key) {
		g.finish(now, true, FallbackAmountFor(g.CurrentLevel))
		return false
	}

	g.CurrentLevel++
	if g.CurrentLevel == LevelCount {
		g.finish(now, false, MaxAmount())
	}
	return true
}

// ExpireIfTimedOut closes an overdue game as a timeout with the fallback
// prize and reports whether it did so. Already-terminal games are left
// alone.
func (g *Game) ExpireIfTimedOut(now time.Time) bool {
	if !g.TimedOut(now) {
		return false
	}
	g.finish(now, true, FallbackAmountFor(g.CurrentLevel))
	return true
}

// TakeMoney ends the game with the payout for the last level answered, or
// zero if no question has been answered yet.
func (g *Game) TakeMoney(now time.Time) error {
	if g.Finished() {
		return ErrGameFinished
	}

	prize := 0
	if g.CurrentLevel > 0 {
		prize = AmountForLevel(g.CurrentLevel - 1)
	}
	g.finish(now, false, prize)
	return nil
}

// UseHelp spends the one-shot hint of the given kind on the current
// question. Unknown kinds and already-spent hints fail without touching any
// state.
func (g *Game) UseHelp(kind string) error {
	if g.Finished() {
		return ErrGameFinished
	}

	gq := g.CurrentGameQuestion()
	if gq == nil {
		return ErrGameFinished
	}

	switch kind {
	case HelpAudience:
		if g.AudienceUsed {
			return ErrHintAlreadyUsed
		}
		if err := gq.AddAudienceHelp(); err != nil {
			return err
		}
		g.AudienceUsed = true
	case HelpFiftyFifty:
		if g.FiftyFiftyUsed {
			return ErrHintAlreadyUsed
		}
		if err := gq.AddFiftyFifty(); err != nil {
			return err
		}
		g.FiftyFiftyUsed = true
	case HelpFriendCall:
		if g.FriendCallUsed {
			return ErrHintAlreadyUsed
		}
		if err := gq.AddFriendCall(); err != nil {
			return err
		}
		g.FriendCallUsed = true
	default:
		return ErrUnknownHintKind
	}
	return nil
}

func (g *Game) finish(now time.Time, failed bool, prize int) {
	finishedAt := now
	g.FinishedAt = &finishedAt
	g.IsFailed = failed
	g.Prize = prize
}
