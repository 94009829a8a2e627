package models

import (
	"testing"
	"time"
)

func newTestGame() *Game {
	game := &Game{
		ID:        1,
		UserID:    1,
		CreatedAt: time.Now(),
	}
	for level := 0; level < LevelCount; level++ {
		gq := NewGameQuestion(testQuestion(level))
		gq.GameID = game.ID
		game.GameQuestions = append(game.GameQuestions, gq)
	}
	return game
}

func answerCorrectly(t *testing.T, game *Game) {
	t.Helper()
	gq := game.CurrentGameQuestion()
	if gq == nil {
		t.Fatal("no current question to answer")
	}
	if !game.AnswerCurrentQuestion(gq.CorrectAnswerKey(), time.Now()) {
		t.Fatal("correct answer reported as wrong")
	}
}

func wrongKey(gq *GameQuestion) string {
	for _, key := range AnswerKeys {
		if !gq.AnswerCorrect(key) {
			return key
		}
	}
	return ""
}

func TestNewGameCoversAllLevels(t *testing.T) {
	game := newTestGame()

	if game.Status() != StatusInProgress {
		t.Fatalf("status=%q, want %q", game.Status(), StatusInProgress)
	}
	if game.Finished() {
		t.Fatal("fresh game must not be finished")
	}
	if len(game.GameQuestions) != LevelCount {
		t.Fatalf("got %d questions, want %d", len(game.GameQuestions), LevelCount)
	}
	for i, gq := range game.GameQuestions {
		if gq.Level != i {
			t.Fatalf("question %d has level %d", i, gq.Level)
		}
	}
}

func TestCorrectAnswerAdvancesLevel(t *testing.T) {
	game := newTestGame()

	for level := 0; level < LevelCount-1; level++ {
		if game.CurrentLevel != level {
			t.Fatalf("current level %d, want %d", game.CurrentLevel, level)
		}
		answerCorrectly(t, game)
		if game.CurrentLevel != level+1 {
			t.Fatalf("after answering level %d: current level %d", level, game.CurrentLevel)
		}
		if game.Status() != StatusInProgress {
			t.Fatalf("after answering level %d: status %q", level, game.Status())
		}
		if game.Finished() {
			t.Fatalf("game finished early at level %d", level)
		}
	}
}

func TestWinOnLastLevel(t *testing.T) {
	game := newTestGame()

	for level := 0; level < LevelCount; level++ {
		answerCorrectly(t, game)
	}

	if game.Status() != StatusWon {
		t.Fatalf("status=%q, want %q", game.Status(), StatusWon)
	}
	if game.Prize != MaxAmount() {
		t.Fatalf("prize=%d, want %d", game.Prize, MaxAmount())
	}
	if game.CurrentGameQuestion() != nil {
		t.Fatal("won game still has a current question")
	}
}

func TestWrongAnswerFails(t *testing.T) {
	cases := []struct {
		correctFirst int
		wantPrize    int
	}{
		{0, 0},
		{3, 0}, // below the first checkpoint
		{5, 1000},
		{10, 32000},
		{14, 32000},
	}

	for _, c := range cases {
		game := newTestGame()
		for i := 0; i < c.correctFirst; i++ {
			answerCorrectly(t, game)
		}

		gq := game.CurrentGameQuestion()
		if game.AnswerCurrentQuestion(wrongKey(gq), time.Now()) {
			t.Fatal("wrong answer reported as correct")
		}

		if game.Status() != StatusFail {
			t.Fatalf("after failing at level %d: status=%q, want %q",
				c.correctFirst, game.Status(), StatusFail)
		}
		if game.Prize != c.wantPrize {
			t.Fatalf("after failing at level %d: prize=%d, want %d",
				c.correctFirst, game.Prize, c.wantPrize)
		}
	}
}

func TestTakeMoney(t *testing.T) {
	cases := []struct {
		correctFirst int
		wantPrize    int
	}{
		{0, 0},
		{1, 100},
		{2, 200},
		{13, 250000},
		{14, 500000},
	}

	for _, c := range cases {
		game := newTestGame()
		for i := 0; i < c.correctFirst; i++ {
			answerCorrectly(t, game)
		}

		if err := game.TakeMoney(time.Now()); err != nil {
			t.Fatalf("TakeMoney after %d answers: %v", c.correctFirst, err)
		}
		if game.Status() != StatusMoney {
			t.Fatalf("status=%q, want %q", game.Status(), StatusMoney)
		}
		if game.Prize != c.wantPrize {
			t.Fatalf("after %d answers: prize=%d, want %d",
				c.correctFirst, game.Prize, c.wantPrize)
		}
	}
}

func TestTakeMoneyOnFinishedGame(t *testing.T) {
	game := newTestGame()
	if err := game.TakeMoney(time.Now()); err != nil {
		t.Fatalf("TakeMoney: %v", err)
	}
	if err := game.TakeMoney(time.Now()); err != ErrGameFinished {
		t.Fatalf("TakeMoney on terminal game: got %v, want ErrGameFinished", err)
	}
}

func TestAnswerAfterTimeout(t *testing.T) {
	game := newTestGame()
	answerCorrectly(t, game)
	game.CreatedAt = time.Now().Add(-36 * time.Minute)

	// The submitted key is the correct one; it must not matter.
	key := game.CurrentGameQuestion().CorrectAnswerKey()
	if game.AnswerCurrentQuestion(key, time.Now()) {
		t.Fatal("timed-out answer reported as correct")
	}

	if game.Status() != StatusTimeout {
		t.Fatalf("status=%q, want %q", game.Status(), StatusTimeout)
	}
	if game.CurrentLevel != 1 {
		t.Fatalf("timeout must not advance the level, got %d", game.CurrentLevel)
	}
	if game.Prize != FallbackAmountFor(1) {
		t.Fatalf("prize=%d, want fallback %d", game.Prize, FallbackAmountFor(1))
	}
}

func TestAnswerOnFinishedGame(t *testing.T) {
	game := newTestGame()
	gq := game.CurrentGameQuestion()
	game.AnswerCurrentQuestion(wrongKey(gq), time.Now())

	level, prize := game.CurrentLevel, game.Prize
	if game.AnswerCurrentQuestion(gq.CorrectAnswerKey(), time.Now()) {
		t.Fatal("answer accepted on a terminal game")
	}
	if game.CurrentLevel != level || game.Prize != prize {
		t.Fatal("terminal game was mutated")
	}
}

func TestPreviousQuestionAndLevel(t *testing.T) {
	game := newTestGame()

	if game.PreviousGameQuestion() != nil {
		t.Fatal("fresh game has no previous question")
	}
	if game.PreviousLevel() != -1 {
		t.Fatalf("fresh game previous level=%d, want -1", game.PreviousLevel())
	}

	first := game.CurrentGameQuestion()
	answerCorrectly(t, game)

	if game.PreviousGameQuestion() != first {
		t.Fatal("previous question should be the one just answered")
	}
	if game.PreviousLevel() != first.Level {
		t.Fatalf("previous level=%d, want %d", game.PreviousLevel(), first.Level)
	}
	if game.CurrentGameQuestion() == first {
		t.Fatal("current question did not advance")
	}
}

func TestUseHelp(t *testing.T) {
	game := newTestGame()

	if err := game.UseHelp(HelpAudience); err != nil {
		t.Fatalf("UseHelp(audience): %v", err)
	}
	if !game.AudienceUsed {
		t.Fatal("audience flag not set")
	}
	if game.CurrentGameQuestion().HelpHash().AudienceHelp == nil {
		t.Fatal("audience payload not recorded")
	}

	if err := game.UseHelp(HelpAudience); err != ErrHintAlreadyUsed {
		t.Fatalf("second UseHelp(audience): got %v, want ErrHintAlreadyUsed", err)
	}

	// The flag is per game, not per question.
	answerCorrectly(t, game)
	if err := game.UseHelp(HelpAudience); err != ErrHintAlreadyUsed {
		t.Fatalf("UseHelp(audience) on next level: got %v, want ErrHintAlreadyUsed", err)
	}

	if err := game.UseHelp(HelpFiftyFifty); err != nil {
		t.Fatalf("UseHelp(fifty_fifty): %v", err)
	}
	if err := game.UseHelp(HelpFriendCall); err != nil {
		t.Fatalf("UseHelp(friend_call): %v", err)
	}

	if err := game.UseHelp("crystal_ball"); err != ErrUnknownHintKind {
		t.Fatalf("unknown hint: got %v, want ErrUnknownHintKind", err)
	}
}

func TestUseHelpOnFinishedGame(t *testing.T) {
	game := newTestGame()
	game.TakeMoney(time.Now())

	if err := game.UseHelp(HelpFiftyFifty); err != ErrGameFinished {
		t.Fatalf("UseHelp on terminal game: got %v, want ErrGameFinished", err)
	}
	if game.FiftyFiftyUsed {
		t.Fatal("flag set on a terminal game")
	}
}

func TestStatusDerivation(t *testing.T) {
	now := time.Now()
	finished := now
	late := now.Add(36 * time.Minute)

	cases := []struct {
		name string
		game Game
		want string
	}{
		{"in progress", Game{CreatedAt: now}, StatusInProgress},
		{"fail", Game{CreatedAt: now, FinishedAt: &finished, IsFailed: true}, StatusFail},
		{"timeout", Game{CreatedAt: now, FinishedAt: &late, IsFailed: true}, StatusTimeout},
		{"won", Game{CreatedAt: now, FinishedAt: &finished, Prize: MaxAmount()}, StatusWon},
		{"money", Game{CreatedAt: now, FinishedAt: &finished, Prize: 200}, StatusMoney},
	}
	for _, c := range cases {
		if got := c.game.Status(); got != c.want {
			t.Fatalf("%s: status=%q, want %q", c.name, got, c.want)
		}
	}
}
