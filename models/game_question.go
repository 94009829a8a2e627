package models

import (
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"
)

// AnswerKeys are the four letters a question is presented under.
var AnswerKeys = []string{"a", "b", "c", "d"}

// HelpHash accumulates the payload of each hint applied to a game question.
// A zero value for a field means that hint has not been used.
type HelpHash struct {
	AudienceHelp map[string]int `json:"audience_help,omitempty"` // key -> vote percentage, sums to 100
	FiftyFifty   []string       `json:"fifty_fifty,omitempty"`   // the two keys left after elimination
	FriendCall   string         `json:"friend_call,omitempty"`   // the friend's opinion, names one key
}

// GameQuestion binds one bank question to a game with a per-game random
// shuffle of its answers. The A..D columns record which original answer
// position (1..4) each presented key maps to; the mapping never changes
// after creation, hints only add display payload on top of it.
type GameQuestion struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	GameID     uint           `json:"game_id" gorm:"not null;index"`
	QuestionID uint           `json:"question_id" gorm:"not null"`
	Level      int            `json:"level" gorm:"not null"`
	A          int            `json:"-" gorm:"not null"`
	B          int            `json:"-" gorm:"not null"`
	C          int            `json:"-" gorm:"not null"`
	D          int            `json:"-" gorm:"not null"`
	Help       HelpHash       `json:"help" gorm:"serializer:json"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Question Question `json:"question,omitempty"`
}

// NewGameQuestion shuffles the question's four answers under the keys a..d.
func NewGameQuestion(q Question) GameQuestion {
	perm := rand.Perm(4)
	return GameQuestion{
		QuestionID: q.ID,
		Level:      q.Level,
		A:          perm[0] + 1,
		B:          perm[1] + 1,
		C:          perm[2] + 1,
		D:          perm[3] + 1,
		Question:   q,
	}
}

// keyPositions maps each presented key to the original answer position it
// was shuffled onto.
func (gq *GameQuestion) keyPositions() map[string]int {
	return map[string]int{"a": gq.A, "b": gq.B, "c": gq.C, "d": gq.D}
}

// Variants returns the four presented options, key -> answer text. Hints do
// not narrow this map; elimination is carried separately in the help hash.
func (gq *GameQuestion) Variants() map[string]string {
	answers := gq.Question.Answers()
	variants := make(map[string]string, 4)
	for key, pos := range gq.keyPositions() {
		variants[key] = answers[pos]
	}
	return variants
}

// Text returns the question text.
func (gq *GameQuestion) Text() string {
	return gq.Question.Text
}

// CorrectAnswerKey returns the key the correct answer was shuffled onto.
func (gq *GameQuestion) CorrectAnswerKey() string {
	for key, pos := range gq.keyPositions() {
		if pos == gq.Question.Correct {
			return key
		}
	}
	return ""
}

// AnswerCorrect reports whether the given key is the correct one. Unknown
// keys are simply wrong.
func (gq *GameQuestion) AnswerCorrect(key string) bool {
	return gq.keyPositions()[key] == gq.Question.Correct
}

// HelpHash returns the hints applied so far.
func (gq *GameQuestion) HelpHash() HelpHash {
	return gq.Help
}

// AddAudienceHelp computes an audience vote distribution over the four
// keys. The correct key always holds the plurality; the rest of the split
// is random. Returns ErrHintAlreadyUsed if the hint is already present.
func (gq *GameQuestion) AddAudienceHelp() error {
	if gq.Help.AudienceHelp != nil {
		return ErrHintAlreadyUsed
	}

	correctKey := gq.CorrectAnswerKey()
	correctVotes := 51 + rand.Intn(20)

	rest := 100 - correctVotes
	w1 := rand.Intn(rest + 1)
	w2 := rand.Intn(rest - w1 + 1)
	wrongVotes := []int{w1, w2, rest - w1 - w2}

	votes := make(map[string]int, 4)
	i := 0
	for _, key := range AnswerKeys {
		if key == correctKey {
			votes[key] = correctVotes
			continue
		}
		votes[key] = wrongVotes[i]
		i++
	}

	gq.Help.AudienceHelp = votes
	return nil
}

// AddFiftyFifty keeps the correct key and one random wrong key. Returns
// ErrHintAlreadyUsed if the hint is already present.
func (gq *GameQuestion) AddFiftyFifty() error {
	if gq.Help.FiftyFifty != nil {
		return ErrHintAlreadyUsed
	}

	correctKey := gq.CorrectAnswerKey()
	wrong := make([]string, 0, 3)
	for _, key := range AnswerKeys {
		if key != correctKey {
			wrong = append(wrong, key)
		}
	}

	kept := []string{correctKey, wrong[rand.Intn(len(wrong))]}
	rand.Shuffle(len(kept), func(i, j int) { kept[i], kept[j] = kept[j], kept[i] })

	gq.Help.FiftyFifty = kept
	return nil
}

var friendNames = []string{
	"Alexander", "Maria", "Victor", "Olga", "Sergey", "Natalia",
}

// friendCallAccuracy is the chance the friend actually knows the answer.
const friendCallAccuracy = 80

// AddFriendCall produces the friend's opinion. The friend is usually right
// but may confidently name a wrong key. Returns ErrHintAlreadyUsed if the
// hint is already present.
func (gq *GameQuestion) AddFriendCall() error {
	if gq.Help.FriendCall != "" {
		return ErrHintAlreadyUsed
	}

	guess := gq.CorrectAnswerKey()
	if rand.Intn(100) >= friendCallAccuracy {
		guess = AnswerKeys[rand.Intn(len(AnswerKeys))]
	}

	name := friendNames[rand.Intn(len(friendNames))]
	gq.Help.FriendCall = name + " thinks the answer is " + strings.ToUpper(guess)
	return nil
}
