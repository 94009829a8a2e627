package models

// PrizeLadder holds the payout for each of the 15 levels. The index is the
// level just answered, so finishing level 0 is worth PrizeLadder[0] and the
// grand prize is PrizeLadder[14].
var PrizeLadder = [15]int{
	100, 200, 300, 500, 1000,
	2000, 4000, 8000, 16000, 32000,
	64000, 125000, 250000, 500000, 1000000,
}

// FireproofLevels are the checkpoint indices whose amounts are guaranteed:
// once passed, a wrong answer falls back to the checkpoint instead of zero.
var FireproofLevels = [2]int{4, 9}

// AmountForLevel returns the payout for answering the given level correctly.
// Callers must pass a level in 0..14.
func AmountForLevel(level int) int {
	return PrizeLadder[level]
}

// FallbackAmountFor returns the guaranteed amount for a player who fails at
// currentLevel: the highest fireproof checkpoint strictly below it, or zero
// if no checkpoint has been passed yet.
func FallbackAmountFor(currentLevel int) int {
	amount := 0
	for _, fp := range FireproofLevels {
		if currentLevel > fp {
			amount = PrizeLadder[fp]
		}
	}
	return amount
}

// MaxAmount is the grand prize for clearing all 15 levels.
func MaxAmount() int {
	return PrizeLadder[len(PrizeLadder)-1]
}
