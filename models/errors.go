package models

import "errors"

var (
	// ErrGameFinished means a state-changing operation hit a terminal game.
	ErrGameFinished = errors.New("game is already finished")
	// ErrHintAlreadyUsed means the one-shot hint was already spent.
	ErrHintAlreadyUsed = errors.New("hint already used")
	// ErrUnknownHintKind means the requested hint type does not exist.
	ErrUnknownHintKind = errors.New("unknown hint kind")
)
