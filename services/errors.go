package services

import "errors"

var (
	// ErrGameAlreadyInProgress is returned by CreateGameForUser together
	// with the user's existing unfinished game.
	ErrGameAlreadyInProgress = errors.New("game not finished yet")
	// ErrGameNotFound means no game exists under the given id.
	ErrGameNotFound = errors.New("game not found")
	// ErrNotOwner means the caller does not own the target game.
	ErrNotOwner = errors.New("not your game")
	// ErrGameConflict means a concurrent update won; the caller should
	// reload and retry rather than trust its stale copy.
	ErrGameConflict = errors.New("game was modified concurrently")
	// ErrInvalidLevelDraw means the question bank could not supply one
	// unused question for every level.
	ErrInvalidLevelDraw = errors.New("not enough questions to cover all levels")
)
