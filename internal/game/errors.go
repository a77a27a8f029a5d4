package game

import "errors"

var (
	ErrInvalidHand   = errors.New("invalid hand")
	ErrUnexpectedTie = errors.New("unexpected tie")
	ErrRoundLimit    = errors.New("round limit reached")
	ErrAlreadyPlayed = errors.New("game already played")
)
