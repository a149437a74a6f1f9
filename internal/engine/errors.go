package engine

// ErrorKind classifies a rejected turn.
type ErrorKind int

const (
	ErrNotEnoughToTake ErrorKind = iota
	ErrTooManyTokenTypes
	ErrInsufficientFunds
	ErrTooManyReserved
	ErrNobleCriteriaUnmet
	ErrDirectGoldTake
	ErrInsufficientTokensToReturn
	ErrGameAlreadyOver
	ErrEmptyDeck
	ErrCardUnavailable
	ErrMultipleActions
	ErrNoAction
)

var errorKindNames = map[ErrorKind]string{
	ErrNotEnoughToTake:            "NotEnoughToTake",
	ErrTooManyTokenTypes:          "TooManyTokenTypes",
	ErrInsufficientFunds:          "InsufficientFunds",
	ErrTooManyReserved:            "TooManyReserved",
	ErrNobleCriteriaUnmet:         "NobleCriteriaUnmet",
	ErrDirectGoldTake:             "DirectGoldTake",
	ErrInsufficientTokensToReturn: "InsufficientTokensToReturn",
	ErrGameAlreadyOver:            "GameAlreadyOver",
	ErrEmptyDeck:                  "EmptyDeck",
	ErrCardUnavailable:            "CardUnavailable",
	ErrMultipleActions:            "MultipleActions",
	ErrNoAction:                   "NoAction",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// TurnError is a structured turn rejection. The board guarantees that a turn
// answered with a TurnError mutated nothing.
type TurnError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *TurnError) Error() string {
	return e.Message
}

func newTurnError(kind ErrorKind, message string) *TurnError {
	return &TurnError{Kind: kind, Message: message}
}
