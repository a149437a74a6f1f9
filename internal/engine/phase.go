package engine

// Phase is the board's derived turn-machine state.
type Phase int

const (
	PhaseInProgress     Phase = iota // waiting for the current seat's action
	PhaseAwaitingReturn              // last turn suspended: tokens must be returned
	PhaseAwaitingNoble               // last turn suspended: a noble must be chosen
	PhaseGameOver                    // game finished
)

var phaseNames = map[Phase]string{
	PhaseInProgress:     "InProgress",
	PhaseAwaitingReturn: "AwaitingReturn",
	PhaseAwaitingNoble:  "AwaitingNoble",
	PhaseGameOver:       "GameOver",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}

// Phase derives the machine state from the game-over flag and the history
// head's continuation, if any.
func (b *Board) Phase() Phase {
	if b.GameOver {
		return PhaseGameOver
	}
	if b.LastTurn != nil && b.LastTurn.Continuation != nil {
		if b.LastTurn.Continuation.Code == ContinueChooseNoble {
			return PhaseAwaitingNoble
		}
		return PhaseAwaitingReturn
	}
	return PhaseInProgress
}
