package entity

import "time"

type GameOutcome string

const (
	OutcomeWin        GameOutcome = "win"
	OutcomeLoss       GameOutcome = "loss"
	OutcomeDraw       GameOutcome = "draw"
	OutcomeIncomplete GameOutcome = "incomplete"
	OutcomeError      GameOutcome = "error"
)

// GameResult is the terminal value of one game. It is produced exactly once
// per PlayGame call and never mutated afterwards.
type GameResult struct {
	ID             string      `json:"id,omitempty"`
	Outcome        GameOutcome `json:"outcome"`
	BoardRendering string      `json:"board"`
	Summary        string      `json:"summary"`
	AuxToken       string      `json:"aux_token,omitempty"`
	Reason         string      `json:"reason,omitempty"`
	PlayedAt       time.Time   `json:"played_at,omitempty"`
}

func NewGameResult(outcome GameOutcome, board Board, summary string) *GameResult {
	return &GameResult{
		Outcome:        outcome,
		BoardRendering: board.String(),
		Summary:        summary,
	}
}

func NewErrorResult(board Board, err error) *GameResult {
	return &GameResult{
		Outcome:        OutcomeError,
		BoardRendering: board.String(),
		Summary:        "the game failed: " + err.Error(),
		Reason:         err.Error(),
	}
}
