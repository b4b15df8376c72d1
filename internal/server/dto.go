package server

import (
	"github.com/google/uuid"

	"github.com/pdrpinto/gridnav/internal/render"
)

// CreateSessionRequest optionally fixes the first grid's seed.
type CreateSessionRequest struct {
	Seed int64 `json:"seed"`
}

// GenerateRequest regenerates the grid; a zero seed draws the next one.
type GenerateRequest struct {
	Seed int64 `json:"seed"`
}

// CellRequest selects a start or end cell.
type CellRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}

// ModeRequest selects the search mode by name.
type ModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// SessionResponse is the state of a session.
type SessionResponse struct {
	ID uuid.UUID `json:"id"`
	render.Report
}

// StepResponse is one stepper snapshot.
type StepResponse struct {
	Step      int            `json:"step"`
	Current   *render.Point  `json:"current"`
	Frontier  []render.Point `json:"frontier"`
	Finalized []render.Point `json:"finalized"`
	Done      bool           `json:"done"`
	Found     bool           `json:"found"`
	Path      []render.Point `json:"path"`
}
