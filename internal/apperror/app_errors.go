package apperror

import "errors"

var (
	ErrIllegalMove      = errors.New("illegal move")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrSurfaceNotReady  = errors.New("surface is not ready")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrForeignHandle    = errors.New("cell handle belongs to another session")
	ErrSessionReleased  = errors.New("session is already released")
)
