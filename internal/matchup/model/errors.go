package model

import "errors"

var (
	// ErrMatchupNotFound indicates that the requested matchup does not exist.
	ErrMatchupNotFound = errors.New("matchup not found")
	// ErrAlreadySimulated indicates that the matchup's simulated flag is already
	// set; simulate, edit and delete are all rejected without mutation.
	ErrAlreadySimulated = errors.New("matchup already simulated")
	// ErrSameTeam indicates that home and away reference the same team.
	ErrSameTeam = errors.New("home and away team must differ")
	// ErrDateInPast indicates a scheduled date before the current time.
	ErrDateInPast = errors.New("matchup date cannot be in the past")
	// ErrInvalidLocation indicates a missing location.
	ErrInvalidLocation = errors.New("location is required")
	// ErrSimulationConflict indicates that the simulation transaction could not
	// commit; nothing was persisted and the caller may retry.
	ErrSimulationConflict = errors.New("simulation transaction conflict")
)
