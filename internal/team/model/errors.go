package model

import "errors"

var (
	// ErrTeamExists indicates that a team with the given name already exists.
	ErrTeamExists = errors.New("team name already exists")
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidTeamName indicates that the provided team name is invalid (e.g., empty).
	ErrInvalidTeamName = errors.New("invalid team name")
	// ErrInvalidCity indicates that the provided city is invalid (e.g., empty).
	ErrInvalidCity = errors.New("invalid city")
	// ErrTeamHasMatchups indicates that the team cannot be deleted while it is
	// referenced by scheduled or simulated matchups.
	ErrTeamHasMatchups = errors.New("team is referenced by matchups")
)
