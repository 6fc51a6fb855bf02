package domain

import "errors"

var (
	ErrInvalidGoal      = errors.New("fund goal must be greater than zero")
	ErrInvalidDuration  = errors.New("duration must be at least one day")
	ErrInvalidAmount    = errors.New("donation amount must be greater than zero")
	ErrInvalidPrincipal = errors.New("principal is required")
	ErrNotFound         = errors.New("project not found")
	ErrProjectEnded     = errors.New("project has ended")
	ErrNotYetDue        = errors.New("project deadline has not passed")
	ErrNotOwner         = errors.New("caller is not the project owner")
	ErrNotCompleted     = errors.New("project is not completed")
	ErrAlreadyWithdrawn = errors.New("project funds already withdrawn")
	ErrTimeNotElapsed   = errors.New("project has not ended")
	ErrGoalMet          = errors.New("project goal was met")
	ErrNotDonor         = errors.New("caller has no contribution to refund")
	ErrNothingToClaim   = errors.New("no reward tokens to claim")
	ErrTransferFailed   = errors.New("transfer failed")
	ErrCorruptJournal   = errors.New("corrupt journal")
	ErrJournalFailed    = errors.New("journal commit failed")
	ErrSeqConflict      = errors.New("journal sequence conflict")
	ErrUnauthorized     = errors.New("unauthorized")
)
