package errors

import "errors"

var (
	ErrInvalidContestInput = errors.New("invalid contest input")
	ErrInvalidEntryInput   = errors.New("invalid entry input")
	ErrInvalidVoteInput    = errors.New("invalid vote input")

	ErrContestNotFound = errors.New("contest not found")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrNoOpenContest   = errors.New("no open contest")
	ErrNoActiveContest = errors.New("no active contest")

	ErrActiveContestExists  = errors.New("an active contest already exists")
	ErrContestNotOpen       = errors.New("contest is not open")
	ErrContestClosed        = errors.New("contest is closed")
	ErrSubmissionCapReached = errors.New("submission cap reached")

	ErrDuplicateEntry = errors.New("entry already exists for handle")
	ErrDuplicateVote  = errors.New("voter already voted in contest")
	ErrWinnerExists   = errors.New("winner already recorded for contest")
)
