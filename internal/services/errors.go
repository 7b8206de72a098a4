package services

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	ErrorForbidden ErrorKind = iota + 1
	ErrorNotFound
	ErrorInvalidState
	ErrorConflict
	ErrorTimeout
	ErrorUnavailable
)

type ErrorReason string

const (
	ReasonAdminsCannotVote    ErrorReason = "ADMINS_CANNOT_VOTE"
	ReasonNotAuthorized       ErrorReason = "NOT_AUTHORIZED"
	ReasonNotVerified         ErrorReason = "NOT_VERIFIED"
	ReasonUserNotFound        ErrorReason = "USER_NOT_FOUND"
	ReasonElectionNotFound    ErrorReason = "ELECTION_NOT_FOUND"
	ReasonElectionNotActive   ErrorReason = "ELECTION_NOT_ACTIVE"
	ReasonElectionDeactivated ErrorReason = "ELECTION_DEACTIVATED"
	ReasonAlreadyVoted        ErrorReason = "ALREADY_VOTED"
	ReasonCandidateNotFound   ErrorReason = "CANDIDATE_NOT_FOUND"
	ReasonResultsNotPublished ErrorReason = "RESULTS_NOT_PUBLISHED"
	ReasonConfirmationPending ErrorReason = "LEDGER_CONFIRMATION_PENDING"
	ReasonLedgerUnavailable   ErrorReason = "LEDGER_UNAVAILABLE"
)

// VoteError is the caller-visible error of the voting and results services.
// Eligibility errors are terminal for the request, the caller corrects the
// precondition. ErrorTimeout is ambiguous: the transaction may still land,
// so it must never be read as "vote not counted".
type VoteError struct {
	Kind    ErrorKind
	Reason  ErrorReason
	Message string
	Err     error
}

func (e *VoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Reason, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func (e *VoteError) Unwrap() error {
	return e.Err
}

func NewVoteError(kind ErrorKind, reason ErrorReason, message string) *VoteError {
	return &VoteError{Kind: kind, Reason: reason, Message: message}
}

// IsReason reports whether err is a VoteError with the given reason.
func IsReason(err error, reason ErrorReason) bool {
	var voteError *VoteError
	if errors.As(err, &voteError) {
		return voteError.Reason == reason
	}
	return false
}

// IsKind reports whether err is a VoteError with the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var voteError *VoteError
	if errors.As(err, &voteError) {
		return voteError.Kind == kind
	}
	return false
}
