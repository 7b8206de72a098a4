package client

import (
	"fmt"
	"strings"

	contract "github.com/votechain/VotingLedger/internal/ledger/contract"
)

type SubmissionErrorKind int

const (
	// SubmissionRejected means the ledger applied the transaction and the
	// contract rejected it. The vote was not counted.
	SubmissionRejected SubmissionErrorKind = iota + 1
	// SubmissionTransport means the transaction never reached the ledger.
	// Safe for the caller to retry.
	SubmissionTransport
	// SubmissionPending means the confirmation wait timed out. The
	// transaction may still be sealed later, the outcome is unknown and
	// must not be reported as a plain failure.
	SubmissionPending
)

// SubmissionError carries the underlying rejection reason of a failed vote
// submission. The client never retries on its own, blind retries risk a
// second distinct transaction being misread as a duplicate cast attempt.
type SubmissionError struct {
	Kind   SubmissionErrorKind
	Reason string
	Err    error
}

func (e *SubmissionError) Error() string {
	switch e.Kind {
	case SubmissionRejected:
		return fmt.Sprintf("ledger rejected vote transaction: %s", e.Reason)
	case SubmissionPending:
		return "ledger confirmation timed out, transaction outcome unknown"
	default:
		return fmt.Sprintf("failed to submit vote transaction: %v", e.Err)
	}
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// IsDoubleVote reports whether the rejection was the contract's double-vote
// precondition.
func (e *SubmissionError) IsDoubleVote() bool {
	return e.Kind == SubmissionRejected && strings.Contains(e.Reason, contract.ErrAlreadyVoted.Error())
}

// QueryError is a read-path failure. Reads have no side effects so callers
// may always retry.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("ledger query %s failed: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
