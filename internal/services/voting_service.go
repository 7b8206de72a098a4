package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	repositories "github.com/votechain/VotingLedger/internal/database/repositories"
	client "github.com/votechain/VotingLedger/internal/ledger/client"
	models "github.com/votechain/VotingLedger/internal/models"
)

type VoteStatus struct {
	HasVoted   bool
	VoteRecord *models.VoteRecord
}

type VotingService interface {
	CastVote(ctx context.Context, userId uuid.UUID, electionId uuid.UUID, candidateId uint32) (*models.VoteRecord, error)
	CheckVoteStatus(userId uuid.UUID, electionId uuid.UUID) (*VoteStatus, error)
}

// VotingServiceImpl mediates between authenticated cast requests and the
// ledger. It runs the eligibility gates, forwards eligible casts to the
// ledger client and persists the off-chain vote receipt after confirmation.
type VotingServiceImpl struct {
	userRepository       repositories.UserRepository
	electionRepository   repositories.ElectionRepository
	candidateRepository  repositories.CandidateRepository
	voteRecordRepository repositories.VoteRecordRepository
	ledgerClient         client.LedgerClient

	now func() time.Time
}

func NewVotingServiceImpl(
	userRepository repositories.UserRepository,
	electionRepository repositories.ElectionRepository,
	candidateRepository repositories.CandidateRepository,
	voteRecordRepository repositories.VoteRecordRepository,
	ledgerClient client.LedgerClient,
) *VotingServiceImpl {
	return &VotingServiceImpl{
		userRepository:       userRepository,
		electionRepository:   electionRepository,
		candidateRepository:  candidateRepository,
		voteRecordRepository: voteRecordRepository,
		ledgerClient:         ledgerClient,
		now:                  time.Now,
	}
}

// CastVote runs the ordered eligibility gates, each gate fails fast and the
// first failing gate determines the returned error. The off-chain
// already-voted gate is only an optimization, the contract's own
// precondition is the authoritative double-vote check: two racing requests
// can both pass the gate here and the ledger will reject the second one.
func (service *VotingServiceImpl) CastVote(ctx context.Context, userId uuid.UUID, electionId uuid.UUID, candidateId uint32) (*models.VoteRecord, error) {
	user, err := service.userRepository.GetUser(userId)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, NewVoteError(ErrorNotFound, ReasonUserNotFound, "user not found")
	}

	if user.Role == models.RoleAdmin {
		return nil, NewVoteError(ErrorForbidden, ReasonAdminsCannotVote, "admins cannot vote, only voters can participate in elections")
	}

	if !user.IsVerified {
		return nil, NewVoteError(ErrorForbidden, ReasonNotVerified, "account is not verified, wait for admin approval")
	}

	election, err := service.electionRepository.GetElection(electionId)
	if err != nil {
		return nil, err
	}

	if election == nil {
		return nil, NewVoteError(ErrorNotFound, ReasonElectionNotFound, "election not found")
	}

	if !election.InVotingWindow(service.now()) {
		return nil, NewVoteError(ErrorInvalidState, ReasonElectionNotActive, "election is not active")
	}

	if !election.IsActive {
		return nil, NewVoteError(ErrorInvalidState, ReasonElectionDeactivated, "election has been deactivated")
	}

	existingRecord, err := service.voteRecordRepository.FindVoteRecord(userId, electionId)
	if err != nil {
		return nil, err
	}

	if existingRecord != nil {
		return nil, NewVoteError(ErrorConflict, ReasonAlreadyVoted, "already voted in this election")
	}

	candidate, err := service.candidateRepository.ResolveCandidate(electionId, candidateId)
	if err != nil {
		return nil, err
	}

	if candidate == nil {
		return nil, NewVoteError(ErrorNotFound, ReasonCandidateNotFound, "candidate not found")
	}

	confirmation, err := service.ledgerClient.SubmitVote(ctx, electionId, candidateId, user.VoterAddress)
	if err != nil {
		return nil, mapSubmissionError(err)
	}

	voteRecord := &models.VoteRecord{
		UserId:          userId,
		ElectionId:      electionId,
		VoterAddress:    user.VoterAddress,
		TransactionHash: confirmation.TransactionHash,
		BlockNumber:     confirmation.BlockNumber,
		Timestamp:       time.Unix(confirmation.Timestamp, 0),
	}

	err = service.voteRecordRepository.InsertVoteRecord(voteRecord)
	if err != nil {
		// A lost race on the unique (user, election) index collapses into
		// the same caller-visible outcome as the eligibility gate.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewVoteError(ErrorConflict, ReasonAlreadyVoted, "already voted in this election")
		}
		return nil, err
	}

	log.Printf("|VotingService| Vote recorded for user %s in election %s (tx %s, block %d)", userId, electionId, confirmation.TransactionHash, confirmation.BlockNumber)

	return voteRecord, nil
}

// CheckVoteStatus is a pure off-chain lookup. The receipt is written
// synchronously after ledger confirmation, so eventual consistency with the
// ledger is acceptable here.
func (service *VotingServiceImpl) CheckVoteStatus(userId uuid.UUID, electionId uuid.UUID) (*VoteStatus, error) {
	voteRecord, err := service.voteRecordRepository.FindVoteRecord(userId, electionId)
	if err != nil {
		return nil, err
	}

	return &VoteStatus{
		HasVoted:   voteRecord != nil,
		VoteRecord: voteRecord,
	}, nil
}

// mapSubmissionError translates ledger client failures into the mediator's
// error taxonomy. Every ledger-level rejection maps to a caller-visible
// error kind, nothing is swallowed.
func mapSubmissionError(err error) error {
	var submissionError *client.SubmissionError
	if !errors.As(err, &submissionError) {
		return err
	}

	switch submissionError.Kind {
	case client.SubmissionRejected:
		if submissionError.IsDoubleVote() {
			return &VoteError{Kind: ErrorConflict, Reason: ReasonAlreadyVoted, Message: "already voted in this election", Err: err}
		}
		return &VoteError{Kind: ErrorInvalidState, Reason: ReasonLedgerUnavailable, Message: "ledger rejected the vote transaction", Err: err}
	case client.SubmissionPending:
		return &VoteError{Kind: ErrorTimeout, Reason: ReasonConfirmationPending, Message: "ledger confirmation still pending, vote may yet be counted", Err: err}
	default:
		return &VoteError{Kind: ErrorUnavailable, Reason: ReasonLedgerUnavailable, Message: "failed to reach the ledger", Err: err}
	}
}
