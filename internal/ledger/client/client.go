package client

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"

	node "github.com/votechain/VotingLedger/internal/ledger/node"
	models "github.com/votechain/VotingLedger/internal/models"
)

// Backend is the ledger network surface the client talks to. The embedded
// ledger node implements it directly.
type Backend interface {
	SubmitTransaction(transaction *models.VoteTransaction) error
	WaitForReceipt(ctx context.Context, transactionHash []byte) (*node.TransactionReceipt, error)
	PendingNonce(submitter common.Address) (uint64, error)
	GetVoteCount(electionId uint64, candidateId uint32) (uint64, error)
	CheckIfVoted(electionId uint64, voter common.Address) (bool, error)
	GetTotalVotes() (uint64, error)
}

// LedgerConfirmation is returned once a vote transaction is sealed.
type LedgerConfirmation struct {
	TransactionHash string //hex encoded id of the sealed transaction
	BlockNumber     uint64 //block the transaction was sealed in
	Timestamp       int64  //unix timestamp of the sealing block
}

type LedgerClient interface {
	SubmitVote(ctx context.Context, electionId uuid.UUID, candidateId uint32, voter common.Address) (*LedgerConfirmation, error)
	FetchVoteCount(electionId uuid.UUID, candidateId uint32) (uint64, error)
	FetchHasVoted(electionId uuid.UUID, voter common.Address) (bool, error)
	FetchTotalVotes() (uint64, error)
}

// LedgerClientImpl signs and submits vote transactions with the service's
// single funded identity. Nonce issuance is serialized under submitMux
// because the identity is shared across all concurrent cast requests,
// eligibility checking stays concurrent, only the sign-and-submit step is
// sequenced.
type LedgerClientImpl struct {
	backend             Backend
	signingKey          *ecdsa.PrivateKey
	submitter           common.Address
	confirmationTimeout time.Duration

	submitMux sync.Mutex
	nonce     uint64
	nonceInit bool
}

func NewLedgerClientImpl(backend Backend, signingKey *ecdsa.PrivateKey, confirmationTimeout time.Duration) *LedgerClientImpl {
	return &LedgerClientImpl{
		backend:             backend,
		signingKey:          signingKey,
		submitter:           crypto.PubkeyToAddress(signingKey.PublicKey),
		confirmationTimeout: confirmationTimeout,
	}
}

func (client *LedgerClientImpl) Submitter() common.Address {
	return client.submitter
}

// SubmitVote projects the wide election id, signs a castVote transaction
// and blocks until it is sealed or the confirmation timeout passes.
// Confirmation is the receipt's inclusion, a missing VoteCast event on a
// confirmed receipt is logged but not fatal. The client never retries, a
// failed submission is surfaced to the caller as a SubmissionError.
func (client *LedgerClientImpl) SubmitVote(ctx context.Context, electionId uuid.UUID, candidateId uint32, voter common.Address) (*LedgerConfirmation, error) {
	narrowId := ProjectElectionId(electionId)

	transaction, err := client.signAndSubmit(narrowId, candidateId, voter)
	if err != nil {
		return nil, err
	}

	log.Printf("|LedgerClient| Submitted vote transaction %s (election %d)", transaction.TransactionHashHex(), narrowId)

	waitCtx, cancel := context.WithTimeout(ctx, client.confirmationTimeout)
	defer cancel()

	receipt, err := client.backend.WaitForReceipt(waitCtx, transaction.Id)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &SubmissionError{Kind: SubmissionPending, Err: err}
		}
		return nil, &SubmissionError{Kind: SubmissionTransport, Err: err}
	}

	if receipt.Status == node.StatusRejected {
		return nil, &SubmissionError{Kind: SubmissionRejected, Reason: receipt.Reason}
	}

	if receipt.Event != nil {
		log.Printf("|LedgerClient| VoteCast event: election %d, candidate %d, voter %s", receipt.Event.ElectionId, receipt.Event.CandidateId, receipt.Event.Voter.Hex())
	} else {
		log.Printf("|LedgerClient| Transaction %s confirmed without a VoteCast event", transaction.TransactionHashHex())
	}

	log.Printf("|LedgerClient| Vote confirmed in block %d", receipt.BlockNumber)

	return &LedgerConfirmation{
		TransactionHash: transaction.TransactionHashHex(),
		BlockNumber:     receipt.BlockNumber,
		Timestamp:       receipt.Timestamp,
	}, nil
}

// signAndSubmit issues the next nonce, signs the transaction and hands it
// to the backend. Holding submitMux across nonce issuance and submission
// keeps the shared identity's sequence numbers in submission order.
func (client *LedgerClientImpl) signAndSubmit(narrowElectionId uint64, candidateId uint32, voter common.Address) (*models.VoteTransaction, error) {
	client.submitMux.Lock()
	defer client.submitMux.Unlock()

	if !client.nonceInit {
		nonce, err := client.backend.PendingNonce(client.submitter)
		if err != nil {
			return nil, &SubmissionError{Kind: SubmissionTransport, Err: err}
		}

		client.nonce = nonce
		client.nonceInit = true
	}

	transaction := &models.VoteTransaction{
		ElectionId:  narrowElectionId,
		CandidateId: candidateId,
		Voter:       voter,
		Nonce:       client.nonce,
		Timestamp:   time.Now().Unix(),
	}

	transaction.SetId()

	if err := transaction.Sign(client.signingKey); err != nil {
		return nil, &SubmissionError{Kind: SubmissionTransport, Err: err}
	}

	if err := client.backend.SubmitTransaction(transaction); err != nil {
		return nil, &SubmissionError{Kind: SubmissionTransport, Err: err}
	}

	client.nonce++

	return transaction, nil
}

func (client *LedgerClientImpl) FetchVoteCount(electionId uuid.UUID, candidateId uint32) (uint64, error) {
	count, err := client.backend.GetVoteCount(ProjectElectionId(electionId), candidateId)
	if err != nil {
		return 0, &QueryError{Op: "getVoteCount", Err: err}
	}

	return count, nil
}

func (client *LedgerClientImpl) FetchHasVoted(electionId uuid.UUID, voter common.Address) (bool, error) {
	voted, err := client.backend.CheckIfVoted(ProjectElectionId(electionId), voter)
	if err != nil {
		return false, &QueryError{Op: "checkIfVoted", Err: err}
	}

	return voted, nil
}

func (client *LedgerClientImpl) FetchTotalVotes() (uint64, error) {
	total, err := client.backend.GetTotalVotes()
	if err != nil {
		return 0, &QueryError{Op: "getTotalVotes", Err: err}
	}

	return total, nil
}
