package client_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"

	"github.com/votechain/VotingLedger/internal/ledger/client"
	"github.com/votechain/VotingLedger/internal/ledger/node"
	"github.com/votechain/VotingLedger/internal/models"
)

func newTestClient(t *testing.T, backend client.Backend, confirmationTimeout time.Duration) *client.LedgerClientImpl {
	t.Helper()

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("error generating signing key: %v", err)
	}

	return client.NewLedgerClientImpl(backend, key, confirmationTimeout)
}

func startBackendNode(t *testing.T) *node.LedgerNode {
	t.Helper()

	ledgerNode := node.NewLedgerNode(16, 2*time.Millisecond)

	wg := &sync.WaitGroup{}
	ledgerNode.Start(wg)

	t.Cleanup(func() {
		ledgerNode.Stop()
		wg.Wait()
	})

	return ledgerNode
}

func testVoter(b byte) common.Address {
	var address common.Address
	address[common.AddressLength-1] = b
	return address
}

func TestProjectElectionIdIsDeterministic(t *testing.T) {
	electionId := uuid.New()

	first := client.ProjectElectionId(electionId)
	second := client.ProjectElectionId(electionId)

	if first != second {
		t.Fatalf("projection of the same wide id differs: %d != %d", first, second)
	}

	if first >= 1_000_000 {
		t.Fatalf("projected id %d outside the ledger domain", first)
	}

	other := client.ProjectElectionId(uuid.New())
	if other >= 1_000_000 {
		t.Fatalf("projected id %d outside the ledger domain", other)
	}
}

func TestSubmitVoteConfirms(t *testing.T) {
	ledgerNode := startBackendNode(t)
	ledgerClient := newTestClient(t, ledgerNode, 5*time.Second)

	electionId := uuid.New()
	voter := testVoter(1)

	confirmation, err := ledgerClient.SubmitVote(context.Background(), electionId, 3, voter)
	if err != nil {
		t.Fatalf("error in SubmitVote: %v", err)
	}

	if confirmation.TransactionHash == "" {
		t.Fatalf("confirmation must carry a transaction hash")
	}

	if confirmation.BlockNumber == 0 {
		t.Fatalf("confirmation must carry a block number past genesis")
	}

	hasVoted, err := ledgerClient.FetchHasVoted(electionId, voter)
	if err != nil {
		t.Fatalf("error in FetchHasVoted: %v", err)
	}

	if !hasVoted {
		t.Fatalf("expected hasVoted true after confirmed cast")
	}

	count, err := ledgerClient.FetchVoteCount(electionId, 3)
	if err != nil {
		t.Fatalf("error in FetchVoteCount: %v", err)
	}

	if count != 1 {
		t.Fatalf("expected vote count 1, got %d", count)
	}
}

func TestSubmitVoteDoubleVoteIsRejected(t *testing.T) {
	ledgerNode := startBackendNode(t)
	ledgerClient := newTestClient(t, ledgerNode, 5*time.Second)

	electionId := uuid.New()
	voter := testVoter(1)

	_, err := ledgerClient.SubmitVote(context.Background(), electionId, 3, voter)
	if err != nil {
		t.Fatalf("error in first SubmitVote: %v", err)
	}

	_, err = ledgerClient.SubmitVote(context.Background(), electionId, 5, voter)

	var submissionError *client.SubmissionError
	if !errors.As(err, &submissionError) {
		t.Fatalf("expected SubmissionError, got %v", err)
	}

	if submissionError.Kind != client.SubmissionRejected {
		t.Fatalf("expected rejected submission, got kind %d", submissionError.Kind)
	}

	if !submissionError.IsDoubleVote() {
		t.Fatalf("rejection should be detectable as a double vote")
	}

	count, err := ledgerClient.FetchVoteCount(electionId, 5)
	if err != nil {
		t.Fatalf("error in FetchVoteCount: %v", err)
	}

	if count != 0 {
		t.Fatalf("rejected cast must not increment a counter")
	}
}

func TestSubmitVoteReportsPendingOnTimeout(t *testing.T) {
	// The backend accepts transactions but never seals them.
	ledgerNode := node.NewLedgerNode(16, time.Hour)
	ledgerClient := newTestClient(t, ledgerNode, 50*time.Millisecond)

	_, err := ledgerClient.SubmitVote(context.Background(), uuid.New(), 3, testVoter(1))

	var submissionError *client.SubmissionError
	if !errors.As(err, &submissionError) {
		t.Fatalf("expected SubmissionError, got %v", err)
	}

	if submissionError.Kind != client.SubmissionPending {
		t.Fatalf("confirmation timeout must surface as pending, got kind %d", submissionError.Kind)
	}
}

func TestNonceSequenceFollowsSubmissionOrder(t *testing.T) {
	ledgerNode := startBackendNode(t)
	ledgerClient := newTestClient(t, ledgerNode, 5*time.Second)

	numVotes := 5
	electionId := uuid.New()

	for i := 0; i < numVotes; i++ {
		_, err := ledgerClient.SubmitVote(context.Background(), electionId, 1, testVoter(byte(i+1)))
		if err != nil {
			t.Fatalf("error in SubmitVote %d: %v", i, err)
		}
	}

	pendingNonce, err := ledgerNode.PendingNonce(ledgerClient.Submitter())
	if err != nil {
		t.Fatalf("error in PendingNonce: %v", err)
	}

	if pendingNonce != uint64(numVotes) {
		t.Fatalf("expected pending nonce %d, got %d", numVotes, pendingNonce)
	}
}

type failingBackend struct{}

func (backend *failingBackend) SubmitTransaction(transaction *models.VoteTransaction) error {
	return fmt.Errorf("connection refused")
}

func (backend *failingBackend) WaitForReceipt(ctx context.Context, transactionHash []byte) (*node.TransactionReceipt, error) {
	return nil, fmt.Errorf("connection refused")
}

func (backend *failingBackend) PendingNonce(submitter common.Address) (uint64, error) {
	return 0, nil
}

func (backend *failingBackend) GetVoteCount(electionId uint64, candidateId uint32) (uint64, error) {
	return 0, fmt.Errorf("connection refused")
}

func (backend *failingBackend) CheckIfVoted(electionId uint64, voter common.Address) (bool, error) {
	return false, fmt.Errorf("connection refused")
}

func (backend *failingBackend) GetTotalVotes() (uint64, error) {
	return 0, fmt.Errorf("connection refused")
}

func TestSubmitVoteSurfacesTransportFailure(t *testing.T) {
	ledgerClient := newTestClient(t, &failingBackend{}, time.Second)

	_, err := ledgerClient.SubmitVote(context.Background(), uuid.New(), 3, testVoter(1))

	var submissionError *client.SubmissionError
	if !errors.As(err, &submissionError) {
		t.Fatalf("expected SubmissionError, got %v", err)
	}

	if submissionError.Kind != client.SubmissionTransport {
		t.Fatalf("expected transport failure, got kind %d", submissionError.Kind)
	}
}

func TestFetchQueriesFailWithQueryError(t *testing.T) {
	ledgerClient := newTestClient(t, &failingBackend{}, time.Second)

	_, err := ledgerClient.FetchVoteCount(uuid.New(), 1)

	var queryError *client.QueryError
	if !errors.As(err, &queryError) {
		t.Fatalf("expected QueryError, got %v", err)
	}

	if _, err := ledgerClient.FetchTotalVotes(); err == nil {
		t.Fatalf("expected FetchTotalVotes to fail")
	}
}
