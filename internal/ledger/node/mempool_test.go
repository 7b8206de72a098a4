package node_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/votechain/VotingLedger/internal/ledger/node"
	"github.com/votechain/VotingLedger/internal/models"
)

func unsignedTransaction(t *testing.T, nonce uint64) *models.VoteTransaction {
	t.Helper()

	transaction := &models.VoteTransaction{
		ElectionId:  1,
		CandidateId: 1,
		Voter:       testVoter(byte(nonce)),
		Nonce:       nonce,
		Timestamp:   time.Now().Unix(),
	}

	transaction.SetId()

	return transaction
}

func TestMemPoolPopsInSubmissionOrder(t *testing.T) {
	memPool := node.NewMemPool()

	transactions := make([]*models.VoteTransaction, 5)
	for i := range transactions {
		transactions[i] = unsignedTransaction(t, uint64(i))
		memPool.Insert(transactions[i])
	}

	batch := memPool.PopBatch(3)

	if len(batch) != 3 {
		t.Fatalf("expected batch of 3, got %d", len(batch))
	}

	for i, transaction := range batch {
		if !bytes.Equal(transaction.Id, transactions[i].Id) {
			t.Fatalf("batch out of submission order at index %d", i)
		}
	}

	rest := memPool.PopBatch(10)

	if len(rest) != 2 {
		t.Fatalf("expected remaining batch of 2, got %d", len(rest))
	}

	if memPool.Size() != 0 {
		t.Fatalf("mempool should be empty after draining")
	}
}

func TestMemPoolIgnoresDuplicateInsert(t *testing.T) {
	memPool := node.NewMemPool()

	transaction := unsignedTransaction(t, 1)
	memPool.Insert(transaction)
	memPool.Insert(transaction)

	if memPool.Size() != 1 {
		t.Fatalf("duplicate insert changed mempool size")
	}

	if !memPool.Contains(transaction.Id) {
		t.Fatalf("mempool should contain inserted transaction")
	}
}
