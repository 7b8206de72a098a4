package node_test

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/votechain/VotingLedger/internal/crypto/merkle"
	"github.com/votechain/VotingLedger/internal/ledger/node"
	"github.com/votechain/VotingLedger/internal/models"
)

func startTestNode(t *testing.T) (*node.LedgerNode, *sync.WaitGroup) {
	t.Helper()

	ledgerNode := node.NewLedgerNode(16, 2*time.Millisecond)

	wg := &sync.WaitGroup{}
	ledgerNode.Start(wg)

	t.Cleanup(func() {
		ledgerNode.Stop()
		wg.Wait()
	})

	return ledgerNode, wg
}

func newSubmitterKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("error generating submitter key: %v", err)
	}

	return key
}

func signedTransaction(t *testing.T, key *ecdsa.PrivateKey, electionId uint64, candidateId uint32, voter common.Address, nonce uint64) *models.VoteTransaction {
	t.Helper()

	transaction := &models.VoteTransaction{
		ElectionId:  electionId,
		CandidateId: candidateId,
		Voter:       voter,
		Nonce:       nonce,
		Timestamp:   time.Now().Unix(),
	}

	transaction.SetId()

	if err := transaction.Sign(key); err != nil {
		t.Fatalf("error signing transaction: %v", err)
	}

	return transaction
}

func testVoter(b byte) common.Address {
	var address common.Address
	address[common.AddressLength-1] = b
	return address
}

func TestSubmitAndWaitForReceipt(t *testing.T) {
	ledgerNode, _ := startTestNode(t)
	key := newSubmitterKey(t)

	transaction := signedTransaction(t, key, 7, 3, testVoter(1), 0)

	if err := ledgerNode.SubmitTransaction(transaction); err != nil {
		t.Fatalf("error in SubmitTransaction: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	receipt, err := ledgerNode.WaitForReceipt(ctx, transaction.Id)
	if err != nil {
		t.Fatalf("error in WaitForReceipt: %v", err)
	}

	if receipt.Status != node.StatusConfirmed {
		t.Fatalf("expected confirmed receipt, got status %d (%s)", receipt.Status, receipt.Reason)
	}

	if receipt.BlockNumber == 0 {
		t.Fatalf("confirmed receipt must carry a block number past genesis")
	}

	if receipt.Event == nil {
		t.Fatalf("confirmed receipt must carry the VoteCast event")
	}

	if receipt.Event.Voter != testVoter(1) {
		t.Fatalf("event voter does not match transaction voter")
	}

	count, err := ledgerNode.GetVoteCount(7, 3)
	if err != nil {
		t.Fatalf("error in GetVoteCount: %v", err)
	}

	if count != 1 {
		t.Fatalf("expected vote count 1, got %d", count)
	}
}

func TestDoubleVoteGetsRejectedReceipt(t *testing.T) {
	ledgerNode, _ := startTestNode(t)
	key := newSubmitterKey(t)
	voter := testVoter(1)

	first := signedTransaction(t, key, 7, 3, voter, 0)
	second := signedTransaction(t, key, 7, 5, voter, 1)

	if err := ledgerNode.SubmitTransaction(first); err != nil {
		t.Fatalf("error submitting first transaction: %v", err)
	}

	if err := ledgerNode.SubmitTransaction(second); err != nil {
		t.Fatalf("error submitting second transaction: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	firstReceipt, err := ledgerNode.WaitForReceipt(ctx, first.Id)
	if err != nil {
		t.Fatalf("error waiting for first receipt: %v", err)
	}

	secondReceipt, err := ledgerNode.WaitForReceipt(ctx, second.Id)
	if err != nil {
		t.Fatalf("error waiting for second receipt: %v", err)
	}

	if firstReceipt.Status != node.StatusConfirmed {
		t.Fatalf("first cast should be confirmed, got %s", firstReceipt.Reason)
	}

	if secondReceipt.Status != node.StatusRejected {
		t.Fatalf("second cast should be rejected")
	}

	if !strings.Contains(secondReceipt.Reason, "already cast") {
		t.Fatalf("rejection reason should name the double vote, got %q", secondReceipt.Reason)
	}

	if secondReceipt.Event != nil {
		t.Fatalf("rejected receipt must not carry an event")
	}

	countRejected, _ := ledgerNode.GetVoteCount(7, 5)
	if countRejected != 0 {
		t.Fatalf("rejected cast incremented a counter")
	}

	total, _ := ledgerNode.GetTotalVotes()
	if total != 1 {
		t.Fatalf("expected total votes 1, got %d", total)
	}
}

func TestSubmitRejectsBadNonce(t *testing.T) {
	ledgerNode, _ := startTestNode(t)
	key := newSubmitterKey(t)

	transaction := signedTransaction(t, key, 7, 3, testVoter(1), 4)

	if err := ledgerNode.SubmitTransaction(transaction); err == nil {
		t.Fatalf("expected out-of-order nonce to be rejected")
	}
}

func TestSubmitRejectsTamperedTransaction(t *testing.T) {
	ledgerNode, _ := startTestNode(t)
	key := newSubmitterKey(t)

	transaction := signedTransaction(t, key, 7, 3, testVoter(1), 0)
	transaction.CandidateId = 9

	if err := ledgerNode.SubmitTransaction(transaction); err == nil {
		t.Fatalf("expected tampered transaction to be rejected")
	}
}

func TestWaitForReceiptHonorsContext(t *testing.T) {
	// Node is never started, nothing gets sealed.
	ledgerNode := node.NewLedgerNode(16, time.Hour)
	key := newSubmitterKey(t)

	transaction := signedTransaction(t, key, 7, 3, testVoter(1), 0)

	if err := ledgerNode.SubmitTransaction(transaction); err != nil {
		t.Fatalf("error in SubmitTransaction: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := ledgerNode.WaitForReceipt(ctx, transaction.Id)

	if err == nil {
		t.Fatalf("expected WaitForReceipt to fail once the context is done")
	}
}

func TestSealedBlocksChainAndCommitToTransactions(t *testing.T) {
	ledgerNode, _ := startTestNode(t)
	key := newSubmitterKey(t)

	transaction := signedTransaction(t, key, 7, 3, testVoter(1), 0)

	if err := ledgerNode.SubmitTransaction(transaction); err != nil {
		t.Fatalf("error in SubmitTransaction: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	receipt, err := ledgerNode.WaitForReceipt(ctx, transaction.Id)
	if err != nil {
		t.Fatalf("error in WaitForReceipt: %v", err)
	}

	block := ledgerNode.LatestBlock()

	if block.Number != receipt.BlockNumber {
		t.Fatalf("latest block %d does not match receipt block %d", block.Number, receipt.BlockNumber)
	}

	if !bytes.Equal(block.Hash, block.GetHash()) {
		t.Fatalf("block hash does not match block content")
	}

	proof, found := merkle.GenerateMerkleProof(block.TransactionIds, transaction.Id)
	if !found {
		t.Fatalf("sealed transaction missing from block")
	}

	if !merkle.VerifyMerkleProof(block.MerkleRoot, transaction.Id, proof) {
		t.Fatalf("merkle proof for sealed transaction does not verify")
	}
}
