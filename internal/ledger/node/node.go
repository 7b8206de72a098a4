package node

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	contract "github.com/votechain/VotingLedger/internal/ledger/contract"
	models "github.com/votechain/VotingLedger/internal/models"
)

type ReceiptStatus uint8

const (
	StatusConfirmed ReceiptStatus = 1
	StatusRejected  ReceiptStatus = 2
)

// TransactionReceipt is produced for every sealed transaction. A rejected
// transaction is still sealed into a block, with the contract's rejection
// reason and no event.
type TransactionReceipt struct {
	TransactionHash []byte                  //id of the transaction
	BlockNumber     uint64                  //block the transaction was sealed in
	Status          ReceiptStatus           //confirmed or rejected
	Reason          string                  //rejection reason, empty when confirmed
	Event           *contract.VoteCastEvent //decoded VoteCast event, nil when rejected
	Timestamp       int64                   //unix timestamp of the sealing block
}

// LedgerNode is the trusted execution substrate of the voting ledger. It
// accepts signed vote transactions, sequences them into blocks in
// submission order and applies each one atomically to the voting contract.
// Block production here is plain sequencing, there is no proof of work and
// no peer network.
type LedgerNode struct {
	votingContract *contract.VotingContract
	memPool        *MemPool

	batchSize int
	interval  time.Duration

	mux      sync.Mutex
	receipts map[string]*TransactionReceipt
	waiters  map[string][]chan *TransactionReceipt
	nonces   map[common.Address]uint64
	blocks   []*Block

	stopChannel chan bool
	stopOnce    sync.Once
}

func NewLedgerNode(batchSize int, interval time.Duration) *LedgerNode {
	genesis := newBlock(0, time.Now().Unix(), make([]byte, 32), nil)

	return &LedgerNode{
		votingContract: contract.NewVotingContract(),
		memPool:        NewMemPool(),
		batchSize:      batchSize,
		interval:       interval,
		receipts:       make(map[string]*TransactionReceipt),
		waiters:        make(map[string][]chan *TransactionReceipt),
		nonces:         make(map[common.Address]uint64),
		blocks:         []*Block{genesis},
		stopChannel:    make(chan bool),
	}
}

func (node *LedgerNode) Start(wg *sync.WaitGroup) {
	wg.Add(1)
	log.Printf("|LedgerNode| Started sequencer")

	go func() {
		defer wg.Done()

		ticker := time.NewTicker(node.interval)
		defer ticker.Stop()

		for {
			select {
			case <-node.stopChannel:
				// Seal whatever is still pending so accepted
				// transactions are not lost on shutdown.
				for node.memPool.Size() > 0 {
					node.sealBlock()
				}
				return
			case <-ticker.C:
				for node.memPool.Size() > 0 {
					node.sealBlock()
				}
			}
		}
	}()
}

func (node *LedgerNode) Stop() {
	node.stopOnce.Do(func() {
		close(node.stopChannel)
	})
}

// SubmitTransaction verifies and accepts a transaction into the mempool.
// The submitter is recovered from the signature and must present its
// sequence numbers in order. Acceptance is not confirmation, callers wait
// for the receipt.
func (node *LedgerNode) SubmitTransaction(transaction *models.VoteTransaction) error {
	if !bytes.Equal(transaction.Id, transaction.GetTransactionHash()) {
		return fmt.Errorf("transaction id does not match transaction content")
	}

	submitter, err := transaction.Submitter()
	if err != nil {
		return fmt.Errorf("failed to recover transaction submitter: %w", err)
	}

	node.mux.Lock()
	defer node.mux.Unlock()

	if _, sealed := node.receipts[string(transaction.Id)]; sealed {
		return fmt.Errorf("transaction %s was already sealed", transaction.TransactionHashHex())
	}

	if node.memPool.Contains(transaction.Id) {
		return fmt.Errorf("transaction %s is already pending", transaction.TransactionHashHex())
	}

	expectedNonce := node.nonces[submitter]
	if transaction.Nonce != expectedNonce {
		return fmt.Errorf("invalid nonce %d for submitter %s, expected %d", transaction.Nonce, submitter.Hex(), expectedNonce)
	}

	node.nonces[submitter] = expectedNonce + 1
	node.memPool.Insert(transaction)

	return nil
}

// PendingNonce returns the sequence number the submitter must use for its
// next transaction.
func (node *LedgerNode) PendingNonce(submitter common.Address) (uint64, error) {
	node.mux.Lock()
	defer node.mux.Unlock()

	return node.nonces[submitter], nil
}

// WaitForReceipt blocks until the transaction is sealed or ctx is done.
// The wait is channel based, there is no polling.
func (node *LedgerNode) WaitForReceipt(ctx context.Context, transactionHash []byte) (*TransactionReceipt, error) {
	node.mux.Lock()

	if receipt, sealed := node.receipts[string(transactionHash)]; sealed {
		node.mux.Unlock()
		return receipt, nil
	}

	waiter := make(chan *TransactionReceipt, 1)
	node.waiters[string(transactionHash)] = append(node.waiters[string(transactionHash)], waiter)
	node.mux.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case receipt := <-waiter:
		return receipt, nil
	}
}

// GetReceipt returns the receipt for a sealed transaction, nil if the
// transaction is unknown or still pending.
func (node *LedgerNode) GetReceipt(transactionHash []byte) *TransactionReceipt {
	node.mux.Lock()
	defer node.mux.Unlock()

	return node.receipts[string(transactionHash)]
}

func (node *LedgerNode) LatestBlock() *Block {
	node.mux.Lock()
	defer node.mux.Unlock()

	return node.blocks[len(node.blocks)-1]
}

func (node *LedgerNode) GetVoteCount(electionId uint64, candidateId uint32) (uint64, error) {
	return node.votingContract.GetVoteCount(electionId, candidateId), nil
}

func (node *LedgerNode) CheckIfVoted(electionId uint64, voter common.Address) (bool, error) {
	return node.votingContract.CheckIfVoted(electionId, voter), nil
}

func (node *LedgerNode) GetTotalVotes() (uint64, error) {
	return node.votingContract.GetTotalVotes(), nil
}

func (node *LedgerNode) sealBlock() {
	batch := node.memPool.PopBatch(node.batchSize)
	if len(batch) == 0 {
		return
	}

	timestamp := time.Now().Unix()
	receipts := make([]*TransactionReceipt, 0, len(batch))
	transactionIds := make([][]byte, 0, len(batch))

	for _, transaction := range batch {
		transactionIds = append(transactionIds, transaction.Id)

		event, err := node.votingContract.CastVote(transaction.Voter, transaction.ElectionId, transaction.CandidateId, transaction.Timestamp)

		receipt := &TransactionReceipt{
			TransactionHash: transaction.Id,
			Timestamp:       timestamp,
		}

		if err != nil {
			receipt.Status = StatusRejected
			receipt.Reason = err.Error()
		} else {
			receipt.Status = StatusConfirmed
			receipt.Event = event
		}

		receipts = append(receipts, receipt)
	}

	node.mux.Lock()

	previous := node.blocks[len(node.blocks)-1]
	block := newBlock(previous.Number+1, timestamp, previous.Hash, transactionIds)
	node.blocks = append(node.blocks, block)

	for _, receipt := range receipts {
		receipt.BlockNumber = block.Number
		node.receipts[string(receipt.TransactionHash)] = receipt

		for _, waiter := range node.waiters[string(receipt.TransactionHash)] {
			waiter <- receipt
		}
		delete(node.waiters, string(receipt.TransactionHash))
	}

	node.mux.Unlock()

	log.Printf("|LedgerNode| Sealed block %d with %d transactions", block.Number, len(batch))
}
