package node

import (
	"sync"

	models "github.com/votechain/VotingLedger/internal/models"
)

// MemPool holds submitted transactions awaiting sealing, in submission
// order. The sequencer drains it in FIFO order so transactions are applied
// in the order the node accepted them.
type MemPool struct {
	mux          sync.Mutex
	transactions map[string]*models.VoteTransaction
	order        [][]byte
}

func NewMemPool() *MemPool {
	return &MemPool{
		transactions: make(map[string]*models.VoteTransaction),
	}
}

func (memPool *MemPool) Insert(transaction *models.VoteTransaction) {
	memPool.mux.Lock()
	defer memPool.mux.Unlock()

	key := string(transaction.Id)
	if _, exists := memPool.transactions[key]; exists {
		return
	}

	memPool.transactions[key] = transaction
	memPool.order = append(memPool.order, transaction.Id)
}

func (memPool *MemPool) Contains(transactionId []byte) bool {
	memPool.mux.Lock()
	defer memPool.mux.Unlock()

	_, exists := memPool.transactions[string(transactionId)]
	return exists
}

func (memPool *MemPool) Size() int {
	memPool.mux.Lock()
	defer memPool.mux.Unlock()

	return len(memPool.transactions)
}

// PopBatch removes and returns up to limit transactions in submission order.
func (memPool *MemPool) PopBatch(limit int) []*models.VoteTransaction {
	memPool.mux.Lock()
	defer memPool.mux.Unlock()

	if limit > len(memPool.order) {
		limit = len(memPool.order)
	}

	batch := make([]*models.VoteTransaction, 0, limit)

	for _, id := range memPool.order[:limit] {
		batch = append(batch, memPool.transactions[string(id)])
		delete(memPool.transactions, string(id))
	}

	memPool.order = memPool.order[limit:]

	return batch
}
