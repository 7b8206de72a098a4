package node

import (
	"bytes"
	"encoding/binary"

	"github.com/votechain/VotingLedger/internal/crypto/hash"
	"github.com/votechain/VotingLedger/internal/crypto/merkle"
)

type Block struct {
	Number         uint64   //monotonically increasing block number, genesis is 0
	Timestamp      int64    //unix timestamp of sealing
	PreviousHash   []byte   //hash of the previous block, 32 bytes
	MerkleRoot     []byte   //merkle root over the transaction ids, nil for an empty block
	Hash           []byte   //hash of (Number, Timestamp, PreviousHash, MerkleRoot), 32 bytes
	TransactionIds [][]byte //ids of the sealed transactions in application order
}

func (block *Block) GetHash() []byte {
	buf := new(bytes.Buffer)

	binary.Write(buf, binary.BigEndian, block.Number)
	binary.Write(buf, binary.BigEndian, block.Timestamp)
	buf.Write(block.PreviousHash)
	buf.Write(block.MerkleRoot)

	return hash.HashBytes(buf.Bytes())
}

func (block *Block) SetHash() {
	block.Hash = block.GetHash()
}

func newBlock(number uint64, timestamp int64, previousHash []byte, transactionIds [][]byte) *Block {
	block := &Block{
		Number:         number,
		Timestamp:      timestamp,
		PreviousHash:   previousHash,
		MerkleRoot:     merkle.CalculateMerkleRoot(transactionIds),
		TransactionIds: transactionIds,
	}

	block.SetHash()

	return block
}
