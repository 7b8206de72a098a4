package models

import (
	"crypto/ecdsa"
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// VoteTransaction is the wire form of a single cast on the ledger. The
// submitter (the mediating service's funded identity) signs the id; the
// voter identity rides in the payload because one shared identity submits
// votes on behalf of all voters.
type VoteTransaction struct {
	Id          []byte         //keccak256 of (ElectionId, CandidateId, Voter, Nonce, Timestamp), 32 bytes
	ElectionId  uint64         //projected election id, 8 bytes
	CandidateId uint32         //id of candidate to vote for, 4 bytes
	Voter       common.Address //voter identity the vote is cast for, 20 bytes
	Nonce       uint64         //submitter sequence number, 8 bytes
	Timestamp   int64          //unix timestamp of cast, 8 bytes
	Signature   []byte         //submitter signature of Id, 65 bytes, [R || S || V] format
}

func (transaction *VoteTransaction) GetTransactionHash() []byte {
	buf := make([]byte, 8+4+common.AddressLength+8+8)

	binary.BigEndian.PutUint64(buf[0:8], transaction.ElectionId)
	binary.BigEndian.PutUint32(buf[8:12], transaction.CandidateId)
	copy(buf[12:12+common.AddressLength], transaction.Voter.Bytes())
	binary.BigEndian.PutUint64(buf[32:40], transaction.Nonce)
	binary.BigEndian.PutUint64(buf[40:48], uint64(transaction.Timestamp))

	return crypto.Keccak256(buf)
}

func (transaction *VoteTransaction) SetId() {
	transaction.Id = transaction.GetTransactionHash()
}

func (transaction *VoteTransaction) Sign(privateKey *ecdsa.PrivateKey) error {
	if len(transaction.Id) != 32 {
		return fmt.Errorf("transaction id must be set before signing")
	}

	signature, err := crypto.Sign(transaction.Id, privateKey)
	if err != nil {
		return err
	}

	transaction.Signature = signature
	return nil
}

// Submitter recovers the address of the identity that signed the transaction.
func (transaction *VoteTransaction) Submitter() (common.Address, error) {
	if len(transaction.Id) != 32 {
		return common.Address{}, fmt.Errorf("transaction id is not set")
	}

	publicKey, err := crypto.SigToPub(transaction.Id, transaction.Signature)
	if err != nil {
		return common.Address{}, err
	}

	return crypto.PubkeyToAddress(*publicKey), nil
}

func (transaction *VoteTransaction) TransactionHashHex() string {
	return hexutil.Encode(transaction.Id)
}
