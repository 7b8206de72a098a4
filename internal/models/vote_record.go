package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// VoteRecord is the off-chain receipt tying a (user, election) pair to a
// confirmed ledger transaction. Created exactly once per successful cast,
// never mutated. At most one record exists per (user, election) pair.
type VoteRecord struct {
	UserId          uuid.UUID      //user that cast the vote
	ElectionId      uuid.UUID      //election the vote was cast in
	VoterAddress    common.Address //voter identity the vote was recorded for on the ledger
	TransactionHash string         //hex encoded hash of the confirmed ledger transaction
	BlockNumber     uint64         //number of the block the transaction was sealed in
	Timestamp       time.Time      //time of confirmation
}
