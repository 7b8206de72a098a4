package contract

import (
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// ErrAlreadyVoted is the contract's rejection of a second cast by the same
// voter identity in the same election. This check is the single source of
// truth for the at-most-once invariant, the off-chain pre-check in the
// mediator is only a fast path.
var ErrAlreadyVoted = errors.New("voter has already cast a vote in this election")

type VoteCastEvent struct {
	ElectionId  uint64         //projected election id the vote was cast in
	CandidateId uint32         //candidate the vote was cast for
	Voter       common.Address //voter identity the vote was recorded for
	Timestamp   int64          //unix timestamp carried by the transaction
}

type countKey struct {
	electionId  uint64
	candidateId uint32
}

type votedKey struct {
	electionId uint64
	voter      common.Address
}

// VotingContract holds the on-chain vote state. It exclusively owns the
// per-(election, candidate) counters and the per-(election, voter) voted
// flags. The precondition check and the state transition of CastVote happen
// atomically under the mutex.
type VotingContract struct {
	mux sync.RWMutex

	voteCounts map[countKey]uint64
	hasVoted   map[votedKey]bool
	totalVotes uint64
}

func NewVotingContract() *VotingContract {
	return &VotingContract{
		voteCounts: make(map[countKey]uint64),
		hasVoted:   make(map[votedKey]bool),
	}
}

// CastVote applies a single vote. When the voter already has a vote in the
// election it returns ErrAlreadyVoted with state untouched and no event.
// A successful cast sets the voted flag, increments the candidate counter
// and the global counter, and returns the VoteCast event.
//
// Candidate existence is deliberately not validated here, referential
// correctness is the mediator's responsibility.
func (c *VotingContract) CastVote(voter common.Address, electionId uint64, candidateId uint32, timestamp int64) (*VoteCastEvent, error) {
	c.mux.Lock()
	defer c.mux.Unlock()

	vk := votedKey{electionId: electionId, voter: voter}
	if c.hasVoted[vk] {
		return nil, ErrAlreadyVoted
	}

	c.hasVoted[vk] = true
	c.voteCounts[countKey{electionId: electionId, candidateId: candidateId}]++
	c.totalVotes++

	return &VoteCastEvent{
		ElectionId:  electionId,
		CandidateId: candidateId,
		Voter:       voter,
		Timestamp:   timestamp,
	}, nil
}

// GetVoteCount returns the current counter for the candidate, 0 if the
// candidate never received a vote.
func (c *VotingContract) GetVoteCount(electionId uint64, candidateId uint32) uint64 {
	c.mux.RLock()
	defer c.mux.RUnlock()

	return c.voteCounts[countKey{electionId: electionId, candidateId: candidateId}]
}

func (c *VotingContract) CheckIfVoted(electionId uint64, voter common.Address) bool {
	c.mux.RLock()
	defer c.mux.RUnlock()

	return c.hasVoted[votedKey{electionId: electionId, voter: voter}]
}

// GetTotalVotes returns the global counter across all elections.
func (c *VotingContract) GetTotalVotes() uint64 {
	c.mux.RLock()
	defer c.mux.RUnlock()

	return c.totalVotes
}
