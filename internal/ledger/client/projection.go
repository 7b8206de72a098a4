package client

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/votechain/VotingLedger/internal/crypto/hash"
)

// The ledger addresses elections by a fixed-width integer while the
// off-chain store uses wide UUID identifiers, so election ids are projected
// down by reducing a fragment of their digest modulo this bound.
const projectionModulus = 1_000_000

// ProjectElectionId deterministically narrows a wide election id into the
// ledger's integer domain. The same wide id always yields the same narrow
// id. The mapping is lossy: with ~1e6 slots, collisions between distinct
// elections become likely past a few thousand of them (birthday bound), and
// no collision handling is attempted.
func ProjectElectionId(electionId uuid.UUID) uint64 {
	digest := hash.HashBytes(electionId[:])
	fragment := binary.BigEndian.Uint32(digest[len(digest)-4:])

	return uint64(fragment % projectionModulus)
}
