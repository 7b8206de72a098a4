package merkle

import (
	"bytes"

	"github.com/votechain/VotingLedger/internal/crypto/hash"
)

type ProofItem struct {
	Hash   []byte
	IsLeft bool
}

type MerkleProof struct {
	Items []ProofItem
}

// CalculateMerkleRoot builds the merkle root over the given leaf hashes.
// An odd level duplicates its last hash. Returns nil for an empty input.
func CalculateMerkleRoot(leafHashes [][]byte) []byte {
	if len(leafHashes) == 0 {
		return nil
	}

	hashes := make([][]byte, len(leafHashes))
	copy(hashes, leafHashes)

	for len(hashes) > 1 {
		if len(hashes)%2 != 0 {
			hashes = append(hashes, hashes[len(hashes)-1])
		}

		var newLevel [][]byte
		for i := 0; i < len(hashes); i += 2 {
			newLevel = append(newLevel, hash.HashPair(hashes[i], hashes[i+1]))
		}

		hashes = newLevel
	}

	return hashes[0]
}

// GenerateMerkleProof returns the inclusion proof for target within leafHashes.
// The second return value is false when target is not a leaf.
func GenerateMerkleProof(leafHashes [][]byte, target []byte) (*MerkleProof, bool) {
	index := -1
	hashes := make([][]byte, len(leafHashes))
	copy(hashes, leafHashes)

	for i, h := range hashes {
		if bytes.Equal(h, target) {
			index = i
			break
		}
	}

	if index == -1 {
		return nil, false
	}

	var proofItems []ProofItem

	for len(hashes) > 1 {
		if len(hashes)%2 != 0 {
			hashes = append(hashes, hashes[len(hashes)-1])
		}

		sibling := index ^ 1
		proofItems = append(proofItems, ProofItem{
			Hash:   hashes[sibling],
			IsLeft: sibling < index,
		})

		var newLevel [][]byte
		for i := 0; i < len(hashes); i += 2 {
			newLevel = append(newLevel, hash.HashPair(hashes[i], hashes[i+1]))
		}

		hashes = newLevel
		index = index / 2
	}

	return &MerkleProof{Items: proofItems}, true
}

// VerifyMerkleProof folds the proof over target and compares against root.
func VerifyMerkleProof(root []byte, target []byte, proof *MerkleProof) bool {
	current := target

	for _, item := range proof.Items {
		if item.IsLeft {
			current = hash.HashPair(item.Hash, current)
		} else {
			current = hash.HashPair(current, item.Hash)
		}
	}

	return bytes.Equal(root, current)
}
