package identity

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// VoterIdentity is the ledger credential of a single user. It is generated
// once at registration and never reassigned or rotated. The private key is
// returned to the caller for safekeeping, only the address is stored.
type VoterIdentity struct {
	Address    common.Address
	PrivateKey *ecdsa.PrivateKey
}

func GenerateVoterIdentity() (*VoterIdentity, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}

	return &VoterIdentity{
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		PrivateKey: privateKey,
	}, nil
}
