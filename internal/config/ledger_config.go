package config

import (
	"crypto/ecdsa"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"gopkg.in/yaml.v2"
)

type LedgerConfig struct {
	SigningKey          *ecdsa.PrivateKey //funded identity that submits every vote transaction
	ConfirmationTimeout uint32            //seconds to wait for a transaction to be sealed
	BatchSize           int               //maximum transactions sealed per block
	SequencerInterval   uint32            //milliseconds between sequencer passes
}

func (l *LedgerConfig) UnmarshalYAML(unmarshal func(any) error) error {
	var raw struct {
		SigningKey          string `yaml:"signing-key"`
		ConfirmationTimeout uint32 `yaml:"confirmation-timeout"`
		BatchSize           int    `yaml:"batch-size"`
		SequencerInterval   uint32 `yaml:"sequencer-interval"`
	}

	if err := unmarshal(&raw); err != nil {
		return err
	}

	signingKey, err := crypto.HexToECDSA(raw.SigningKey)
	if err != nil {
		return &yaml.TypeError{Errors: []string{"invalid ledger signing key"}}
	}

	l.SigningKey = signingKey
	l.ConfirmationTimeout = raw.ConfirmationTimeout
	l.BatchSize = raw.BatchSize
	l.SequencerInterval = raw.SequencerInterval

	return nil
}

func (l *LedgerConfig) ConfirmationTimeoutDuration() time.Duration {
	return time.Duration(l.ConfirmationTimeout) * time.Second
}

func (l *LedgerConfig) SequencerIntervalDuration() time.Duration {
	return time.Duration(l.SequencerInterval) * time.Millisecond
}
