package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

type UserRole string

const (
	RoleVoter UserRole = "voter"
	RoleAdmin UserRole = "admin"
)

type User struct {
	Id           uuid.UUID      //wide off-chain identifier of the user
	Name         string         //full name of the user
	Email        string         //email of the user, unique
	Role         UserRole       //voter or admin
	IsVerified   bool           //set by an admin after reviewing the id document
	VoterAddress common.Address //ledger voter identity, assigned once at registration, never rotated
	DateOfBirth  time.Time      //date of birth of the user
	IdDocument   string         //path to the id document reviewed during verification
	CreatedAt    time.Time      //time of registration
}
