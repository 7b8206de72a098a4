package models

import (
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ElectionId  uuid.UUID //election the candidate runs in
	CandidateId uint32    //small positive integer, unique within the election, assigned at creation
	Name        string    //name of the candidate
	Party       string    //party of the candidate
	Manifesto   string    //optional manifesto text
	CreatedAt   time.Time //time of creation, determines tie-break order in results
}
