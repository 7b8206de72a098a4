package models

import (
	"time"

	"github.com/google/uuid"
)

type ElectionStatus string

const (
	ElectionStatusInactive ElectionStatus = "inactive"
	ElectionStatusUpcoming ElectionStatus = "upcoming"
	ElectionStatusActive   ElectionStatus = "active"
	ElectionStatusEnded    ElectionStatus = "ended"
)

type Election struct {
	Id               uuid.UUID //wide off-chain identifier of the election
	Title            string    //title of the election
	Description      string    //description of the election
	StartTime        time.Time //start of the voting window
	EndTime          time.Time //end of the voting window
	CreatedBy        uuid.UUID //id of the admin that created the election
	IsActive         bool      //false once the election is administratively deactivated
	ResultsPublished bool      //true once an admin publishes the tally
	CreatedAt        time.Time //time of creation
}

// Status reports the election state at the given time. Deactivation wins
// over the voting window.
func (election *Election) Status(now time.Time) ElectionStatus {
	if !election.IsActive {
		return ElectionStatusInactive
	}

	if now.Before(election.StartTime) {
		return ElectionStatusUpcoming
	}

	if now.After(election.EndTime) {
		return ElectionStatusEnded
	}

	return ElectionStatusActive
}

// InVotingWindow reports whether now is within [StartTime, EndTime].
func (election *Election) InVotingWindow(now time.Time) bool {
	return !now.Before(election.StartTime) && !now.After(election.EndTime)
}
