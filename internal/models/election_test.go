package models_test

import (
	"testing"
	"time"

	"github.com/votechain/VotingLedger/internal/models"
)

func getTestElection(start time.Time, end time.Time, isActive bool) *models.Election {
	return &models.Election{
		Title:     "General Election",
		StartTime: start,
		EndTime:   end,
		IsActive:  isActive,
	}
}

func TestElectionStatus(t *testing.T) {
	now := time.Now()

	upcoming := getTestElection(now.Add(time.Hour), now.Add(2*time.Hour), true)
	if upcoming.Status(now) != models.ElectionStatusUpcoming {
		t.Fatalf("expected upcoming, got %s", upcoming.Status(now))
	}

	active := getTestElection(now.Add(-time.Hour), now.Add(time.Hour), true)
	if active.Status(now) != models.ElectionStatusActive {
		t.Fatalf("expected active, got %s", active.Status(now))
	}

	ended := getTestElection(now.Add(-2*time.Hour), now.Add(-time.Hour), true)
	if ended.Status(now) != models.ElectionStatusEnded {
		t.Fatalf("expected ended, got %s", ended.Status(now))
	}

	deactivated := getTestElection(now.Add(-time.Hour), now.Add(time.Hour), false)
	if deactivated.Status(now) != models.ElectionStatusInactive {
		t.Fatalf("deactivation must win over the voting window")
	}
}

func TestElectionInVotingWindow(t *testing.T) {
	now := time.Now()
	election := getTestElection(now.Add(-time.Hour), now.Add(time.Hour), true)

	if !election.InVotingWindow(now) {
		t.Fatalf("expected now to be inside the voting window")
	}

	if !election.InVotingWindow(election.StartTime) {
		t.Fatalf("window must include its start")
	}

	if !election.InVotingWindow(election.EndTime) {
		t.Fatalf("window must include its end")
	}

	if election.InVotingWindow(now.Add(2 * time.Hour)) {
		t.Fatalf("expected time past the end to be outside the window")
	}
}
