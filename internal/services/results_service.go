package services

import (
	"sort"

	"github.com/google/uuid"

	repositories "github.com/votechain/VotingLedger/internal/database/repositories"
	client "github.com/votechain/VotingLedger/internal/ledger/client"
	models "github.com/votechain/VotingLedger/internal/models"
)

type CandidateResult struct {
	CandidateId uint32
	Name        string
	Party       string
	Votes       uint64
}

type ElectionResults struct {
	ElectionId       uuid.UUID
	ResultsPublished bool
	Results          []*CandidateResult
}

type ResultsService interface {
	GetResults(electionId uuid.UUID, requester *models.User) (*ElectionResults, error)
}

// ResultsServiceImpl reads per-candidate counts from the ledger and ranks
// them. Tallies of unpublished elections are only disclosed to admins.
type ResultsServiceImpl struct {
	electionRepository  repositories.ElectionRepository
	candidateRepository repositories.CandidateRepository
	ledgerClient        client.LedgerClient
}

func NewResultsServiceImpl(
	electionRepository repositories.ElectionRepository,
	candidateRepository repositories.CandidateRepository,
	ledgerClient client.LedgerClient,
) *ResultsServiceImpl {
	return &ResultsServiceImpl{
		electionRepository:  electionRepository,
		candidateRepository: candidateRepository,
		ledgerClient:        ledgerClient,
	}
}

// GetResults assembles the ranked result set of an election. Results are
// sorted descending by votes, ties keep candidate creation order (the sort
// is stable over the creation-ordered candidate list), which makes the
// displayed winner deterministic. If any per-candidate ledger query fails
// the whole aggregation fails, there are no partial results.
func (service *ResultsServiceImpl) GetResults(electionId uuid.UUID, requester *models.User) (*ElectionResults, error) {
	election, err := service.electionRepository.GetElection(electionId)
	if err != nil {
		return nil, err
	}

	if election == nil {
		return nil, NewVoteError(ErrorNotFound, ReasonElectionNotFound, "election not found")
	}

	if !election.ResultsPublished && (requester == nil || requester.Role != models.RoleAdmin) {
		return nil, NewVoteError(ErrorForbidden, ReasonResultsNotPublished, "results have not been published yet")
	}

	candidates, err := service.candidateRepository.GetElectionCandidates(electionId)
	if err != nil {
		return nil, err
	}

	results := make([]*CandidateResult, 0, len(candidates))

	for _, candidate := range candidates {
		votes, err := service.ledgerClient.FetchVoteCount(electionId, candidate.CandidateId)
		if err != nil {
			return nil, err
		}

		results = append(results, &CandidateResult{
			CandidateId: candidate.CandidateId,
			Name:        candidate.Name,
			Party:       candidate.Party,
			Votes:       votes,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Votes > results[j].Votes
	})

	return &ElectionResults{
		ElectionId:       electionId,
		ResultsPublished: election.ResultsPublished,
		Results:          results,
	}, nil
}
