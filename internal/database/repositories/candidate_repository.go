package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	db_models "github.com/votechain/VotingLedger/internal/database/models"
	mapping "github.com/votechain/VotingLedger/internal/mapping"
	models "github.com/votechain/VotingLedger/internal/models"
)

type CandidateRepository interface {
	ResolveCandidate(electionId uuid.UUID, candidateId uint32) (*models.Candidate, error)
	GetElectionCandidates(electionId uuid.UUID) ([]*models.Candidate, error)
	InsertCandidate(candidate *models.Candidate) error
	NextCandidateId(electionId uuid.UUID) (uint32, error)
}

type CandidateRepositoryImpl struct {
	db *gorm.DB
}

var GlobalCandidateRepository CandidateRepository

func InitializeGlobalCandidateRepository(db *gorm.DB) error {
	if GlobalCandidateRepository != nil {
		return nil
	}

	GlobalCandidateRepository = NewCandidateRepositoryImpl(db)
	return nil
}

func NewCandidateRepositoryImpl(db *gorm.DB) *CandidateRepositoryImpl {
	return &CandidateRepositoryImpl{db: db}
}

// ResolveCandidate returns the candidate with the given per-election id,
// nil if the (election, candidate) pair does not resolve.
func (repo *CandidateRepositoryImpl) ResolveCandidate(electionId uuid.UUID, candidateId uint32) (*models.Candidate, error) {
	var candidateDB db_models.CandidateDB
	result := repo.db.
		Where("election_id = ? AND candidate_id = ?", electionId.String(), candidateId).
		First(&candidateDB)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return mapping.CandidateDBToCandidate(&candidateDB)
}

// GetElectionCandidates returns the candidates of an election in creation
// order. Creation order is the documented tie-break order of results.
func (repo *CandidateRepositoryImpl) GetElectionCandidates(electionId uuid.UUID) ([]*models.Candidate, error) {
	var candidatesDB []db_models.CandidateDB
	result := repo.db.
		Where("election_id = ?", electionId.String()).
		Order("id ASC").
		Find(&candidatesDB)

	if result.Error != nil {
		return nil, result.Error
	}

	candidates := make([]*models.Candidate, len(candidatesDB))

	for idx, candidateDB := range candidatesDB {
		candidate, err := mapping.CandidateDBToCandidate(&candidateDB)
		if err != nil {
			return nil, err
		}

		candidates[idx] = candidate
	}

	return candidates, nil
}

func (repo *CandidateRepositoryImpl) InsertCandidate(candidate *models.Candidate) error {
	candidateDB := mapping.CandidateToCandidateDB(candidate)
	return repo.db.Create(candidateDB).Error
}

// NextCandidateId returns the next free per-election candidate id,
// starting at 1.
func (repo *CandidateRepositoryImpl) NextCandidateId(electionId uuid.UUID) (uint32, error) {
	var maxId uint32
	result := repo.db.Model(&db_models.CandidateDB{}).
		Where("election_id = ?", electionId.String()).
		Select("COALESCE(MAX(candidate_id), 0)").
		Scan(&maxId)

	if result.Error != nil {
		return 0, result.Error
	}

	return maxId + 1, nil
}
