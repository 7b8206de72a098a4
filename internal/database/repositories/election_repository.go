package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	db_models "github.com/votechain/VotingLedger/internal/database/models"
	mapping "github.com/votechain/VotingLedger/internal/mapping"
	models "github.com/votechain/VotingLedger/internal/models"
)

type ElectionRepository interface {
	GetElection(electionId uuid.UUID) (*models.Election, error)
	GetElections() ([]*models.Election, error)
	InsertElection(election *models.Election) error
	SetActive(electionId uuid.UUID, isActive bool) error
	SetResultsPublished(electionId uuid.UUID, published bool) error
}

type ElectionRepositoryImpl struct {
	db *gorm.DB
}

var GlobalElectionRepository ElectionRepository

func InitializeGlobalElectionRepository(db *gorm.DB) error {
	if GlobalElectionRepository != nil {
		return nil
	}

	GlobalElectionRepository = NewElectionRepositoryImpl(db)
	return nil
}

func NewElectionRepositoryImpl(db *gorm.DB) *ElectionRepositoryImpl {
	return &ElectionRepositoryImpl{db: db}
}

// GetElection returns the election with the given id, nil if no such
// election exists.
func (repo *ElectionRepositoryImpl) GetElection(electionId uuid.UUID) (*models.Election, error) {
	var electionDB db_models.ElectionDB
	result := repo.db.Where("id = ?", electionId.String()).First(&electionDB)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return mapping.ElectionDBToElection(&electionDB)
}

func (repo *ElectionRepositoryImpl) GetElections() ([]*models.Election, error) {
	var electionsDB []db_models.ElectionDB
	result := repo.db.Order("created_at ASC").Find(&electionsDB)

	if result.Error != nil {
		return nil, result.Error
	}

	elections := make([]*models.Election, len(electionsDB))

	for idx, electionDB := range electionsDB {
		election, err := mapping.ElectionDBToElection(&electionDB)
		if err != nil {
			return nil, err
		}

		elections[idx] = election
	}

	return elections, nil
}

func (repo *ElectionRepositoryImpl) InsertElection(election *models.Election) error {
	electionDB := mapping.ElectionToElectionDB(election)
	return repo.db.Create(electionDB).Error
}

func (repo *ElectionRepositoryImpl) SetActive(electionId uuid.UUID, isActive bool) error {
	return repo.updateElection(electionId, "is_active", isActive)
}

func (repo *ElectionRepositoryImpl) SetResultsPublished(electionId uuid.UUID, published bool) error {
	return repo.updateElection(electionId, "results_published", published)
}

func (repo *ElectionRepositoryImpl) updateElection(electionId uuid.UUID, column string, value any) error {
	result := repo.db.Model(&db_models.ElectionDB{}).
		Where("id = ?", electionId.String()).
		Update(column, value)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
