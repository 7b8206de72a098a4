package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	db_models "github.com/votechain/VotingLedger/internal/database/models"
	mapping "github.com/votechain/VotingLedger/internal/mapping"
	models "github.com/votechain/VotingLedger/internal/models"
)

type VoteRecordRepository interface {
	FindVoteRecord(userId uuid.UUID, electionId uuid.UUID) (*models.VoteRecord, error)
	InsertVoteRecord(voteRecord *models.VoteRecord) error
	CountVoteRecords(electionId uuid.UUID) (int64, error)
}

type VoteRecordRepositoryImpl struct {
	db *gorm.DB
}

var GlobalVoteRecordRepository VoteRecordRepository

func InitializeGlobalVoteRecordRepository(db *gorm.DB) error {
	if GlobalVoteRecordRepository != nil {
		return nil
	}

	GlobalVoteRecordRepository = NewVoteRecordRepositoryImpl(db)
	return nil
}

func NewVoteRecordRepositoryImpl(db *gorm.DB) *VoteRecordRepositoryImpl {
	return &VoteRecordRepositoryImpl{db: db}
}

// FindVoteRecord returns the receipt for the (user, election) pair, nil if
// the user has no recorded vote in the election.
func (repo *VoteRecordRepositoryImpl) FindVoteRecord(userId uuid.UUID, electionId uuid.UUID) (*models.VoteRecord, error) {
	var voteRecordDB db_models.VoteRecordDB
	result := repo.db.
		Where("user_id = ? AND election_id = ?", userId.String(), electionId.String()).
		First(&voteRecordDB)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return mapping.VoteRecordDBToVoteRecord(&voteRecordDB)
}

// InsertVoteRecord inserts the receipt. A gorm.ErrDuplicatedKey error means
// a receipt for the (user, election) pair already exists.
func (repo *VoteRecordRepositoryImpl) InsertVoteRecord(voteRecord *models.VoteRecord) error {
	voteRecordDB := mapping.VoteRecordToVoteRecordDB(voteRecord)
	return repo.db.Create(voteRecordDB).Error
}

func (repo *VoteRecordRepositoryImpl) CountVoteRecords(electionId uuid.UUID) (int64, error) {
	var count int64
	result := repo.db.Model(&db_models.VoteRecordDB{}).
		Where("election_id = ?", electionId.String()).
		Count(&count)

	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
