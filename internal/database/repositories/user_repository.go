package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	db_models "github.com/votechain/VotingLedger/internal/database/models"
	mapping "github.com/votechain/VotingLedger/internal/mapping"
	models "github.com/votechain/VotingLedger/internal/models"
)

type UserRepository interface {
	GetUser(userId uuid.UUID) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	InsertUser(user *models.User) error
	SetVerified(userId uuid.UUID, isVerified bool) error
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

var GlobalUserRepository UserRepository

func InitializeGlobalUserRepository(db *gorm.DB) error {
	if GlobalUserRepository != nil {
		return nil
	}

	GlobalUserRepository = NewUserRepositoryImpl(db)
	return nil
}

func NewUserRepositoryImpl(db *gorm.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

// GetUser returns the user with the given id, nil if no such user exists.
func (repo *UserRepositoryImpl) GetUser(userId uuid.UUID) (*models.User, error) {
	var userDB db_models.UserDB
	result := repo.db.Where("id = ?", userId.String()).First(&userDB)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return mapping.UserDBToUser(&userDB)
}

func (repo *UserRepositoryImpl) GetUserByEmail(email string) (*models.User, error) {
	var userDB db_models.UserDB
	result := repo.db.Where("email = ?", email).First(&userDB)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return mapping.UserDBToUser(&userDB)
}

func (repo *UserRepositoryImpl) InsertUser(user *models.User) error {
	userDB := mapping.UserToUserDB(user)
	return repo.db.Create(userDB).Error
}

func (repo *UserRepositoryImpl) SetVerified(userId uuid.UUID, isVerified bool) error {
	result := repo.db.Model(&db_models.UserDB{}).
		Where("id = ?", userId.String()).
		Update("is_verified", isVerified)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
