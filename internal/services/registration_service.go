package services

import (
	"log"
	"time"

	"github.com/google/uuid"

	repositories "github.com/votechain/VotingLedger/internal/database/repositories"
	identity "github.com/votechain/VotingLedger/internal/identity"
	models "github.com/votechain/VotingLedger/internal/models"
)

type RegistrationService interface {
	RegisterVoter(name string, email string, dateOfBirth time.Time, idDocument string) (*models.User, error)
	VerifyVoter(adminId uuid.UUID, userId uuid.UUID) error
}

// RegistrationServiceImpl creates users and their ledger voter identities.
// A voter identity is assigned exactly once at registration and is never
// rotated afterwards.
type RegistrationServiceImpl struct {
	userRepository repositories.UserRepository
}

func NewRegistrationServiceImpl(userRepository repositories.UserRepository) *RegistrationServiceImpl {
	return &RegistrationServiceImpl{userRepository: userRepository}
}

func (service *RegistrationServiceImpl) RegisterVoter(name string, email string, dateOfBirth time.Time, idDocument string) (*models.User, error) {
	voterIdentity, err := identity.GenerateVoterIdentity()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Id:           uuid.New(),
		Name:         name,
		Email:        email,
		Role:         models.RoleVoter,
		IsVerified:   false,
		VoterAddress: voterIdentity.Address,
		DateOfBirth:  dateOfBirth,
		IdDocument:   idDocument,
		CreatedAt:    time.Now(),
	}

	err = service.userRepository.InsertUser(user)
	if err != nil {
		return nil, err
	}

	log.Printf("|RegistrationService| Registered voter %s with identity %s", user.Id, user.VoterAddress.Hex())

	return user, nil
}

// VerifyVoter marks a user verified. Only admins may verify.
func (service *RegistrationServiceImpl) VerifyVoter(adminId uuid.UUID, userId uuid.UUID) error {
	admin, err := service.userRepository.GetUser(adminId)
	if err != nil {
		return err
	}

	if admin == nil || admin.Role != models.RoleAdmin {
		return NewVoteError(ErrorForbidden, ReasonNotAuthorized, "only admins can verify voters")
	}

	return service.userRepository.SetVerified(userId, true)
}
