package mapping

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	db_models "github.com/votechain/VotingLedger/internal/database/models"
	models "github.com/votechain/VotingLedger/internal/models"
)

func UserToUserDB(user *models.User) *db_models.UserDB {
	return &db_models.UserDB{
		Id:           user.Id.String(),
		Name:         user.Name,
		Email:        user.Email,
		Role:         string(user.Role),
		IsVerified:   user.IsVerified,
		VoterAddress: user.VoterAddress.Hex(),
		DateOfBirth:  user.DateOfBirth.Unix(),
		IdDocument:   user.IdDocument,
		CreatedAt:    user.CreatedAt.Unix(),
	}
}

func UserDBToUser(userDB *db_models.UserDB) (*models.User, error) {
	id, err := uuid.Parse(userDB.Id)
	if err != nil {
		return nil, err
	}

	return &models.User{
		Id:           id,
		Name:         userDB.Name,
		Email:        userDB.Email,
		Role:         models.UserRole(userDB.Role),
		IsVerified:   userDB.IsVerified,
		VoterAddress: common.HexToAddress(userDB.VoterAddress),
		DateOfBirth:  time.Unix(userDB.DateOfBirth, 0),
		IdDocument:   userDB.IdDocument,
		CreatedAt:    time.Unix(userDB.CreatedAt, 0),
	}, nil
}

func ElectionToElectionDB(election *models.Election) *db_models.ElectionDB {
	return &db_models.ElectionDB{
		Id:               election.Id.String(),
		Title:            election.Title,
		Description:      election.Description,
		StartTimestamp:   election.StartTime.Unix(),
		EndTimestamp:     election.EndTime.Unix(),
		CreatedBy:        election.CreatedBy.String(),
		IsActive:         election.IsActive,
		ResultsPublished: election.ResultsPublished,
		CreatedAt:        election.CreatedAt.Unix(),
	}
}

func ElectionDBToElection(electionDB *db_models.ElectionDB) (*models.Election, error) {
	id, err := uuid.Parse(electionDB.Id)
	if err != nil {
		return nil, err
	}

	createdBy, err := uuid.Parse(electionDB.CreatedBy)
	if err != nil {
		return nil, err
	}

	return &models.Election{
		Id:               id,
		Title:            electionDB.Title,
		Description:      electionDB.Description,
		StartTime:        time.Unix(electionDB.StartTimestamp, 0),
		EndTime:          time.Unix(electionDB.EndTimestamp, 0),
		CreatedBy:        createdBy,
		IsActive:         electionDB.IsActive,
		ResultsPublished: electionDB.ResultsPublished,
		CreatedAt:        time.Unix(electionDB.CreatedAt, 0),
	}, nil
}

func CandidateToCandidateDB(candidate *models.Candidate) *db_models.CandidateDB {
	return &db_models.CandidateDB{
		ElectionId:  candidate.ElectionId.String(),
		CandidateId: candidate.CandidateId,
		Name:        candidate.Name,
		Party:       candidate.Party,
		Manifesto:   candidate.Manifesto,
		CreatedAt:   candidate.CreatedAt.Unix(),
	}
}

func CandidateDBToCandidate(candidateDB *db_models.CandidateDB) (*models.Candidate, error) {
	electionId, err := uuid.Parse(candidateDB.ElectionId)
	if err != nil {
		return nil, err
	}

	return &models.Candidate{
		ElectionId:  electionId,
		CandidateId: candidateDB.CandidateId,
		Name:        candidateDB.Name,
		Party:       candidateDB.Party,
		Manifesto:   candidateDB.Manifesto,
		CreatedAt:   time.Unix(candidateDB.CreatedAt, 0),
	}, nil
}

func VoteRecordToVoteRecordDB(voteRecord *models.VoteRecord) *db_models.VoteRecordDB {
	return &db_models.VoteRecordDB{
		UserId:          voteRecord.UserId.String(),
		ElectionId:      voteRecord.ElectionId.String(),
		VoterAddress:    voteRecord.VoterAddress.Hex(),
		TransactionHash: voteRecord.TransactionHash,
		BlockNumber:     voteRecord.BlockNumber,
		Timestamp:       voteRecord.Timestamp.Unix(),
	}
}

func VoteRecordDBToVoteRecord(voteRecordDB *db_models.VoteRecordDB) (*models.VoteRecord, error) {
	userId, err := uuid.Parse(voteRecordDB.UserId)
	if err != nil {
		return nil, err
	}

	electionId, err := uuid.Parse(voteRecordDB.ElectionId)
	if err != nil {
		return nil, err
	}

	return &models.VoteRecord{
		UserId:          userId,
		ElectionId:      electionId,
		VoterAddress:    common.HexToAddress(voteRecordDB.VoterAddress),
		TransactionHash: voteRecordDB.TransactionHash,
		BlockNumber:     voteRecordDB.BlockNumber,
		Timestamp:       time.Unix(voteRecordDB.Timestamp, 0),
	}, nil
}
