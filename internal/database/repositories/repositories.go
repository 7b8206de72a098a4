package repositories

import "gorm.io/gorm"

func InitializeGlobalRepositories(db *gorm.DB) error {
	err := InitializeGlobalUserRepository(db)
	if err != nil {
		return err
	}

	err = InitializeGlobalElectionRepository(db)
	if err != nil {
		return err
	}

	err = InitializeGlobalCandidateRepository(db)
	if err != nil {
		return err
	}

	return InitializeGlobalVoteRecordRepository(db)
}
