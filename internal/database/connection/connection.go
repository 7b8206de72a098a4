package db_connection

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	db_config "github.com/votechain/VotingLedger/internal/database/config"
	models "github.com/votechain/VotingLedger/internal/database/models"
)

var modelsToMigrate = []any{
	&models.UserDB{},
	&models.ElectionDB{},
	&models.CandidateDB{},
	&models.VoteRecordDB{},
}

var GlobalDB *gorm.DB = nil

func InitializeGlobalDB(dbFile string) error {
	if GlobalDB != nil {
		return nil
	}

	var err error
	GlobalDB, err = GetDatabaseConnection(dbFile)

	return err
}

func GetDatabaseConnection(dbFile string) (*gorm.DB, error) {
	if dbFile != ":memory:" {
		dir := filepath.Dir(dbFile)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
			log.Printf("|Database| Created directory '%s'", dir)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbFile), db_config.GetGormConfig())

	if err != nil {
		return nil, err
	}

	// sqlite allows a single writer. One pooled connection avoids
	// SQLITE_BUSY under concurrent casts and keeps :memory: databases
	// shared across goroutines.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(modelsToMigrate...)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func ResetDatabase(db *gorm.DB) error {
	err := db.Migrator().DropTable(modelsToMigrate...)

	if err != nil {
		return err
	}

	return db.AutoMigrate(modelsToMigrate...)
}

func CloseDatabaseConnection(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
