package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	app "github.com/votechain/VotingLedger/internal/app"
	config "github.com/votechain/VotingLedger/internal/config"
	db "github.com/votechain/VotingLedger/internal/database/connection"
	repositories "github.com/votechain/VotingLedger/internal/database/repositories"
)

func main() {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config/config.yml"
	}

	err := config.InitializeGlobalConfig(configFile)
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}

	dbFile := os.Getenv("DATABASE_FILE")
	if dbFile == "" {
		dbFile = config.GlobalConfig.DatabaseConfig.File
	}

	err = db.InitializeGlobalDB(dbFile)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	err = repositories.InitializeGlobalRepositories(db.GlobalDB)
	if err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	appBuilder := app.NewAppBuilderImpl(db.GlobalDB, config.GlobalConfig)
	application := appBuilder.BuildApp()
	application.Start()

	totalVotes, err := application.LedgerClient().FetchTotalVotes()
	if err != nil {
		log.Fatalf("Failed to query ledger: %v", err)
	}

	log.Printf("|Main| Voting ledger is up, %d votes on chain", totalVotes)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("|Main| Shutting down ledger node...")
	application.Stop()

	err = db.CloseDatabaseConnection(db.GlobalDB)
	if err != nil {
		log.Fatalf("Failed to close database connection: %v", err)
	}
}
