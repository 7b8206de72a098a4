package app

import (
	"log"
	"sync"

	"gorm.io/gorm"

	config "github.com/votechain/VotingLedger/internal/config"
	repositories "github.com/votechain/VotingLedger/internal/database/repositories"
	client "github.com/votechain/VotingLedger/internal/ledger/client"
	node "github.com/votechain/VotingLedger/internal/ledger/node"
	services "github.com/votechain/VotingLedger/internal/services"
)

type AppBuilder interface {
	BuildApp() App
}

// App bundles the ledger node, the ledger client and the services into one
// startable unit. Embedding callers reach the services through the
// accessors, the App owns the node lifecycle.
type App interface {
	Start()
	Stop()
	LedgerClient() client.LedgerClient
	VotingService() services.VotingService
	ResultsService() services.ResultsService
	RegistrationService() services.RegistrationService
}

type AppBuilderImpl struct {
	db     *gorm.DB
	config *config.Config
}

type AppImpl struct {
	ledgerNode   *node.LedgerNode
	ledgerClient *client.LedgerClientImpl

	votingService       services.VotingService
	resultsService      services.ResultsService
	registrationService services.RegistrationService

	wg sync.WaitGroup
}

func NewAppBuilderImpl(db *gorm.DB, config *config.Config) *AppBuilderImpl {
	return &AppBuilderImpl{db: db, config: config}
}

func (appBuilder *AppBuilderImpl) BuildApp() App {
	userRepository := repositories.NewUserRepositoryImpl(appBuilder.db)
	electionRepository := repositories.NewElectionRepositoryImpl(appBuilder.db)
	candidateRepository := repositories.NewCandidateRepositoryImpl(appBuilder.db)
	voteRecordRepository := repositories.NewVoteRecordRepositoryImpl(appBuilder.db)

	ledgerConfig := appBuilder.config.LedgerConfig

	ledgerNode := node.NewLedgerNode(ledgerConfig.BatchSize, ledgerConfig.SequencerIntervalDuration())
	ledgerClient := client.NewLedgerClientImpl(ledgerNode, ledgerConfig.SigningKey, ledgerConfig.ConfirmationTimeoutDuration())

	log.Printf("|App Builder| Ledger client submitting as %s", ledgerClient.Submitter().Hex())

	return &AppImpl{
		ledgerNode:   ledgerNode,
		ledgerClient: ledgerClient,
		votingService: services.NewVotingServiceImpl(
			userRepository,
			electionRepository,
			candidateRepository,
			voteRecordRepository,
			ledgerClient,
		),
		resultsService: services.NewResultsServiceImpl(
			electionRepository,
			candidateRepository,
			ledgerClient,
		),
		registrationService: services.NewRegistrationServiceImpl(userRepository),
	}
}

func (app *AppImpl) Start() {
	app.ledgerNode.Start(&app.wg)
}

func (app *AppImpl) Stop() {
	app.ledgerNode.Stop()
	app.wg.Wait()
}

func (app *AppImpl) LedgerClient() client.LedgerClient {
	return app.ledgerClient
}

func (app *AppImpl) VotingService() services.VotingService {
	return app.votingService
}

func (app *AppImpl) ResultsService() services.ResultsService {
	return app.resultsService
}

func (app *AppImpl) RegistrationService() services.RegistrationService {
	return app.registrationService
}
