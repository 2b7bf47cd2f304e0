package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stakewarden-io/nft-staking-engine/internal/api"
	"github.com/stakewarden-io/nft-staking-engine/internal/clients/authgate"
	"github.com/stakewarden-io/nft-staking-engine/internal/clients/custody"
	"github.com/stakewarden-io/nft-staking-engine/internal/clients/rewardtoken"
	"github.com/stakewarden-io/nft-staking-engine/internal/config"
	"github.com/stakewarden-io/nft-staking-engine/internal/db"
	dbmodel "github.com/stakewarden-io/nft-staking-engine/internal/db/model"
	"github.com/stakewarden-io/nft-staking-engine/internal/observability/metrics"
	"github.com/stakewarden-io/nft-staking-engine/internal/observability/tracing"
	"github.com/stakewarden-io/nft-staking-engine/internal/queue"
	"github.com/stakewarden-io/nft-staking-engine/internal/services"
)

const shutdownTimeout = 10 * time.Second

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the NFT staking engine server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up staking db model")
	}

	// create new db client
	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	// Create a basic zap logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating zap logger")
	}
	defer func() {
		//nolint:errcheck
		zapLogger.Sync()
	}()

	queueManager, err := queue.NewQueueManager(&cfg.Queue, zapLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize queue manager")
	}
	defer queueManager.Shutdown()

	var custodyClient custody.CustodyInterface = custody.NewInMemoryRegistry()
	custodyClient = custody.NewCustodyWithMetrics(custodyClient)

	var rewardClient rewardtoken.RewardInterface = rewardtoken.NewInMemoryLedger(
		cfg.Ledger.VaultAddress,
		cfg.Ledger.TreasuryBalance(),
	)
	rewardClient = rewardtoken.NewRewardWithMetrics(rewardClient)

	auth := authgate.NewStaticGate(cfg.Ledger.OwnerAddress)

	state, err := services.LoadOrInitState(ctx, cfg, dbClient)
	if err != nil {
		log.Fatal().Err(err).Msg("error while loading ledger state")
	}

	stakeLedger, err := services.RestoreLedger(
		ctx, state, cfg.Ledger.StepInterval, dbClient, custodyClient, rewardClient, auth,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error while restoring ledger")
	}

	service := services.NewService(cfg, dbClient, stakeLedger, queueManager, state.GenesisUnix)

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	service.StartIndexPoller(ctx)

	server := api.NewServer(&cfg.Api, service)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error while shutting down API server")
		}
	}()

	return server.Start()
}
