package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-ledger/internal/adapter"
	"github.com/feral-file/ff-ledger/internal/config"
	"github.com/feral-file/ff-ledger/internal/consumer"
	"github.com/feral-file/ff-ledger/internal/ledger"
	"github.com/feral-file/ff-ledger/internal/logger"
	"github.com/feral-file/ff-ledger/internal/providers/ethereum"
	"github.com/feral-file/ff-ledger/internal/registry"
	"github.com/feral-file/ff-ledger/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadLedgerWorkerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "ledger-worker",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "ledger-worker",
			"chain":   string(cfg.Ethereum.ChainID),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Ledger Worker")

	mode, err := ledger.ParseAccountingMode(cfg.Ledger.AccountingMode)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid accounting mode", zap.Error(err))
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()
	natsJS := adapter.NewNatsJetStream()

	// Load blacklist registry
	var blacklistRegistry registry.BlacklistRegistry
	if cfg.BlacklistPath != "" {
		blacklistLoader := registry.NewBlacklistRegistryLoader(adapter.NewFileSystem(), adapter.NewIO(), jsonAdapter)
		blacklistRegistry, err = blacklistLoader.Load(cfg.BlacklistPath)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load blacklist registry",
				zap.Error(err),
				zap.String("path", cfg.BlacklistPath))
		}
		logger.InfoCtx(ctx, "Loaded blacklist registry", zap.String("path", cfg.BlacklistPath))
	} else {
		logger.WarnCtx(ctx, "Blacklist registry path not configured, all contracts will be folded")
	}

	// Connect to the Ethereum node used for contract reads
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Ethereum node", zap.Error(err))
	}
	defer ethClient.Close()

	chainID, err := ethClient.ChainID(ctx)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to get chain id", zap.Error(err))
	}
	if want := fmt.Sprintf("eip155:%s", chainID.String()); want != string(cfg.Ethereum.ChainID) {
		logger.WarnCtx(ctx, "Ethereum node chain differs from configured chain",
			zap.String("node_chain", want),
			zap.String("configured_chain", string(cfg.Ethereum.ChainID)))
	}
	logger.InfoCtx(ctx, "Connected to Ethereum node", zap.String("chain_id", chainID.String()))

	reader, err := ethereum.NewContractReader(ethClient, cfg.Ethereum.CallTimeout)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create contract reader", zap.Error(err))
	}

	// Create the folding engine
	engine := ledger.NewEngine(dataStore, reader, jsonAdapter, ledger.Options{
		Mode:            mode,
		ReadConcurrency: cfg.Ledger.ReadConcurrency,
	})
	defer engine.Close()
	logger.InfoCtx(ctx, "Ledger engine created", zap.String("accounting_mode", string(mode)))

	// Create consumer
	ledgerConsumer, err := consumer.NewConsumer(
		consumer.Config{
			URL:                  cfg.NATS.URL,
			StreamName:           cfg.NATS.StreamName,
			SubjectPrefix:        cfg.NATS.SubjectPrefix,
			ConsumerName:         cfg.NATS.ConsumerName,
			MaxReconnects:        cfg.NATS.MaxReconnects,
			ReconnectWait:        cfg.NATS.ReconnectWait,
			ConnectionName:       cfg.NATS.ConnectionName,
			AckWaitTimeout:       cfg.NATS.AckWait,
			MaxDeliver:           cfg.NATS.MaxDeliver,
			RetryInitialInterval: cfg.Retry.InitialInterval,
			RetryMaxInterval:     cfg.Retry.MaxInterval,
			RetryMaxElapsedTime:  cfg.Retry.MaxElapsedTime,
			CursorSaveEvents:     cfg.Cursor.SaveEveryEvents,
			CursorSaveInterval:   cfg.Cursor.SaveInterval,
		},
		natsJS,
		engine,
		blacklistRegistry,
		dataStore,
		jsonAdapter,
		clock,
	)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create ledger consumer", zap.Error(err))
	}
	defer ledgerConsumer.Close()
	logger.InfoCtx(ctx, "Ledger consumer created",
		zap.String("stream", cfg.NATS.StreamName),
		zap.String("consumer", cfg.NATS.ConsumerName))

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Channel for consumer exit
	doneCh := make(chan error, 1)

	go func() {
		doneCh <- ledgerConsumer.Run(ctx)
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
		// Run flushes the cursor before returning
		if err := <-doneCh; err != nil && !errors.Is(err, context.Canceled) {
			logger.Error(err, zap.String("component", "consumer"))
		}
	case err := <-doneCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error(err, zap.String("component", "consumer"))
		}
		cancel()
	}

	logger.Info("Ledger Worker stopped")
}
