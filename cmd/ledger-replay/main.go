package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-ledger/internal/adapter"
	"github.com/feral-file/ff-ledger/internal/config"
	"github.com/feral-file/ff-ledger/internal/ledger"
	"github.com/feral-file/ff-ledger/internal/logger"
	"github.com/feral-file/ff-ledger/internal/providers/ethereum"
	"github.com/feral-file/ff-ledger/internal/providers/jetstream"
	"github.com/feral-file/ff-ledger/internal/replay"
	"github.com/feral-file/ff-ledger/internal/store"
)

const (
	targetMemory   = "memory"
	targetPostgres = "postgres"
	targetNATS     = "nats"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	input      = flag.String("input", "-", "NDJSON file of ledger events, - for stdin")
	target     = flag.String("target", targetMemory, "Where events go: memory, postgres or nats")
)

func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadReplayConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	err = logger.Initialize(logger.Config{
		Debug:   cfg.Debug,
		Service: "ledger-replay",
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jsonAdapter := adapter.NewJSON()

	var (
		replayTarget replay.Target
		dataStore    store.Store
	)

	switch *target {
	case targetNATS:
		publisher, err := jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create publisher", zap.Error(err))
		}
		defer publisher.Close()

		if err := publisher.EnsureStream(ctx); err != nil {
			logger.FatalCtx(ctx, "Failed to ensure stream", zap.Error(err))
		}
		replayTarget = replay.PublisherTarget(publisher)

	case targetMemory, targetPostgres:
		if *target == targetPostgres {
			db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
			if err != nil {
				logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
			}
			dataStore = store.NewPGStore(db)
		} else {
			dataStore = store.NewMemoryStore()
		}

		mode, err := ledger.ParseAccountingMode(cfg.Ledger.AccountingMode)
		if err != nil {
			logger.FatalCtx(ctx, "Invalid accounting mode", zap.Error(err))
		}

		ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to Ethereum node", zap.Error(err))
		}
		defer ethClient.Close()

		reader, err := ethereum.NewContractReader(ethClient, cfg.Ethereum.CallTimeout)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create contract reader", zap.Error(err))
		}

		engine := ledger.NewEngine(dataStore, reader, jsonAdapter, ledger.Options{
			Mode:            mode,
			ReadConcurrency: cfg.Ledger.ReadConcurrency,
		})
		defer engine.Close()
		replayTarget = replay.LedgerTarget(engine)

	default:
		fmt.Fprintf(os.Stderr, "unknown target %q\n", *target)
		flag.Usage()
		os.Exit(2)
	}

	summary, err := replay.NewReplayer(adapter.NewFileSystem(), jsonAdapter, replayTarget).Run(ctx, *input)
	logger.InfoCtx(ctx, "Replay finished",
		zap.String("target", *target),
		zap.Int("lines", summary.Lines),
		zap.Int("applied", summary.Applied),
		zap.Int("duplicates", summary.Duplicates),
		zap.Int("skipped", summary.Skipped))
	if err != nil {
		logger.FatalCtx(ctx, "Replay failed", zap.Error(err))
	}

	if *target == targetMemory {
		printMemorySummary(ctx, dataStore)
	}
}

// printMemorySummary writes the folded transfer count to stdout
func printMemorySummary(ctx context.Context, s store.Store) {
	_, total, err := s.GetTransfers(ctx, store.TransferQueryFilter{Limit: 1})
	if err != nil {
		logger.ErrorCtx(ctx, err)
		return
	}
	fmt.Printf("transfers folded: %d\n", total)
}
