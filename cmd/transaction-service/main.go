package main

import (
	// Go Internal Packages
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	// Local Packages
	api "tx-guard/api"
	config "tx-guard/config"
	kafka "tx-guard/kafka"
	models "tx-guard/models"
	memory "tx-guard/repositories/memory"
	mongodb "tx-guard/repositories/mongodb"
	postgres "tx-guard/repositories/postgres"
	redis "tx-guard/repositories/redis"
	cache "tx-guard/services/cache"
	processors "tx-guard/services/processors"
	reconciler "tx-guard/services/reconciler"
	transactions "tx-guard/services/transactions"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	_ "github.com/jsternberg/zap-logfmt"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type txStore interface {
	transactions.TxRepository
	reconciler.TxRepository
}

type stores struct {
	Transactions  txStore
	Statuses      transactions.StatusRepository
	TransferTypes transactions.TransferTypeRepository
	Close         func()
}

// openStores connects the configured store driver and seeds its catalog.
func openStores(ctx context.Context, conf config.Config, logger *zap.Logger) (stores, error) {
	switch conf.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, conf.Postgres.DSN)
		if err != nil {
			return stores{}, err
		}
		if err = postgres.EnsureSchema(ctx, pool, models.DefaultStatuses, conf.Catalog.TransferTypes); err != nil {
			pool.Close()
			return stores{}, err
		}
		return stores{
			Transactions:  postgres.NewTxRepository(pool),
			Statuses:      postgres.NewStatusRepository(pool),
			TransferTypes: postgres.NewTransferTypeRepository(pool),
			Close:         pool.Close,
		}, nil

	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return stores{
			Transactions:  memory.NewTxRepository(),
			Statuses:      memory.NewStatusRepository(models.DefaultStatuses),
			TransferTypes: memory.NewTransferTypeRepository(conf.Catalog.TransferTypes),
			Close:         func() {},
		}, nil
	}

	client, err := mongodb.Connect(ctx, conf.Mongo.URI)
	if err != nil {
		return stores{}, err
	}
	if err = mongodb.SeedCatalog(ctx, client, conf.Mongo.Database, models.DefaultStatuses, conf.Catalog.TransferTypes); err != nil {
		_ = client.Disconnect(context.Background())
		return stores{}, err
	}
	return stores{
		Transactions:  mongodb.NewTxRepository(client, conf.Mongo.Database),
		Statuses:      mongodb.NewStatusRepository(client, conf.Mongo.Database),
		TransferTypes: mongodb.NewTransferTypeRepository(client, conf.Mongo.Database),
		Close:         func() { _ = client.Disconnect(context.Background()) },
	}, nil
}

func main() {
	configPathMsg := "Path to the application config file"
	configPath := kingpin.Flag("config", configPathMsg).Short('c').Default("config.yml").String()
	kingpin.Parse()

	k, appKonf, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Update and Validate config before starting the server
	updatedKonf := config.LoadSecrets(appKonf)
	if err = updatedKonf.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if !updatedKonf.IsProdMode {
		k.Print()
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "logfmt"
	_ = cfg.Level.UnmarshalText([]byte(updatedKonf.Logger.Level))
	cfg.InitialFields = make(map[string]any)
	cfg.InitialFields["host"], _ = os.Hostname()
	cfg.InitialFields["service"] = updatedKonf.Application
	cfg.OutputPaths = []string{"stdout"}
	logger, _ := cfg.Build()
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, updatedKonf, logger)
	if err != nil {
		logger.Fatal("cannot open store", zap.String("driver", updatedKonf.Store.Driver), zap.Error(err))
	}
	defer st.Close()

	// Redis Connection
	redisClient, err := redis.Connect(ctx, updatedKonf.Redis.URI, updatedKonf.Redis.Password, updatedKonf.Redis.DB)
	if err != nil {
		logger.Fatal("cannot create redis client", zap.Error(err))
	}
	defer redisClient.Close()

	cacheConf := updatedKonf.Cache
	cacheStore := redis.NewCache(redisClient)
	txCache := cache.NewTransactionCache(cacheStore, cacheConf.Transaction.Prefix, cache.TransactionTTL(cacheConf.Transaction.TTL), logger)
	typeCache := cache.NewTransferTypeCache(cacheStore, cacheConf.TransferType.Prefix, cacheConf.TransferType.TTL, logger)

	producerMetrics := kprom.NewMetrics("transaction_service_producer")
	producer, err := kafka.NewProducer(updatedKonf.Kafka.Brokers, producerMetrics, logger)
	if err != nil {
		logger.Fatal("cannot create kafka producer", zap.Error(err))
	}
	defer producer.Close()

	queries := transactions.NewQueries(logger, st.Transactions, st.Statuses, st.TransferTypes, txCache, typeCache)
	creator := transactions.NewCreator(logger, queries, producer, transactions.EventsConfig{
		Topic:         updatedKonf.Kafka.Topics.Created,
		Source:        updatedKonf.Events.Source,
		SchemaVersion: updatedKonf.Events.SchemaVersion,
	})

	extra := map[string]http.Handler{"/metrics/kafka/producer": producerMetrics.Handler()}
	g, gctx := errgroup.WithContext(ctx)

	if updatedKonf.Kafka.Consume {
		statusReconciler := reconciler.NewReconciler(logger, st.Transactions, st.Statuses, txCache)
		dlQueue := redis.NewDeadLetterQueue(redisClient, logger, updatedKonf.DLQ.ListName, updatedKonf.Kafka.ConsumerName)
		consumerMetrics := kprom.NewMetrics("transaction_service_consumer")
		conf := updatedKonf.ConsumerConfig(updatedKonf.Kafka.ConsumerName, updatedKonf.Kafka.Topics.StatusUpdated)

		statusConsumer, err := kafka.NewConsumer(conf, processors.NewStatusProcessor(logger, statusReconciler), dlQueue, consumerMetrics, logger)
		if err != nil {
			logger.Fatal("cannot create status updated consumer", zap.Error(err))
		}
		extra["/metrics/kafka/consumer"] = consumerMetrics.Handler()
		g.Go(func() error {
			return statusConsumer.Poll(gctx)
		})
	}

	handler := api.NewHandler(creator, queries, logger)
	router := api.NewRouter(handler, updatedKonf.HTTP.RequestTimeout, extra)
	g.Go(func() error {
		return api.Serve(gctx, updatedKonf.HTTP.Address, router, logger)
	})

	if err = g.Wait(); err != nil {
		logger.Error("transaction service stopped", zap.Error(err))
		return
	}
	logger.Info("transaction service stopped")
}
