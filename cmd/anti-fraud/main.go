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
	redis "tx-guard/repositories/redis"
	antifraud "tx-guard/services/antifraud"
	processors "tx-guard/services/processors"
	rules "tx-guard/services/rules"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	_ "github.com/jsternberg/zap-logfmt"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPathMsg := "Path to the application config file"
	configPath := kingpin.Flag("config", configPathMsg).Short('c').Default("config.yml").String()
	kingpin.Parse()

	k, appKonf, err := config.Load(*configPath, config.AntiFraudDefaults)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

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

	// Redis holds the dead letter list only
	redisClient, err := redis.Connect(ctx, updatedKonf.Redis.URI, updatedKonf.Redis.Password, updatedKonf.Redis.DB)
	if err != nil {
		logger.Fatal("cannot create redis client", zap.Error(err))
	}
	defer redisClient.Close()

	producerMetrics := kprom.NewMetrics("anti_fraud_producer")
	producer, err := kafka.NewProducer(updatedKonf.Kafka.Brokers, producerMetrics, logger)
	if err != nil {
		logger.Fatal("cannot create kafka producer", zap.Error(err))
	}
	defer producer.Close()

	engine := rules.NewDefaultEngine(updatedKonf.AntiFraud.Limit())
	validator := antifraud.NewValidator(logger, engine, producer, antifraud.Config{
		Topic:         updatedKonf.Kafka.Topics.StatusUpdated,
		Source:        updatedKonf.Events.Source,
		SchemaVersion: updatedKonf.Events.SchemaVersion,
	})
	logger.Info("fraud rules loaded", zap.String("max_amount", updatedKonf.AntiFraud.Limit().String()))

	dlQueue := redis.NewDeadLetterQueue(redisClient, logger, updatedKonf.DLQ.ListName, updatedKonf.Kafka.ConsumerName)
	consumerMetrics := kprom.NewMetrics("anti_fraud_consumer")
	conf := updatedKonf.ConsumerConfig(updatedKonf.Kafka.ConsumerName, updatedKonf.Kafka.Topics.Created)

	createdConsumer, err := kafka.NewConsumer(conf, processors.NewCreatedProcessor(logger, validator), dlQueue, consumerMetrics, logger)
	if err != nil {
		logger.Fatal("cannot create transaction created consumer", zap.Error(err))
	}

	router := api.NewRouter(nil, updatedKonf.HTTP.RequestTimeout, map[string]http.Handler{
		"/metrics/kafka/producer": producerMetrics.Handler(),
		"/metrics/kafka/consumer": consumerMetrics.Handler(),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return createdConsumer.Poll(gctx)
	})
	g.Go(func() error {
		return api.Serve(gctx, updatedKonf.HTTP.Address, router, logger)
	})

	if err = g.Wait(); err != nil {
		logger.Error("anti-fraud service stopped", zap.Error(err))
		return
	}
	logger.Info("anti-fraud service stopped")
}
