package config

import (
	// Go Internal Packages
	"os"
	"strings"

	// External Packages
	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
)

// Load reads DefaultConfig, then each overlay in order, then the config file
// at path when it exists.
func Load(path string, overlays ...[]byte) (*koanf.Koanf, Config, error) {
	k := koanf.New(".")
	conf := Config{}

	if err := k.Load(rawbytes.Provider(DefaultConfig), yaml.Parser()); err != nil {
		return nil, conf, err
	}
	for _, overlay := range overlays {
		if err := k.Load(rawbytes.Provider(overlay), yaml.Parser()); err != nil {
			return nil, conf, err
		}
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err = k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, conf, err
			}
		}
	}

	if err := k.Unmarshal("", &conf); err != nil {
		return nil, conf, err
	}
	return k, conf, nil
}

// LoadSecrets overrides the config with secrets from the environment. A .env
// file in the working directory is read first; real env vars win over it.
func LoadSecrets(k Config) Config {
	_ = godotenv.Load()

	if mongoURI := os.Getenv("MONGO_URI"); mongoURI != "" {
		k.Mongo.URI = mongoURI
	}
	if postgresDSN := os.Getenv("POSTGRES_DSN"); postgresDSN != "" {
		k.Postgres.DSN = postgresDSN
	}
	if redisURI := os.Getenv("REDIS_URI"); redisURI != "" {
		k.Redis.URI = redisURI
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		k.Redis.Password = redisPassword
	}
	if kafkaBrokers := os.Getenv("KAFKA_BROKERS"); kafkaBrokers != "" {
		k.Kafka.Brokers = strings.Split(kafkaBrokers, ",")
	}

	isProdMode := os.Getenv("IS_PROD_MODE")
	k.IsProdMode = isProdMode == "true"
	return k
}
