package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Observ    ObservabilityConfig
	Inventory InventoryConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	CacheTTLSeconds int
}

type KafkaConfig struct {
	Brokers       []string
	TopicCatalog  string
	ConsumerGroup string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
	PrometheusPort string
}

type InventoryConfig struct {
	// AtomicStock switches the purchase path from the compatible
	// read-modify-write save to a conditional decrement at the storage
	// layer.
	AtomicStock bool
	// MergeVariantsOnUpdate preserves existing variant ids/quantities
	// on edit instead of replacing the list wholesale.
	MergeVariantsOnUpdate bool
	// LowStockThreshold triggers StockLow events at or below this
	// remaining quantity.
	LowStockThreshold int
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	cacheTTL, _ := strconv.Atoi(getEnv("LISTING_CACHE_TTL_SECONDS", "300"))
	lowStock, _ := strconv.Atoi(getEnv("LOW_STOCK_THRESHOLD", "5"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "catalog"),
		},
		Redis: RedisConfig{
			Addr:            getEnv("REDIS_ADDR", "localhost:6379"),
			Password:        getEnv("REDIS_PASSWORD", ""),
			DB:              redisDB,
			CacheTTLSeconds: cacheTTL,
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TopicCatalog:  getEnv("KAFKA_TOPIC_CATALOG_EVENTS", "catalog-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "catalog-service-group"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
			PrometheusPort: getEnv("PROMETHEUS_PORT", "9090"),
		},
		Inventory: InventoryConfig{
			AtomicStock:           getEnv("INVENTORY_ATOMIC_STOCK", "false") == "true",
			MergeVariantsOnUpdate: getEnv("INVENTORY_MERGE_VARIANTS_ON_UPDATE", "false") == "true",
			LowStockThreshold:     lowStock,
		},
	}

	log.Printf("Config loaded: env=%s, port=%s, atomic_stock=%t",
		cfg.Server.Env, cfg.Server.Port, cfg.Inventory.AtomicStock)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
