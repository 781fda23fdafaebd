package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort    string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	KafkaBrokers           string
	KafkaClientID          string
	KafkaGroupID           string
	KafkaTopicPartitions   string
	KafkaReplicationFactor string
	EventsEnabled          string

	RedisAddr         string
	RedisDB           string
	CouponCacheTTLSec string
}

func Load() *Config {
	return &Config{
		AppPort:    getEnv("APP_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "storefrontdb"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		KafkaBrokers:           getEnv("KAFKA_BROKERS", "kafka:9092"),
		KafkaClientID:          getEnv("KAFKA_CLIENT_ID", "storefront-api"),
		KafkaGroupID:           getEnv("KAFKA_GROUP_ID", "storefront-consumers"),
		KafkaTopicPartitions:   getEnv("KAFKA_TOPIC_PARTITIONS", "3"),
		KafkaReplicationFactor: getEnv("KAFKA_REPLICATION_FACTOR", "1"),
		EventsEnabled:          getEnv("EVENTS_ENABLED", "true"),

		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisDB:           getEnv("REDIS_DB", "0"),
		CouponCacheTTLSec: getEnv("COUPON_CACHE_TTL_SEC", "60"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) TopicPartitions() int {
	return parseInt(c.KafkaTopicPartitions, 3)
}

func (c *Config) ReplicationFactor() int16 {
	return int16(parseInt(c.KafkaReplicationFactor, 1))
}

func (c *Config) EventsOn() bool {
	return c.EventsEnabled != "false" && c.EventsEnabled != "0"
}

func (c *Config) RedisDatabase() int {
	return parseInt(c.RedisDB, 0)
}

func (c *Config) CouponCacheTTL() int {
	return parseInt(c.CouponCacheTTLSec, 60)
}

func parseInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
