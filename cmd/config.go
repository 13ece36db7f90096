package cmd

import "time"

type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	RedisAddr               string
	KafkaHost               string
	KafkaNotificationsTopic string
	CacheOfferTTL           time.Duration
	CacheNearbyTTL          time.Duration
	CacheAccountTTL         time.Duration
}
