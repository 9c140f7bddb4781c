package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"restaurant-catalog/internal/config"
	"restaurant-catalog/internal/infrastructure/queue"
)

// Config holds what the worker process needs beyond the container
type Config struct {
	Redis      asynq.RedisClientOpt
	RedisAddr  string
	Worker     config.WorkerConfig
	HealthPort string
}

func loadConfig(cfg *config.Config) *Config {
	wc := &Config{
		Redis:      queue.RedisOpt(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB),
		RedisAddr:  cfg.Redis.Host,
		Worker:     cfg.Worker,
		HealthPort: "9999",
	}

	log.Info().
		Str("redis", wc.RedisAddr).
		Int("concurrency", wc.Worker.Concurrency).
		Str("orphan_audit_cron", wc.Worker.OrphanAuditCron).
		Msg("[Config] worker")

	return wc
}
