package app

import (
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/config"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/notify"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Application holds core application dependencies.
type Application struct {
	Config      *config.Config
	DBPool      *pgxpool.Pool
	RedisClient *redis.Client
	Notifier    notify.Notifier
	Validator   *validator.Validate
}
