package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=1h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	Workers   int           `env:"INGEST_WORKERS, default=8"`

	Mongo MongoConfig
	Redis RedisConfig
	MQTT  MQTTConfig
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,  default=device_monitor"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE, default=10"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MQTTConfig struct {
	BrokerURL string `env:"MQTT_BROKER_URL, default=tcp://localhost:1883"`
	ClientID  string `env:"MQTT_CLIENT_ID,  default=device-monitor"`
	Username  string `env:"MQTT_USERNAME"`
	Password  string `env:"MQTT_PASSWORD"`
	Topic     string `env:"MQTT_TOPIC, default=device/data"`
	QoS       uint8  `env:"MQTT_QOS,   default=1"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
