package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort        string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis             Redis  `yaml:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"./results.db"`
	CORS              CORS   `yaml:"cors"`
	Bot               Bot    `yaml:"bot"`
	Game              Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed-origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
}

type Bot struct {
	DefaultDifficulty string `yaml:"default-difficulty" env:"BOT_DEFAULT_DIFFICULTY" env-default:"normal"`
}

type Game struct {
	// TTL - how long an untouched game stays in redis.
	TTL time.Duration `yaml:"ttl" env:"GAME_TTL" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the config file and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
