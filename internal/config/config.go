package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort        string  `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Redis             Redis   `yaml:"redis"`
	SQLiteStoragePath string  `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"games.db"`
	Backend           Backend `yaml:"backend"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Backend configures the simulated quantum backend used by the server.
// A zero seed means a fresh random stream on every start.
type Backend struct {
	Name string `yaml:"name" env:"BACKEND_NAME" env-default:"aer_simulator"`
	Seed uint64 `yaml:"seed" env:"BACKEND_SEED" env-default:"0"`
}

// MustLoad - load all configurations from the given yaml file.
// When the file does not exist, defaults and environment variables apply.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to read environment config: %w", err))
		}
		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
