package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env     string `env:"ENV" env-required:"true"`
	HTTP    HTTPConfig
	JWT     JWTConfig
	Storage StorageConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST"`
	Port            string        `env:"HTTP_PORT" env-default:"3000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type JWTConfig struct {
	// No default on purpose: the process must
	// not start with a baked-in signing key.
	Secret   string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL time.Duration `env:"JWT_TOKEN_TTL" env-default:"2h"`
}

type StorageConfig struct {
	UsersFile string `env:"STORAGE_USERS_FILE" env-default:"users.json"`
	TodosFile string `env:"STORAGE_TODOS_FILE" env-default:"todos.json"`
}
