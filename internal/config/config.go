package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BrowserSurface = "browser"
	LocalSurface   = "local"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Surface  string `yaml:"surface" env:"SURFACE" env-default:"browser"`
	GameURL  string `yaml:"game-url" env:"GAME_URL" env-default:""`
	Agent    Agent  `yaml:"agent"`
	Redis    Redis  `yaml:"redis"`
}

// Agent holds the control loop's named delays and budgets. Every wait in
// the loop is configurable; none is a hidden constant.
type Agent struct {
	MaxTurns      int           `yaml:"max-turns" env-default:"20"`
	SettleDelay   time.Duration `yaml:"settle-delay" env-default:"500ms"`
	OpponentDelay time.Duration `yaml:"opponent-delay" env-default:"1s"`
	RetryBackoff  time.Duration `yaml:"retry-backoff" env-default:"500ms"`
	StepTimeout   time.Duration `yaml:"step-timeout" env-default:"30s"`
	PayloadDelay  time.Duration `yaml:"payload-delay" env-default:"2s"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env-default:"false"`
	Host    string `yaml:"host" env-default:"localhost"`
	Port    string `yaml:"port" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
