package sdk

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/log"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/rpc"
)

const (
	configDirPathEnv     = "SAFE_CONFIG_DIR_PATH"
	defaultConfigDirPath = "."
	configFileName       = "config.yaml"
)

var ErrInvalidConfig = fmt.Errorf("invalid configuration")

// Config holds everything needed to reach a host.
type Config struct {
	HostURL          string        `yaml:"host_url" env:"SAFE_HOST_URL" validate:"required,url"`
	SDKVersion       string        `yaml:"sdk_version" env:"SAFE_SDK_VERSION" env-default:"1.0.0" validate:"required"`
	RequestTimeout   time.Duration `yaml:"request_timeout" env:"SAFE_REQUEST_TIMEOUT" env-default:"30s" validate:"gte=0"`
	PingInterval     time.Duration `yaml:"ping_interval" env:"SAFE_PING_INTERVAL" env-default:"5s" validate:"gte=0"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout" env:"SAFE_HANDSHAKE_TIMEOUT" env-default:"5s" validate:"gte=0"`
	MetricsEnabled   bool          `yaml:"metrics_enabled" env:"SAFE_METRICS_ENABLED" env-default:"false"`

	Log log.Config `yaml:"log"`
}

// DialerConfig returns the transport settings of c.
func (c Config) DialerConfig() rpc.WebsocketDialerConfig {
	return rpc.WebsocketDialerConfig{
		HandshakeTimeout: c.HandshakeTimeout,
		PingInterval:     c.PingInterval,
		RequestTimeout:   c.RequestTimeout,
	}
}

// Validate checks the loaded values.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig reads the optional .env and config.yaml files of
// SAFE_CONFIG_DIR_PATH (default the working directory) and then the
// environment. The environment wins over config.yaml, and variables already
// set in the environment win over .env. Defaults fill what is left.
func LoadConfig(lg log.Logger) (Config, error) {
	lg = lg.WithName("config")

	configDirPath := os.Getenv(configDirPathEnv)
	if configDirPath == "" {
		configDirPath = defaultConfigDirPath
	}

	configDotEnvPath := filepath.Join(configDirPath, ".env")
	if err := godotenv.Load(configDotEnvPath); err != nil {
		lg.Debug(".env file not loaded", "path", configDotEnvPath, "error", err)
	} else {
		lg.Info("loaded .env file", "path", configDotEnvPath)
	}

	var conf Config
	configFilePath := filepath.Join(configDirPath, configFileName)
	if err := readConfigFile(configFilePath, &conf); errors.Is(err, fs.ErrNotExist) {
		lg.Debug("config file not found", "path", configFilePath)
	} else if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, configFilePath, err)
	} else {
		lg.Info("loaded config file", "path", configFilePath)
	}

	if err := cleanenv.ReadEnv(&conf); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}

	lg.Info("configuration loaded", "host", conf.HostURL, "sdkVersion", conf.SDKVersion)
	return conf, nil
}

func readConfigFile(path string, conf *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
