package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	CONFIG_FILE = "config/config.yaml"

	DEFAULT_FETCH_TIMEOUT = 10 * time.Second
	DEFAULT_CONCURRENCY   = 4
)

var (
	config     Config
	onceConfig sync.Once
)

func GetConfig(forceNewInstance ...bool) Config {
	if len(forceNewInstance) > 0 && forceNewInstance[0] {
		newInstance := NewConfig()
		config = newInstance
		onceConfig = sync.Once{}
		return newInstance
	}

	onceConfig.Do(func() {
		config = NewConfig()
	})

	return config
}

type Config struct {
	Log           LogConfig        `yaml:"log" json:"-"`
	HTTPAPIServer HTTPAPIServer    `yaml:"http_api_server" json:"-"`
	ODR           Settings         `yaml:"odr" json:"odr"`
	Schema        SchemaConfig     `yaml:"schema" json:"-"`
	Processing    ProcessingConfig `yaml:"processing" json:"-"`
	Storage       StorageConfig    `yaml:"storage" json:"-"`
}

type LogConfig struct {
	Level string `yaml:"level"  json:"-"`
}

type HTTPAPIServer struct {
	Host string `yaml:"host" json:"-"`
	Port int    `yaml:"port" json:"-"`
}

type SchemaConfig struct {
	FetchTimeout time.Duration `yaml:"fetch_timeout" json:"-"`
}

type ProcessingConfig struct {
	Concurrency int `yaml:"concurrency" json:"-"`
}

type StorageConfig struct {
	Local LocalStorageConfig `yaml:"local" json:"-"`
	Minio MinioStorageConfig `yaml:"minio" json:"-"`
}

type LocalStorageConfig struct {
	RootPath string `yaml:"root_path" json:"-"`
}

type MinioStorageConfig struct {
	CredentialsPath string `yaml:"credentials_path" json:"-"`
	Bucket          string `yaml:"bucket" json:"bucket"`
	AccessKey       string `yaml:"accessKey" json:"accessKey"`
	SecretKey       string `yaml:"secretKey" json:"secretKey"`
	Url             string `yaml:"url" json:"url"`
	Secure          bool   `yaml:"secure" json:"secure"`
}

// DefaultConfig is the configuration used when no config file is present.
func DefaultConfig() Config {
	return Config{
		Log:           LogConfig{Level: "warn"},
		HTTPAPIServer: HTTPAPIServer{Host: "0.0.0.0", Port: 8080},
		ODR:           ApplySettings(nil),
		Schema:        SchemaConfig{FetchTimeout: DEFAULT_FETCH_TIMEOUT},
		Processing:    ProcessingConfig{Concurrency: DEFAULT_CONCURRENCY},
	}
}

func NewConfig() Config {
	godotenv.Load()

	configPath := os.Getenv("CONFIG_FILE")
	explicit := configPath != ""
	if !explicit {
		configPath = CONFIG_FILE
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultConfig()
		}
		panic(err)
	}

	return config
}

// LoadConfig reads the YAML config at configPath and fills unset values with defaults.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()
	// Settings are merged below; decoding into the defaults would hide absent keys.
	config.ODR = Settings{}

	file, err := os.Open(configPath)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(&config); err != nil {
		return Config{}, err
	}

	config.ODR = ApplySettings(&config.ODR)
	if config.Schema.FetchTimeout <= 0 {
		config.Schema.FetchTimeout = DEFAULT_FETCH_TIMEOUT
	}
	if config.Processing.Concurrency <= 0 {
		config.Processing.Concurrency = DEFAULT_CONCURRENCY
	}

	if config.Storage.Minio.CredentialsPath != "" {
		credentialsPath := config.Storage.Minio.CredentialsPath
		file, err := os.ReadFile(credentialsPath)

		if condition := os.IsNotExist(err); condition {
			// Fallback - check credentials file in the same directory as the config file
			configDir := filepath.Dir(configPath)
			credentialsFilename := filepath.Base(credentialsPath)
			credentialsPath = filepath.Join(configDir, credentialsFilename)

			file, err = os.ReadFile(credentialsPath)
		}
		if err != nil {
			return Config{}, err
		}

		minioStorageConfig := MinioStorageConfig{
			CredentialsPath: config.Storage.Minio.CredentialsPath,
		}
		if err = json.Unmarshal(file, &minioStorageConfig); err != nil {
			return Config{}, err
		}

		config.Storage.Minio = minioStorageConfig
	}

	return config, nil
}
