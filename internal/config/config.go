// Package config loads stockkeeper settings from defaults, an optional
// config file, STOCKKEEPER_ environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "STOCKKEEPER"

const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMySQL = "mysql"
)

type Config struct {
	DataFile          string      `mapstructure:"data_file"`
	Backend           string      `mapstructure:"backend"`
	LowStockThreshold int         `mapstructure:"low_stock_threshold"`
	Log               LogConfig   `mapstructure:"log"`
	HTTP              HTTPConfig  `mapstructure:"http"`
	GRPC              GRPCConfig  `mapstructure:"grpc"`
	Redis             RedisConfig `mapstructure:"redis"`
	MySQL             MySQLConfig `mapstructure:"mysql"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type GRPCConfig struct {
	Addr string `mapstructure:"addr"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	Name string `mapstructure:"name"`
}

type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// SetDefaults registers every key with its default so that environment
// variables are picked up by Unmarshal even without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data_file", "inventory.json")
	v.SetDefault("backend", BackendFile)
	v.SetDefault("low_stock_threshold", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("grpc.addr", ":50051")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.name", "default")
	v.SetDefault("mysql.dsn", "root:root@tcp(localhost:3306)/stockkeeper?parseTime=true")
}

// NewViper returns a viper instance with defaults and env binding set up.
// An empty cfgFile means no config file is read.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}
	return v, nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		if c.DataFile == "" {
			return fmt.Errorf("data_file must be set for the file backend")
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr must be set for the redis backend")
		}
	case BackendMySQL:
		if c.MySQL.DSN == "" {
			return fmt.Errorf("mysql.dsn must be set for the mysql backend")
		}
	default:
		return fmt.Errorf("unknown backend %q (want file, redis or mysql)", c.Backend)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q (want console or json)", c.Log.Format)
	}
	return nil
}
