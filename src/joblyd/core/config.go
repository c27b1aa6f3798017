package core

import (
	"time"

	"github.com/bitswalk/jobly/src/joblyd/api"
	"github.com/bitswalk/jobly/src/joblyd/auth"
	"github.com/bitswalk/jobly/src/joblyd/db"
	"github.com/bitswalk/jobly/src/joblyd/storage"
	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Bind        string
	Port        int
	CORSOrigins []string
}

// Config is the fully resolved joblyd configuration. It is read once from
// viper and passed down explicitly.
type Config struct {
	Server     ServerConfig
	Database   db.Config
	Auth       auth.Config
	BcryptCost int

	// MasterKeyPath locates the key encrypting a generated signing secret
	// in the settings table. Empty stores it in plain text. Unused when
	// Auth.SecretKey is set.
	MasterKeyPath string
	Storage       storage.Config
	RateLimit     api.RateLimitConfig
	MaxLogoBytes  int64
	LogLevel      string
}

func setDefaults() {
	viper.SetDefault("server.port", 3001)
	viper.SetDefault("server.bind", "0.0.0.0")
	viper.SetDefault("server.cors_origins", []string{"*"})

	viper.SetDefault("database.driver", db.DriverSQLite)
	viper.SetDefault("database.dsn", "~/.jobly/jobly.db")
	viper.SetDefault("database.max_open_conns", 10)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", time.Hour)

	viper.SetDefault("auth.secret_key", "")
	viper.SetDefault("auth.bcrypt_cost", 12)
	viper.SetDefault("auth.master_key_path", "~/.jobly/master.key")

	viper.SetDefault("storage.type", "local")
	viper.SetDefault("storage.local.path", "~/.jobly/storage")
	viper.SetDefault("storage.s3.region", "us-east-1")
	viper.SetDefault("storage.s3.bucket", "jobly-logos")
	viper.SetDefault("storage.s3.path_style", true)
	viper.SetDefault("storage.max_logo_bytes", 2<<20)

	viper.SetDefault("security.rate_limit.enabled", true)
	viper.SetDefault("security.rate_limit.auth_per_min", 10)
	viper.SetDefault("security.rate_limit.trust_proxy", false)
}

// LoadConfig resolves the configuration from the global viper instance
func LoadConfig() Config {
	storageType := viper.GetString("storage.type")
	// An S3 endpoint selects the S3 backend regardless of storage.type
	s3Endpoint := viper.GetString("storage.s3.endpoint")
	if s3Endpoint != "" {
		storageType = "s3"
	}

	return Config{
		Server: ServerConfig{
			Bind:        viper.GetString("server.bind"),
			Port:        viper.GetInt("server.port"),
			CORSOrigins: viper.GetStringSlice("server.cors_origins"),
		},
		Database: db.Config{
			Driver:          viper.GetString("database.driver"),
			DSN:             viper.GetString("database.dsn"),
			MaxOpenConns:    viper.GetInt("database.max_open_conns"),
			MaxIdleConns:    viper.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: viper.GetDuration("database.conn_max_lifetime"),
		},
		Auth: auth.Config{
			SecretKey: viper.GetString("auth.secret_key"),
		},
		BcryptCost:    viper.GetInt("auth.bcrypt_cost"),
		MasterKeyPath: viper.GetString("auth.master_key_path"),
		Storage: storage.Config{
			Type: storageType,
			Local: storage.LocalConfig{
				BasePath: viper.GetString("storage.local.path"),
			},
			S3: storage.S3Config{
				Endpoint:        s3Endpoint,
				Region:          viper.GetString("storage.s3.region"),
				Bucket:          viper.GetString("storage.s3.bucket"),
				AccessKeyID:     viper.GetString("storage.s3.access_key"),
				SecretAccessKey: viper.GetString("storage.s3.secret_key"),
				UsePathStyle:    viper.GetBool("storage.s3.path_style"),
			},
		},
		RateLimit: api.RateLimitConfig{
			Enabled:            viper.GetBool("security.rate_limit.enabled"),
			AuthRequestsPerMin: viper.GetInt("security.rate_limit.auth_per_min"),
			TrustProxy:         viper.GetBool("security.rate_limit.trust_proxy"),
		},
		MaxLogoBytes: viper.GetInt64("storage.max_logo_bytes"),
		LogLevel:     viper.GetString("log.level"),
	}
}
