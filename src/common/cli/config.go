// Package cli wires cobra commands to viper configuration and the shared logger.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/bitswalk/jobly/src/common/logs"
	"github.com/bitswalk/jobly/src/common/paths"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ConfigOptions holds options for configuration initialization
type ConfigOptions struct {
	// ConfigFile is the path given with --config, if any
	ConfigFile string

	// ConfigName is the name of the config file (without extension)
	ConfigName string

	// ConfigType is the type of config file (yaml, json, toml)
	ConfigType string

	// EnvPrefix is the prefix for environment variables (JOBLY -> JOBLY_SERVER_PORT)
	EnvPrefix string

	// EnvFiles are dotenv files loaded before the environment is read.
	// Missing files are skipped.
	EnvFiles []string

	SearchPaths []string
}

// DefaultConfigOptions returns the standard jobly configuration options
func DefaultConfigOptions(configName, envPrefix string) ConfigOptions {
	return ConfigOptions{
		ConfigName: configName,
		ConfigType: "yaml",
		EnvPrefix:  envPrefix,
		EnvFiles:   []string{".env"},
		SearchPaths: []string{
			"/etc/jobly",
			"~/.jobly",
			".",
		},
	}
}

// InitConfig loads dotenv files, binds the environment and reads the config
// file into the global viper instance. A missing config file is not an error.
func InitConfig(opts ConfigOptions) error {
	if err := LoadEnvFiles(opts.EnvFiles...); err != nil {
		return err
	}

	if opts.ConfigFile != "" {
		viper.SetConfigFile(paths.Expand(opts.ConfigFile))
	} else {
		viper.SetConfigName(opts.ConfigName)
		viper.SetConfigType(opts.ConfigType)

		for _, searchPath := range opts.SearchPaths {
			viper.AddConfigPath(paths.Expand(searchPath))
		}
	}

	if opts.EnvPrefix != "" {
		viper.SetEnvPrefix(opts.EnvPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// LoadEnvFiles loads dotenv files without overriding variables already set
// in the process environment.
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		path := paths.Expand(f)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("error loading env file %s: %w", path, err)
		}
	}
	return nil
}

// RegisterLogFlags registers common logging flags on a Cobra command
func RegisterLogFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log-output", "stdout", "Log output destination (stdout, stderr, journald, auto)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	_ = viper.BindPFlag("log.output", cmd.PersistentFlags().Lookup("log-output"))
	_ = viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", cmd.PersistentFlags().Lookup("log-format"))

	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

// RegisterConfigFlag registers the --config flag on a Cobra command
func RegisterConfigFlag(cmd *cobra.Command, cfgFile *string, defaultPath string) {
	cmd.PersistentFlags().StringVar(cfgFile, "config", "", fmt.Sprintf("config file (default: %s)", defaultPath))
}

// InitLogger creates a logger from the log.* keys. Call after InitConfig.
func InitLogger(prefix string) *logs.Logger {
	return logs.New(logs.Config{
		Output: logs.LogOutput(viper.GetString("log.output")),
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
		Prefix: prefix,
	})
}

// BindFlag binds a Cobra flag to a Viper config key
func BindFlag(cmd *cobra.Command, flagName, viperKey string) error {
	return viper.BindPFlag(viperKey, cmd.Flags().Lookup(flagName))
}
