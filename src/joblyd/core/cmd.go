// Package core provides the joblyd commands and the HTTP server.
package core

import (
	"fmt"
	"os"

	"github.com/bitswalk/jobly/src/common/cli"
	"github.com/bitswalk/jobly/src/common/logs"
	"github.com/bitswalk/jobly/src/common/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// VersionInfo is assembled from the linker variables in Execute
	VersionInfo = version.New("", "", "")

	log = logs.NewDefault()

	cfgFile string
)

// Linker variables, set via -ldflags "-X ..."
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "joblyd",
	Short: "Jobly job board API server",
	Long: `joblyd serves the Jobly REST API: companies, jobs, users and
job applications, with JWT authentication.

The API is discoverable through the root endpoint and documented under
/swagger/index.html.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(LoadConfig())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), VersionInfo.Full())
	},
}

// Execute runs the root command
func Execute() {
	VersionInfo = version.New(Version, BuildDate, GitCommit)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cli.RegisterConfigFlag(rootCmd, &cfgFile, "/etc/jobly/joblyd.yaml")
	cli.RegisterLogFlags(rootCmd)

	// Database flags are shared with the maintenance subcommands
	rootCmd.PersistentFlags().String("db-driver", "sqlite", "Database driver: 'sqlite' or 'postgres'")
	rootCmd.PersistentFlags().String("db-dsn", "~/.jobly/jobly.db", "SQLite path or PostgreSQL URL")
	rootCmd.PersistentFlags().Int("bcrypt-cost", 12, "bcrypt work factor for password hashes")
	_ = viper.BindPFlag("database.driver", rootCmd.PersistentFlags().Lookup("db-driver"))
	_ = viper.BindPFlag("database.dsn", rootCmd.PersistentFlags().Lookup("db-dsn"))
	_ = viper.BindPFlag("auth.bcrypt_cost", rootCmd.PersistentFlags().Lookup("bcrypt-cost"))

	rootCmd.Flags().IntP("port", "p", 3001, "Port to listen on")
	rootCmd.Flags().StringP("bind", "b", "0.0.0.0", "Address to bind to")
	rootCmd.Flags().String("secret-key", "", "JWT signing secret (generated and stored in the database when empty)")
	rootCmd.Flags().String("master-key", "~/.jobly/master.key", "Key file encrypting a generated signing secret (empty disables encryption)")

	rootCmd.Flags().String("storage-type", "local", "Logo storage backend: 'local' or 's3'")
	rootCmd.Flags().String("storage-path", "~/.jobly/storage", "Local storage path (for local backend)")
	rootCmd.Flags().String("s3-endpoint", "", "S3-compatible storage endpoint URL")
	rootCmd.Flags().String("s3-region", "us-east-1", "S3 region")
	rootCmd.Flags().String("s3-bucket", "jobly-logos", "S3 bucket for company logos")
	rootCmd.Flags().String("s3-access-key", "", "S3 access key ID")
	rootCmd.Flags().String("s3-secret-key", "", "S3 secret access key")
	rootCmd.Flags().Bool("s3-path-style", true, "Use path-style addressing for S3")

	rootCmd.Flags().Bool("rate-limit", true, "Rate limit the /auth endpoints")
	rootCmd.Flags().Int("auth-per-min", 10, "Requests per minute and client IP allowed on /auth")

	for flag, key := range map[string]string{
		"port":          "server.port",
		"bind":          "server.bind",
		"secret-key":    "auth.secret_key",
		"master-key":    "auth.master_key_path",
		"storage-type":  "storage.type",
		"storage-path":  "storage.local.path",
		"s3-endpoint":   "storage.s3.endpoint",
		"s3-region":     "storage.s3.region",
		"s3-bucket":     "storage.s3.bucket",
		"s3-access-key": "storage.s3.access_key",
		"s3-secret-key": "storage.s3.secret_key",
		"s3-path-style": "storage.s3.path_style",
		"rate-limit":    "security.rate_limit.enabled",
		"auth-per-min":  "security.rate_limit.auth_per_min",
	} {
		_ = cli.BindFlag(rootCmd, flag, key)
	}

	setDefaults()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(migrateCmd)
}

// initConfig reads in config file and ENV variables if set
func initConfig() error {
	opts := cli.DefaultConfigOptions("joblyd", "JOBLY")
	opts.ConfigFile = cfgFile

	if err := cli.InitConfig(opts); err != nil {
		return err
	}

	log = cli.InitLogger("joblyd")
	return nil
}
