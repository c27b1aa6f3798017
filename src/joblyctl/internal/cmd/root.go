// Package cmd implements the joblyctl commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/bitswalk/jobly/src/common/cli"
	"github.com/bitswalk/jobly/src/common/version"
	"github.com/bitswalk/jobly/src/joblyctl/internal/client"
	"github.com/bitswalk/jobly/src/joblyctl/internal/config"
	"github.com/bitswalk/jobly/src/joblyctl/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultServerURL = "http://localhost:3001"

var (
	// VersionInfo is assembled from the linker variables in Execute
	VersionInfo = version.New("", "", "")

	cfgFile string

	// Output format (table, json or yaml)
	outputFormat string

	apiClient *client.Client
)

// Linker variables, set via -ldflags "-X ..."
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "joblyctl",
	Short: "Jobly CLI client",
	Long: `joblyctl is the command-line client for the Jobly job board.

It talks to a joblyd server to browse and manage companies, jobs and users.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command
func Execute() {
	VersionInfo = version.New(Version, BuildDate, GitCommit)

	if err := rootCmd.Execute(); err != nil {
		output.PrintError(err)
		os.Exit(1)
	}
}

func init() {
	cli.RegisterConfigFlag(rootCmd, &cfgFile, "~/.joblyctl/joblyctl.yaml")

	rootCmd.PersistentFlags().StringP("server", "s", "", fmt.Sprintf("joblyd server URL (default: %s)", defaultServerURL))
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", output.FormatTable, "Output format: table, json, yaml")

	_ = viper.BindPFlag("server.url", rootCmd.PersistentFlags().Lookup("server"))
	viper.SetDefault("server.url", defaultServerURL)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(companyCmd)
	rootCmd.AddCommand(jobCmd)
	rootCmd.AddCommand(userCmd)

	registerCompletions()
}

func initConfig() error {
	opts := cli.ConfigOptions{
		ConfigFile: cfgFile,
		ConfigName: "joblyctl",
		ConfigType: "yaml",
		EnvPrefix:  "JOBLYCTL",
		SearchPaths: []string{
			"/etc/jobly",
			"~/.joblyctl",
		},
	}
	return cli.InitConfig(opts)
}

// getClient returns the API client, creating it if needed. A stored token
// is only sent to the server it was issued by.
func getClient() *client.Client {
	if apiClient == nil {
		serverURL := viper.GetString("server.url")
		apiClient = client.New(serverURL)

		if session, err := config.Load(); err == nil {
			apiClient.Token = session.TokenFor(serverURL)
		}
	}
	return apiClient
}

func getOutputFormat() string {
	return outputFormat
}
