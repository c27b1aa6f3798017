package cmd

import (
	"context"
	"fmt"

	"github.com/bitswalk/jobly/src/joblyctl/internal/client"
	"github.com/bitswalk/jobly/src/joblyctl/internal/output"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Shows the joblyctl client version and optionally the server version.`,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("remote", false, "Also show the server version")
}

func runVersion(cmd *cobra.Command, args []string) error {
	remote, _ := cmd.Flags().GetBool("remote")

	result := map[string]interface{}{"client": VersionInfo}
	var serverInfo *client.ServerVersion
	var serverErr error
	if remote {
		serverInfo, serverErr = getClient().Version(context.Background())
		if serverErr != nil {
			result["server_error"] = serverErr.Error()
		} else {
			result["server"] = serverInfo
		}
	}

	return output.PrintFormatted(getOutputFormat(), result, func() error {
		output.PrintMessage(fmt.Sprintf("Client: joblyctl %s", VersionInfo.Version))
		output.PrintMessage(fmt.Sprintf("  Build Date: %s", VersionInfo.BuildDate))
		output.PrintMessage(fmt.Sprintf("  Git Commit: %s", VersionInfo.GitCommit))
		output.PrintMessage(fmt.Sprintf("  Go Version: %s", VersionInfo.GoVersion))

		if !remote {
			return nil
		}
		if serverErr != nil {
			output.PrintMessage(fmt.Sprintf("Server: error: %v", serverErr))
			return nil
		}
		output.PrintMessage(fmt.Sprintf("Server: joblyd %s", serverInfo.Version))
		output.PrintMessage(fmt.Sprintf("  Build Date: %s", serverInfo.BuildDate))
		output.PrintMessage(fmt.Sprintf("  Git Commit: %s", serverInfo.GitCommit))
		output.PrintMessage(fmt.Sprintf("  Go Version: %s", serverInfo.GoVersion))
		return nil
	})
}
