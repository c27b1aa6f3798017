package cmd

import (
	"context"
	"sort"

	"github.com/bitswalk/jobly/src/joblyctl/internal/output"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	Long:  `Checks the health of the joblyd server and its database and storage.`,
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	resp, err := getClient().Health(context.Background())
	if err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), resp, func() error {
		rows := [][]string{
			{"Status", resp.Status},
			{"Timestamp", resp.Timestamp},
		}
		names := make([]string, 0, len(resp.Checks))
		for name := range resp.Checks {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			rows = append(rows, []string{"Check " + name, resp.Checks[name]})
		}
		output.PrintTable([]string{"FIELD", "VALUE"}, rows)
		return nil
	})
}
