package cmd

import (
	"context"
	"strconv"

	"github.com/bitswalk/jobly/src/joblyctl/internal/output"
	"github.com/spf13/cobra"
)

// completionCompanyHandles completes the first argument with company handles
func completionCompanyHandles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	companies, err := getClient().ListCompanies(context.Background(), nil)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	suggestions := make([]string, len(companies))
	for i, co := range companies {
		suggestions[i] = co.Handle + "\t" + co.Name
	}
	return suggestions, cobra.ShellCompDirectiveNoFileComp
}

// completionJobIDs completes job ids, described by their title
func completionJobIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	jobs, err := getClient().ListJobs(context.Background(), nil)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	suggestions := make([]string, len(jobs))
	for i, j := range jobs {
		suggestions[i] = strconv.FormatInt(j.ID, 10) + "\t" + j.Title
	}
	return suggestions, cobra.ShellCompDirectiveNoFileComp
}

func completionOutputFormat(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{output.FormatTable, output.FormatJSON, output.FormatYAML}, cobra.ShellCompDirectiveNoFileComp
}

func registerCompletions() {
	_ = rootCmd.RegisterFlagCompletionFunc("output", completionOutputFormat)

	companyGetCmd.ValidArgsFunction = completionCompanyHandles
	companyUpdateCmd.ValidArgsFunction = completionCompanyHandles
	companyDeleteCmd.ValidArgsFunction = completionCompanyHandles
	companyLogoUploadCmd.ValidArgsFunction = completionCompanyHandles
	companyLogoDownloadCmd.ValidArgsFunction = completionCompanyHandles
	_ = jobCreateCmd.RegisterFlagCompletionFunc("company", completionCompanyHandles)

	jobUpdateCmd.ValidArgsFunction = completionJobIDs
	jobDeleteCmd.ValidArgsFunction = completionJobIDs
}
