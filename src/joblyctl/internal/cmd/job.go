package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bitswalk/jobly/src/joblyctl/internal/client"
	"github.com/bitswalk/jobly/src/joblyctl/internal/output"
	"github.com/spf13/cobra"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Browse and manage jobs",
}

var jobListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs",
	Args:  cobra.NoArgs,
	RunE:  runJobList,
}

var jobGetCmd = &cobra.Command{
	Use:   "get <title>",
	Short: "Show a job and its company",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobGet,
}

var jobCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a job (admin)",
	Args:  cobra.NoArgs,
	RunE:  runJobCreate,
}

var jobUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a job (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobUpdate,
}

var jobDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a job (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobDelete,
}

var jobUpdateFlags = []fieldFlag{
	{flag: "title", field: "title", usage: "Job title"},
	{flag: "salary", field: "salary", kind: kindInt, usage: "Salary", nullable: true},
	{flag: "equity", field: "equity", usage: "Equity, a decimal between 0 and 1", nullable: true},
}

func init() {
	jobCmd.AddCommand(jobListCmd)
	jobCmd.AddCommand(jobGetCmd)
	jobCmd.AddCommand(jobCreateCmd)
	jobCmd.AddCommand(jobUpdateCmd)
	jobCmd.AddCommand(jobDeleteCmd)

	jobListCmd.Flags().String("title", "", "Case-insensitive title substring")
	jobListCmd.Flags().Int("min-salary", 0, "Minimum salary")
	jobListCmd.Flags().Bool("has-equity", false, "Only jobs with non-zero equity")

	jobCreateCmd.Flags().String("title", "", "Job title (required)")
	jobCreateCmd.Flags().String("company", "", "Owning company handle (required)")
	jobCreateCmd.Flags().Int("salary", 0, "Salary")
	jobCreateCmd.Flags().String("equity", "", "Equity, a decimal between 0 and 1")
	_ = jobCreateCmd.MarkFlagRequired("title")
	_ = jobCreateCmd.MarkFlagRequired("company")

	registerFieldFlags(jobUpdateCmd, jobUpdateFlags)
}

func printJobTable(jobs []client.Job) {
	rows := make([][]string, len(jobs))
	for i, j := range jobs {
		rows[i] = []string{
			strconv.FormatInt(j.ID, 10),
			j.Title,
			formatInt(j.Salary),
			formatString(j.Equity),
			j.CompanyHandle,
		}
	}
	output.PrintTable([]string{"ID", "TITLE", "SALARY", "EQUITY", "COMPANY"}, rows)
}

func printJob(job *client.Job) error {
	return output.PrintFormatted(getOutputFormat(), job, func() error {
		printJobTable([]client.Job{*job})
		return nil
	})
}

func runJobList(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	hasEquity, _ := cmd.Flags().GetBool("has-equity")
	filter := &client.JobFilter{
		Title:     title,
		MinSalary: optionalInt(cmd, "min-salary"),
		HasEquity: hasEquity,
	}

	jobs, err := getClient().ListJobs(context.Background(), filter)
	if err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), jobs, func() error {
		if len(jobs) == 0 {
			output.PrintMessage("No jobs found.")
			return nil
		}
		printJobTable(jobs)
		return nil
	})
}

func runJobGet(cmd *cobra.Command, args []string) error {
	job, err := getClient().GetJob(context.Background(), args[0])
	if err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), job, func() error {
		rows := [][]string{
			{"ID", strconv.FormatInt(job.ID, 10)},
			{"Title", job.Title},
			{"Salary", formatInt(job.Salary)},
			{"Equity", formatString(job.Equity)},
		}
		if job.Company != nil {
			rows = append(rows,
				[]string{"Company", job.Company.Handle},
				[]string{"Company name", job.Company.Name},
			)
		}
		output.PrintTable([]string{"FIELD", "VALUE"}, rows)
		return nil
	})
}

func runJobCreate(cmd *cobra.Command, args []string) error {
	nj := client.NewJob{
		Salary: optionalInt(cmd, "salary"),
		Equity: optionalString(cmd, "equity"),
	}
	nj.Title, _ = cmd.Flags().GetString("title")
	nj.CompanyHandle, _ = cmd.Flags().GetString("company")

	job, err := getClient().CreateJob(context.Background(), nj)
	if err != nil {
		return err
	}
	return printJob(job)
}

func runJobUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseJobID(args[0])
	if err != nil {
		return err
	}
	fields, err := updateFields(cmd, jobUpdateFlags)
	if err != nil {
		return err
	}

	job, err := getClient().UpdateJob(context.Background(), id, fields)
	if err != nil {
		return err
	}
	return printJob(job)
}

func runJobDelete(cmd *cobra.Command, args []string) error {
	id, err := parseJobID(args[0])
	if err != nil {
		return err
	}
	if err := getClient().DeleteJob(context.Background(), id); err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), map[string]string{"deleted": args[0]}, func() error {
		output.PrintMessage(fmt.Sprintf("Job %d deleted.", id))
		return nil
	})
}
