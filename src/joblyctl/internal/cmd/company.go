package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitswalk/jobly/src/joblyctl/internal/client"
	"github.com/bitswalk/jobly/src/joblyctl/internal/output"
	"github.com/spf13/cobra"
)

var companyCmd = &cobra.Command{
	Use:     "company",
	Aliases: []string{"co"},
	Short:   "Browse and manage companies",
}

var companyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies",
	Args:  cobra.NoArgs,
	RunE:  runCompanyList,
}

var companyGetCmd = &cobra.Command{
	Use:   "get <handle>",
	Short: "Show a company and its jobs",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompanyGet,
}

var companyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a company (admin)",
	Args:  cobra.NoArgs,
	RunE:  runCompanyCreate,
}

var companyUpdateCmd = &cobra.Command{
	Use:   "update <handle>",
	Short: "Update a company (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompanyUpdate,
}

var companyDeleteCmd = &cobra.Command{
	Use:   "delete <handle>",
	Short: "Delete a company and its jobs (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompanyDelete,
}

var companyLogoCmd = &cobra.Command{
	Use:   "logo",
	Short: "Upload or download a company logo",
}

var companyLogoUploadCmd = &cobra.Command{
	Use:   "upload <handle> <file>",
	Short: "Upload a logo image (admin)",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompanyLogoUpload,
}

var companyLogoDownloadCmd = &cobra.Command{
	Use:   "download <handle>",
	Short: "Download a logo image",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompanyLogoDownload,
}

var companyUpdateFlags = []fieldFlag{
	{flag: "name", field: "name", usage: "Company name"},
	{flag: "description", field: "description", usage: "Description"},
	{flag: "num-employees", field: "numEmployees", kind: kindInt, usage: "Number of employees", nullable: true},
	{flag: "logo-url", field: "logoUrl", usage: "Logo URL", nullable: true},
}

func init() {
	companyCmd.AddCommand(companyListCmd)
	companyCmd.AddCommand(companyGetCmd)
	companyCmd.AddCommand(companyCreateCmd)
	companyCmd.AddCommand(companyUpdateCmd)
	companyCmd.AddCommand(companyDeleteCmd)
	companyCmd.AddCommand(companyLogoCmd)
	companyLogoCmd.AddCommand(companyLogoUploadCmd)
	companyLogoCmd.AddCommand(companyLogoDownloadCmd)

	companyListCmd.Flags().String("name", "", "Case-insensitive name substring")
	companyListCmd.Flags().Int("min-employees", 0, "Minimum number of employees")
	companyListCmd.Flags().Int("max-employees", 0, "Maximum number of employees")

	companyCreateCmd.Flags().String("handle", "", "Company handle (required)")
	companyCreateCmd.Flags().String("name", "", "Company name (required)")
	companyCreateCmd.Flags().String("description", "", "Description (required)")
	companyCreateCmd.Flags().Int("num-employees", 0, "Number of employees")
	companyCreateCmd.Flags().String("logo-url", "", "Logo URL")
	_ = companyCreateCmd.MarkFlagRequired("handle")
	_ = companyCreateCmd.MarkFlagRequired("name")
	_ = companyCreateCmd.MarkFlagRequired("description")

	registerFieldFlags(companyUpdateCmd, companyUpdateFlags)

	companyLogoDownloadCmd.Flags().StringP("file", "f", "", "Output file (default: stdout)")
}

func printCompany(company *client.Company) error {
	return output.PrintFormatted(getOutputFormat(), company, func() error {
		output.PrintTable(
			[]string{"FIELD", "VALUE"},
			[][]string{
				{"Handle", company.Handle},
				{"Name", company.Name},
				{"Description", company.Description},
				{"Employees", formatInt(company.NumEmployees)},
				{"Logo", formatString(company.LogoURL)},
			},
		)
		if len(company.Jobs) > 0 {
			output.PrintMessage("")
			printJobTable(company.Jobs)
		}
		return nil
	})
}

func runCompanyList(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	filter := &client.CompanyFilter{
		Name:         name,
		MinEmployees: optionalInt(cmd, "min-employees"),
		MaxEmployees: optionalInt(cmd, "max-employees"),
	}

	companies, err := getClient().ListCompanies(context.Background(), filter)
	if err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), companies, func() error {
		if len(companies) == 0 {
			output.PrintMessage("No companies found.")
			return nil
		}
		rows := make([][]string, len(companies))
		for i, co := range companies {
			rows[i] = []string{co.Handle, co.Name, formatInt(co.NumEmployees)}
		}
		output.PrintTable([]string{"HANDLE", "NAME", "EMPLOYEES"}, rows)
		return nil
	})
}

func runCompanyGet(cmd *cobra.Command, args []string) error {
	company, err := getClient().GetCompany(context.Background(), args[0])
	if err != nil {
		return err
	}
	return printCompany(company)
}

func runCompanyCreate(cmd *cobra.Command, args []string) error {
	nc := client.NewCompany{
		NumEmployees: optionalInt(cmd, "num-employees"),
		LogoURL:      optionalString(cmd, "logo-url"),
	}
	nc.Handle, _ = cmd.Flags().GetString("handle")
	nc.Name, _ = cmd.Flags().GetString("name")
	nc.Description, _ = cmd.Flags().GetString("description")

	company, err := getClient().CreateCompany(context.Background(), nc)
	if err != nil {
		return err
	}
	return printCompany(company)
}

func runCompanyUpdate(cmd *cobra.Command, args []string) error {
	fields, err := updateFields(cmd, companyUpdateFlags)
	if err != nil {
		return err
	}

	company, err := getClient().UpdateCompany(context.Background(), args[0], fields)
	if err != nil {
		return err
	}
	return printCompany(company)
}

func runCompanyDelete(cmd *cobra.Command, args []string) error {
	if err := getClient().DeleteCompany(context.Background(), args[0]); err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), map[string]string{"deleted": args[0]}, func() error {
		output.PrintMessage(fmt.Sprintf("Company %s deleted.", args[0]))
		return nil
	})
}

func runCompanyLogoUpload(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("failed to open logo: %w", err)
	}
	defer f.Close()

	company, err := getClient().UploadLogo(context.Background(), args[0], filepath.Base(args[1]), f)
	if err != nil {
		return err
	}
	return printCompany(company)
}

func runCompanyLogoDownload(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")

	var w io.Writer = cmd.OutOrStdout()
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	contentType, err := getClient().DownloadLogo(context.Background(), args[0], w)
	if err != nil {
		if path != "" {
			_ = os.Remove(path)
		}
		return err
	}

	if path != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s logo (%s) to %s\n",
			args[0], strings.TrimSpace(contentType), path)
	}
	return nil
}
