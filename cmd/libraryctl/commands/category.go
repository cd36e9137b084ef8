package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage book categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		service, closeDB, err := openServices(ctx)
		if err != nil {
			return err
		}
		defer closeDB()

		category, err := service.Category.CreateCategory(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created category %q (%s)\n", category.Name, category.ID)
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with their book counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		service, closeDB, err := openServices(ctx)
		if err != nil {
			return err
		}
		defer closeDB()

		page, err := service.Category.ListCategories(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tBOOKS")
		for _, c := range page.Categories {
			fmt.Fprintf(w, "%s\t%s\t%d\n", c.ID, c.Name, c.BookCount)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryAddCmd, categoryListCmd)
}
