package commands

import (
	"errors"
	"fmt"

	"library-catalog/internal/dto/request"
	"library-catalog/internal/usecase"
	"library-catalog/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	staffUsername string
	staffEmail    string
	staffPassword string
)

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "Manage staff accounts",
}

var staffCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an active staff account",
	Long: `Create an active staff account that may add books.

Examples:
  libraryctl staff create --username librarian --email lib@example.com --password 's3cret-pass'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		service, closeDB, err := openServices(ctx)
		if err != nil {
			return err
		}
		defer closeDB()

		req := request.RegisterRequest{
			Username:  staffUsername,
			Email:     staffEmail,
			Password1: staffPassword,
			Password2: staffPassword,
		}

		user, err := service.User.CreateStaff(ctx, req)
		var verr *usecase.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("invalid staff account: %s", utils.FormatValidationErrors(verr.Fields))
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created staff user %q (%s)\n", user.Username, user.ID)
		return nil
	},
}

var staffGrantCmd = &cobra.Command{
	Use:   "grant <username>",
	Short: "Grant staff access to an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStaff(cmd, args[0], true)
	},
}

var staffRevokeCmd = &cobra.Command{
	Use:   "revoke <username>",
	Short: "Revoke staff access from a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStaff(cmd, args[0], false)
	},
}

func setStaff(cmd *cobra.Command, username string, isStaff bool) error {
	ctx := cmd.Context()
	service, closeDB, err := openServices(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	user, err := service.User.SetStaff(ctx, username, isStaff)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "User %q is_staff=%t\n", user.Username, user.IsStaff)
	return nil
}

func init() {
	rootCmd.AddCommand(staffCmd)
	staffCmd.AddCommand(staffCreateCmd, staffGrantCmd, staffRevokeCmd)

	staffCreateCmd.Flags().StringVar(&staffUsername, "username", "", "Username")
	staffCreateCmd.Flags().StringVar(&staffEmail, "email", "", "Email address")
	staffCreateCmd.Flags().StringVar(&staffPassword, "password", "", "Password")
	_ = staffCreateCmd.MarkFlagRequired("username")
	_ = staffCreateCmd.MarkFlagRequired("email")
	_ = staffCreateCmd.MarkFlagRequired("password")
}
