package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/dorm-ledger/internal/service"
)

func AdminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}
	cmd.AddCommand(adminCreateCmd(app), adminPasswdCmd(app), adminDeleteCmd(app), adminListCmd(app), adminVerifyCmd(app))
	return cmd
}

func passwordFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().String("password", "", usage)
	_ = cmd.MarkFlagRequired("password")
}

func adminCreateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [username]",
		Short: "Create an admin account",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			password, _ := cmd.Flags().GetString("password")
			if err := svc.CreateAdmin(cmd.Context(), args[0], password); err != nil {
				return fmt.Errorf("failed to create admin: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Admin created.")
			return nil
		}),
	}
	passwordFlag(cmd, "Password")
	return cmd
}

func adminPasswdCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passwd [username]",
		Short: "Change an admin's password",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			password, _ := cmd.Flags().GetString("password")
			if err := svc.ChangePassword(cmd.Context(), args[0], password); err != nil {
				return fmt.Errorf("failed to change password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated.")
			return nil
		}),
	}
	passwordFlag(cmd, "New password")
	return cmd
}

func adminDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [username]",
		Short: "Delete an admin account",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			if err := svc.DeleteAdmin(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete admin: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		}),
	}
}

func adminListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List admin accounts",
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			names, err := svc.ListAdmins(cmd.Context())
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout(), []int{15}, "Username")
			for _, n := range names {
				t.row(n)
			}
			return nil
		}),
	}
}

func adminVerifyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [username]",
		Short: "Check an admin's password",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			password, _ := cmd.Flags().GetString("password")
			if err := svc.VerifyAdmin(cmd.Context(), args[0], password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		}),
	}
	passwordFlag(cmd, "Password to check")
	return cmd
}
