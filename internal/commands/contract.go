package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/dorm-ledger/internal/dorm"
	"github.com/beesaferoot/dorm-ledger/internal/service"
)

func ContractCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Manage contracts",
	}
	cmd.AddCommand(contractAddCmd(app), contractEditCmd(app), contractEndCmd(app), contractListCmd(app))
	return cmd
}

func contractAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Move a tenant into a room",
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			f := cmd.Flags()
			var c dorm.Contract
			c.TenantID, _ = f.GetString("tenant")
			c.RoomNo, _ = f.GetString("room")
			c.StartDate, _ = f.GetString("start")
			c.EndDate, _ = f.GetString("end")
			c.RoomPrice, _ = f.GetFloat64("price")
			c.InternetFee, _ = f.GetFloat64("internet")

			c, err := svc.AddContract(cmd.Context(), c)
			if err != nil {
				return fmt.Errorf("failed to add contract: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contract added ID: %s\n", c.ContractID)
			return nil
		}),
	}
	cmd.Flags().String("tenant", "", "Tenant ID")
	cmd.Flags().String("room", "", "Room number")
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().Float64("price", 0, "Monthly room price")
	cmd.Flags().Float64("internet", 0, "Monthly internet fee")
	for _, name := range []string{"tenant", "room", "start", "end", "price"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func contractEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [contract-id]",
		Short: "Change the end date or fees of a contract",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			f := cmd.Flags()
			var upd service.ContractUpdate
			upd.EndDate, _ = f.GetString("end")
			if f.Changed("price") {
				v, _ := f.GetFloat64("price")
				upd.RoomPrice = &v
			}
			if f.Changed("internet") {
				v, _ := f.GetFloat64("internet")
				upd.InternetFee = &v
			}

			c, err := svc.EditContract(cmd.Context(), args[0], upd)
			if err != nil {
				return fmt.Errorf("failed to edit contract: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated contract %s: ends %s, price %s, internet %s\n",
				c.ContractID, c.EndDate, money(c.RoomPrice), money(c.InternetFee))
			return nil
		}),
	}
	cmd.Flags().String("end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().Float64("price", 0, "New monthly room price")
	cmd.Flags().Float64("internet", 0, "New monthly internet fee")
	return cmd
}

func contractEndCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "end [contract-id]",
		Aliases: []string{"delete"},
		Short:   "End a contract and update room and tenant status",
		Args:    cobra.ExactArgs(1),
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			if err := svc.EndContract(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to end contract: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Contract removed and statuses updated.")
			return nil
		}),
	}
}

func contractListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all contracts",
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			contracts, err := svc.ListContracts(cmd.Context())
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout(), []int{12, 12, 8, 12, 12, 12, 10},
				"ContractID", "TenantID", "RoomNo", "Start", "End", "Price", "Internet")
			for _, c := range contracts {
				t.row(c.ContractID, c.TenantID, c.RoomNo, c.StartDate, c.EndDate, money(c.RoomPrice), money(c.InternetFee))
			}
			return nil
		}),
	}
}
