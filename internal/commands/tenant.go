package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/dorm-ledger/internal/dorm"
	"github.com/beesaferoot/dorm-ledger/internal/service"
)

func TenantCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage tenants",
	}
	cmd.AddCommand(
		tenantAddCmd(app),
		tenantEditCmd(app),
		tenantDeleteCmd(app),
		tenantFindCmd(app),
		tenantListCmd(app),
		tenantViewCmd(app),
	)
	return cmd
}

func tenantAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a tenant",
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			f := cmd.Flags()
			var t dorm.Tenant
			t.Name, _ = f.GetString("name")
			t.Phone, _ = f.GetString("phone")
			t.CitizenID, _ = f.GetString("citizen-id")
			t.BirthDate, _ = f.GetString("birth-date")
			t.Address, _ = f.GetString("address")
			t.RoomNo, _ = f.GetString("room")

			t, err := svc.AddTenant(cmd.Context(), t)
			if err != nil {
				return fmt.Errorf("failed to add tenant: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added tenant ID = %s\n", t.TenantID)
			return nil
		}),
	}
	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("citizen-id", "", "Citizen ID")
	cmd.Flags().String("birth-date", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().String("address", "", "Address")
	cmd.Flags().String("room", "", "Room number, normally set by a contract")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func tenantEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [tenant-id]",
		Short: "Change a tenant's contact details",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			var upd service.TenantUpdate
			upd.Name, _ = cmd.Flags().GetString("name")
			upd.Phone, _ = cmd.Flags().GetString("phone")
			upd.Address, _ = cmd.Flags().GetString("address")

			t, err := svc.EditTenant(cmd.Context(), args[0], upd)
			if err != nil {
				return fmt.Errorf("failed to edit tenant: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated tenant %s\n", t.TenantID)
			return nil
		}),
	}
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("phone", "", "New phone number")
	cmd.Flags().String("address", "", "New address")
	return cmd
}

func tenantDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [tenant-id]",
		Short: "Delete a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			if err := svc.DeleteTenant(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete tenant: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted tenant %s\n", args[0])
			return nil
		}),
	}
}

func tenantFindCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find tenants by name, ID or room",
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			var q service.TenantQuery
			q.Name, _ = cmd.Flags().GetString("name")
			q.ID, _ = cmd.Flags().GetString("id")
			q.RoomNo, _ = cmd.Flags().GetString("room")

			tenants, err := svc.FindTenants(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(tenants) == 0 {
				fmt.Fprintln(out, "No tenants found.")
				return nil
			}
			for _, t := range tenants {
				fmt.Fprintf(out, "%s | %s | %s\n", t.TenantID, t.Name, t.RoomNo)
			}
			return nil
		}),
	}
	cmd.Flags().String("name", "", "Part of the tenant's name")
	cmd.Flags().String("id", "", "Tenant ID")
	cmd.Flags().String("room", "", "Room number")
	cmd.MarkFlagsMutuallyExclusive("name", "id", "room")
	cmd.MarkFlagsOneRequired("name", "id", "room")
	return cmd
}

func tenantListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tenants",
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			tenants, err := svc.ListTenants(cmd.Context())
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout(), []int{12, 20, 12, 12}, "TenantID", "Name", "Phone", "RoomNo")
			for _, x := range tenants {
				t.row(x.TenantID, x.Name, x.Phone, x.RoomNo)
			}
			return nil
		}),
	}
}

func tenantViewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view [tenant-id]",
		Short: "Show a tenant's profile and invoices",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			view, err := svc.ViewTenant(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			p := view.Tenant
			fmt.Fprintf(out, "TenantID: %s\nName: %s\nPhone: %s\nCitizenID: %s\nBirthDate: %s\nAddress: %s\nRoomNo: %s\n\n",
				p.TenantID, p.Name, p.Phone, p.CitizenID, p.BirthDate, p.Address, p.RoomNo)

			t := newTable(out, []int{10, 10, 10, 10, 8}, "InvoiceID", "MM", "YYYY", "Total", "Status")
			for _, inv := range view.Invoices {
				t.row(inv.InvoiceID, inv.Month, inv.Year, money(inv.Total), string(inv.Status))
			}
			return nil
		}),
	}
}
