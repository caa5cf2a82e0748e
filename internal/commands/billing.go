package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/dorm-ledger/internal/dorm"
	"github.com/beesaferoot/dorm-ledger/internal/service"
)

func UtilityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "utility",
		Short: "Record and price meter readings",
	}
	cmd.AddCommand(utilityRecordCmd(app), utilityUnitsCmd(app), utilityListCmd(app))
	return cmd
}

func utilityRecordCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Add or replace the reading of a room for a month",
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			f := cmd.Flags()
			var u dorm.Utility
			u.RoomNo, _ = f.GetString("room")
			u.Month, _ = f.GetString("month")
			u.Year, _ = f.GetString("year")
			u.PrevWater, _ = f.GetInt("prev-water")
			u.CurrWater, _ = f.GetInt("curr-water")
			u.PrevElectric, _ = f.GetInt("prev-electric")
			u.CurrElectric, _ = f.GetInt("curr-electric")
			u.WaterRate, _ = f.GetFloat64("water-rate")
			u.ElectricRate, _ = f.GetFloat64("electric-rate")

			u, replaced, err := svc.RecordUtility(cmd.Context(), u)
			if err != nil {
				return fmt.Errorf("failed to record reading: %w", err)
			}
			verb := "Saved"
			if replaced {
				verb = "Replaced"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s readings for room %s %s/%s\n", verb, u.RoomNo, u.Month, u.Year)
			return nil
		}),
	}
	cmd.Flags().String("room", "", "Room number")
	cmd.Flags().String("month", "", "Month (MM)")
	cmd.Flags().String("year", "", "Year (YYYY)")
	cmd.Flags().Int("prev-water", 0, "Previous water meter")
	cmd.Flags().Int("curr-water", 0, "Current water meter")
	cmd.Flags().Int("prev-electric", 0, "Previous electric meter")
	cmd.Flags().Int("curr-electric", 0, "Current electric meter")
	cmd.Flags().Float64("water-rate", 0, "Water rate per unit")
	cmd.Flags().Float64("electric-rate", 0, "Electric rate per unit")
	for _, name := range []string{"room", "month", "year", "curr-water", "curr-electric", "water-rate", "electric-rate"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func utilityUnitsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "units [room-no] [month] [year]",
		Short: "Show consumption and charges of a room for a month",
		Args:  cobra.ExactArgs(3),
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			c, err := svc.UtilityCharges(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Water units: %d -> Bill: %s\n", c.WaterUnits, money(c.WaterBill))
			fmt.Fprintf(out, "Electric units: %d -> Bill: %s\n", c.ElectricUnits, money(c.ElectricBill))
			return nil
		}),
	}
}

func utilityListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all readings",
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			utilities, err := svc.ListUtilities(cmd.Context())
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout(), []int{8, 6, 6, 8, 8, 8, 8, 8, 8},
				"Room", "MM", "YYYY", "PrevW", "CurW", "PrevE", "CurE", "WRate", "ERate")
			for _, u := range utilities {
				t.row(u.RoomNo, u.Month, u.Year,
					strconv.Itoa(u.PrevWater), strconv.Itoa(u.CurrWater),
					strconv.Itoa(u.PrevElectric), strconv.Itoa(u.CurrElectric),
					money(u.WaterRate), money(u.ElectricRate))
			}
			return nil
		}),
	}
}

func InvoiceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Create and inspect invoices",
	}
	cmd.AddCommand(invoiceCreateCmd(app), invoiceShowCmd(app), invoiceListCmd(app))
	return cmd
}

func invoiceCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create [contract-id] [month] [year]",
		Short: "Create an invoice for a contract and month",
		Args:  cobra.ExactArgs(3),
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			inv, err := svc.CreateInvoice(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return fmt.Errorf("failed to create invoice: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Invoice created ID: %s Total: %s\n", inv.InvoiceID, money(inv.Total))
			return nil
		}),
	}
}

func invoiceShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [invoice-id]",
		Short: "Show one invoice",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			inv, err := svc.FindInvoice(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Invoice %s (contract %s, room %s, %s/%s)\n", inv.InvoiceID, inv.ContractID, inv.RoomNo, inv.Month, inv.Year)
			fmt.Fprintf(out, "  Room:     %12s\n", money(inv.RoomPrice))
			fmt.Fprintf(out, "  Internet: %12s\n", money(inv.InternetFee))
			fmt.Fprintf(out, "  Water:    %12s\n", money(inv.WaterBill))
			fmt.Fprintf(out, "  Electric: %12s\n", money(inv.ElectricBill))
			fmt.Fprintf(out, "  Total:    %12s\n", money(inv.Total))
			fmt.Fprintf(out, "Status: %s\n", inv.Status)
			return nil
		}),
	}
}

func invoiceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all invoices",
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			invoices, err := svc.ListInvoices(cmd.Context())
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout(), []int{12, 12, 8, 6, 6, 12, 8},
				"InvoiceID", "Contract", "Room", "MM", "YYYY", "Total", "Status")
			for _, inv := range invoices {
				t.row(inv.InvoiceID, inv.ContractID, inv.RoomNo, inv.Month, inv.Year, money(inv.Total), string(inv.Status))
			}
			return nil
		}),
	}
}

func PaymentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Record and list payments",
	}
	cmd.AddCommand(paymentMarkPaidCmd(app), paymentListCmd(app))
	return cmd
}

func paymentMarkPaidCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mark-paid [invoice-id]",
		Short: "Mark an invoice PAID and record the payment",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			amount, _ := cmd.Flags().GetFloat64("amount")
			date, _ := cmd.Flags().GetString("date")
			if date == "" {
				date = time.Now().Format(dorm.DateLayout)
			}

			if _, err := svc.MarkPaid(cmd.Context(), args[0], amount, date); err != nil {
				return fmt.Errorf("failed to mark invoice paid: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Marked PAID and recorded payment.")
			return nil
		}),
	}
	cmd.Flags().Float64("amount", 0, "Amount received")
	cmd.Flags().String("date", "", "Payment date (YYYY-MM-DD), defaults to today")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func paymentListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all payments",
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			payments, err := svc.ListPayments(cmd.Context())
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout(), []int{12, 12, 12}, "InvoiceID", "Amount", "Date")
			for _, p := range payments {
				t.row(p.InvoiceID, money(p.Amount), p.Date)
			}
			return nil
		}),
	}
}
