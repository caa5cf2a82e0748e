package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/dorm-ledger/internal/dorm"
	"github.com/beesaferoot/dorm-ledger/internal/service"
)

func RoomCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Manage rooms",
	}
	cmd.AddCommand(roomAddCmd(app), roomEditCmd(app), roomDeleteCmd(app), roomListCmd(app))
	return cmd
}

func roomAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [room-no]",
		Short: "Add a room",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			roomType, _ := cmd.Flags().GetString("type")
			status, _ := cmd.Flags().GetString("status")

			room, err := svc.AddRoom(cmd.Context(), dorm.Room{
				RoomNo: args[0],
				Type:   roomType,
				Status: dorm.RoomStatus(status),
			})
			if err != nil {
				return fmt.Errorf("failed to add room: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added room %s (%s, %s)\n", room.RoomNo, room.Type, room.Status)
			return nil
		}),
	}
	cmd.Flags().String("type", "Single", "Room type (Single/Double/Suite)")
	cmd.Flags().String("status", string(dorm.RoomAvailable), "Room status (Available/Occupied/Maintenance)")
	return cmd
}

func roomEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [room-no]",
		Short: "Change the type or status of a room",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			roomType, _ := cmd.Flags().GetString("type")
			status, _ := cmd.Flags().GetString("status")

			room, err := svc.EditRoom(cmd.Context(), args[0], service.RoomUpdate{Type: roomType, Status: status})
			if err != nil {
				return fmt.Errorf("failed to edit room: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated room %s (%s, %s)\n", room.RoomNo, room.Type, room.Status)
			return nil
		}),
	}
	cmd.Flags().String("type", "", "New room type")
	cmd.Flags().String("status", "", "New room status")
	return cmd
}

func roomDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [room-no]",
		Short: "Delete a room",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			if err := svc.DeleteRoom(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete room: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted room %s\n", args[0])
			return nil
		}),
	}
}

func roomListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all rooms",
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			rooms, err := svc.ListRooms(cmd.Context())
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout(), []int{10, 15, 12}, "RoomNo", "Type", "Status")
			for _, r := range rooms {
				t.row(r.RoomNo, r.Type, string(r.Status))
			}
			return nil
		}),
	}
}
