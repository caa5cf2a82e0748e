package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beesaferoot/dorm-ledger/internal/config"
	"github.com/beesaferoot/dorm-ledger/internal/migration"
	"github.com/beesaferoot/dorm-ledger/internal/store"
)

func DBCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the SQL backend",
	}
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage schema migrations",
	}
	migrate.AddCommand(UpCmd(app), DownCmd(app), StatusCmd(app), HistoryCmd(app))
	cmd.AddCommand(migrate, ImportCmd(app))
	return cmd
}

// migrator connects to the configured database
func (a *App) migrator() (*migration.Migrator, func(), error) {
	db, err := store.OpenDB(a.Config)
	if err != nil {
		return nil, nil, err
	}
	done := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return store.NewMigrator(db), done, nil
}

func UpCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			out := cmd.OutOrStdout()

			m, done, err := app.migrator()
			if err != nil {
				return err
			}
			defer done()

			pending, err := m.Pending()
			if err != nil {
				return fmt.Errorf("failed to get applied migrations: %w", err)
			}
			if len(pending) == 0 {
				fmt.Fprintln(out, "No pending migrations.")
				return nil
			}
			if dryRun {
				fmt.Fprintln(out, "Pending migrations:")
				for _, mg := range pending {
					fmt.Fprintf(out, "- %s (%s)\n", mg.Name, mg.Version)
				}
				return nil
			}

			applied, err := m.Up()
			for _, mg := range applied {
				fmt.Fprintf(out, "Applied migration: %s (%s)\n", mg.Name, mg.Version)
				app.Log.Info("applied migration", zap.String("version", mg.Version), zap.String("name", mg.Name))
			}
			return err
		},
	}
	cmd.Flags().Bool("dry-run", false, "Show pending migrations without executing them")
	return cmd
}

func DownCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Revert the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, done, err := app.migrator()
			if err != nil {
				return err
			}
			defer done()

			mg, err := m.Down()
			if err != nil {
				return err
			}
			app.Log.Info("reverted migration", zap.String("version", mg.Version), zap.String("name", mg.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "Reverted migration: %s (%s)\n", mg.Name, mg.Version)
			return nil
		},
	}
}

func StatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show status of all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, done, err := app.migrator()
			if err != nil {
				return err
			}
			defer done()

			status, err := m.Status()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-16s  %-30s  %-8s\n", "Version", "Name", "Status")
			for _, s := range status {
				state := "Pending"
				if s.Applied {
					state = "Applied"
				}
				fmt.Fprintf(out, "%-16s  %-30s  %-8s\n", s.Migration.Version, s.Migration.Name, state)
			}
			return nil
		},
	}
}

func HistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show migration history",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, done, err := app.migrator()
			if err != nil {
				return err
			}
			defer done()

			records, err := m.History()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No migrations have been applied yet.")
				return nil
			}
			fmt.Fprintf(out, "%-16s  %-30s  %-24s\n", "Version", "Name", "Applied At")
			for _, r := range records {
				fmt.Fprintf(out, "%-16s  %-30s  %-24s\n", r.Version, r.Name, r.AppliedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func ImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Copy the flat data files into the SQL backend",
		Long:  "Loads every collection from the .dat files in DORM_DATA_DIR and replaces the contents of the configured database with them.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config.Backend == config.BackendFile {
				return fmt.Errorf("import needs DORM_BACKEND=sqlite or postgres")
			}
			src := store.NewFileStore(app.Config, app.Log)
			dst, err := store.Open(app.Config, app.Log)
			if err != nil {
				return err
			}
			defer dst.Close()

			counts, err := store.Copy(cmd.Context(), src, dst)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range counts {
				fmt.Fprintf(out, "%-10s %d\n", c.Name, c.Count)
			}
			return nil
		},
	}
}
