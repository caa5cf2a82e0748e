package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beesaferoot/dorm-ledger/internal/config"
	"github.com/beesaferoot/dorm-ledger/internal/record"
	"github.com/beesaferoot/dorm-ledger/internal/student"
)

// StudentRootCmd builds the student command tree
func StudentRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "student",
		Short:         "Student score book",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(studentAddCmd(app), studentListCmd(app), studentFindCmd(app))
	return root
}

func (a *App) book() *student.Book {
	var onCorrupt record.CorruptHandler
	if a.Config.OnCorrupt == config.OnCorruptSkip {
		onCorrupt = func(e *record.CorruptRecordError) error {
			a.Log.Warn("skipping corrupt record",
				zap.String("collection", e.Collection),
				zap.Int("line", e.Line),
				zap.String("value", e.Value))
			return nil
		}
	}
	return student.NewBook(a.Config.Path(a.Config.StudentFile), onCorrupt)
}

func studentAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add [id] [name] [score]",
		Short: "Add a student",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("score must be a whole number: %q", args[2])
			}
			if err := app.book().Add(student.Student{ID: args[0], Name: args[1], Score: score}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved already")
			return nil
		},
	}
}

func studentListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List students with their grades",
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := app.book().List()
			if err != nil {
				return err
			}
			return student.WriteList(cmd.OutOrStdout(), students)
		},
	}
}

func studentFindCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "find [name]",
		Short: "Find a student by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.book().Find(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Found student!\nID: %s\nName: %s\nScore: %d\nGrade: %s\n",
				s.ID, s.Name, s.Score, s.Grade())
			return nil
		},
	}
}
